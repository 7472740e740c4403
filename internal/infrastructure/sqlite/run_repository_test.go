package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/nothingTVatYT/Seed/internal/engine"
	"github.com/nothingTVatYT/Seed/internal/history"
)

// setupTestRepo creates a new DB and returns the repository for testing.
// The DB is closed when the test completes.
func setupTestRepo(t *testing.T) history.Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	db, err := NewDB(dbPath)
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { _ = db.Close() })
	return db.RunRepository()
}

func recordAt(t *testing.T, path, version string, startedAt time.Time, outcome history.Outcome) *history.Record {
	t.Helper()
	return history.ReconstituteRecord(
		uuid.NewString(), path, engine.MustParseVersion(version), startedAt.UTC(), outcome,
	)
}

func TestRunRepository_RecordAndLastRun(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	rec := history.NewRecord("/p/shooter", engine.MustParseVersion("1.2.0"), history.OutcomeLaunched)
	require.NoError(t, repo.Record(ctx, rec))

	found, err := repo.LastRun(ctx, "/p/shooter")
	require.NoError(t, err)
	require.Equal(t, rec.ID(), found.ID())
	require.Equal(t, "/p/shooter", found.ProjectPath())
	require.Equal(t, "1.2.0", found.EngineVersion().String())
	require.Equal(t, history.OutcomeLaunched, found.Outcome())
	require.Equal(t, rec.StartedAt().Unix(), found.StartedAt().Unix())
}

func TestRunRepository_LastRun_NoRuns(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.LastRun(context.Background(), "/p/never-launched")
	require.ErrorIs(t, err, history.ErrNoRuns)
}

func TestRunRepository_LastRunPicksNewest(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	old := recordAt(t, "/p/shooter", "1.0.0", base, history.OutcomeLaunched)
	newer := recordAt(t, "/p/shooter", "1.1.0", base.Add(time.Hour), history.OutcomeFailed)
	require.NoError(t, repo.Record(ctx, old))
	require.NoError(t, repo.Record(ctx, newer))

	found, err := repo.LastRun(ctx, "/p/shooter")
	require.NoError(t, err)
	require.Equal(t, newer.ID(), found.ID())
}

func TestRunRepository_ListByProject(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := recordAt(t, "/p/shooter", "1.0.0", base, history.OutcomeLaunched)
	second := recordAt(t, "/p/shooter", "1.0.0", base.Add(time.Minute), history.OutcomeLaunched)
	third := recordAt(t, "/p/shooter", "1.1.0", base.Add(2*time.Minute), history.OutcomeFailed)
	other := recordAt(t, "/p/puzzle", "1.0.0", base.Add(3*time.Minute), history.OutcomeLaunched)
	for _, rec := range []*history.Record{first, second, third, other} {
		require.NoError(t, repo.Record(ctx, rec))
	}

	records, err := repo.ListByProject(ctx, "/p/shooter", 0)
	require.NoError(t, err)
	require.Len(t, records, 3, "other projects' runs excluded")
	require.Equal(t, third.ID(), records[0].ID(), "newest first")
	require.Equal(t, second.ID(), records[1].ID())
	require.Equal(t, first.ID(), records[2].ID())

	limited, err := repo.ListByProject(ctx, "/p/shooter", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	require.Equal(t, third.ID(), limited[0].ID())
}

func TestRunRepository_ListRecent(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	a := recordAt(t, "/p/shooter", "1.0.0", base, history.OutcomeLaunched)
	b := recordAt(t, "/p/puzzle", "2.0.0", base.Add(time.Minute), history.OutcomeLaunched)
	require.NoError(t, repo.Record(ctx, a))
	require.NoError(t, repo.Record(ctx, b))

	records, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, b.ID(), records[0].ID())
}

func TestRunRepository_PruneOlderThan(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	stale := recordAt(t, "/p/shooter", "1.0.0", base.Add(-48*time.Hour), history.OutcomeLaunched)
	fresh := recordAt(t, "/p/shooter", "1.0.0", base, history.OutcomeLaunched)
	require.NoError(t, repo.Record(ctx, stale))
	require.NoError(t, repo.Record(ctx, fresh))

	pruned, err := repo.PruneOlderThan(ctx, base.Add(-time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, pruned)

	records, err := repo.ListByProject(ctx, "/p/shooter", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, fresh.ID(), records[0].ID())
}

func TestRunRepository_DuplicateIDRejected(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	rec := history.NewRecord("/p/shooter", engine.MustParseVersion("1.0.0"), history.OutcomeLaunched)
	require.NoError(t, repo.Record(ctx, rec))
	require.Error(t, repo.Record(ctx, rec), "primary key enforces one row per record")
}

func TestRunRepository_OutcomeConstraint(t *testing.T) {
	repo := setupTestRepo(t)

	bogus := history.ReconstituteRecord(
		uuid.NewString(), "/p/shooter", engine.MustParseVersion("1.0.0"), time.Now().UTC(), history.Outcome("crashed"),
	)
	require.Error(t, repo.Record(context.Background(), bogus), "schema only accepts launched or failed")
}

func TestRunRepository_ListByProjectProperty(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	rapid.Check(t, func(t *rapid.T) {
		// One project per iteration; the shared database accumulates rows
		// across iterations, so the path must be unique.
		projectPath := "/p/" + rapid.StringMatching(`[a-z]{4,12}`).Draw(t, "project") + "-" + uuid.NewString()

		count := rapid.IntRange(1, 8).Draw(t, "count")
		inserted := make([]*history.Record, 0, count)
		for range count {
			startedAt := time.Unix(rapid.Int64Range(1_600_000_000, 1_700_000_000).Draw(t, "startedAt"), 0)
			outcome := history.OutcomeLaunched
			if rapid.Bool().Draw(t, "failed") {
				outcome = history.OutcomeFailed
			}
			version := engine.MustParseVersion(fmt.Sprintf("%d.%d.%d",
				rapid.IntRange(0, 9).Draw(t, "major"),
				rapid.IntRange(0, 20).Draw(t, "minor"),
				rapid.IntRange(0, 50).Draw(t, "patch"),
			))
			rec := history.ReconstituteRecord(
				uuid.NewString(), projectPath, version, startedAt.UTC(), outcome,
			)
			require.NoError(t, repo.Record(ctx, rec))
			inserted = append(inserted, rec)
		}

		records, err := repo.ListByProject(ctx, projectPath, 0)
		require.NoError(t, err)
		require.Len(t, records, len(inserted))

		for i := 1; i < len(records); i++ {
			require.GreaterOrEqual(t,
				records[i-1].StartedAt().Unix(), records[i].StartedAt().Unix(),
				"results ordered newest first")
		}

		ids := make(map[string]bool, len(records))
		for _, rec := range records {
			ids[rec.ID()] = true
		}
		for _, rec := range inserted {
			require.True(t, ids[rec.ID()], "every inserted run comes back")
		}
	})
}
