package app

import (
	"context"
	"fmt"
	"time"

	"github.com/nothingTVatYT/Seed/internal/buildcache"
	"github.com/nothingTVatYT/Seed/internal/config"
	"github.com/nothingTVatYT/Seed/internal/engine"
	"github.com/nothingTVatYT/Seed/internal/history"
	"github.com/nothingTVatYT/Seed/internal/icon"
	"github.com/nothingTVatYT/Seed/internal/infrastructure/sqlite"
	"github.com/nothingTVatYT/Seed/internal/launch"
	"github.com/nothingTVatYT/Seed/internal/lifecycle"
	"github.com/nothingTVatYT/Seed/internal/log"
	"github.com/nothingTVatYT/Seed/internal/project"
	"github.com/nothingTVatYT/Seed/internal/tracing"
	"github.com/nothingTVatYT/Seed/internal/ui/manager"
)

// Backend is the service graph shared by the TUI and the CLI commands:
// the project store, the engine registry, the lifecycle controller and
// the run-history database behind it.
type Backend struct {
	Config     config.Config
	Store      *project.Store
	Registry   *engine.Registry
	Controller *lifecycle.Controller
	Notices    *manager.NoticeHub
	Icons      *icon.Loader

	scanner *engine.Scanner
	db      *sqlite.DB
	tracer  *tracing.Provider
	cancel  context.CancelFunc
}

// NewBackend builds the service graph from cfg: it loads the project
// registry from disk, scans the engines directory once, opens the
// run-history database and starts the reconciliation loop.
func NewBackend(cfg config.Config) (*Backend, error) {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Backend{Config: cfg, cancel: cancel}

	ok := false
	defer func() {
		if !ok {
			_ = b.Close()
		}
	}()

	b.Store = project.NewStore(project.NewFileSource(cfg.ProjectsFile))
	if err := b.Store.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}

	b.scanner = engine.NewScanner(cfg.EnginesDir)
	b.Registry = engine.NewRegistry()
	found, err := b.scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("scanning engines: %w", err)
	}
	b.Registry.Sync(found)

	tracingCfg := tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.FilePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
		ServiceName:  "seed",
	}
	if tracingCfg.FilePath == "" {
		tracingCfg.FilePath = config.DefaultTracesFilePath()
	}
	b.tracer, err = tracing.NewProvider(tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("setting up tracing: %w", err)
	}

	opts := []lifecycle.Option{
		lifecycle.WithLauncher(launch.NewExecLauncher()),
		lifecycle.WithCacheCleaner(buildcache.NewCleaner()),
		lifecycle.WithFolderOpener(launch.NewOpenFolder()),
		lifecycle.WithTracer(b.tracer.Tracer()),
	}

	b.Notices = manager.NewNoticeHub()
	opts = append(opts, lifecycle.WithNotifier(b.Notices))

	if cfg.HistoryDB != "" {
		b.db, err = sqlite.NewDB(cfg.HistoryDB)
		if err != nil {
			return nil, fmt.Errorf("opening run history: %w", err)
		}
		opts = append(opts, lifecycle.WithHistory(b.db.RunRepository()))
	}

	b.Controller = lifecycle.NewController(b.Store, b.Registry, opts...)
	b.Controller.Start(ctx)

	b.Icons = icon.NewLoader(icon.PNGDecoder{}, cfg.IconTTL)

	log.Info(log.CatConfig, "backend ready",
		"projects", b.Store.Len(), "engines", len(found))
	ok = true
	return b, nil
}

// History returns the run-history repository, or nil when no database is
// configured.
func (b *Backend) History() history.Repository {
	if b.db == nil {
		return nil
	}
	return b.db.RunRepository()
}

// Rescan re-reads the engines directory and syncs the registry. Project
// verdicts follow through the registry events the controller consumes.
func (b *Backend) Rescan(_ context.Context) error {
	found, err := b.scanner.Scan()
	if err != nil {
		return fmt.Errorf("scanning engines: %w", err)
	}
	added, removed := b.Registry.Sync(found)
	log.Debug(log.CatEngine, "engines rescanned",
		"found", len(found), "added", len(added), "removed", len(removed))
	return nil
}

// Close stops the reconciliation loop and releases every service. Safe to
// call on a partially constructed backend.
func (b *Backend) Close() error {
	b.cancel()

	if b.Controller != nil {
		b.Controller.Close()
	}
	if b.Notices != nil {
		b.Notices.Close()
	}
	if b.Registry != nil {
		b.Registry.Close()
	}
	if b.Store != nil {
		b.Store.Close()
	}

	var err error
	if b.db != nil {
		err = b.db.Close()
	}
	if b.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if shutdownErr := b.tracer.Shutdown(ctx); shutdownErr != nil && err == nil {
			err = shutdownErr
		}
		cancel()
	}
	return err
}
