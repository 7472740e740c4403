package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nothingTVatYT/Seed/internal/app"
	"github.com/nothingTVatYT/Seed/internal/history"
)

var historyLimitFlag int

var historyCmd = &cobra.Command{
	Use:   "history [path|name]",
	Short: "Show recorded launches",
	Long: `Show recorded launches, newest first. With a project argument only
that project's launches are shown.

Examples:
  # Recent launches across all projects
  seed history

  # Launches of one project
  seed history shooter

  # More rows
  seed history --limit 50`,
	Args: cobra.MaximumNArgs(1),
	RunE: withBackend(func(cmd *cobra.Command, args []string, b *app.Backend) error {
		repo := b.History()
		if repo == nil {
			return fmt.Errorf("run history is disabled, set history_db in the config to enable it")
		}

		var records []*history.Record
		var err error
		if len(args) == 1 {
			p, resolveErr := resolveProject(b, args[0])
			if resolveErr != nil {
				return resolveErr
			}
			records, err = repo.ListByProject(cmd.Context(), p.Path(), historyLimitFlag)
		} else {
			records, err = repo.ListRecent(cmd.Context(), historyLimitFlag)
		}
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No launches recorded.")
			return nil
		}

		fmt.Printf("%-20s %-12s %-9s %s\n", "STARTED", "ENGINE", "OUTCOME", "PROJECT")
		for _, r := range records {
			fmt.Printf("%-20s %-12s %-9s %s\n",
				r.StartedAt().Local().Format("2006-01-02 15:04:05"),
				r.EngineVersion(), r.Outcome(), r.ProjectPath())
		}
		return nil
	}),
}

func init() {
	historyCmd.Flags().IntVar(&historyLimitFlag, "limit", 20, "maximum rows to show")
	rootCmd.AddCommand(historyCmd)
}
