package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nothingTVatYT/Seed/internal/app"
	"github.com/nothingTVatYT/Seed/internal/engine"
)

var engineCmd = &cobra.Command{
	Use:   "engine",
	Short: "Manage a project's engine pin",
}

var engineSetCmd = &cobra.Command{
	Use:   "set <path|name> <version>",
	Short: "Repin a project to an installed engine version",
	Long: `Repin a project to a different engine version. The version must be
installed; the new pin is persisted and the project's status re-evaluated.

Examples:
  # Repin by project name
  seed engine set shooter 1.2.0`,
	Args: cobra.ExactArgs(2),
	RunE: withBackend(func(cmd *cobra.Command, args []string, b *app.Backend) error {
		p, err := resolveProject(b, args[0])
		if err != nil {
			return err
		}
		v, err := engine.ParseVersion(args[1])
		if err != nil {
			return err
		}
		if err := b.Controller.ChangeEngineVersion(cmd.Context(), p.Path(), v); err != nil {
			return err
		}
		fmt.Printf("%s now pinned to engine %s\n", p.Name(), v)
		return nil
	}),
}

func init() {
	engineCmd.AddCommand(engineSetCmd)
	rootCmd.AddCommand(engineCmd)
}
