package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nothingTVatYT/Seed/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run <path|name>",
	Short: "Launch a project with its pinned engine",
	Long: `Launch a project with the engine version it is pinned to.

The launch is refused when the pinned version is not installed; install the
engine or repin the project with 'seed engine set' first.

Examples:
  # Launch by project name
  seed run shooter

  # Launch by path
  seed run ~/projects/shooter`,
	Args: cobra.ExactArgs(1),
	RunE: withBackend(func(cmd *cobra.Command, args []string, b *app.Backend) error {
		p, err := resolveProject(b, args[0])
		if err != nil {
			return err
		}
		if err := b.Controller.Run(cmd.Context(), p.Path()); err != nil {
			return err
		}
		fmt.Printf("Launched %s with engine %s\n", p.Name(), p.EngineVersion())
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(runCmd)
}
