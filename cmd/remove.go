package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nothingTVatYT/Seed/internal/app"
)

var removeCmd = &cobra.Command{
	Use:   "remove <path|name>",
	Short: "Remove a project from the registry",
	Long: `Remove a project from the registry. Files on disk are not touched;
the directory can be imported again later.

Examples:
  # Remove by project name
  seed remove shooter`,
	Args: cobra.ExactArgs(1),
	RunE: withBackend(func(cmd *cobra.Command, args []string, b *app.Backend) error {
		p, err := resolveProject(b, args[0])
		if err != nil {
			return err
		}
		if err := b.Controller.RemoveProject(cmd.Context(), p.Path()); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", p.Name())
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
