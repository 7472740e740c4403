package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nothingTVatYT/Seed/internal/app"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage project build caches",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear <path|name>",
	Short: "Delete a project's build cache",
	Long: `Delete the build cache directory (.seed/cache) inside a project.

Clearing is refused when the project's pinned engine version is not
installed, since nothing could rebuild the cache afterwards.

Examples:
  # Clear by project name
  seed cache clear shooter

  # Clear by path
  seed cache clear ~/projects/shooter`,
	Args: cobra.ExactArgs(1),
	RunE: withBackend(func(cmd *cobra.Command, args []string, b *app.Backend) error {
		p, err := resolveProject(b, args[0])
		if err != nil {
			return err
		}
		if err := b.Controller.ClearCache(cmd.Context(), p.Path()); err != nil {
			return err
		}
		fmt.Printf("Cleared build cache for %s\n", p.Name())
		return nil
	}),
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
