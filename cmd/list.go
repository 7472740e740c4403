package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nothingTVatYT/Seed/internal/app"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered projects and their engine status",
	Long: `List all registered projects with the engine version each one is
pinned to and whether that version is currently installed.

Examples:
  # List all projects
  seed list`,
	RunE: withBackend(func(cmd *cobra.Command, args []string, b *app.Backend) error {
		projects := b.Controller.Projects()
		if len(projects) == 0 {
			fmt.Println("No projects registered. Use 'seed import' or 'seed new' to add one.")
			return nil
		}

		fmt.Printf("%-24s %-12s %-10s %-9s %s\n", "NAME", "ENGINE", "STATUS", "TEMPLATE", "PATH")
		for _, p := range projects {
			template := ""
			if p.IsTemplate() {
				template = "yes"
			}
			fmt.Printf("%-24s %-12s %-10s %-9s %s\n",
				p.Name(), p.EngineVersion(), b.Controller.Status(p.Path()), template, p.Path())
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(listCmd)
}
