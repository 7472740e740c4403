package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nothingTVatYT/Seed/internal/app"
)

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "List installed engine versions",
	Long: `List the engine versions found in the engines directory, oldest
version first.

Examples:
  # List installed engines
  seed engines`,
	RunE: withBackend(func(cmd *cobra.Command, args []string, b *app.Backend) error {
		engines := b.Controller.Engines()
		if len(engines) == 0 {
			fmt.Printf("No engines installed under %s.\n", b.Config.EnginesDir)
			return nil
		}

		fmt.Printf("%-12s %-17s %s\n", "VERSION", "INSTALLED", "PATH")
		for _, e := range engines {
			fmt.Printf("%-12s %-17s %s\n",
				e.Version(), e.InstalledAt().Local().Format("2006-01-02 15:04"), e.InstallPath())
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(enginesCmd)
}
