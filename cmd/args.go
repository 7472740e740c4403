package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nothingTVatYT/Seed/internal/app"
)

var argsSetFlag string

var argsCmd = &cobra.Command{
	Use:   "args <path|name>",
	Short: "Show or set a project's launch arguments",
	Long: `Show the extra arguments passed to the engine when a project is
launched. With --set the arguments are replaced and persisted.

Examples:
  # Show current arguments
  seed args shooter

  # Replace them
  seed args shooter --set "--fullscreen --profile"

  # Clear them
  seed args shooter --set ""`,
	Args: cobra.ExactArgs(1),
	RunE: withBackend(func(cmd *cobra.Command, args []string, b *app.Backend) error {
		p, err := resolveProject(b, args[0])
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("set") {
			if err := b.Controller.EditArguments(cmd.Context(), p.Path(), argsSetFlag); err != nil {
				return err
			}
			fmt.Printf("Arguments for %s set to %q\n", p.Name(), argsSetFlag)
			return nil
		}

		if p.Arguments() == "" {
			fmt.Printf("%s has no launch arguments\n", p.Name())
			return nil
		}
		fmt.Println(p.Arguments())
		return nil
	}),
}

func init() {
	argsCmd.Flags().StringVar(&argsSetFlag, "set", "", "replace the launch arguments")
	rootCmd.AddCommand(argsCmd)
}
