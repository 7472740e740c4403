package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nothingTVatYT/Seed/internal/app"
	"github.com/nothingTVatYT/Seed/internal/engine"
	"github.com/nothingTVatYT/Seed/internal/project"
)

var newTemplateFlag string

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create and register a new project",
	Long: `Create a project directory under the current one, write a minimal
project.yaml into it, and register it.

Without flags the project is pinned to the newest installed engine. With
--template it copies the pinned engine version and launch arguments from a
template-flagged project; no files are copied.

Examples:
  # Create with the newest installed engine
  seed new shooter

  # Copy defaults from a template project
  seed new shooter --template base-template`,
	Args: cobra.ExactArgs(1),
	RunE: withBackend(func(cmd *cobra.Command, args []string, b *app.Backend) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}
		name := filepath.Base(path)

		var v engine.Version
		var arguments string
		if newTemplateFlag != "" {
			tpl, err := resolveProject(b, newTemplateFlag)
			if err != nil {
				return err
			}
			if !tpl.IsTemplate() {
				return fmt.Errorf("%s is not flagged as a template", tpl.Name())
			}
			v = tpl.EngineVersion()
			arguments = tpl.Arguments()
		} else {
			v, err = pickEngineVersion(b, "")
			if err != nil {
				return err
			}
		}

		if err := os.Mkdir(path, 0o755); err != nil {
			return fmt.Errorf("creating project directory: %w", err)
		}
		if err := project.WriteManifest(path, project.Manifest{Name: name, Engine: v.String()}); err != nil {
			return err
		}

		p, err := b.Controller.ImportProject(cmd.Context(), name, path, v)
		if err != nil {
			return err
		}
		if arguments != "" {
			if err := b.Controller.EditArguments(cmd.Context(), p.Path(), arguments); err != nil {
				return err
			}
		}
		fmt.Printf("Created %s pinned to engine %s\n", p.Name(), v)
		return nil
	}),
}

func init() {
	newCmd.Flags().StringVar(&newTemplateFlag, "template", "",
		"template project (path or name) to copy engine and arguments from")
	rootCmd.AddCommand(newCmd)
}
