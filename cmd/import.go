package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nothingTVatYT/Seed/internal/app"
	"github.com/nothingTVatYT/Seed/internal/engine"
	"github.com/nothingTVatYT/Seed/internal/lifecycle"
	"github.com/nothingTVatYT/Seed/internal/project"
)

var importEngineFlag string

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Register an existing project directory",
	Long: `Register an existing directory as a project.

The project name is read from project.yaml when the directory has one,
otherwise the directory name is used. The project is pinned to the newest
installed engine unless --engine picks a specific version.

Examples:
  # Import with automatic name and engine
  seed import ~/projects/shooter

  # Pin to a specific engine version
  seed import ~/projects/shooter --engine 1.2.0`,
	Args: cobra.ExactArgs(1),
	RunE: withBackend(func(cmd *cobra.Command, args []string, b *app.Backend) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("checking project directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", path)
		}

		name := filepath.Base(path)
		m, err := project.ReadManifest(path)
		switch {
		case err == nil && m.Name != "":
			name = m.Name
		case err != nil && !errors.Is(err, os.ErrNotExist):
			return fmt.Errorf("reading %s: %w", project.ManifestFileName, err)
		}

		v, err := pickEngineVersion(b, importEngineFlag)
		if err != nil {
			return err
		}

		p, err := b.Controller.ImportProject(cmd.Context(), name, path, v)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %s pinned to engine %s\n", p.Name(), p.EngineVersion())
		return nil
	}),
}

func init() {
	importCmd.Flags().StringVar(&importEngineFlag, "engine", "",
		"engine version to pin (default: newest installed)")
	rootCmd.AddCommand(importCmd)
}

// pickEngineVersion resolves an --engine flag value, defaulting to the
// newest installed engine.
func pickEngineVersion(b *app.Backend, flag string) (engine.Version, error) {
	if flag != "" {
		return engine.ParseVersion(flag)
	}
	engines := b.Controller.Engines()
	if len(engines) == 0 {
		return engine.Version{}, lifecycle.NoEnginesInstalledError{}
	}
	return engines[len(engines)-1].Version(), nil
}
