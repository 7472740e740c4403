package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nothingTVatYT/Seed/internal/app"
	"github.com/nothingTVatYT/Seed/internal/config"
	"github.com/nothingTVatYT/Seed/internal/log"
	"github.com/nothingTVatYT/Seed/internal/paths"
	"github.com/nothingTVatYT/Seed/internal/project"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// logBufferSize bounds the in-memory entries behind the debug log overlay.
const logBufferSize = 1000

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "seed",
	Short:   "A terminal ui for projects and their engine versions",
	Long:    `A terminal user interface for registering projects, pinning them to installed engine versions, and launching them once the pinned engine is present.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/seed/config.yaml)")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"disable automatic rescans when the engines directory changes")
	rootCmd.Flags().Bool("debug", false,
		"enable file logging and the ctrl+x log overlay")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("engines_dir", defaults.EnginesDir)
	viper.SetDefault("projects_file", defaults.ProjectsFile)
	viper.SetDefault("history_db", defaults.HistoryDB)
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("auto_refresh_debounce", defaults.AutoRefreshDebounce)
	viper.SetDefault("icon_ttl", defaults.IconTTL)
	viper.SetDefault("debug", defaults.Debug)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.confirm_remove", defaults.UI.ConfirmRemove)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .seed/config.yaml (current directory)
		// 2. ~/.config/seed/config.yaml (user config)
		if _, err := os.Stat(".seed/config.yaml"); err == nil {
			viper.SetConfigFile(".seed/config.yaml")
		} else {
			viper.AddConfigPath(paths.ConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create the default user config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := paths.DefaultConfigFile()
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)

	if os.Getenv("SEED_DEBUG") != "" {
		cfg.Debug = true
	}
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Handle --no-auto-refresh flag (negated logic)
	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Debug = true
	}

	if cfg.Debug {
		if cleanup, err := log.InitWithTeaLog(paths.DefaultLogFile(), "seed", logBufferSize); err == nil {
			defer cleanup()
		}
	}

	backend, err := app.NewBackend(cfg)
	if err != nil {
		return err
	}

	model := app.New(backend, cfg.Debug)
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	// Clean up watcher, listener and backend resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if closeErr := backend.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// withBackend wires the service graph for one-shot subcommands and tears it
// down when the command returns. File logging stays off unless the config
// asks for it.
func withBackend(fn func(cmd *cobra.Command, args []string, b *app.Backend) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if cfg.Debug {
			if cleanup, err := log.Init(paths.DefaultLogFile(), logBufferSize); err == nil {
				defer cleanup()
			}
		}
		backend, err := app.NewBackend(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = backend.Close() }()
		return fn(cmd, args, backend)
	}
}

// resolveProject maps a CLI argument to a registered project. Paths win over
// names: an exact or absolutized path match is tried first, then a unique
// name match.
func resolveProject(b *app.Backend, arg string) (*project.Project, error) {
	if p, ok := b.Store.Get(arg); ok {
		return p, nil
	}
	if abs, err := filepath.Abs(arg); err == nil {
		if p, ok := b.Store.Get(abs); ok {
			return p, nil
		}
	}

	var matches []*project.Project
	for _, p := range b.Store.Projects() {
		if p.Name() == arg {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no project registered as %q", arg)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%d projects are named %q, use the path instead", len(matches), arg)
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
