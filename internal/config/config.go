// Package config provides configuration types, defaults, and persistence for seed.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nothingTVatYT/Seed/internal/log"
	"github.com/nothingTVatYT/Seed/internal/paths"
)

// Config holds all configuration options for seed.
type Config struct {
	// EnginesDir is the directory scanned for installed engines.
	// Each engine lives at <engines_dir>/<version>/seed-engine.
	EnginesDir string `mapstructure:"engines_dir"`

	// ProjectsFile is the path of the durable project registry document.
	ProjectsFile string `mapstructure:"projects_file"`

	// HistoryDB is the path of the run-history database.
	HistoryDB string `mapstructure:"history_db"`

	// AutoRefresh rescans the engines directory when it changes.
	AutoRefresh bool `mapstructure:"auto_refresh"`

	// AutoRefreshDebounce coalesces bursts of filesystem events into a
	// single rescan.
	AutoRefreshDebounce time.Duration `mapstructure:"auto_refresh_debounce"`

	// IconTTL bounds how long decoded project icons stay cached.
	IconTTL time.Duration `mapstructure:"icon_ttl"`

	// Debug enables file logging.
	Debug bool `mapstructure:"debug"`

	UI      UIConfig      `mapstructure:"ui"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool `mapstructure:"show_status_bar"`
	ConfirmRemove bool `mapstructure:"confirm_remove"` // Ask before removing a project from the registry
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: <data dir>/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// 1.0 = all traces, 0.1 = 10% of traces
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	return filepath.Join(paths.DataDir(), "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		EnginesDir:          paths.DefaultEnginesDir(),
		ProjectsFile:        paths.DefaultProjectsFile(),
		HistoryDB:           paths.DefaultHistoryDB(),
		AutoRefresh:         true,
		AutoRefreshDebounce: time.Second,
		IconTTL:             5 * time.Minute,
		UI: UIConfig{
			ShowStatusBar: true,
			ConfirmRemove: true,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from the data dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks the configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func Validate(cfg Config) error {
	if cfg.AutoRefreshDebounce < 0 {
		return fmt.Errorf("auto_refresh_debounce must not be negative, got %v", cfg.AutoRefreshDebounce)
	}
	if cfg.IconTTL < 0 {
		return fmt.Errorf("icon_ttl must not be negative, got %v", cfg.IconTTL)
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	// Validate SampleRate is in range [0.0, 1.0]
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	// Validate Exporter is a valid option
	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Seed Configuration

# Directory scanned for installed engines.
# Each engine lives at <engines_dir>/<version>/seed-engine.
# Default: ~/.local/share/seed/engines
# engines_dir: /path/to/engines

# Path to the project registry document.
# Default: ~/.local/share/seed/projects.yaml
# projects_file: /path/to/projects.yaml

# Path to the run-history database.
# Default: ~/.local/share/seed/history.db
# history_db: /path/to/history.db

# Rescan the engines directory automatically when it changes
auto_refresh: true

# Coalesce bursts of filesystem events into a single rescan
auto_refresh_debounce: 1s

# How long decoded project icons stay cached
icon_ttl: 5m

# UI settings
ui:
  show_status_bar: true   # Show status bar at bottom
  confirm_remove: true    # Ask before removing a project from the registry

# Tracing configuration
# Enables end-to-end visibility into run and cache-clear flows
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.local/share/seed/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
#
# Example: Send traces to Jaeger via OTLP
# tracing:
#   enabled: true
#   exporter: otlp
#   otlp_endpoint: jaeger.internal:4317
#   sample_rate: 0.1  # Sample 10% of traces
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
