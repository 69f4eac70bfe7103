// Package config loads CLI configuration from defaults, an optional YAML
// file and MCREPORTS_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches stderr logs to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// DBPath is the SQLite report store.
	DBPath string `koanf:"db_path"`

	// DefaultTeamColor is given to players that belong to no team.
	DefaultTeamColor string `koanf:"default_team_color"`

	// OutputDir receives processed JSON files. Empty means stdout.
	OutputDir string `koanf:"output_dir"`

	// Jobs bounds how many reports are processed concurrently.
	Jobs int `koanf:"jobs"`

	// MetricsFile, when set, receives Prometheus text-format counters after
	// each batch.
	MetricsFile string `koanf:"metrics_file"`

	// AnthropicModel is used by the recap command.
	AnthropicModel string `koanf:"anthropic_model"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		DBPath:           defaultDBPath(),
		DefaultTeamColor: "NONE",
		Jobs:             runtime.NumCPU(),
		AnthropicModel:   "claude-haiku-4-5-20251001",
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "mcreports.db"
	}
	return filepath.Join(home, ".mcreports", "reports.db")
}
