package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tdlapp/tdl-go/internal/appdir"
)

// Default values.
const (
	DefaultTheme         = "dark"
	DefaultClockInterval = 60
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

// Config holds the full configuration for tdl.
type Config struct {
	// DataDir is the state directory holding all datasets.
	DataDir string `toml:"data_dir"`

	// Theme selects the color palette: light or dark.
	Theme string `toml:"theme"`

	// ClockIntervalSeconds is the footer clock refresh interval.
	ClockIntervalSeconds int `toml:"clock_interval_seconds"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
}

// Load loads configuration from defaults, config files, environment,
// and the given flag set, in that priority order.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Try to load from user config file
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalize(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Theme = DefaultTheme
	cfg.ClockIntervalSeconds = DefaultClockInterval
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// findUserConfigFile returns the user config path if it exists.
func findUserConfigFile() string {
	dir, err := appdir.Default()
	if err != nil {
		return ""
	}
	path := appdir.ConfigPath(dir)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// findProjectConfigFile returns the project config path if one exists
// in the current directory.
func findProjectConfigFile() string {
	for _, name := range []string{appdir.DefaultConfigFile, "." + appdir.DefaultConfigFile} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

func finalize(cfg *Config) error {
	if cfg.DataDir == "" {
		dir, err := appdir.Default()
		if err != nil {
			return err
		}
		cfg.DataDir = dir
	}
	cfg.DataDir = expandPath(cfg.DataDir)

	switch cfg.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("invalid theme %q, must be light or dark", cfg.Theme)
	}

	if cfg.ClockIntervalSeconds < 1 {
		cfg.ClockIntervalSeconds = DefaultClockInterval
	}
	return nil
}

// expandPath expands a leading ~/ and environment variables in paths.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return expanded
	}
	if strings.HasPrefix(expanded, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, expanded[2:])
		}
	}
	return expanded
}
