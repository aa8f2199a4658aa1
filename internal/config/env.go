package config

import (
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from TDL_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TDL_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TDL_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TDL_CLOCK_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ClockIntervalSeconds = n
		}
	}
	if v := os.Getenv("TDL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TDL_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TDL_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
	if v := os.Getenv("TDL_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
	}
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
