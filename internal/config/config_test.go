// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.Theme != DefaultTheme {
		t.Errorf("Theme: got %q, want %q", cfg.Theme, DefaultTheme)
	}
	if cfg.ClockIntervalSeconds != DefaultClockInterval {
		t.Errorf("ClockIntervalSeconds: got %d, want %d", cfg.ClockIntervalSeconds, DefaultClockInterval)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tdl.toml")
	content := "theme = \"light\"\nclock_interval_seconds = 5\nlog_level = \"debug\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := &Config{}
	setDefaults(cfg)
	if err := loadConfigFile(cfg, path); err != nil {
		t.Fatalf("loadConfigFile failed: %v", err)
	}

	if cfg.Theme != "light" {
		t.Errorf("Theme: got %q, want light", cfg.Theme)
	}
	if cfg.ClockIntervalSeconds != 5 {
		t.Errorf("ClockIntervalSeconds: got %d, want 5", cfg.ClockIntervalSeconds)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
	if cfg.LogFormat != DefaultLogFormat {
		t.Errorf("LogFormat changed by unrelated file keys: %q", cfg.LogFormat)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TDL_DATA_DIR", "/tmp/tdl-test")
	t.Setenv("TDL_THEME", "light")
	t.Setenv("TDL_CLOCK_INTERVAL", "10")
	t.Setenv("TDL_LOG_TIMESTAMPS", "true")

	cfg := &Config{}
	setDefaults(cfg)
	loadFromEnv(cfg)

	if cfg.DataDir != "/tmp/tdl-test" {
		t.Errorf("DataDir: got %q", cfg.DataDir)
	}
	if cfg.Theme != "light" {
		t.Errorf("Theme: got %q", cfg.Theme)
	}
	if cfg.ClockIntervalSeconds != 10 {
		t.Errorf("ClockIntervalSeconds: got %d", cfg.ClockIntervalSeconds)
	}
	if !cfg.LogTimestamps {
		t.Error("LogTimestamps not set from env")
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("TDL_THEME", "light")
	t.Setenv("HOME", t.TempDir())

	fs := flag.NewFlagSet("tdl", flag.ContinueOnError)
	cfg, err := Load(fs, []string{"-theme", "dark", "-data-dir", t.TempDir()})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Theme: got %q, want flag value dark", cfg.Theme)
	}
}

func TestFinalizeRejectsUnknownTheme(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Theme = "solarized"
	cfg.DataDir = t.TempDir()
	if err := finalize(cfg); err == nil {
		t.Error("finalize accepted unknown theme")
	}
}

func TestFinalizeDefaultsDataDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := &Config{}
	setDefaults(cfg)
	if err := finalize(cfg); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if cfg.DataDir != filepath.Join(home, ".tdl") {
		t.Errorf("DataDir: got %q", cfg.DataDir)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := expandPath("~/state"); got != filepath.Join(home, "state") {
		t.Errorf("expandPath(~/state): got %q", got)
	}
	if got := expandPath(""); got != "" {
		t.Errorf("expandPath(\"\"): got %q", got)
	}
}

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true}, {"true", true}, {"YES", true}, {"on", true},
		{"0", false}, {"false", false}, {"", false}, {"maybe", false},
	}
	for _, tt := range tests {
		if got := boolFromString(tt.in); got != tt.want {
			t.Errorf("boolFromString(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}
