package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid config",
			config:  Config{DBPath: "./test.db", LogLevel: "info"},
			wantErr: false,
		},
		{
			name:        "empty db path",
			config:      Config{DBPath: "", LogLevel: "info"},
			wantErr:     true,
			errorString: "database path cannot be empty",
		},
		{
			name:        "invalid log level",
			config:      Config{DBPath: "./test.db", LogLevel: "loud"},
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_ValidateCreatesDBDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		DBPath:   filepath.Join(dir, "nested", "fintrack.db"),
		LogLevel: "info",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"info", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"WARN", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tc := range cases {
		got, err := (&Config{LogLevel: tc.in}).SlogLevel()
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FINTRACK_DB_PATH", "")
	t.Setenv("FINTRACK_LOG_LEVEL", "")
	cfg := Load()
	if cfg.DBPath != "./data/fintrack.db" {
		t.Fatalf("unexpected default db path: %s", cfg.DBPath)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected default log level: %s", cfg.LogLevel)
	}
}
