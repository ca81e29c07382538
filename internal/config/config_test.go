package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Extract.DefaultRuleset != "default" {
		t.Errorf("expected default ruleset name, got %s", cfg.Extract.DefaultRuleset)
	}
	if !cfg.Inbox.Enabled {
		t.Error("expected inbox enabled by default")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info log level, got %s", cfg.LogLevel)
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.level}
			if got := cfg.SlogLevel(); got != tt.want {
				t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		configContent := `
server:
  host: 0.0.0.0
  port: "3000"
extract:
  default_ruleset: atk-25th
log_level: debug
`
		if err := os.WriteFile(configFile, []byte(configContent), 0o644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cm, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("NewManager failed: %v", err)
		}

		cfg := cm.Get()
		if cfg.Server.Port != "3000" {
			t.Errorf("expected port 3000, got %s", cfg.Server.Port)
		}
		if cfg.Extract.DefaultRuleset != "atk-25th" {
			t.Errorf("expected atk-25th ruleset, got %s", cfg.Extract.DefaultRuleset)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("expected debug log level, got %s", cfg.LogLevel)
		}
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cm, err := NewManager("")
		if err != nil {
			t.Fatalf("NewManager failed: %v", err)
		}
		if cm.Get().Server.Host == "" {
			t.Error("expected default host to be set")
		}
	})
}

func TestWriteDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty config file")
	}
}
