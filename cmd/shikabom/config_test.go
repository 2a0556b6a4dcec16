package main

import (
	"testing"
	"time"

	"github.com/ShayCichocki/shikabom/internal/config"
)

func TestConfigKeysRoundTrip(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"database.driver", "sqlite"},
		{"database.sqlite_path", "/tmp/inv.db"},
		{"database.auto_migrate", "false"},
		{"database.query_timeout", "2s"},
		{"log.level", "debug"},
		{"log.max_size_mb", "20"},
		{"tui.watch_db", "false"},
		{"serve.addr", ":9000"},
		{"export.s3.bucket", "inventory"},
		{"export.s3.path_style", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := config.Default()
			if err := setConfigValue(cfg, tt.key, tt.value); err != nil {
				t.Fatalf("setConfigValue: %v", err)
			}
			got, err := getConfigValue(cfg, tt.key)
			if err != nil {
				t.Fatalf("getConfigValue: %v", err)
			}
			if got != tt.value {
				t.Errorf("Expected %q, got %q", tt.value, got)
			}
		})
	}
}

func TestConfigDSNIsMasked(t *testing.T) {
	cfg := config.Default()
	if err := setConfigValue(cfg, "database.dsn", "postgres://bom:hunter2@db/shikabom"); err != nil {
		t.Fatalf("setConfigValue: %v", err)
	}
	got, _ := getConfigValue(cfg, "database.dsn")
	if got != "postgres://bom:%2A%2A%2A%2A@db/shikabom" && got != "postgres://bom:****@db/shikabom" {
		t.Errorf("Expected masked password, got %q", got)
	}
	if cfg.Database.DSN != "postgres://bom:hunter2@db/shikabom" {
		t.Errorf("Expected raw DSN stored, got %q", cfg.Database.DSN)
	}
}

func TestConfigInvalidValues(t *testing.T) {
	cfg := config.Default()
	for key, value := range map[string]string{
		"database.auto_migrate":  "maybe",
		"database.query_timeout": "soon",
		"log.max_backups":        "three",
		"no.such.key":            "x",
	} {
		if err := setConfigValue(cfg, key, value); err == nil {
			t.Errorf("Expected error for %s=%s", key, value)
		}
	}
	if cfg.Database.QueryTimeout != 5*time.Second {
		t.Errorf("Expected timeout unchanged, got %s", cfg.Database.QueryTimeout)
	}
}

func TestEveryListedKeyIsReadable(t *testing.T) {
	cfg := config.Default()
	for _, key := range configKeys {
		if _, err := getConfigValue(cfg, key); err != nil {
			t.Errorf("getConfigValue(%s): %v", key, err)
		}
	}
}
