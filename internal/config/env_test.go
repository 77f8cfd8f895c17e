package config

import (
	"testing"
	"time"

	"github.com/maniapool/osu-brackets/internal/fetch"
	"github.com/maniapool/osu-brackets/internal/sheet"
)

func TestLoadEnv_Defaults(t *testing.T) {
	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() error: %v", err)
	}

	if cfg.OutDir != "." {
		t.Errorf("OutDir = %q, want .", cfg.OutDir)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want 30s", cfg.HTTPTimeout)
	}
	if cfg.SheetIDColumn != sheet.DefaultIDColumn {
		t.Errorf("SheetIDColumn = %d, want %d", cfg.SheetIDColumn, sheet.DefaultIDColumn)
	}
	if cfg.SheetURL != sheet.ExportURL {
		t.Errorf("SheetURL = %q", cfg.SheetURL)
	}
	if cfg.UserAgent != fetch.UserAgent {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("LogLevel = %q, want INFO", cfg.LogLevel)
	}
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("OSU_BRACKETS_OUT_DIR", "/tmp/brackets")
	t.Setenv("OSU_BRACKETS_HTTP_TIMEOUT", "5s")
	t.Setenv("OSU_BRACKETS_SHEET_ID_COLUMN", "12")
	t.Setenv("OSU_BRACKETS_CATALOG", "links.sqlite")
	t.Setenv("OSU_BRACKETS_USER_AGENT", "custom/1.0")

	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() error: %v", err)
	}

	if cfg.OutDir != "/tmp/brackets" {
		t.Errorf("OutDir = %q", cfg.OutDir)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.SheetIDColumn != 12 {
		t.Errorf("SheetIDColumn = %d", cfg.SheetIDColumn)
	}
	if cfg.Catalog != "links.sqlite" {
		t.Errorf("Catalog = %q", cfg.Catalog)
	}
	if cfg.UserAgent != "custom/1.0" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
}

func TestLoadEnv_Invalid(t *testing.T) {
	tests := map[string]string{
		"OSU_BRACKETS_HTTP_TIMEOUT":    "soon",
		"OSU_BRACKETS_SHEET_ID_COLUMN": "-1",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := LoadEnv(); err == nil {
				t.Errorf("LoadEnv() expected error for %s=%s", key, value)
			}
		})
	}
}
