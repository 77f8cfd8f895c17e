// Package config loads osu-brackets settings from the environment and the
// tournament list from YAML.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/maniapool/osu-brackets/internal/fetch"
	"github.com/maniapool/osu-brackets/internal/sheet"
)

// Env holds settings read from OSU_BRACKETS_* variables. Command-line flags
// take these as defaults and override them.
type Env struct {
	OutDir        string        `env:"OSU_BRACKETS_OUT_DIR"         envDefault:"."`
	UserAgent     string        `env:"OSU_BRACKETS_USER_AGENT"`
	HTTPTimeout   time.Duration `env:"OSU_BRACKETS_HTTP_TIMEOUT"    envDefault:"30s"`
	SheetURL      string        `env:"OSU_BRACKETS_SHEET_URL"`
	SheetIDColumn int           `env:"OSU_BRACKETS_SHEET_ID_COLUMN" envDefault:"11"`
	LogLevel      string        `env:"OSU_BRACKETS_LOG_LEVEL"       envDefault:"INFO"`
	Catalog       string        `env:"OSU_BRACKETS_CATALOG"`
	Tournaments   string        `env:"OSU_BRACKETS_TOURNAMENTS"`
}

// LoadEnv parses the environment and fills in defaults that depend on other packages
func LoadEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fetch.UserAgent
	}
	if cfg.SheetURL == "" {
		cfg.SheetURL = sheet.ExportURL
	}
	if cfg.SheetIDColumn < 0 {
		return Env{}, fmt.Errorf("OSU_BRACKETS_SHEET_ID_COLUMN must not be negative: %d", cfg.SheetIDColumn)
	}
	return cfg, nil
}
