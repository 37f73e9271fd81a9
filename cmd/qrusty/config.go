package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/qrusty/qr"
)

// config holds defaults for flags, read from the environment.
type config struct {
	Width  uint32 `env:"QRUSTY_WIDTH" envDefault:"256"`
	Height uint32 `env:"QRUSTY_HEIGHT" envDefault:"256"`
	Level  string `env:"QRUSTY_LEVEL" envDefault:"m"`
	Format string `env:"QRUSTY_FORMAT"`
}

// loadConfig loads .env, if present, and parses the environment.
func loadConfig() (config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, fmt.Errorf(".env: %w", err)
	}
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if cfg.Width == 0 || cfg.Height == 0 || cfg.Width > qr.MaxPixels ||
		cfg.Height > qr.MaxPixels {
		return cfg, fmt.Errorf("QRUSTY_WIDTH, QRUSTY_HEIGHT: %dx%d: "+
			"out of range 1-%d", cfg.Width, cfg.Height, qr.MaxPixels)
	}
	if _, err := qr.ParseLevel(cfg.Level); err != nil {
		return cfg, fmt.Errorf("QRUSTY_LEVEL: %w", err)
	}
	cfg.Level = strings.ToLower(cfg.Level)
	if cfg.Format != "" {
		cfg.Format = strings.ToLower(cfg.Format)
		if !isFormat(cfg.Format) {
			return cfg, fmt.Errorf("QRUSTY_FORMAT: %q: unknown format",
				cfg.Format)
		}
	}
	return cfg, nil
}

func isFormat(s string) bool {
	for _, f := range formats {
		if f == s {
			return true
		}
	}
	return false
}
