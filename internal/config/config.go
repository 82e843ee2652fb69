package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
)

// Config holds process configuration read from the environment.
type Config struct {
	Port       int    `env:"PORT" envDefault:"8080"`
	Seed       uint64 `env:"SEED"` // 0 seeds from the clock
	QRSize     int    `env:"QR_SIZE" envDefault:"256"`
	PublicHost string `env:"PUBLIC_HOST"` // host used in join links; request host if empty
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load parses Config from the environment. Call Validate once any flag
// overrides have been applied.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// Validate checks the final configuration.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.QRSize <= 0 {
		return fmt.Errorf("invalid QR size %d", c.QRSize)
	}
	return nil
}

// Logger builds the process logger from LogLevel and LogFormat.
func (c Config) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
