// Package config implements layered configuration for heliflight.
// Precedence: defaults < heliflight.toml (or --config) < env (HELIFLIGHT_*) < flags.
package config

import (
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/yegors/heliflight/internal/storage"
	"github.com/yegors/heliflight/pkg/logger"
)

// Config is the top-level configuration structure
type Config struct {
	Database DatabaseConfig `toml:"database" mapstructure:"database"`
	Logging  LoggingConfig  `toml:"logging" mapstructure:"logging"`
	Console  ConsoleConfig  `toml:"console" mapstructure:"console"`
}

// DatabaseConfig selects and tunes the database connection
type DatabaseConfig struct {
	Driver             string `toml:"driver" mapstructure:"driver" validate:"oneof=sqlite postgres postgresql pgx"`
	DSN                string `toml:"dsn" mapstructure:"dsn" validate:"required"`
	MaxOpenConns       int    `toml:"max_open_conns" mapstructure:"max_open_conns" validate:"gte=0"`
	ConnectTimeoutSecs int    `toml:"connect_timeout" mapstructure:"connect_timeout" validate:"gte=0"`
	AutoMigrate        bool   `toml:"auto_migrate" mapstructure:"auto_migrate"` // create missing tables at start
}

// LoggingConfig configures the diagnostic log, which never shares stdout with reports by default
type LoggingConfig struct {
	Level  string `toml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" mapstructure:"format" validate:"oneof=console json"`
	Output string `toml:"output" mapstructure:"output" validate:"required"` // stderr | stdout | file path
}

// ConsoleConfig tunes the operator console
type ConsoleConfig struct {
	Banner bool `toml:"banner" mapstructure:"banner"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() Config {
	return Config{
		Database: DatabaseConfig{
			Driver:             "sqlite",
			DSN:                "heliflight.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate",
			MaxOpenConns:       4,
			ConnectTimeoutSecs: 10,
			AutoMigrate:        true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		Console: ConsoleConfig{
			Banner: true,
		},
	}
}

// Validate checks the value constraints of the configuration
func Validate(cfg Config) error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Storage returns the database settings in the form storage.Open takes
func (c Config) Storage() storage.Config {
	return storage.Config{
		Driver:         c.Database.Driver,
		DSN:            c.Database.DSN,
		MaxOpenConns:   c.Database.MaxOpenConns,
		ConnectTimeout: time.Duration(c.Database.ConnectTimeoutSecs) * time.Second,
	}
}

// Logger returns the logging settings in the form logger.New takes
func (c Config) Logger() logger.Config {
	return logger.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Output: c.Logging.Output,
	}
}

// Encode writes the configuration as TOML
func Encode(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
