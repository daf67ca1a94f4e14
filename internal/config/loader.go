package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultConfigPath is read when no --config is given. A missing file is not an error.
const DefaultConfigPath = "heliflight.toml"

// DefaultEnvFile is loaded into the process environment when present.
const DefaultEnvFile = ".env"

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// ConfigPath overrides DefaultConfigPath.
	ConfigPath string
	// EnvFile overrides DefaultEnvFile.
	EnvFile string
	// FlagOverrides are highest-priority overrides from CLI flags (dot-notated keys).
	FlagOverrides map[string]any
}

// Load returns the effective configuration after applying precedence:
// defaults < config file < env (HELIFLIGHT_*) < flags.
func Load(opts LoadOptions) (Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)

	path := opts.ConfigPath
	if path == "" {
		path = DefaultConfigPath
	}
	if err := mergeConfigFile(v, path, opts.ConfigPath != ""); err != nil {
		return Config{}, err
	}
	if err := applyEnvOverrides(v); err != nil {
		return Config{}, err
	}
	for k, val := range opts.FlagOverrides {
		v.Set(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadEnvFile does not override variables already set in the environment.
func loadEnvFile(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("database.driver", def.Database.Driver)
	v.SetDefault("database.dsn", def.Database.DSN)
	v.SetDefault("database.max_open_conns", def.Database.MaxOpenConns)
	v.SetDefault("database.connect_timeout", def.Database.ConnectTimeoutSecs)
	v.SetDefault("database.auto_migrate", def.Database.AutoMigrate)

	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.output", def.Logging.Output)

	v.SetDefault("console.banner", def.Console.Banner)
}

// mergeConfigFile merges the TOML file. A missing file is only an error when
// it was asked for explicitly.
func mergeConfigFile(v *viper.Viper, path string, required bool) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("stat config %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("merge config %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(v *viper.Viper) error {
	for _, binding := range envBindings {
		val := os.Getenv(binding.Env)
		if val == "" {
			continue
		}
		parsed, err := parseValueByKind(val, binding.Kind)
		if err != nil {
			return fmt.Errorf("env %s: %w", binding.Env, err)
		}
		v.Set(binding.Key, parsed)
	}
	return nil
}

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindBool
)

var envBindings = []struct {
	Env  string
	Key  string
	Kind valueKind
}{
	{"HELIFLIGHT_DB_DRIVER", "database.driver", kindString},
	{"HELIFLIGHT_DB_DSN", "database.dsn", kindString},
	{"HELIFLIGHT_DB_MAX_OPEN_CONNS", "database.max_open_conns", kindInt},
	{"HELIFLIGHT_DB_CONNECT_TIMEOUT", "database.connect_timeout", kindInt},
	{"HELIFLIGHT_DB_AUTO_MIGRATE", "database.auto_migrate", kindBool},
	{"HELIFLIGHT_LOG_LEVEL", "logging.level", kindString},
	{"HELIFLIGHT_LOG_FORMAT", "logging.format", kindString},
	{"HELIFLIGHT_LOG_OUTPUT", "logging.output", kindString},
	{"HELIFLIGHT_BANNER", "console.banner", kindBool},
}

func parseValueByKind(raw string, kind valueKind) (any, error) {
	switch kind {
	case kindString:
		return raw, nil
	case kindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("expected bool, got %q", raw)
		}
		return v, nil
	case kindInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("expected int, got %q", raw)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown value kind %d", kind)
	}
}
