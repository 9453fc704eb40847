// Package config loads sqldialect CLI settings from a YAML file, SQLDIALECT_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	// DefaultFile is read from the working directory when no file is given.
	DefaultFile = "sqldialect.yaml"
	// EnvPrefix marks environment variables that override file settings.
	EnvPrefix = "SQLDIALECT_"
	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "warn"
)

// ErrNoConnection is returned when a command needs a database but no driver
// or DSN is configured.
var ErrNoConnection = errors.New("driver and dsn are required")

// Config holds the CLI configuration.
type Config struct {
	Driver   string `koanf:"driver"`
	DSN      string `koanf:"dsn"`
	Dialect  string `koanf:"dialect"`
	LogLevel string `koanf:"log_level"`
	Apply    bool   `koanf:"apply"`

	// File is the configuration file that was read, empty when none was.
	File string `koanf:"-"`
}

// Load reads configuration with precedence flags > env vars > file > defaults.
// An explicit cfgFile must exist; the default file is optional. Only flags
// changed on the command line override other sources.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"log_level": DefaultLogLevel,
		"apply":     false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := cfgFile
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// SQLDIALECT_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = path

	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// HasConnection reports whether both driver and DSN are set.
func (c *Config) HasConnection() bool {
	return c.Driver != "" && c.DSN != ""
}

// RequireConnection returns ErrNoConnection unless HasConnection.
func (c *Config) RequireConnection() error {
	if !c.HasConnection() {
		return ErrNoConnection
	}
	return nil
}
