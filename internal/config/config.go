// Package config reads the CLI's own settings from the environment.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"convexenv/schema"
)

// Config holds settings that can be given through the environment.
// Command-line flags take precedence over every field.
type Config struct {
	SchemaPath string `env:"CONVEXENV_SCHEMA" envDefault:"convexenv.yaml"`
	LogLevel   string `env:"CONVEXENV_LOG_LEVEL" envDefault:"warn"`
	LogFormat  string `env:"CONVEXENV_LOG_FORMAT" envDefault:"console"`
	CIMode     string `env:"CONVEXENV_CI"`
	CI         string `env:"CI"`
}

// Parse builds a Config from an environ slice rather than the process
// environment, so callers decide what the CLI sees.
func Parse(environ []string) (Config, error) {
	var cfg Config
	err := env.ParseWithOptions(&cfg, env.Options{
		Environment: env.ToMap(environ),
	})
	if err != nil {
		return Config{}, fmt.Errorf("read settings: %w", err)
	}
	if cfg.SchemaPath == "" {
		cfg.SchemaPath = schema.DefaultFileName
	}
	return cfg, nil
}

// InCI reports whether CONVEXENV_CI or CI is set to a truthy value.
func (c Config) InCI() bool {
	return truthy(c.CIMode) || truthy(c.CI)
}

// ResolveSchemaPath picks the flag value when given, else the configured
// path. Relative paths are anchored at dir.
func (c Config) ResolveSchemaPath(flagValue, dir string) string {
	path := c.SchemaPath
	if flagValue != "" {
		path = flagValue
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func truthy(val string) bool {
	val = strings.ToLower(val)
	return val == "true" || val == "1" || val == "yes"
}
