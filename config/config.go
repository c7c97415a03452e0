package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "PARENT_SHEETS_"

// Config holds the settings shared by all commands. Command line flags take precedence over
// everything loaded here.
type Config struct {
	Workdir      string
	Credentials  string
	URL          string
	Store        string
	Debug        bool
	LogRange     string
	LogRetention uint
}

// Load merges, in increasing order of precedence:
//   - the defaults
//   - the TOML configuration file (if it exists)
//   - a .env file in the current directory (if it exists)
//   - PARENT_SHEETS_* environment variables, e.g. PARENT_SHEETS_LOG_RANGE for log.range
func Load(path string, defaults Config) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults.toMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := dotenv(".env"); err != nil {
		return nil, err
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	c := Config{
		Workdir:     k.String("workdir"),
		Credentials: k.String("credentials"),
		URL:         k.String("url"),
		Store:       k.String("store"),
		Debug:       k.Bool("debug"),
		LogRange:    k.String("log.range"),
	}

	if v := k.Int("log.retention"); v > 0 {
		c.LogRetention = uint(v)
	}

	if c.Credentials == "" {
		c.Credentials = filepath.Join(c.Workdir, ".google", "credentials.json")
	}

	return &c, nil
}

// dotenv loads the .env file into the process environment. Variables that are already set are
// not overwritten.
func dotenv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading %v (%w)", path, err)
	}

	return nil
}

func (c Config) toMap() map[string]any {
	return map[string]any{
		"workdir":       c.Workdir,
		"credentials":   c.Credentials,
		"url":           c.URL,
		"store":         c.Store,
		"debug":         c.Debug,
		"log.range":     c.LogRange,
		"log.retention": c.LogRetention,
	}
}
