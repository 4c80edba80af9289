// Package config resolves lifequest settings from defaults, a YAML file,
// a .env file and LIFEQUEST_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "LIFEQUEST_"

// Storage backends.
const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)

type Config struct {
	DataDir      string `yaml:"data_dir" env:"DATA_DIR"`
	Storage      string `yaml:"storage" env:"STORAGE"`
	SaveFile     string `yaml:"save_file" env:"SAVE_FILE"`
	DBFile       string `yaml:"db_file" env:"DB_FILE"`
	ActionsFile  string `yaml:"actions_file" env:"ACTIONS_FILE"`
	ContentDir   string `yaml:"content_dir" env:"CONTENT_DIR"`
	ExercisesCSV string `yaml:"exercises_csv" env:"EXERCISES_CSV"`
	Seed         int64  `yaml:"seed" env:"SEED"`
	LogLevel     string `yaml:"log_level" env:"LOG_LEVEL"`
	Plain        bool   `yaml:"plain" env:"PLAIN"`
}

// Home returns $LIFEQUEST_HOME, or ~/.lifequest when unset.
func Home() string {
	if h := os.Getenv(EnvPrefix + "HOME"); h != "" {
		return h
	}
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".lifequest")
	}
	return ".lifequest"
}

// DefaultPath is the config file consulted when none is given.
func DefaultPath() string {
	return filepath.Join(Home(), "config.yaml")
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir:      Home(),
		Storage:      StorageJSON,
		SaveFile:     "save.json",
		DBFile:       "lifequest.db",
		ActionsFile:  "custom_actions.json",
		ContentDir:   "content",
		ExercisesCSV: "exercises.csv",
		LogLevel:     "warn",
	}
}

// Load layers the YAML file at path, ./.env and the environment over the
// defaults. A missing YAML or .env file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return cfg, err
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// Validate rejects unknown storage backends and log levels.
func (c Config) Validate() error {
	switch strings.ToLower(c.Storage) {
	case StorageJSON, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage %q: expected %s or %s", c.Storage, StorageJSON, StorageSQLite)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return lvl, nil
}

// UseSQLite reports whether the SQLite store is selected.
func (c Config) UseSQLite() bool {
	return strings.EqualFold(c.Storage, StorageSQLite)
}

func (c Config) SavePath() string      { return c.resolve(c.SaveFile) }
func (c Config) DBPath() string        { return c.resolve(c.DBFile) }
func (c Config) ActionsPath() string   { return c.resolve(c.ActionsFile) }
func (c Config) ContentPath() string   { return c.resolve(c.ContentDir) }
func (c Config) ExercisesPath() string { return c.resolve(c.ExercisesCSV) }

// resolve places relative paths under DataDir.
func (c Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDir, p)
}
