// Package config loads and saves maxsub settings.
//
// Settings live in config.yaml inside the data directory (~/.maxsub by
// default, or $MAXSUB_HOME). A missing file is not an error: defaults
// apply until the user writes one.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// HomeEnv overrides the data directory.
	HomeEnv = "MAXSUB_HOME"
	// DirName is the data directory under the user's home.
	DirName = ".maxsub"
	// FileName is the config file inside the data directory.
	FileName = "config.yaml"
)

// HistoryConfig controls the computation log.
type HistoryConfig struct {
	Enabled        bool `yaml:"enabled"`
	MaxInputLength int  `yaml:"max_input_length"`
	RecentLimit    int  `yaml:"recent_limit"`
}

// Config is the full maxsub configuration.
type Config struct {
	DataDir  string        `yaml:"data_dir"`
	LogLevel string        `yaml:"log_level"`
	History  HistoryConfig `yaml:"history"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		DataDir:  DataDir(),
		LogLevel: "info",
		History: HistoryConfig{
			Enabled:        true,
			MaxInputLength: 1000,
			RecentLimit:    10,
		},
	}
}

// DataDir resolves the data directory: $MAXSUB_HOME, else ~/.maxsub.
func DataDir() string {
	if dir := strings.TrimSpace(os.Getenv(HomeEnv)); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DirName)
}

// ConfigPath returns the config file path inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Exists reports whether a config file is present in dataDir.
func Exists(dataDir string) bool {
	_, err := os.Stat(ConfigPath(dataDir))
	return err == nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data_dir must not be empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.History.MaxInputLength < 0 {
		return fmt.Errorf("history.max_input_length must be >= 0, got %d", c.History.MaxInputLength)
	}
	if c.History.RecentLimit < 1 {
		return fmt.Errorf("history.recent_limit must be >= 1, got %d", c.History.RecentLimit)
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log_level %q must be debug, info, warn or error", c.LogLevel)
	}
}

// Store abstracts config persistence so commands can be tested without
// touching the user's home directory.
type Store interface {
	Load(dataDir string) (*Config, error)
	Save(dataDir string, cfg *Config) error
}

// FileStore implements Store with a YAML file.
type FileStore struct{}

// NewFileStore creates a FileStore.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Load reads config.yaml from dataDir. Fields the file omits keep their
// defaults; a missing file yields DefaultConfig with DataDir set to dataDir.
func (fs *FileStore) Load(dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	data, err := os.ReadFile(ConfigPath(dataDir))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}

// Save writes cfg as config.yaml in dataDir, creating the directory.
func (fs *FileStore) Save(dataDir string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", dataDir, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(ConfigPath(dataDir), data, 0o600)
}
