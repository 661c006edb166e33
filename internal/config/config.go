// Package config handles global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/roster/config.yml.
type Config struct {
	Autoload []string `yaml:"autoload,omitempty" json:"autoload,omitempty"` // Files read before stdin, like %R
	LogLevel string   `yaml:"log_level,omitempty" json:"log_level"`
	Prompt   string   `yaml:"prompt,omitempty" json:"prompt"`     // Shown only when stdin is a terminal
	IndexDB  string   `yaml:"index_db,omitempty" json:"index_db"` // SQLite index for index/query commands
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "roster"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	DefaultLogLevel = "warn"
	DefaultPrompt   = "> "
	DefaultIndexDB  = "roster.db"
)

// Environment variables that override the config file.
const (
	EnvConfig   = "ROSTER_CONFIG"
	EnvLogLevel = "ROSTER_LOG_LEVEL"
	EnvPrompt   = "ROSTER_PROMPT"
	EnvIndexDB  = "ROSTER_INDEX_DB"
)

// Path returns the path to the config file.
// ROSTER_CONFIG wins; otherwise respects XDG_CONFIG_HOME, defaulting to ~/.config/roster/config.yml.
func Path() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return ExpandTilde(p)
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// LoadDotEnv loads a .env file from the working directory if present.
// Variables already set in the environment are not overwritten.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// LoadFile reads configuration from path.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Load returns the effective configuration: .env, then the config file,
// then environment overrides, then defaults for anything still unset.
func Load() (*Config, error) {
	LoadDotEnv()

	cfg, err := LoadFile(Path())
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyEnv overrides fields from ROSTER_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvPrompt); v != "" {
		c.Prompt = v
	}
	if v := os.Getenv(EnvIndexDB); v != "" {
		c.IndexDB = v
	}
}

// ApplyDefaults fills unset fields and expands ~ in paths.
func (c *Config) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	if c.IndexDB == "" {
		c.IndexDB = DefaultIndexDB
	}
	c.IndexDB = ExpandTilde(c.IndexDB)
	for i, p := range c.Autoload {
		c.Autoload[i] = ExpandTilde(p)
	}
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
