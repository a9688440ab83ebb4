// Package config holds all karat configuration: a YAML file under the
// karat home directory plus environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all karat configuration.
type Config struct {
	// API configures the CRM backend connection.
	API APIConfig `yaml:"api"`

	// UI configures the terminal interface.
	UI UIConfig `yaml:"ui"`

	// Logging configures debug file logging.
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the backend connection.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	Theme    string `yaml:"theme"`     // auto, light, dark
	PageSize int    `yaml:"page_size"` // rows per table page
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Debug bool   `yaml:"debug"`
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000/api",
			Timeout: "30s",
		},
		UI: UIConfig{
			Theme:    "auto",
			PageSize: 15,
		},
		Logging: LoggingConfig{
			Debug: false,
			Level: "info",
		},
	}
}

// Home resolves the karat home directory: KARAT_HOME when set,
// otherwise ~/.karat.
func Home() string {
	if home := os.Getenv("KARAT_HOME"); home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".karat"
	}
	return filepath.Join(userHome, ".karat")
}

// Path returns the config file location under home.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("KARAT_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if os.Getenv("KARAT_DEBUG") == "1" || os.Getenv("KARAT_DEBUG") == "true" {
		c.Logging.Debug = true
	}
	if theme := os.Getenv("KARAT_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// APITimeout returns the backend timeout as a duration.
func (c *Config) APITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
