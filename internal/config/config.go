// Package config provides configuration loading and validation for the CLI
// and the HTTP server. The engine packages never read configuration
// themselves; values flow in through constructors.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the application configuration, loadable from a JSON file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// External text-generation service
	APIKey         string `json:"api_key,omitempty"`
	Model          string `json:"model,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`

	// Analysis behavior
	MaxKeywords int  `json:"max_keywords,omitempty"`
	UseBrowser  bool `json:"use_browser,omitempty"`
	Verbose     bool `json:"verbose,omitempty"`

	// Availability-check cache TTLs
	AvailableTTLSeconds   int `json:"available_ttl_seconds,omitempty"`
	UnavailableTTLSeconds int `json:"unavailable_ttl_seconds,omitempty"`

	// Server
	Port int `json:"port,omitempty"`
}

// Defaults returns the default configuration values.
func Defaults() Config {
	return Config{
		Model:                 "gemini-2.5-flash",
		TimeoutSeconds:        30,
		MaxKeywords:           25,
		AvailableTTLSeconds:   300,
		UnavailableTTLSeconds: 60,
		Port:                  8080,
	}
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.MaxKeywords < 0 {
		return fmt.Errorf("config error: 'max_keywords' must be non-negative")
	}
	if c.AvailableTTLSeconds < 0 || c.UnavailableTTLSeconds < 0 {
		return fmt.Errorf("config error: cache TTLs must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. Bool fields are not merged; CLI flags win for those.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.MaxKeywords == 0 {
		result.MaxKeywords = defaults.MaxKeywords
	}
	if result.AvailableTTLSeconds == 0 {
		result.AvailableTTLSeconds = defaults.AvailableTTLSeconds
	}
	if result.UnavailableTTLSeconds == 0 {
		result.UnavailableTTLSeconds = defaults.UnavailableTTLSeconds
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}
