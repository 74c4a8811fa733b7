// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/opportunity-matcher/internal/matching"
)

// Config represents the matcher configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or the environment.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisAddr   string `json:"redis_addr,omitempty"`   // Redis address for the resolution cache
	CacheTTL    int    `json:"cache_ttl_seconds,omitempty"`

	// Logging
	LogJSON bool `json:"log_json,omitempty"` // JSON log encoding (server default)
	Debug   bool `json:"debug,omitempty"`    // Per-opportunity score breakdown logging

	// Engine tuning. Nil sections use the engine defaults.
	Weights   *matching.Weights   `json:"weights,omitempty"`
	Penalties *matching.Penalties `json:"penalties,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
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

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [0, 65535]")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("config error: 'cache_ttl_seconds' must be non-negative")
	}

	if w := c.Weights; w != nil {
		for name, v := range map[string]float64{
			"skills":            w.Skills,
			"semantic":          w.Semantic,
			"hard":              w.Hard,
			"quality_threshold": w.QualityThreshold,
		} {
			if v < 0 || v > 1 {
				return fmt.Errorf("config error: weight '%s' must be in [0, 1]", name)
			}
		}
	}

	if p := c.Penalties; p != nil {
		for name, v := range map[string]float64{
			"country":  p.Country,
			"level":    p.Level,
			"language": p.Language,
		} {
			if v < 0 || v > 1 {
				return fmt.Errorf("config error: penalty '%s' must be in [0, 1]", name)
			}
		}
	}

	return nil
}

// EngineWeights returns the configured weights, or the engine defaults
func (c *Config) EngineWeights() matching.Weights {
	if c.Weights != nil {
		return *c.Weights
	}
	return matching.DefaultWeights()
}

// EnginePenalties returns the configured penalties, or the engine defaults
func (c *Config) EnginePenalties() matching.Penalties {
	if c.Penalties != nil {
		return *c.Penalties
	}
	return matching.DefaultPenalties()
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.CacheTTL == 0 {
		result.CacheTTL = defaults.CacheTTL
	}
	if result.Weights == nil {
		result.Weights = defaults.Weights
	}
	if result.Penalties == nil {
		result.Penalties = defaults.Penalties
	}

	return result
}
