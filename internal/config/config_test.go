package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/opportunity-matcher/internal/matching"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"port": 9090,
		"database_url": "postgres://localhost/matcher",
		"redis_addr": "localhost:6379",
		"cache_ttl_seconds": 300,
		"log_json": true,
		"weights": {"skills": 0.4, "semantic": 0.3, "hard": 0.3, "quality_threshold": 0.25}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/matcher", cfg.DatabaseURL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 300, cfg.CacheTTL)
	assert.True(t, cfg.LogJSON)
	require.NotNil(t, cfg.Weights)
	assert.Equal(t, 0.4, cfg.Weights.Skills)
	assert.Equal(t, 0.25, cfg.Weights.QualityThreshold)
	assert.Nil(t, cfg.Penalties)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	_, err = LoadConfig(writeConfig(t, `{not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Port: 8080, CacheTTL: 60}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		cfg  Config
	}{
		{"port too high", Config{Port: 70000}},
		{"negative port", Config{Port: -1}},
		{"negative ttl", Config{CacheTTL: -5}},
		{"weight above range", Config{Weights: &matching.Weights{Skills: 1.5}}},
		{"negative penalty", Config{Penalties: &matching.Penalties{Country: -0.1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestConfig_EngineDefaults(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, matching.DefaultWeights(), cfg.EngineWeights())
	assert.Equal(t, matching.DefaultPenalties(), cfg.EnginePenalties())

	custom := Config{
		Weights:   &matching.Weights{Skills: 0.5, Semantic: 0.3, Hard: 0.2, QualityThreshold: 0.1},
		Penalties: &matching.Penalties{Country: 0.2, Level: 0.2, Language: 0.2},
	}
	assert.Equal(t, 0.5, custom.EngineWeights().Skills)
	assert.Equal(t, 0.2, custom.EnginePenalties().Language)
}

func TestConfig_MergeWithDefaults(t *testing.T) {
	defaults := Config{
		Port:      8080,
		RedisAddr: "localhost:6379",
		CacheTTL:  900,
		Weights:   &matching.Weights{Skills: 0.35, Semantic: 0.35, Hard: 0.2, QualityThreshold: 0.2},
	}
	cfg := Config{Port: 9000, DatabaseURL: "postgres://db/matcher"}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, 9000, merged.Port, "explicit values win")
	assert.Equal(t, "postgres://db/matcher", merged.DatabaseURL)
	assert.Equal(t, "localhost:6379", merged.RedisAddr)
	assert.Equal(t, 900, merged.CacheTTL)
	assert.Equal(t, defaults.Weights, merged.Weights)
	assert.Nil(t, merged.Penalties)
}
