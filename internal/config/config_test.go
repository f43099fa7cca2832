package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("TABLE_PREFIX", "")
	t.Setenv("MAX_REFINE_ITERATIONS", "")
	t.Setenv("GENERATION_TIMEOUT", "")

	cfg := Load()

	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "dev_", cfg.TablePrefix)
	assert.Equal(t, DefaultMaxRefineIterations, cfg.MaxRefineIterations)
	assert.Equal(t, 90*time.Second, cfg.GenerationTimeout)
	assert.True(t, cfg.Debug)
}

func TestLoad_Overrides(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "prod prefix and debug off",
			env:  map[string]string{"ENVIRONMENT": "prod", "TABLE_PREFIX": ""},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "prod_", cfg.TablePrefix)
				assert.False(t, cfg.Debug)
			},
		},
		{
			name: "explicit table prefix wins",
			env:  map[string]string{"ENVIRONMENT": "prod", "TABLE_PREFIX": "pr42_"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "pr42_", cfg.TablePrefix)
			},
		},
		{
			name: "iterations and timeout parsed",
			env:  map[string]string{"MAX_REFINE_ITERATIONS": "5", "GENERATION_TIMEOUT": "30s"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 5, cfg.MaxRefineIterations)
				assert.Equal(t, 30*time.Second, cfg.GenerationTimeout)
			},
		},
		{
			name: "invalid numbers fall back",
			env:  map[string]string{"MAX_REFINE_ITERATIONS": "-1", "GENERATION_TIMEOUT": "soon"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultMaxRefineIterations, cfg.MaxRefineIterations)
				assert.Equal(t, 90*time.Second, cfg.GenerationTimeout)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			tt.check(t, Load())
		})
	}
}
