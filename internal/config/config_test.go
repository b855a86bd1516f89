package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Address())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "http://export.arxiv.org/api/query", cfg.ArXiv.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.ArXiv.Timeout)
	assert.Equal(t, 30*time.Second, cfg.PDF.Timeout)
	assert.Equal(t, 100, cfg.Extract.MinContentLength)
	assert.Equal(t, 15000, cfg.QA.MaxContentLength)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PAPERDASH_SERVER_PORT", "9100")
	t.Setenv("PAPERDASH_LOGGING_LEVEL", "debug")
	t.Setenv("PAPERDASH_ARXIV_MAX_RESULTS", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.ArXiv.MaxResults)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(*Config) {},
			wantErr: "",
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "empty base url",
			mutate:  func(c *Config) { c.ArXiv.BaseURL = "" },
			wantErr: "arxiv.base_url",
		},
		{
			name:    "zero arxiv timeout",
			mutate:  func(c *Config) { c.ArXiv.Timeout = 0 },
			wantErr: "arxiv.timeout",
		},
		{
			name:    "zero max results",
			mutate:  func(c *Config) { c.ArXiv.MaxResults = 0 },
			wantErr: "arxiv.max_results",
		},
		{
			name:    "tiny content budget",
			mutate:  func(c *Config) { c.QA.MaxContentLength = 1 },
			wantErr: "qa.max_content_length",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
