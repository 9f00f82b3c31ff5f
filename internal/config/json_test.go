package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSONConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	p := writeJSONConfig(t, `{
		"crypto": { "key_path": "/secrets/key" },
		"storage": { "db": { "dsn": "/data/history.db" } },
		"log": { "level": "error", "format": "json" },
		"workers": { "seal_concurrency": 16 }
	}`)

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/secrets/key", cfg.Crypto.KeyPath)
	assert.Equal(t, "/data/history.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 16, cfg.Workers.SealConcurrency)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_Partial(t *testing.T) {
	cfg, err := parseJSON(writeJSONConfig(t, `{"log": {"level": "debug"}}`))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Crypto.KeyPath)
	assert.Zero(t, cfg.Workers.SealConcurrency)
}

func TestParseJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.json") },
		},
		{
			name: "invalid json",
			path: func(t *testing.T) string { return writeJSONConfig(t, `{"crypto":`) },
		},
		{
			name: "unknown field",
			path: func(t *testing.T) string { return writeJSONConfig(t, `{"server": {"address": ":8080"}}`) },
		},
		{
			name: "wrong type",
			path: func(t *testing.T) string { return writeJSONConfig(t, `{"workers": {"seal_concurrency": "four"}}`) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseJSON(tt.path(t))
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
