// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"CONFIG":                   "/path/to/config.json",
		"CRYPTO_KEY_PATH":          "/secrets/key",
		"STORAGE_DB_DSN":           "/data/history.db",
		"LOG_LEVEL":                "debug",
		"LOG_FORMAT":               "json",
		"WORKERS_SEAL_CONCURRENCY": "8",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "/secrets/key", cfg.Crypto.KeyPath)
	assert.Equal(t, "/data/history.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8, cfg.Workers.SealConcurrency)
}

func TestParseEnv_PartialFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"CRYPTO_KEY_PATH": "/secrets/key",
	})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "/secrets/key", cfg.Crypto.KeyPath)
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.Log.Level)
	assert.Zero(t, cfg.Workers.SealConcurrency)
}

func TestParseEnvFrom_ExpandsPaths(t *testing.T) {
	t.Setenv("HISTKEEPER_TEST_HOME", "/home/u")
	environ := map[string]string{
		"HISTKEEPER_TEST_HOME": "/home/u",
		"CRYPTO_KEY_PATH":      "$HISTKEEPER_TEST_HOME/.histkeeper/key",
		"STORAGE_DB_DSN":       "${HISTKEEPER_TEST_HOME}/history.db",
		"LOG_LEVEL":            "$HISTKEEPER_TEST_HOME",
	}

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnvFrom(cfg, environ))

	assert.Equal(t, "/home/u/.histkeeper/key", cfg.Crypto.KeyPath)
	assert.Equal(t, "/home/u/history.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "$HISTKEEPER_TEST_HOME", cfg.Log.Level, "only path fields are expanded")
}

func TestParseEnvFrom_IgnoresProcessEnvironment(t *testing.T) {
	t.Setenv("CRYPTO_KEY_PATH", "/from/process")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnvFrom(cfg, map[string]string{"STORAGE_DB_DSN": "/db"}))

	assert.Empty(t, cfg.Crypto.KeyPath)
	assert.Equal(t, "/db", cfg.Storage.DB.DSN)
}

func TestParseEnv_InvalidInteger(t *testing.T) {
	setEnvVars(t, map[string]string{
		"WORKERS_SEAL_CONCURRENCY": "many",
	})

	err := parseEnv(&StructuredConfig{})
	assert.Error(t, err)
}

// setEnvVars sets vars for the duration of the test and clears every other
// variable the config reads, so the host environment cannot leak in.
func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for _, name := range []string{
		"CONFIG", "CRYPTO_KEY_PATH", "STORAGE_DB_DSN", "LOG_LEVEL", "LOG_FORMAT", "WORKERS_SEAL_CONCURRENCY",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}
