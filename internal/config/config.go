// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "github.com/spf13/pflag"

// StructuredConfig is the top-level configuration container for histkeeper.
// It aggregates all sub-configurations and is populated by merging built-in
// defaults, an optional JSON or YAML file, environment variables and command-line
// flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Crypto holds the location of the installation key.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// Storage holds the local database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Log controls diagnostic output on standard error.
	Log Log `envPrefix:"LOG_"`

	// Workers holds concurrency limits for batch operations.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Crypto holds key material settings. The key itself never appears in
// configuration, only the file it lives in.
type Crypto struct {
	// KeyPath is the file holding the encoded installation key.
	// Env: CRYPTO_KEY_PATH
	KeyPath string `env:"KEY_PATH,expand"`
}

// Storage groups the configuration for the local storage backend.
type Storage struct {
	// DB holds the SQLite connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite database file path, optionally followed by
	// go-sqlite3 connection parameters (e.g. "history.db?_busy_timeout=5000").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN,expand"`
}

// Log holds logging settings.
type Log struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// Format selects the output encoding: "console" or "json".
	// Env: LOG_FORMAT
	Format string `env:"FORMAT"`
}

// Log formats understood by the CLI.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Workers holds concurrency settings for batch operations.
type Workers struct {
	// SealConcurrency bounds how many history entries are encrypted at once.
	// Env: WORKERS_SEAL_CONCURRENCY
	SealConcurrency int `env:"SEAL_CONCURRENCY"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources. Later sources win for non-zero fields:
//  1. Built-in defaults
//  2. Config file (path resolved from environment and flags)
//  3. Environment variables
//  4. Command-line flags registered with [BindFlags] on fs
//
// fs may be nil, in which case flags are skipped.
func GetStructuredConfig(fs *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(fs).
		withJSON().
		build()
}
