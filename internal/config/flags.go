package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

const (
	flagConfig          = "config"
	flagKeyPath         = "key-path"
	flagDB              = "db"
	flagLogLevel        = "log-level"
	flagLogFormat       = "log-format"
	flagSealConcurrency = "seal-concurrency"
)

// BindFlags registers the configuration flags on fs.
//
// Flags:
//
//	-c/--config         JSON or YAML file path with configs
//	--key-path          key file path
//	--db                SQLite database DSN
//	--log-level         log level (trace, debug, info, warn, error)
//	--log-format        log output format (console, json)
//	--seal-concurrency  number of entries encrypted in parallel
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP(flagConfig, "c", "", "JSON or YAML config file path")
	fs.String(flagKeyPath, "", "Key file path")
	fs.String(flagDB, "", "SQLite database DSN")
	fs.String(flagLogLevel, "", "Log level (trace, debug, info, warn, error)")
	fs.String(flagLogFormat, "", "Log output format (console, json)")
	fs.Int(flagSealConcurrency, 0, "Number of history entries encrypted in parallel")
}

// parseFlags reads the flags registered by BindFlags. Flags the user did not
// set keep their zero value and therefore do not override other sources.
func parseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	jsonConfigPath, err := fs.GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("error reading flag %s: %w", flagConfig, err)
	}
	keyPath, err := fs.GetString(flagKeyPath)
	if err != nil {
		return nil, fmt.Errorf("error reading flag %s: %w", flagKeyPath, err)
	}
	databaseDSN, err := fs.GetString(flagDB)
	if err != nil {
		return nil, fmt.Errorf("error reading flag %s: %w", flagDB, err)
	}
	logLevel, err := fs.GetString(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("error reading flag %s: %w", flagLogLevel, err)
	}
	logFormat, err := fs.GetString(flagLogFormat)
	if err != nil {
		return nil, fmt.Errorf("error reading flag %s: %w", flagLogFormat, err)
	}
	sealConcurrency, err := fs.GetInt(flagSealConcurrency)
	if err != nil {
		return nil, fmt.Errorf("error reading flag %s: %w", flagSealConcurrency, err)
	}

	return &StructuredConfig{
		Crypto: Crypto{
			KeyPath: keyPath,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Log: Log{
			Level:  logLevel,
			Format: logFormat,
		},
		Workers: Workers{
			SealConcurrency: sealConcurrency,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
