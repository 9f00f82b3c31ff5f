package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName       = "histkeeper"
	keyFileName      = "key"
	dbFileName       = "history.db"
	defaultLogLevel  = "info"
	defaultLogFormat = LogFormatConsole

	defaultSealConcurrency = 4
)

// DataDir returns the directory holding the key and the database:
// $XDG_DATA_HOME/histkeeper, or ~/.local/share/histkeeper when XDG_DATA_HOME
// is unset.
func DataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appDirName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error resolving home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", appDirName), nil
}

func defaultConfig() (*StructuredConfig, error) {
	dataDir, err := DataDir()
	if err != nil {
		return nil, err
	}

	return &StructuredConfig{
		Crypto:  Crypto{KeyPath: filepath.Join(dataDir, keyFileName)},
		Storage: Storage{DB: DB{DSN: filepath.Join(dataDir, dbFileName)}},
		Log:     Log{Level: defaultLogLevel, Format: defaultLogFormat},
		Workers: Workers{SealConcurrency: defaultSealConcurrency},
	}, nil
}
