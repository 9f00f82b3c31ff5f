package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StructuredFileConfig mirrors the layout of the config file. The same
// layout is accepted as JSON and as YAML.
type StructuredFileConfig struct {
	Crypto struct {
		KeyPath string `json:"key_path" yaml:"key_path"`
	} `json:"crypto,omitempty" yaml:"crypto"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db,omitempty" yaml:"db"`
	} `json:"storage,omitempty" yaml:"storage"`

	Log struct {
		Level  string `json:"level" yaml:"level"`
		Format string `json:"format" yaml:"format"`
	} `json:"log,omitempty" yaml:"log"`

	Workers struct {
		SealConcurrency int `json:"seal_concurrency" yaml:"seal_concurrency"`
	} `json:"workers,omitempty" yaml:"workers"`
}

// parseConfigFile reads path as YAML when it ends in .yaml or .yml and as
// JSON otherwise.
func parseConfigFile(path string) (*StructuredConfig, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(path)
	default:
		return parseJSON(path)
	}
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredFileConfig
	decoder := json.NewDecoder(jsonFile)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return jsonCfg.toStructuredConfig(), nil
}

func (f *StructuredFileConfig) toStructuredConfig() *StructuredConfig {
	return &StructuredConfig{
		Crypto: Crypto{
			KeyPath: f.Crypto.KeyPath,
		},
		Storage: Storage{
			DB: DB{
				DSN: f.Storage.DB.DSN,
			},
		},
		Log: Log{
			Level:  f.Log.Level,
			Format: f.Log.Format,
		},
		Workers: Workers{
			SealConcurrency: f.Workers.SealConcurrency,
		},
		JSONFilePath: "",
	}
}
