package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

func parseYAML(yamlFilePath string) (*StructuredConfig, error) {
	yamlFile, err := os.Open(yamlFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a yaml file: %w", err)
	}
	defer yamlFile.Close()

	var yamlCfg StructuredFileConfig
	decoder := yaml.NewDecoder(yamlFile)
	decoder.KnownFields(true)
	// an empty document leaves every field unset
	if err := decoder.Decode(&yamlCfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error decoding yaml configs: %w", err)
	}

	return yamlCfg.toStructuredConfig(), nil
}
