package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// runConfig mirrors the run command's flags for YAML configuration files.
// Flags provide the defaults; values present in the file win.
type runConfig struct {
	Exponent  *uint   `yaml:"exponent"`
	ChunkSize *int    `yaml:"chunk_size"`
	Base      *uint64 `yaml:"base"`
	WorkDir   *string `yaml:"workdir"`
	Out       *string `yaml:"out"`
}

// applyRunConfig overlays the YAML file at path onto the flag values.
func applyRunConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg runConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Exponent != nil {
		runExponent = *cfg.Exponent
	}
	if cfg.ChunkSize != nil {
		runChunkSize = *cfg.ChunkSize
	}
	if cfg.Base != nil {
		runBase = *cfg.Base
	}
	if cfg.WorkDir != nil {
		runWorkdir = *cfg.WorkDir
	}
	if cfg.Out != nil {
		runOut = *cfg.Out
	}
	return nil
}
