// Package config loads settings for the graphrun server binary.
//
// Settings come from an optional YAML or JSON file; every field has a
// working default so the server runs with no file at all.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings holds the server configuration.
type Settings struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr" json:"addr"`

	// MaxSteps caps node executions per run. 0 means unbounded,
	// which is the designed default: graphs may loop until done.
	MaxSteps int `yaml:"max_steps" json:"max_steps"`

	// JournalPath is the SQLite file receiving every run log line.
	// Empty disables the journal.
	JournalPath string `yaml:"journal_path" json:"journal_path"`

	// SampleGraph registers the built-in code-review graph at startup.
	SampleGraph bool `yaml:"sample_graph" json:"sample_graph"`
}

// Default returns the settings used when no file is given.
func Default() Settings {
	return Settings{
		Addr:        ":8080",
		SampleGraph: true,
	}
}

// Load reads settings from a file, auto-detecting the format by
// extension. Supported extensions: .yaml, .yml, .json.
// Fields absent from the file keep their defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read config file: %w", err)
	}

	s := Default()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("parse json: %w", err)
		}
	default:
		return Settings{}, fmt.Errorf("unsupported config file extension: %s", ext)
	}

	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) validate() error {
	if s.Addr == "" {
		return fmt.Errorf("addr cannot be empty")
	}
	if s.MaxSteps < 0 {
		return fmt.Errorf("max_steps cannot be negative: %d", s.MaxSteps)
	}
	return nil
}
