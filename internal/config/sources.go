// Package config loads the upstream feed definitions.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/velosh/paddockwire/internal/domain"
)

//go:embed default_sources.yaml
var defaultSources []byte

type sourcesFile struct {
	Sources []domain.Source `yaml:"sources"`
}

// LoadSources reads feed definitions from the YAML file at path. An empty
// path falls back to the embedded defaults, so a deployment with no config
// file still aggregates the stock feeds.
func LoadSources(path string) ([]domain.Source, error) {
	raw := defaultSources
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read sources file: %w", err)
		}
		raw = b
	}

	var f sourcesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}
	if len(f.Sources) == 0 {
		return nil, fmt.Errorf("no sources defined")
	}

	for i, src := range f.Sources {
		if src.Name == "" || src.RSSURL == "" || src.BaseURL == "" {
			return nil, fmt.Errorf("source %d: name, rssUrl and baseUrl are all required", i)
		}
	}

	return f.Sources, nil
}
