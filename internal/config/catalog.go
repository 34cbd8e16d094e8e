package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"promptcast/pkg/argtypes"
)

// PhaseTexts holds the literal texts for each conversational phase of one
// argument's prompt. Multi-line phases are flattened into one block.
type PhaseTexts struct {
	Start   []string `yaml:"start,omitempty"`
	Retry   []string `yaml:"retry,omitempty"`
	Timeout []string `yaml:"timeout,omitempty"`
	Ended   []string `yaml:"ended,omitempty"`
	Cancel  []string `yaml:"cancel,omitempty"`
}

// Catalog maps argument IDs to their prompt texts, as loaded from a yaml
// document:
//
//	arguments:
//	  age:
//	    start: ["How old are you?"]
//	    retry: ["That is not a number, try again."]
type Catalog struct {
	Arguments map[string]PhaseTexts `yaml:"arguments"`
}

// LoadCatalog reads a prompt text catalog from path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a prompt text catalog from yaml bytes.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse text catalog: %w", err)
	}
	return &c, nil
}

// Apply overlays the catalog's texts for the given argument ID onto cfg and
// returns cfg for chaining. Unknown IDs leave cfg untouched.
func (c *Catalog) Apply(argID string, cfg *argtypes.PromptConfig) *argtypes.PromptConfig {
	texts, ok := c.Arguments[argID]
	if !ok {
		return cfg
	}
	if len(texts.Start) > 0 {
		cfg.Start = argtypes.LineText(texts.Start...)
	}
	if len(texts.Retry) > 0 {
		cfg.Retry = argtypes.LineText(texts.Retry...)
	}
	if len(texts.Timeout) > 0 {
		cfg.Timeout = argtypes.LineText(texts.Timeout...)
	}
	if len(texts.Ended) > 0 {
		cfg.Ended = argtypes.LineText(texts.Ended...)
	}
	if len(texts.Cancel) > 0 {
		cfg.Cancel = argtypes.LineText(texts.Cancel...)
	}
	return cfg
}
