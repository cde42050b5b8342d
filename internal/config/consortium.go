package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Consortium describes the member institutions whose researchers the
// application helps users discover.
type Consortium struct {
	Name         string        `yaml:"name"`
	Institutions []Institution `yaml:"institutions"`
}

// Institution is a consortium member with its OpenAlex identifier.
type Institution struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Country string `yaml:"country"`
	Enabled *bool  `yaml:"enabled"`
}

// IsEnabled reports whether the institution participates in lookups.
// Institutions are enabled unless explicitly disabled.
func (i Institution) IsEnabled() bool {
	return i.Enabled == nil || *i.Enabled
}

// IDs returns the OpenAlex identifiers of all enabled institutions, in file order.
func (c *Consortium) IDs() []string {
	ids := make([]string, 0, len(c.Institutions))
	for _, inst := range c.Institutions {
		if inst.IsEnabled() {
			ids = append(ids, inst.ID)
		}
	}
	return ids
}

// LoadConsortium reads and validates the consortium YAML file.
func LoadConsortium(path string) (*Consortium, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading consortium file: %w", err)
	}
	return ParseConsortium(data)
}

// ParseConsortium decodes and validates consortium YAML.
func ParseConsortium(data []byte) (*Consortium, error) {
	var c Consortium
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing consortium yaml: %w", err)
	}

	if len(c.Institutions) == 0 {
		return nil, fmt.Errorf("consortium %q has no institutions", c.Name)
	}

	seen := make(map[string]bool, len(c.Institutions))
	for i := range c.Institutions {
		inst := &c.Institutions[i]
		inst.ID = strings.TrimSpace(inst.ID)
		inst.Country = strings.ToUpper(strings.TrimSpace(inst.Country))
		if inst.ID == "" {
			return nil, fmt.Errorf("institution %d (%s): id is required", i, inst.Name)
		}
		if seen[inst.ID] {
			return nil, fmt.Errorf("institution %s listed twice", inst.ID)
		}
		seen[inst.ID] = true
		if inst.Name == "" {
			inst.Name = inst.ID
		}
	}
	return &c, nil
}
