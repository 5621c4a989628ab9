// Package config loads and saves phase datasets as yaml files and ships a
// few built-in sample spaces.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/phasekit/internal/phase"
)

// Entry is one phase record in a dataset file. Energy is per-atom unless
// Total is set.
type Entry struct {
	Composition string  `yaml:"composition"`
	Energy      float64 `yaml:"energy"`
	Total       bool    `yaml:"total,omitempty"`
	Name        string  `yaml:"name,omitempty"`
	Description string  `yaml:"description,omitempty"`
}

// Dataset is a named collection of phase records.
type Dataset struct {
	Description string  `yaml:"description,omitempty"`
	Phases      []Entry `yaml:"phases"`
}

// Load reads a dataset from a yaml file.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ds := &Dataset{}
	if err := yaml.Unmarshal(data, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// Save writes a dataset to a yaml file.
func Save(path string, ds *Dataset) error {
	data, err := yaml.Marshal(ds)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build constructs one phase per entry, in file order.
func (ds *Dataset) Build() ([]*phase.Phase, error) {
	phases := make([]*phase.Phase, 0, len(ds.Phases))
	for i, e := range ds.Phases {
		p, err := phase.Parse(e.Composition, e.Energy, !e.Total)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, e.Composition, err)
		}
		p.CustomName = e.Name
		p.Description = e.Description
		phases = append(phases, p)
	}
	return phases, nil
}
