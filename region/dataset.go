package region

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dataset bundles the static inputs loaded once at startup: prefecture
// profiles, the adjacency graph and the pairwise similarity table. The
// similarity table is sparse; absent pairs mean zero influence.
type Dataset struct {
	Regions    []Region                      `json:"regions" yaml:"regions"`
	Adjacency  map[string][]string           `json:"adjacency" yaml:"adjacency"`
	Similarity map[string]map[string]float64 `json:"similarity" yaml:"similarity"`
}

// LoadFile reads a dataset from a JSON or YAML file, chosen by extension,
// and validates it.
func LoadFile(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FromYAML(raw)
	case ".json":
		return FromJSON(raw)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", filepath.Ext(path))
	}
}

// FromJSON parses and validates a JSON dataset.
func FromJSON(raw []byte) (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// FromYAML parses and validates a YAML dataset.
func FromYAML(raw []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks every profile plus the referential integrity of the
// similarity table. Adjacency graph invariants (self-loops, dangling ids,
// symmetry) are enforced by the topology provider, which also owns the
// warning policy for asymmetric entries.
func (d *Dataset) Validate() error {
	if len(d.Regions) == 0 {
		return fmt.Errorf("dataset has no regions")
	}
	ids := make(map[string]bool, len(d.Regions))
	for _, r := range d.Regions {
		if err := r.Validate(); err != nil {
			return err
		}
		if ids[r.ID] {
			return fmt.Errorf("duplicate region id %s", r.ID)
		}
		ids[r.ID] = true
	}
	for from, row := range d.Similarity {
		if !ids[from] {
			return fmt.Errorf("similarity references unknown region %s", from)
		}
		for to, w := range row {
			if !ids[to] {
				return fmt.Errorf("similarity %s -> %s references unknown region", from, to)
			}
			if w < 0 || w > 1 {
				return fmt.Errorf("similarity %s -> %s is %v, want [0,1]", from, to, w)
			}
		}
	}
	return nil
}

// Profiles returns the regions keyed by id.
func (d *Dataset) Profiles() map[string]Region {
	out := make(map[string]Region, len(d.Regions))
	for _, r := range d.Regions {
		out[r.ID] = r
	}
	return out
}

// IDs returns all region ids in dataset order.
func (d *Dataset) IDs() []string {
	out := make([]string, 0, len(d.Regions))
	for _, r := range d.Regions {
		out = append(out, r.ID)
	}
	return out
}
