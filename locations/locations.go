// Package locations maps free-text location names from the price extract
// onto the fixed branch ids the downstream system uses.
package locations

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// HeadquartersID is the fallback for names no tier can place.
const HeadquartersID = 6

// Fragment ties a lowercase substring to a branch id, catching the
// misspellings and declensions the extracts are full of.
type Fragment struct {
	Match string `yaml:"match"`
	ID    int    `yaml:"id"`
}

// Table resolves location names in three tiers: exact, case-insensitive
// exact, then known-fragment containment.
type Table struct {
	Names     map[string]int `yaml:"names"`
	Fragments []Fragment     `yaml:"fragments"`
	Default   int            `yaml:"default"`
}

// Default returns the built-in branch table.
func Default() *Table {
	return &Table{
		Names: map[string]int{
			"Gdansk":   1,
			"Katowice": 2,
			"Krakow":   3,
			"Lodz":     4,
			"Poznan":   5,
			"Warszawa": 6,
			"Centrala": 8,
		},
		Fragments: []Fragment{
			{Match: "gda", ID: 1},
			{Match: "katow", ID: 2},
			{Match: "krak", ID: 3},
			{Match: "odz", ID: 4},
			{Match: "lod", ID: 4},
			{Match: "pozn", ID: 5},
			{Match: "warsz", ID: 6},
			{Match: "centr", ID: 8},
		},
		Default: HeadquartersID,
	}
}

// Load reads a table override from a YAML file.
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read location table: %w", err)
	}
	t := &Table{}
	if err := yaml.Unmarshal(raw, t); err != nil {
		return nil, fmt.Errorf("parse location table: %w", err)
	}
	if t.Default == 0 {
		t.Default = HeadquartersID
	}
	return t, nil
}

// Resolve maps a location name to its branch id, defaulting to the
// headquarters city for anything unrecognized.
func (t *Table) Resolve(name string) int {
	trimmed := strings.TrimSpace(name)
	if id, ok := t.Names[trimmed]; ok {
		return id
	}
	lower := strings.ToLower(trimmed)
	for key, id := range t.Names {
		if strings.ToLower(key) == lower {
			return id
		}
	}
	for _, f := range t.Fragments {
		if strings.Contains(lower, f.Match) {
			return f.ID
		}
	}
	return t.Default
}
