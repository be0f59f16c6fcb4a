package cardloader

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Card columns a header can map to.
var Fields = []string{
	"id", "name", "character_name", "universe", "image_path", "one_per_deck", "threat_level",
	"energy", "combat", "brute_force", "intelligence", "icons", "power_type", "value",
	"to_use", "stat_to_use", "stat_type_to_use", "type_1", "type_2", "value_to_use", "bonus", "card_effect",
}

// Mapping maps normalised table headers to card columns.
type Mapping struct {
	Columns map[string]string `toml:"columns"`
	// Defaults fills columns the table leaves empty, keyed by card type then column.
	Defaults map[string]map[string]string `toml:"defaults"`
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer("_", " ", "-", " ", "#", "").Replace(h)
	return strings.Join(strings.Fields(h), " ")
}

func isField(f string) bool {
	for _, known := range Fields {
		if known == f {
			return true
		}
	}
	return false
}

// DefaultMapping covers the headers used by the card data tables.
func DefaultMapping() Mapping {
	cols := map[string]string{
		"card name":      "name",
		"character":      "character_name",
		"image":          "image_path",
		"image file":     "image_path",
		"opd":            "one_per_deck",
		"threat":         "threat_level",
		"effect":         "card_effect",
		"text":           "card_effect",
		"stat type":      "stat_type_to_use",
		"stat":           "stat_to_use",
		"requirement":    "stat_to_use",
		"type":           "type_1",
		"power":          "power_type",
		"power value":    "value",
		"secondary type": "type_2",
	}
	for _, f := range Fields {
		cols[normalizeHeader(f)] = f
	}
	return Mapping{Columns: cols, Defaults: map[string]map[string]string{}}
}

// LoadMapping overlays the TOML file at path on the default mapping.
func LoadMapping(path string) (Mapping, error) {
	m := DefaultMapping()
	if path == "" {
		return m, nil
	}

	var file Mapping
	if _, err := toml.DecodeFile(path, &file); err != nil {
		if os.IsNotExist(err) {
			return m, fmt.Errorf("mapping file not found: %s", path)
		}
		return m, fmt.Errorf("error parsing %s: %v", path, err)
	}

	for header, field := range file.Columns {
		if !isField(field) {
			return m, fmt.Errorf("mapping %q: unknown card column %q", header, field)
		}
		m.Columns[normalizeHeader(header)] = field
	}
	for cardType, defaults := range file.Defaults {
		for field := range defaults {
			if !isField(field) {
				return m, fmt.Errorf("defaults for %s: unknown card column %q", cardType, field)
			}
		}
		m.Defaults[cardType] = defaults
	}
	return m, nil
}

// Field returns the card column for a table header.
func (m Mapping) Field(header string) (string, bool) {
	f, ok := m.Columns[normalizeHeader(header)]
	return f, ok
}
