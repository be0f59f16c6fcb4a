package deck

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules is the deck construction rule table.
type Rules struct {
	MaxCharacters    int    `yaml:"max_characters" json:"max_characters"`
	MaxLocations     int    `yaml:"max_locations" json:"max_locations"`
	MaxThreat        int    `yaml:"max_threat" json:"max_threat"`
	MinDrawPile      int    `yaml:"min_draw_pile" json:"min_draw_pile"`
	MaxQuantity      int    `yaml:"max_quantity" json:"max_quantity"`
	AnyCharacterName string `yaml:"any_character_name" json:"any_character_name"`
}

func DefaultRules() Rules {
	return Rules{
		MaxCharacters:    4,
		MaxLocations:     1,
		MaxThreat:        76,
		MinDrawPile:      51,
		MaxQuantity:      99,
		AnyCharacterName: "Any Character",
	}
}

// LoadRules reads a YAML rule file. A missing file yields the defaults;
// keys absent from the file keep their default values.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return rules, nil
	}
	if err != nil {
		return rules, err
	}

	if err := yaml.Unmarshal(data, &rules); err != nil {
		return DefaultRules(), fmt.Errorf("parse rules YAML: %w", err)
	}

	if rules.MaxCharacters <= 0 || rules.MaxLocations < 0 || rules.MaxThreat <= 0 || rules.MinDrawPile < 0 || rules.MaxQuantity <= 0 {
		return DefaultRules(), fmt.Errorf("invalid rules in %s: %+v", path, rules)
	}

	return rules, nil
}
