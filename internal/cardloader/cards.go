package cardloader

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// RowError reports a table row that could not become a card.
type RowError struct {
	Line int
	Err  string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

// Slug lower-cases s and joins its alphanumeric runs with dashes.
func Slug(s string) string {
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// CardID derives a stable id from type, name and, when set, the character.
func CardID(cardType, name, character string) string {
	parts := []string{Slug(strings.ReplaceAll(cardType, "_", "-")), Slug(name)}
	if character != "" {
		parts = append(parts, Slug(character))
	}
	return strings.Join(parts, "-")
}

func parseInt(s string) (int, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "+"))
	if s == "" || s == "-" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "no", "n", "false", "0", "-":
		return false, nil
	case "yes", "y", "true", "1", "x", "opd", "one per deck":
		return true, nil
	}
	return false, fmt.Errorf("not a yes/no value: %q", s)
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' || r == '/' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// setField writes one table value into the card column field.
func setField(c *models.Card, field, value string) error {
	var err error
	switch field {
	case "id":
		c.ID = value
	case "name":
		c.Name = value
	case "character_name":
		c.CharacterName = value
	case "universe":
		c.Universe = value
	case "image_path":
		c.ImagePath = value
	case "one_per_deck":
		c.OnePerDeck, err = parseBool(value)
	case "threat_level":
		c.ThreatLevel, err = parseInt(value)
	case "energy":
		c.Energy, err = parseInt(value)
	case "combat":
		c.Combat, err = parseInt(value)
	case "brute_force":
		c.BruteForce, err = parseInt(value)
	case "intelligence":
		c.Intelligence, err = parseInt(value)
	case "icons":
		c.Icons = splitList(value)
	case "power_type":
		c.PowerType = value
	case "value":
		c.Value, err = parseInt(value)
	case "to_use":
		c.ToUse = value
	case "stat_to_use":
		c.StatToUse = value
	case "stat_type_to_use":
		c.StatTypeToUse = value
	case "type_1":
		c.Type1 = value
	case "type_2":
		c.Type2 = value
	case "value_to_use":
		c.ValueToUse = value
	case "bonus":
		c.Bonus = value
	case "card_effect":
		c.CardEffect = value
	default:
		return fmt.Errorf("unknown card column %q", field)
	}
	if err != nil {
		return fmt.Errorf("%s: %v", field, err)
	}
	return nil
}

// BuildCards turns table rows into cards of cardType. Unmapped headers are
// returned so callers can report them. Rows with bad values are skipped and reported.
func BuildCards(cardType string, t *Table, m Mapping) ([]*models.Card, []string, []RowError) {
	fields := make([]string, len(t.Headers))
	var unmapped []string
	for i, h := range t.Headers {
		if f, ok := m.Field(h); ok {
			fields[i] = f
		} else {
			unmapped = append(unmapped, h)
		}
	}

	var cards []*models.Card
	var rowErrs []RowError
	seen := map[string]int{}

	for r, row := range t.Rows {
		c := &models.Card{CardType: cardType, Icons: []string{}}

		var rowErr error
		for field, value := range m.Defaults[cardType] {
			if err := setField(c, field, value); err != nil && rowErr == nil {
				rowErr = err
			}
		}
		for i, value := range row {
			if fields[i] == "" || value == "" {
				continue
			}
			if err := setField(c, fields[i], value); err != nil && rowErr == nil {
				rowErr = err
			}
		}
		if rowErr != nil {
			rowErrs = append(rowErrs, RowError{Line: t.Lines[r], Err: rowErr.Error()})
			continue
		}

		if c.Name == "" && cardType == models.TypePower && c.PowerType != "" {
			c.Name = fmt.Sprintf("%d - %s", c.Value, c.PowerType)
		}
		if c.Name == "" {
			rowErrs = append(rowErrs, RowError{Line: t.Lines[r], Err: "missing name"})
			continue
		}

		if c.ID == "" {
			character := ""
			if cardType == models.TypeSpecial || cardType == models.TypeAdvancedUniverse {
				character = c.CharacterName
			}
			c.ID = CardID(cardType, c.Name, character)
		}
		// alternate printings share a name, later rows get a numeric suffix
		seen[c.ID]++
		if n := seen[c.ID]; n > 1 {
			c.ID = fmt.Sprintf("%s-%d", c.ID, n)
		}
		cards = append(cards, c)
	}
	return cards, unmapped, rowErrs
}
