package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
)

var (
	ErrInvalidImport     = errors.New("invalid deck import")
	ErrUnparseableString = errors.New("unparseable card string")
)

var (
	// "5 or less", "6 or greater", followed by whatever the card names next
	usageRe = regexp.MustCompile(`(?i)^(\d+\s+or\s+(?:less|fewer|lower|greater|more|higher))\b\s*(.*)$`)
	powerRe = regexp.MustCompile(`^(\d+)\s*(?:-\s*)?(.+)$`)
)

// stat tokens in match order; longer forms first.
var statTokens = []string{
	"Brute Force", "Intelligence", "Energy", "Combat",
	"Multi-Power", "Multi Power", "Any-Power", "Any Power",
}

// CardQuery is a card string parsed back into match filters.
type CardQuery struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	CharacterName string `json:"character_name,omitempty"`
	ToUse         string `json:"to_use,omitempty"`
	StatToUse     string `json:"stat_to_use,omitempty"`
	StatTypeToUse string `json:"stat_type_to_use,omitempty"`
	Type1         string `json:"type_1,omitempty"`
	Type2         string `json:"type_2,omitempty"`
	ValueToUse    string `json:"value_to_use,omitempty"`
	Bonus         string `json:"bonus,omitempty"`
	PowerType     string `json:"power_type,omitempty"`
	Value         int    `json:"value,omitempty"`
}

// splitStats consumes leading stat names from s.
func splitStats(s string) ([]string, string) {
	var stats []string
	s = strings.TrimSpace(s)
	for s != "" {
		found := false
		for _, tok := range statTokens {
			if len(s) < len(tok) || !strings.EqualFold(s[:len(tok)], tok) {
				continue
			}
			if len(s) > len(tok) && s[len(tok)] != ' ' {
				continue
			}
			stats = append(stats, s[:len(tok)])
			s = strings.TrimSpace(s[len(tok):])
			found = true
			break
		}
		if !found {
			break
		}
	}
	return stats, s
}

func cutSuffix(s string) (string, string) {
	if i := strings.LastIndex(s, " - "); i >= 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+3:])
	}
	return strings.TrimSpace(s), ""
}

// ParseCardString reverses CardString for a card of cardType.
func ParseCardString(cardType, s string) (CardQuery, error) {
	q := CardQuery{Type: cardType}
	s = strings.TrimSpace(s)
	if s == "" {
		return q, fmt.Errorf("%w: empty", ErrUnparseableString)
	}

	if cardType == models.TypePower {
		m := powerRe.FindStringSubmatch(s)
		if m == nil {
			return q, fmt.Errorf("%w: %q", ErrUnparseableString, s)
		}
		value, err := strconv.Atoi(m[1])
		if err != nil {
			return q, fmt.Errorf("%w: %q", ErrUnparseableString, s)
		}
		q.Value = value
		q.PowerType = strings.TrimSpace(m[2])
		return q, nil
	}

	name, rest := cutSuffix(s)
	q.Name = name
	if rest == "" {
		return q, nil
	}

	switch cardType {
	case models.TypeSpecial, models.TypeAdvancedUniverse:
		q.CharacterName = rest
	case models.TypeTeamwork:
		q.ToUse = rest
	case models.TypeAllyUniverse:
		if m := usageRe.FindStringSubmatch(rest); m != nil {
			q.StatToUse = m[1]
			q.StatTypeToUse = strings.TrimSpace(m[2])
		} else {
			q.StatTypeToUse = rest
		}
	case models.TypeTraining:
		stats, bonus := splitStats(rest)
		if len(stats) > 0 {
			q.Type1 = stats[0]
		}
		if len(stats) > 1 {
			q.Type2 = stats[1]
		}
		q.Bonus = bonus
	case models.TypeBasicUniverse:
		stats, tail := splitStats(rest)
		if len(stats) > 0 {
			q.Type1 = stats[0]
		}
		if m := usageRe.FindStringSubmatch(tail); m != nil {
			q.ValueToUse = m[1]
			q.Bonus = strings.TrimSpace(m[2])
		} else {
			q.Bonus = tail
		}
	default:
		// not a suffixed type, so the " - " belongs to the name
		q.Name = s
	}
	return q, nil
}

func attrMatches(want, have string) bool {
	return want == "" || canonicalStat(want) == canonicalStat(have)
}

func (q CardQuery) matches(c *models.Card) bool {
	return attrMatches(q.CharacterName, c.CharacterName) &&
		attrMatches(q.ToUse, c.ToUse) &&
		attrMatches(q.StatToUse, c.StatToUse) &&
		attrMatches(q.StatTypeToUse, c.StatTypeToUse) &&
		attrMatches(q.Type1, c.Type1) &&
		attrMatches(q.Type2, c.Type2) &&
		attrMatches(q.ValueToUse, c.ValueToUse) &&
		attrMatches(q.Bonus, c.Bonus)
}

// Match finds the catalog card a query names. Attribute matches win; failing
// that, a name that resolves to a single logical card is accepted. The base
// printing is returned whenever it is among the matches.
func (c *Catalog) Match(q CardQuery) (*models.Card, bool) {
	var named []*models.Card
	for _, card := range c.ByType(q.Type) {
		if q.Type == models.TypePower {
			if card.Value == q.Value && canonicalStat(card.PowerType) == canonicalStat(q.PowerType) {
				named = append(named, card)
			}
			continue
		}
		if normalize(card.Name) == normalize(q.Name) {
			named = append(named, card)
		}
	}
	if len(named) == 0 {
		return nil, false
	}

	var exact []*models.Card
	for _, card := range named {
		if q.matches(card) {
			exact = append(exact, card)
		}
	}
	if len(exact) > 0 {
		return c.pickBase(exact), true
	}

	bases := make(map[string]*models.Card)
	for _, card := range named {
		b, _ := c.BaseOf(card.ID)
		bases[b.ID] = b
	}
	if len(bases) == 1 {
		for _, b := range bases {
			return b, true
		}
	}
	return nil, false
}

func (c *Catalog) pickBase(cards []*models.Card) *models.Card {
	for _, card := range cards {
		if c.IsBase(card.ID) {
			return card
		}
	}
	b, _ := c.BaseOf(cards[0].ID)
	return b
}

// ImportResult reports what an import did with each card string.
type ImportResult struct {
	Imported  int      `json:"imported"`
	Skipped   []string `json:"skipped"`
	Unmatched []string `json:"unmatched"`
}

// ParseExport decodes an export document.
func ParseExport(data []byte) (*Export, error) {
	var exp Export
	if err := json.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	return &exp, nil
}

func countType(cat *Catalog, d *models.Deck, cardType string) int {
	n := 0
	for _, entry := range d.Cards {
		if card, ok := cat.Get(entry.CardID); ok && card.CardType == cardType {
			n += entry.Quantity
		}
	}
	return n
}

func contains(cat *Catalog, d *models.Deck, id string) bool {
	for _, entry := range d.Cards {
		if entry.CardID == id || cat.SameCard(entry.CardID, id) {
			return true
		}
	}
	return false
}

// Import merges exp's cards into d. Deck name and description are left alone.
func Import(cat *Catalog, rules Rules, d *models.Deck, exp *Export) ImportResult {
	res := ImportResult{Skipped: []string{}, Unmatched: []string{}}
	ed := NewEditor(cat, d).WithMaxQuantity(rules.MaxQuantity)

	for _, cardType := range importOrder {
		for _, s := range *exp.Cards.category(cardType) {
			q, err := ParseCardString(cardType, s)
			if err != nil {
				res.Unmatched = append(res.Unmatched, fmt.Sprintf("%s: %q", cardType, s))
				continue
			}
			card, ok := cat.Match(q)
			if !ok {
				res.Unmatched = append(res.Unmatched, fmt.Sprintf("%s: %q", cardType, s))
				continue
			}

			switch card.CardType {
			case models.TypeLocation:
				if contains(cat, d, card.ID) {
					res.Skipped = append(res.Skipped, fmt.Sprintf("location %s is already in the deck", card.Name))
					continue
				}
				if countType(cat, d, models.TypeLocation) >= rules.MaxLocations {
					res.Skipped = append(res.Skipped, fmt.Sprintf("location %s skipped: max %d location per deck", card.Name, rules.MaxLocations))
					continue
				}
			case models.TypeCharacter:
				if contains(cat, d, card.ID) {
					res.Skipped = append(res.Skipped, fmt.Sprintf("character %s is already in the deck", card.Name))
					continue
				}
				if countType(cat, d, models.TypeCharacter) >= rules.MaxCharacters {
					res.Skipped = append(res.Skipped, fmt.Sprintf("character %s skipped: max %d characters per deck", card.Name, rules.MaxCharacters))
					continue
				}
			}

			if err := ed.AddCard(card.ID, ""); err != nil {
				res.Skipped = append(res.Skipped, err.Error())
				continue
			}
			res.Imported++
		}
	}
	return res
}
