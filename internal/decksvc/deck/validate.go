package deck

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
)

// ValidationResults holds rule failures. Errors make a deck illegal, warnings do not.
type ValidationResults struct {
	Legal    bool     `json:"legal"`
	Limited  bool     `json:"limited"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

type Validator struct {
	cat     *Catalog
	rules   Rules
	deck    *models.Deck
	Results ValidationResults
}

func NewValidator(cat *Catalog, rules Rules, d *models.Deck) *Validator {
	return &Validator{
		cat:   cat,
		rules: rules,
		deck:  d,
		Results: ValidationResults{
			Limited:  d.IsLimited,
			Errors:   []string{},
			Warnings: []string{},
		},
	}
}

// Validate runs a deck through the rule table.
func Validate(cat *Catalog, rules Rules, d *models.Deck) ValidationResults {
	return NewValidator(cat, rules, d).Validate()
}

func (v *Validator) Validate() ValidationResults {
	v.validateKnownCards()
	v.validateCharacters()
	v.validateLocations()
	v.validateOnePerDeck()
	v.validateThreat()
	v.validateDrawPile()
	v.validateCharacterCards()
	v.validatePowerCards()

	v.Results.Legal = len(v.Results.Errors) == 0
	return v.Results
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

func (v *Validator) validateKnownCards() {
	for _, entry := range v.deck.Cards {
		if _, ok := v.cat.Get(entry.CardID); !ok {
			v.errorf("unknown card %s", entry.CardID)
		}
		if entry.Quantity < 1 {
			v.errorf("card %s has invalid quantity %d", entry.CardID, entry.Quantity)
		}
	}
}

func (v *Validator) characters() []*models.Card {
	var out []*models.Card
	for _, entry := range v.deck.Cards {
		if card, ok := v.cat.Get(entry.CardID); ok && card.CardType == models.TypeCharacter {
			out = append(out, card)
		}
	}
	return out
}

func (v *Validator) validateCharacters() {
	unique := make(map[string]bool)
	for _, entry := range v.deck.Cards {
		card, ok := v.cat.Get(entry.CardID)
		if !ok || card.CardType != models.TypeCharacter {
			continue
		}
		unique[OnePerDeckKey(card)] = true
		if entry.Quantity > 1 {
			v.errorf("character %s appears %d times", card.Name, entry.Quantity)
		}
	}
	if len(unique) > v.rules.MaxCharacters {
		v.errorf("deck has %d characters (max %d)", len(unique), v.rules.MaxCharacters)
	}
}

func (v *Validator) validateLocations() {
	count := 0
	for _, entry := range v.deck.Cards {
		if card, ok := v.cat.Get(entry.CardID); ok && card.CardType == models.TypeLocation {
			count += entry.Quantity
		}
	}
	if count > v.rules.MaxLocations {
		v.errorf("deck has %d locations (max %d)", count, v.rules.MaxLocations)
	}
}

func (v *Validator) validateOnePerDeck() {
	counts := make(map[string]int)
	names := make(map[string]string)
	for _, entry := range v.deck.Cards {
		card, ok := v.cat.Get(entry.CardID)
		if !ok || !v.cat.IsOnePerDeck(card.ID) {
			continue
		}
		key := OnePerDeckKey(card)
		counts[key] += entry.Quantity
		names[key] = card.Name
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if counts[k] > 1 {
			v.errorf("%s is one per deck but appears %d times", names[k], counts[k])
		}
	}
}

func (v *Validator) validateThreat() {
	if threat := TotalThreat(v.cat, v.deck.Cards); threat > v.rules.MaxThreat {
		v.errorf("total threat %d exceeds %d", threat, v.rules.MaxThreat)
	}
}

// DrawPileSize counts units that are shuffled into the draw pile.
func DrawPileSize(cat *Catalog, entries []models.DeckCardEntry) int {
	n := 0
	for _, entry := range entries {
		card, ok := cat.Get(entry.CardID)
		if !ok || entry.ExcludeFromDraw || !inDrawPile(card.CardType) {
			continue
		}
		n += entry.Quantity
	}
	return n
}

func inDrawPile(cardType string) bool {
	switch cardType {
	case models.TypeCharacter, models.TypeLocation, models.TypeMission:
		return false
	}
	return true
}

func (v *Validator) validateDrawPile() {
	if n := DrawPileSize(v.cat, v.deck.Cards); n < v.rules.MinDrawPile {
		v.errorf("draw pile has %d cards (min %d)", n, v.rules.MinDrawPile)
	}
}

// validateCharacterCards checks that character-bound cards name a deck character.
func (v *Validator) validateCharacterCards() {
	names := make(map[string]bool)
	for _, c := range v.characters() {
		names[normalize(c.Name)] = true
	}
	anyName := normalize(v.rules.AnyCharacterName)

	for _, entry := range v.deck.Cards {
		card, ok := v.cat.Get(entry.CardID)
		if !ok {
			continue
		}
		if card.CardType != models.TypeSpecial && card.CardType != models.TypeAdvancedUniverse {
			continue
		}
		owner := normalize(card.CharacterName)
		if owner == "" || owner == anyName || names[owner] {
			continue
		}
		v.errorf("%s requires character %s", card.Name, card.CharacterName)
	}
}

func statValue(c *models.Card, stat string) int {
	switch canonicalStat(stat) {
	case "energy":
		return c.Energy
	case "combat":
		return c.Combat
	case "brute force":
		return c.BruteForce
	case "intelligence":
		return c.Intelligence
	}
	return 0
}

// validatePowerCards warns about power cards no character can play.
func (v *Validator) validatePowerCards() {
	chars := v.characters()
	if len(chars) == 0 {
		return
	}
	for _, entry := range v.deck.Cards {
		card, ok := v.cat.Get(entry.CardID)
		if !ok || card.CardType != models.TypePower {
			continue
		}
		usable := false
		pt := canonicalStat(card.PowerType)
		for _, ch := range chars {
			if strings.Contains(pt, "multi power") || strings.Contains(pt, "any power") {
				usable = max(ch.Energy, ch.Combat, ch.BruteForce, ch.Intelligence) >= card.Value
			} else {
				usable = statValue(ch, card.PowerType) >= card.Value
			}
			if usable {
				break
			}
		}
		if !usable {
			v.warnf("no character can use %d %s", card.Value, card.PowerType)
		}
	}
}
