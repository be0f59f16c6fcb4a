package deck

import (
	"strings"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
)

// Stat names as they appear on cards.
const (
	StatEnergy       = "Energy"
	StatCombat       = "Combat"
	StatBruteForce   = "Brute Force"
	StatIntelligence = "Intelligence"
)

// IconTotals counts stat icons across a deck.
type IconTotals struct {
	Energy       int `json:"energy"`
	Combat       int `json:"combat"`
	BruteForce   int `json:"brute_force"`
	Intelligence int `json:"intelligence"`
}

func (t *IconTotals) add(o IconTotals, n int) {
	t.Energy += o.Energy * n
	t.Combat += o.Combat * n
	t.BruteForce += o.BruteForce * n
	t.Intelligence += o.Intelligence * n
}

func canonicalStat(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return normalize(s)
}

// iconsIn reads the stat icons named in free text such as "6 Combat" or
// "Multi-Power". Multi power counts for every stat, any-power for none.
func iconsIn(s string) IconTotals {
	text := canonicalStat(s)
	if text == "" || strings.Contains(text, "any power") {
		return IconTotals{}
	}
	if strings.Contains(text, "multi power") || strings.Contains(text, "multipower") {
		return IconTotals{Energy: 1, Combat: 1, BruteForce: 1, Intelligence: 1}
	}

	var t IconTotals
	if strings.Contains(text, "energy") {
		t.Energy = 1
	}
	if strings.Contains(text, "combat") {
		t.Combat = 1
	}
	if strings.Contains(text, "brute force") {
		t.BruteForce = 1
	}
	if strings.Contains(text, "intelligence") {
		t.Intelligence = 1
	}
	return t
}

// CardIcons returns the icons a single copy of card contributes.
func CardIcons(c *models.Card) IconTotals {
	var fields []string
	switch c.CardType {
	case models.TypeSpecial, models.TypeAspect, models.TypeAdvancedUniverse:
		fields = c.Icons
	case models.TypePower:
		fields = []string{c.PowerType}
	case models.TypeTeamwork:
		fields = []string{c.ToUse}
	case models.TypeAllyUniverse:
		fields = []string{c.StatTypeToUse}
	case models.TypeBasicUniverse:
		fields = []string{c.Type1}
	case models.TypeTraining:
		fields = []string{c.Type1, c.Type2}
	}

	var t IconTotals
	for _, f := range fields {
		t.add(iconsIn(f), 1)
	}
	return t
}

// TotalIcons sums icons over entries, multiplied by quantity. Unknown cards count for nothing.
func TotalIcons(cat *Catalog, entries []models.DeckCardEntry) IconTotals {
	var t IconTotals
	for _, entry := range entries {
		card, ok := cat.Get(entry.CardID)
		if !ok {
			continue
		}
		t.add(CardIcons(card), entry.Quantity)
	}
	return t
}

// MaxStats returns the highest value of each stat among the deck's characters.
func MaxStats(cat *Catalog, entries []models.DeckCardEntry) IconTotals {
	var m IconTotals
	for _, entry := range entries {
		card, ok := cat.Get(entry.CardID)
		if !ok || card.CardType != models.TypeCharacter {
			continue
		}
		m.Energy = max(m.Energy, card.Energy)
		m.Combat = max(m.Combat, card.Combat)
		m.BruteForce = max(m.BruteForce, card.BruteForce)
		m.Intelligence = max(m.Intelligence, card.Intelligence)
	}
	return m
}

// TotalThreat sums threat levels of characters and locations.
func TotalThreat(cat *Catalog, entries []models.DeckCardEntry) int {
	total := 0
	for _, entry := range entries {
		card, ok := cat.Get(entry.CardID)
		if !ok {
			continue
		}
		if card.CardType == models.TypeCharacter || card.CardType == models.TypeLocation {
			total += card.ThreatLevel * entry.Quantity
		}
	}
	return total
}
