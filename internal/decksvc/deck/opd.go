package deck

import (
	"strconv"
	"strings"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
)

// normalize lower-cases s and collapses internal whitespace.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// OnePerDeckKey groups every art variant of a logical card under one key:
// type|name[|character_name]|universe. character_name only counts for specials.
func OnePerDeckKey(c *models.Card) string {
	parts := []string{normalize(c.CardType), normalize(c.Name)}
	if c.CardType == models.TypeSpecial {
		parts = append(parts, normalize(c.CharacterName))
	}
	parts = append(parts, normalize(c.Universe))
	return strings.Join(parts, "|")
}

// identityKey is the OPD key extended with the attributes that tell apart
// same-named stat cards (two "Little John" allies with different stats are
// different cards, not art variants).
func identityKey(c *models.Card) string {
	key := OnePerDeckKey(c)
	var extra []string
	switch c.CardType {
	case models.TypePower:
		extra = []string{strconv.Itoa(c.Value), c.PowerType}
	case models.TypeTeamwork:
		extra = []string{c.ToUse}
	case models.TypeAllyUniverse:
		extra = []string{c.StatToUse, c.StatTypeToUse}
	case models.TypeTraining:
		extra = []string{c.Type1, c.Type2, c.Bonus}
	case models.TypeBasicUniverse:
		extra = []string{c.Type1, c.ValueToUse, c.Bonus}
	case models.TypeAdvancedUniverse:
		extra = []string{c.CharacterName}
	}
	for _, e := range extra {
		key += "|" + normalize(e)
	}
	return key
}
