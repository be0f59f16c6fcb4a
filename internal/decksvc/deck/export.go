package deck

import (
	"strconv"
	"strings"
	"time"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
)

// ExportCards lists one human-readable string per card unit, by category.
type ExportCards struct {
	Characters       []string `json:"characters"`
	SpecialCards     []string `json:"special_cards"`
	Locations        []string `json:"locations"`
	Missions         []string `json:"missions"`
	Events           []string `json:"events"`
	Aspects          []string `json:"aspects"`
	AdvancedUniverse []string `json:"advanced_universe"`
	Teamwork         []string `json:"teamwork"`
	Allies           []string `json:"allies"`
	Training         []string `json:"training"`
	BasicUniverse    []string `json:"basic_universe"`
	PowerCards       []string `json:"power_cards"`
}

// category returns the slice a card type is exported into.
func (c *ExportCards) category(cardType string) *[]string {
	switch cardType {
	case models.TypeCharacter:
		return &c.Characters
	case models.TypeSpecial:
		return &c.SpecialCards
	case models.TypeLocation:
		return &c.Locations
	case models.TypeMission:
		return &c.Missions
	case models.TypeEvent:
		return &c.Events
	case models.TypeAspect:
		return &c.Aspects
	case models.TypeAdvancedUniverse:
		return &c.AdvancedUniverse
	case models.TypeTeamwork:
		return &c.Teamwork
	case models.TypeAllyUniverse:
		return &c.Allies
	case models.TypeTraining:
		return &c.Training
	case models.TypeBasicUniverse:
		return &c.BasicUniverse
	case models.TypePower:
		return &c.PowerCards
	}
	return nil
}

// importOrder is the order categories are read back in: characters and
// locations first so later cards can be checked against them.
var importOrder = []string{
	models.TypeCharacter,
	models.TypeLocation,
	models.TypeMission,
	models.TypeEvent,
	models.TypeSpecial,
	models.TypeAspect,
	models.TypeAdvancedUniverse,
	models.TypeTeamwork,
	models.TypeAllyUniverse,
	models.TypeTraining,
	models.TypeBasicUniverse,
	models.TypePower,
}

// Export is the deck interchange document.
type Export struct {
	Name                   string      `json:"name"`
	Description            string      `json:"description"`
	Cards                  ExportCards `json:"cards"`
	TotalCards             int         `json:"total_cards"`
	MaxEnergy              int         `json:"max_energy"`
	MaxCombat              int         `json:"max_combat"`
	MaxBruteForce          int         `json:"max_brute_force"`
	MaxIntelligence        int         `json:"max_intelligence"`
	TotalEnergyIcons       int         `json:"total_energy_icons"`
	TotalCombatIcons       int         `json:"total_combat_icons"`
	TotalBruteForceIcons   int         `json:"total_brute_force_icons"`
	TotalIntelligenceIcons int         `json:"total_intelligence_icons"`
	TotalThreat            int         `json:"total_threat"`
	Legal                  bool        `json:"legal"`
	Limited                bool        `json:"limited"`
	ExportedBy             string      `json:"exported_by"`
	ExportTimestamp        time.Time   `json:"export_timestamp"`
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func withSuffix(name, suffix string) string {
	if suffix == "" {
		return name
	}
	return name + " - " + suffix
}

// CardString renders the export form of a card, e.g. "Little John - 5 or less Brute Force".
func CardString(c *models.Card) string {
	switch c.CardType {
	case models.TypeSpecial, models.TypeAdvancedUniverse:
		return withSuffix(c.Name, strings.TrimSpace(c.CharacterName))
	case models.TypeTeamwork:
		return withSuffix(c.Name, strings.TrimSpace(c.ToUse))
	case models.TypeAllyUniverse:
		return withSuffix(c.Name, joinNonEmpty(c.StatToUse, c.StatTypeToUse))
	case models.TypeTraining:
		return withSuffix(c.Name, joinNonEmpty(c.Type1, c.Type2, c.Bonus))
	case models.TypeBasicUniverse:
		return withSuffix(c.Name, joinNonEmpty(c.Type1, c.ValueToUse, c.Bonus))
	case models.TypePower:
		return strconv.Itoa(c.Value) + " - " + c.PowerType
	}
	return c.Name
}

// TotalCards counts every unit outside characters, locations and missions.
func TotalCards(cat *Catalog, entries []models.DeckCardEntry) int {
	n := 0
	for _, entry := range entries {
		if card, ok := cat.Get(entry.CardID); ok && inDrawPile(card.CardType) {
			n += entry.Quantity
		}
	}
	return n
}

// ExportDeck builds the interchange document for d.
func ExportDeck(cat *Catalog, rules Rules, d *models.Deck, exportedBy string, now time.Time) Export {
	exp := Export{
		Name:            d.Name,
		Description:     d.Description,
		Cards:           newExportCards(),
		Limited:         d.IsLimited,
		ExportedBy:      exportedBy,
		ExportTimestamp: now.UTC(),
	}

	for _, entry := range d.Cards {
		card, ok := cat.Get(entry.CardID)
		if !ok {
			continue
		}
		bucket := exp.Cards.category(card.CardType)
		if bucket == nil {
			continue
		}
		s := CardString(card)
		for i := 0; i < entry.Quantity; i++ {
			*bucket = append(*bucket, s)
		}
	}

	maxStats := MaxStats(cat, d.Cards)
	icons := TotalIcons(cat, d.Cards)

	exp.TotalCards = TotalCards(cat, d.Cards)
	exp.MaxEnergy = maxStats.Energy
	exp.MaxCombat = maxStats.Combat
	exp.MaxBruteForce = maxStats.BruteForce
	exp.MaxIntelligence = maxStats.Intelligence
	exp.TotalEnergyIcons = icons.Energy
	exp.TotalCombatIcons = icons.Combat
	exp.TotalBruteForceIcons = icons.BruteForce
	exp.TotalIntelligenceIcons = icons.Intelligence
	exp.TotalThreat = TotalThreat(cat, d.Cards)
	exp.Legal = Validate(cat, rules, d).Legal

	return exp
}

// newExportCards starts every category as an empty list so JSON carries [] rather than null.
func newExportCards() ExportCards {
	return ExportCards{
		Characters:       []string{},
		SpecialCards:     []string{},
		Locations:        []string{},
		Missions:         []string{},
		Events:           []string{},
		Aspects:          []string{},
		AdvancedUniverse: []string{},
		Teamwork:         []string{},
		Allies:           []string{},
		Training:         []string{},
		BasicUniverse:    []string{},
		PowerCards:       []string{},
	}
}
