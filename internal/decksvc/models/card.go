package models

// Card types as stored in cards.card_type.
const (
	TypeCharacter        = "character"
	TypeSpecial          = "special"
	TypePower            = "power"
	TypeLocation         = "location"
	TypeMission          = "mission"
	TypeEvent            = "event"
	TypeAspect           = "aspect"
	TypeAdvancedUniverse = "advanced_universe"
	TypeTeamwork         = "teamwork"
	TypeAllyUniverse     = "ally_universe"
	TypeTraining         = "training"
	TypeBasicUniverse    = "basic_universe"
)

// CardTypes lists every catalog type in display order.
var CardTypes = []string{
	TypeCharacter,
	TypeLocation,
	TypeMission,
	TypeEvent,
	TypeSpecial,
	TypeAspect,
	TypeAdvancedUniverse,
	TypeTeamwork,
	TypeAllyUniverse,
	TypeTraining,
	TypeBasicUniverse,
	TypePower,
}

// IsCardType reports whether t is a known catalog type.
func IsCardType(t string) bool {
	for _, ct := range CardTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// Card is a static catalog entry. Which fields are set depends on CardType.
type Card struct {
	ID            string   `json:"id"`
	CardType      string   `json:"card_type"`
	Name          string   `json:"name"`
	CharacterName string   `json:"character_name,omitempty"`
	Universe      string   `json:"universe,omitempty"`
	ImagePath     string   `json:"image_path"`
	OnePerDeck    bool     `json:"one_per_deck"`
	ThreatLevel   int      `json:"threat_level,omitempty"`
	Energy        int      `json:"energy,omitempty"`
	Combat        int      `json:"combat,omitempty"`
	BruteForce    int      `json:"brute_force,omitempty"`
	Intelligence  int      `json:"intelligence,omitempty"`
	Icons         []string `json:"icons,omitempty"`
	PowerType     string   `json:"power_type,omitempty"`
	Value         int      `json:"value,omitempty"`
	ToUse         string   `json:"to_use,omitempty"`
	StatToUse     string   `json:"stat_to_use,omitempty"`
	StatTypeToUse string   `json:"stat_type_to_use,omitempty"`
	Type1         string   `json:"type_1,omitempty"`
	Type2         string   `json:"type_2,omitempty"`
	ValueToUse    string   `json:"value_to_use,omitempty"`
	Bonus         string   `json:"bonus,omitempty"`
	CardEffect    string   `json:"card_effect,omitempty"`
}
