package deck

import (
	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
)

// testCards is a small catalog covering every card type plus alternate printings.
func testCards() []*models.Card {
	return []*models.Card{
		{ID: "char-robin-hood", CardType: models.TypeCharacter, Name: "Robin Hood", Universe: "ERB", ImagePath: "characters/robin_hood.webp",
			ThreatLevel: 19, Energy: 5, Combat: 6, BruteForce: 3, Intelligence: 4},
		{ID: "char-robin-hood-alt", CardType: models.TypeCharacter, Name: "Robin Hood", Universe: "ERB", ImagePath: "characters/alternate/robin_hood.webp",
			ThreatLevel: 19, Energy: 5, Combat: 6, BruteForce: 3, Intelligence: 4},
		{ID: "char-leonidas", CardType: models.TypeCharacter, Name: "Leonidas", Universe: "ERB", ImagePath: "characters/leonidas.webp",
			ThreatLevel: 20, Energy: 3, Combat: 8, BruteForce: 6, Intelligence: 3},
		{ID: "char-dracula", CardType: models.TypeCharacter, Name: "Dracula", Universe: "ERB", ImagePath: "characters/dracula.webp",
			ThreatLevel: 18, Energy: 7, Combat: 4, BruteForce: 6, Intelligence: 5},
		{ID: "char-zorro", CardType: models.TypeCharacter, Name: "Zorro", Universe: "ERB", ImagePath: "characters/zorro.webp",
			ThreatLevel: 17, Energy: 4, Combat: 7, BruteForce: 3, Intelligence: 5},
		{ID: "char-tarzan", CardType: models.TypeCharacter, Name: "Tarzan", Universe: "ERB", ImagePath: "characters/tarzan.webp",
			ThreatLevel: 18, Energy: 3, Combat: 6, BruteForce: 8, Intelligence: 2},
		{ID: "loc-sherwood", CardType: models.TypeLocation, Name: "Sherwood Forest", Universe: "ERB", ImagePath: "locations/sherwood.webp", ThreatLevel: 2},
		{ID: "loc-barsoom", CardType: models.TypeLocation, Name: "Barsoom", Universe: "ERB", ImagePath: "locations/barsoom.webp", ThreatLevel: 1},
		{ID: "special-archery", CardType: models.TypeSpecial, Name: "Archery Contest", CharacterName: "Robin Hood", Universe: "ERB",
			ImagePath: "specials/archery.webp", Icons: []string{"Combat"}},
		{ID: "special-merry-men", CardType: models.TypeSpecial, Name: "Merry Men", CharacterName: "Robin Hood", Universe: "ERB",
			ImagePath: "specials/merry_men.webp", OnePerDeck: true, Icons: []string{"Energy", "Combat"}},
		{ID: "special-merry-men-alt", CardType: models.TypeSpecial, Name: "Merry Men", CharacterName: "Robin Hood", Universe: "ERB",
			ImagePath: "specials/merry_men_alt.webp", OnePerDeck: true, Icons: []string{"Energy", "Combat"}},
		{ID: "special-blood", CardType: models.TypeSpecial, Name: "Children of the Night", CharacterName: "Dracula", Universe: "ERB",
			ImagePath: "specials/children.webp", Icons: []string{"Any-Power"}},
		{ID: "special-any", CardType: models.TypeSpecial, Name: "Heroic Stand", CharacterName: "Any Character", Universe: "ERB",
			ImagePath: "specials/heroic.webp", Icons: []string{"Multi Power"}},
		{ID: "event-storm", CardType: models.TypeEvent, Name: "Storm", Universe: "ERB", ImagePath: "events/storm.webp", OnePerDeck: true},
		{ID: "mission-quest", CardType: models.TypeMission, Name: "The Quest", Universe: "ERB", ImagePath: "missions/quest.webp"},
		{ID: "aspect-hero", CardType: models.TypeAspect, Name: "Heroism", Universe: "ERB", ImagePath: "aspects/heroism.webp", Icons: []string{"Intelligence"}},
		{ID: "au-bow", CardType: models.TypeAdvancedUniverse, Name: "Longbow", CharacterName: "Robin Hood", Universe: "ERB",
			ImagePath: "au/longbow.webp", Icons: []string{"Combat", "Brute Force"}},
		{ID: "tw-6-combat", CardType: models.TypeTeamwork, Name: "Teamwork", ToUse: "6 Combat", Universe: "ERB", ImagePath: "teamwork/6_combat.webp"},
		{ID: "ally-little-john", CardType: models.TypeAllyUniverse, Name: "Little John", StatToUse: "5 or less", StatTypeToUse: "Brute Force",
			Universe: "ERB", ImagePath: "allies/little_john.webp"},
		{ID: "ally-little-john-combat", CardType: models.TypeAllyUniverse, Name: "Little John", StatToUse: "7 or higher", StatTypeToUse: "Combat",
			Universe: "ERB", ImagePath: "allies/little_john_combat.webp"},
		{ID: "training-spartan", CardType: models.TypeTraining, Name: "Spartan Training", Type1: "Energy", Type2: "Brute Force", Bonus: "+4",
			Universe: "ERB", ImagePath: "training/spartan.webp"},
		{ID: "bu-secret", CardType: models.TypeBasicUniverse, Name: "Secret Identity", Type1: "Intelligence", ValueToUse: "6 or greater", Bonus: "+2",
			Universe: "ERB", ImagePath: "basic/secret.webp"},
		{ID: "power-5-energy", CardType: models.TypePower, Name: "5 - Energy", Value: 5, PowerType: "Energy", ImagePath: "power/5_energy.webp"},
		{ID: "power-8-intelligence", CardType: models.TypePower, Name: "8 - Intelligence", Value: 8, PowerType: "Intelligence", ImagePath: "power/8_intelligence.webp"},
		{ID: "power-3-multi", CardType: models.TypePower, Name: "3 - Multi-Power", Value: 3, PowerType: "Multi-Power", ImagePath: "power/3_multi.webp"},
		{ID: "power-4-any", CardType: models.TypePower, Name: "4 - Any-Power", Value: 4, PowerType: "Any-Power", ImagePath: "power/4_any.webp"},
	}
}

func testCatalog() *Catalog {
	return NewCatalog(testCards())
}
