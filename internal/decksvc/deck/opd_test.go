package deck

import (
	"testing"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnePerDeckKey(t *testing.T) {
	special := &models.Card{CardType: models.TypeSpecial, Name: " Merry  Men ", CharacterName: "Robin Hood", Universe: "ERB"}
	assert.Equal(t, "special|merry men|robin hood|erb", OnePerDeckKey(special))

	event := &models.Card{CardType: models.TypeEvent, Name: "Storm", CharacterName: "ignored", Universe: "ERB"}
	assert.Equal(t, "event|storm|erb", OnePerDeckKey(event))
}

func TestOnePerDeckKeySharedByVariants(t *testing.T) {
	cat := testCatalog()

	for _, id := range []string{"special-merry-men", "char-robin-hood"} {
		variants := cat.VariantsOf(id)
		require.Greater(t, len(variants), 1, id)
		key := OnePerDeckKey(variants[0])
		for _, v := range variants[1:] {
			assert.Equal(t, key, OnePerDeckKey(v), v.ID)
		}
	}
}

func TestOnePerDeckVariantsAreMutuallyExclusive(t *testing.T) {
	cat := testCatalog()

	t.Run("alternate after base", func(t *testing.T) {
		d := &models.Deck{}
		ed := NewEditor(cat, d)
		require.NoError(t, ed.AddCard("special-merry-men", ""))
		assert.ErrorIs(t, ed.AddCard("special-merry-men-alt", ""), ErrOnePerDeck)
		require.Len(t, d.Cards, 1)
		assert.Equal(t, 1, d.Cards[0].Quantity)
	})

	t.Run("base after alternate", func(t *testing.T) {
		d := &models.Deck{}
		ed := NewEditor(cat, d)
		require.NoError(t, ed.AddCard("special-merry-men-alt", ""))
		assert.ErrorIs(t, ed.AddCard("special-merry-men", ""), ErrOnePerDeck)
		require.Len(t, d.Cards, 1)
		assert.Equal(t, "special-merry-men", d.Cards[0].CardID)
		assert.Equal(t, "special-merry-men-alt", d.Cards[0].SelectedAlternateCardID)
	})

	t.Run("quantity above one", func(t *testing.T) {
		d := &models.Deck{}
		ed := NewEditor(cat, d)
		assert.ErrorIs(t, ed.SetQuantity("event-storm", 2), ErrOnePerDeck)
		assert.Empty(t, d.Cards)
	})

	t.Run("validation catches hand-built duplicates", func(t *testing.T) {
		d := &models.Deck{Cards: []models.DeckCardEntry{
			{CardID: "special-merry-men", Type: models.TypeSpecial, Quantity: 1},
			{CardID: "special-merry-men-alt", Type: models.TypeSpecial, Quantity: 1},
		}}
		res := Validate(cat, DefaultRules(), d)
		assert.Contains(t, res.Errors, "Merry Men is one per deck but appears 2 times")
	})
}
