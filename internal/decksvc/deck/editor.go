package deck

import (
	"errors"
	"fmt"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
)

var (
	ErrUnknownCard        = errors.New("unknown card")
	ErrNotInDeck          = errors.New("card is not in the deck")
	ErrOnePerDeck         = errors.New("card is one per deck and already in the deck")
	ErrDuplicateCharacter = errors.New("character is already in the deck")
	ErrNotAVariant        = errors.New("card is not an alternate art of the deck entry")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidUnit        = errors.New("unit index out of range")
)

// Editor mutates a deck's card entries against a catalog.
type Editor struct {
	cat         *Catalog
	deck        *models.Deck
	maxQuantity int
}

func NewEditor(cat *Catalog, d *models.Deck) *Editor {
	return &Editor{cat: cat, deck: d, maxQuantity: DefaultRules().MaxQuantity}
}

// WithMaxQuantity caps the units a single entry may hold.
func (e *Editor) WithMaxQuantity(n int) *Editor {
	if n > 0 {
		e.maxQuantity = n
	}
	return e
}

// find returns the index of the entry for cardID's base card, or -1.
func (e *Editor) find(cardID string) int {
	baseID := cardID
	if base, ok := e.cat.BaseOf(cardID); ok {
		baseID = base.ID
	}
	for i, entry := range e.deck.Cards {
		if entry.CardID == baseID || entry.CardID == cardID {
			return i
		}
	}
	return -1
}

// opdConflict reports whether another printing sharing card's OPD key is already present.
func (e *Editor) opdConflict(card *models.Card) bool {
	key := OnePerDeckKey(card)
	for _, entry := range e.deck.Cards {
		other, ok := e.cat.Get(entry.CardID)
		if !ok {
			continue
		}
		if OnePerDeckKey(other) == key {
			return true
		}
	}
	return false
}

// Selections returns one art choice per unit; "" means the base art.
func Selections(entry models.DeckCardEntry) []string {
	if entry.Quantity <= 0 {
		return nil
	}
	sel := make([]string, entry.Quantity)
	if entry.Quantity == 1 {
		sel[0] = entry.SelectedAlternateCardID
		return sel
	}
	copy(sel, entry.SelectedAlternateCardIDs)
	if len(entry.SelectedAlternateCardIDs) == 0 {
		sel[0] = entry.SelectedAlternateCardID
	}
	return sel
}

func setSelections(entry *models.DeckCardEntry, sel []string) {
	entry.SelectedAlternateCardID = ""
	entry.SelectedAlternateCardIDs = nil
	if len(sel) == 1 {
		entry.SelectedAlternateCardID = sel[0]
		return
	}
	for _, s := range sel {
		if s != "" {
			entry.SelectedAlternateCardIDs = sel
			return
		}
	}
}

// AddCard adds one unit of cardID. A variant id resolves to its base entry
// and is recorded as that unit's art. alternateID, when set, overrides it.
func (e *Editor) AddCard(cardID, alternateID string) error {
	card, ok := e.cat.Get(cardID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCard, cardID)
	}
	base, _ := e.cat.BaseOf(cardID)

	selected := ""
	if cardID != base.ID {
		selected = cardID
	}
	if alternateID != "" && alternateID != base.ID {
		if !e.cat.SameCard(base.ID, alternateID) {
			return fmt.Errorf("%w: %s", ErrNotAVariant, alternateID)
		}
		selected = alternateID
	}

	idx := e.find(base.ID)
	if e.cat.IsOnePerDeck(base.ID) && e.opdConflict(card) {
		return fmt.Errorf("%w: %s", ErrOnePerDeck, base.Name)
	}
	if base.CardType == models.TypeCharacter && idx >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateCharacter, base.Name)
	}

	if idx < 0 {
		e.deck.Cards = append(e.deck.Cards, models.DeckCardEntry{
			CardID:                  base.ID,
			Type:                    base.CardType,
			Quantity:                1,
			SelectedAlternateCardID: selected,
		})
		return nil
	}

	entry := &e.deck.Cards[idx]
	if entry.Quantity >= e.maxQuantity {
		return fmt.Errorf("%w: more than %d copies", ErrInvalidQuantity, e.maxQuantity)
	}
	sel := append(Selections(*entry), selected)
	entry.Quantity++
	setSelections(entry, sel)
	return nil
}

// RemoveCard removes one unit, dropping the last unit's art choice.
func (e *Editor) RemoveCard(cardID string) error {
	idx := e.find(cardID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotInDeck, cardID)
	}
	entry := &e.deck.Cards[idx]
	if entry.Quantity <= 1 {
		e.deck.Cards = append(e.deck.Cards[:idx], e.deck.Cards[idx+1:]...)
		return nil
	}
	sel := Selections(*entry)
	entry.Quantity--
	setSelections(entry, sel[:entry.Quantity])
	return nil
}

// SetQuantity sets the unit count, adding the card when absent; 0 removes it.
func (e *Editor) SetQuantity(cardID string, n int) error {
	if n < 0 || n > e.maxQuantity {
		return fmt.Errorf("%w: %d (max %d)", ErrInvalidQuantity, n, e.maxQuantity)
	}
	idx := e.find(cardID)
	if n == 0 {
		if idx >= 0 {
			e.deck.Cards = append(e.deck.Cards[:idx], e.deck.Cards[idx+1:]...)
		}
		return nil
	}

	base, ok := e.cat.BaseOf(cardID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCard, cardID)
	}
	if n > 1 && e.cat.IsOnePerDeck(base.ID) {
		return fmt.Errorf("%w: %s", ErrOnePerDeck, base.Name)
	}
	if n > 1 && base.CardType == models.TypeCharacter {
		return fmt.Errorf("%w: %s", ErrDuplicateCharacter, base.Name)
	}

	if idx < 0 {
		if err := e.AddCard(cardID, ""); err != nil {
			return err
		}
		idx = e.find(cardID)
	}

	entry := &e.deck.Cards[idx]
	sel := Selections(*entry)
	for len(sel) < n {
		sel = append(sel, "")
	}
	entry.Quantity = n
	setSelections(entry, sel[:n])
	return nil
}

// SelectAlternate sets the art for one unit. An empty altID, or the base id, selects the base art.
func (e *Editor) SelectAlternate(cardID string, unit int, altID string) error {
	idx := e.find(cardID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotInDeck, cardID)
	}
	entry := &e.deck.Cards[idx]
	if unit < 0 || unit >= entry.Quantity {
		return fmt.Errorf("%w: %d", ErrInvalidUnit, unit)
	}
	if altID == entry.CardID {
		altID = ""
	}
	if altID != "" && !e.cat.SameCard(entry.CardID, altID) {
		return fmt.Errorf("%w: %s", ErrNotAVariant, altID)
	}
	sel := Selections(*entry)
	sel[unit] = altID
	setSelections(entry, sel)
	return nil
}

func (e *Editor) SetExcludeFromDraw(cardID string, exclude bool) error {
	idx := e.find(cardID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotInDeck, cardID)
	}
	e.deck.Cards[idx].ExcludeFromDraw = exclude
	return nil
}
