package deck

import (
	"regexp"
	"sort"
	"strings"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
)

var altImageRe = regexp.MustCompile(`(?i)(/alternate/|/alt/|\(alt[^)]*\)|[_-]alt(ernate)?[_-]?\d*(\.[a-z0-9]+)?$)`)

// IsAlternateImage reports whether an image path names an alternate printing.
func IsAlternateImage(path string) bool {
	return altImageRe.MatchString(path)
}

// Catalog is the read-only card database with alternate-art groups resolved.
type Catalog struct {
	cards  map[string]*models.Card
	order  []string            // ids sorted by type order, then name, then id
	groups map[string][]string // identity key -> ids, base first
	base   map[string]string   // id -> base id
}

// NewCatalog indexes cards. Cards with an empty id are ignored; later
// duplicates of an id replace earlier ones.
func NewCatalog(cards []*models.Card) *Catalog {
	c := &Catalog{
		cards:  make(map[string]*models.Card, len(cards)),
		groups: make(map[string][]string),
		base:   make(map[string]string, len(cards)),
	}
	for _, card := range cards {
		if card == nil || card.ID == "" {
			continue
		}
		c.cards[card.ID] = card
	}

	for id, card := range c.cards {
		key := identityKey(card)
		c.groups[key] = append(c.groups[key], id)
		c.order = append(c.order, id)
	}

	for key, ids := range c.groups {
		sort.Slice(ids, func(i, j int) bool {
			ai := IsAlternateImage(c.cards[ids[i]].ImagePath)
			aj := IsAlternateImage(c.cards[ids[j]].ImagePath)
			if ai != aj {
				return !ai
			}
			return ids[i] < ids[j]
		})
		c.groups[key] = ids
		for _, id := range ids {
			c.base[id] = ids[0]
		}
	}

	rank := make(map[string]int, len(models.CardTypes))
	for i, t := range models.CardTypes {
		rank[t] = i
	}
	sort.Slice(c.order, func(i, j int) bool {
		a, b := c.cards[c.order[i]], c.cards[c.order[j]]
		if rank[a.CardType] != rank[b.CardType] {
			return rank[a.CardType] < rank[b.CardType]
		}
		if !strings.EqualFold(a.Name, b.Name) {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
		return a.ID < b.ID
	})

	return c
}

func (c *Catalog) Len() int {
	return len(c.cards)
}

func (c *Catalog) Get(id string) (*models.Card, bool) {
	card, ok := c.cards[id]
	return card, ok
}

// All returns every card in display order.
func (c *Catalog) All() []*models.Card {
	out := make([]*models.Card, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.cards[id])
	}
	return out
}

// ByType returns the cards of one type in display order.
func (c *Catalog) ByType(cardType string) []*models.Card {
	var out []*models.Card
	for _, id := range c.order {
		if card := c.cards[id]; card.CardType == cardType {
			out = append(out, card)
		}
	}
	return out
}

// BaseOf resolves any printing to the canonical base card.
func (c *Catalog) BaseOf(id string) (*models.Card, bool) {
	baseID, ok := c.base[id]
	if !ok {
		return nil, false
	}
	return c.cards[baseID], true
}

func (c *Catalog) IsBase(id string) bool {
	return c.base[id] == id
}

// VariantsOf returns every printing sharing id's identity, base first.
func (c *Catalog) VariantsOf(id string) []*models.Card {
	card, ok := c.cards[id]
	if !ok {
		return nil
	}
	ids := c.groups[identityKey(card)]
	out := make([]*models.Card, 0, len(ids))
	for _, v := range ids {
		out = append(out, c.cards[v])
	}
	return out
}

// SameCard reports whether a and b are printings of the same logical card.
func (c *Catalog) SameCard(a, b string) bool {
	ba, ok := c.base[a]
	if !ok {
		return false
	}
	return ba == c.base[b]
}

// IsOnePerDeck is true when any printing of the card is flagged one per deck.
func (c *Catalog) IsOnePerDeck(id string) bool {
	for _, v := range c.VariantsOf(id) {
		if v.OnePerDeck {
			return true
		}
	}
	return false
}
