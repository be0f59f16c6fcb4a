package models

import "time"

// DeckCardEntry is one distinct base card in a deck.
// SelectedAlternateCardIDs holds one art choice per unit once Quantity > 1.
type DeckCardEntry struct {
	CardID                   string   `json:"cardId"`
	Type                     string   `json:"type"`
	Quantity                 int      `json:"quantity"`
	SelectedAlternateCardID  string   `json:"selectedAlternateCardId,omitempty"`
	SelectedAlternateCardIDs []string `json:"selectedAlternateCardIds,omitempty"`
	ExcludeFromDraw          bool     `json:"exclude_from_draw,omitempty"`
}

type Deck struct {
	ID          string          `json:"id"`
	UserID      int64           `json:"user_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	IsLimited   bool            `json:"is_limited"`
	Cards       []DeckCardEntry `json:"cards"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
