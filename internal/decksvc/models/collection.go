package models

import "time"

// CollectionCardEntry is one owned card printing.
type CollectionCardEntry struct {
	UserID    int64     `json:"-"`
	CardID    string    `json:"card_id"`
	CardType  string    `json:"card_type"`
	Quantity  int       `json:"quantity"`
	ImagePath string    `json:"image_path"`
	Name      string    `json:"name,omitempty"` // joined from the catalog on read
	UpdatedAt time.Time `json:"updated_at"`
}
