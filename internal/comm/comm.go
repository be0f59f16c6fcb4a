package comm

import (
	"encoding/json"
	"time"
)

// DeckEventsSubject carries deck and collection change events between services.
const DeckEventsSubject = "deck.events"

type WSMessage struct {
	Type     string          `json:"type"` // e.g. "deck-saved", "pong"
	Data     json.RawMessage `json:"data,omitempty"`
	SocketId string          `json:"socketid,omitempty"`
}

// Event is published on DeckEventsSubject.
type Event struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	UserID    int64           `json:"user_id"`
	Source    string          `json:"source,omitempty"` // publishing service instance
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent marshals data into an event stamped with now.
func NewEvent(eventType string, userID int64, data any, source string, now time.Time) (*Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Data:      raw,
		UserID:    userID,
		Source:    source,
		Timestamp: now,
	}, nil
}
