package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avvvet/deckbuilder-services/internal/comm"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "activity"
	DefaultTTL     = 30 * 24 * time.Hour
)

// Activity is one stored deck or collection event.
type Activity struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Type       string                 `bson:"type" json:"type"`
	UserID     int64                  `bson:"user_id" json:"user_id"`
	Data       map[string]interface{} `bson:"data" json:"data"`
	Source     string                 `bson:"source,omitempty" json:"source,omitempty"`
	OccurredAt time.Time              `bson:"occurred_at" json:"occurred_at"`
	ExpiresAt  time.Time              `bson:"expires_at" json:"expires_at"`
}

// FromEvent converts an event into an activity that expires ttl after now.
func FromEvent(event *comm.Event, ttl time.Duration, now time.Time) (*Activity, error) {
	a := &Activity{
		Type:       event.Type,
		UserID:     event.UserID,
		Data:       map[string]interface{}{},
		Source:     event.Source,
		OccurredAt: event.Timestamp,
		ExpiresAt:  now.Add(ttl),
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = now
	}
	if len(event.Data) > 0 && string(event.Data) != "null" {
		if err := json.Unmarshal(event.Data, &a.Data); err != nil {
			return nil, fmt.Errorf("event data is not an object: %w", err)
		}
	}
	return a, nil
}

type ActivityStore struct {
	collection *mongo.Collection
	ttl        time.Duration
}

func NewActivityStore(db *mongo.Database, ttl time.Duration) *ActivityStore {
	return &ActivityStore{collection: db.Collection(CollectionName), ttl: ttl}
}

func (s *ActivityStore) Record(ctx context.Context, event *comm.Event) error {
	a, err := FromEvent(event, s.ttl, time.Now().UTC())
	if err != nil {
		return err
	}
	if _, err := s.collection.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("could not store activity: %w", err)
	}
	return nil
}

// Recent returns the user's latest activities, newest first.
func (s *ActivityStore) Recent(ctx context.Context, userID int64, limit int64) ([]*Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: -1}}).SetLimit(limit)
	cur, err := s.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer cur.Close(ctx)

	out := []*Activity{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode activity: %w", err)
	}
	return out, nil
}
