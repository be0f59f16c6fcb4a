package broker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avvvet/deckbuilder-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Recorder persists events.
type Recorder interface {
	Record(ctx context.Context, event *comm.Event) error
}

type Broker struct {
	Conn     *nats.Conn
	Recorder Recorder
}

func NewBroker(conn *nats.Conn, recorder Recorder) *Broker {
	return &Broker{Conn: conn, Recorder: recorder}
}

// consume deck events, shared across activity instances
func (b *Broker) QueueSubscribe(topic, queueGroup string) (*nats.Subscription, error) {
	sub, err := b.Conn.QueueSubscribe(topic, queueGroup, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (b *Broker) handleMessages(msgNats *nats.Msg) {
	event := &comm.Event{}
	if err := json.Unmarshal(msgNats.Data, event); err != nil {
		log.Errorf("Error decoding deck event %s", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := b.Recorder.Record(ctx, event); err != nil {
		log.Errorf("Error [Recorder.Record] %s event for user %d: %s", event.Type, event.UserID, err)
		return
	}
	log.Debugf("recorded %s for user %d", event.Type, event.UserID)
}
