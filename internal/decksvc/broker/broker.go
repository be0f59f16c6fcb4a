package broker

import (
	"encoding/json"
	"time"

	"github.com/avvvet/deckbuilder-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

type Broker struct {
	Conn       *nats.Conn
	InstanceId string
	// Deliver forwards an event to the user's open sockets.
	Deliver func(userID int64, msg *comm.WSMessage)
}

func NewBroker(conn *nats.Conn, instanceId string, fncDeliver func(int64, *comm.WSMessage)) *Broker {
	return &Broker{
		Conn:       conn,
		InstanceId: instanceId,
		Deliver:    fncDeliver,
	}
}

// consume deck events
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// publish raw payload
func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}

// PublishEvent sends a change event on the deck event subject. Failures are logged only.
func (b *Broker) PublishEvent(eventType string, userID int64, data any) {
	event, err := comm.NewEvent(eventType, userID, data, b.InstanceId, time.Now().UTC())
	if err != nil {
		log.Errorf("Error encoding %s event: %s", eventType, err)
		return
	}

	bytes, err := json.Marshal(event)
	if err != nil {
		log.Errorf("Error encoding %s event: %s", eventType, err)
		return
	}

	if b.Conn == nil {
		log.Warnf("NATS not connected, dropping %s event for user %d", eventType, userID)
		return
	}
	_ = b.Publish(comm.DeckEventsSubject, bytes)
}

// handleMessages forwards deck events to websocket clients
func (b *Broker) handleMessages(msgNats *nats.Msg) {
	event := &comm.Event{}
	if err := json.Unmarshal(msgNats.Data, event); err != nil {
		log.Errorf("Error decoding deck event %s", err)
		return
	}

	if event.UserID == 0 {
		log.Warnf("deck event %s without user", event.Type)
		return
	}

	b.Deliver(event.UserID, &comm.WSMessage{Type: event.Type, Data: event.Data})
}
