package broker

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/avvvet/deckbuilder-services/internal/comm"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMessagesDeliversToOwner(t *testing.T) {
	var gotUser int64
	var got *comm.WSMessage
	b := NewBroker(nil, "decksvc-test", func(userID int64, msg *comm.WSMessage) {
		gotUser = userID
		got = msg
	})

	event, err := comm.NewEvent("deck-saved", 42, map[string]string{"id": "d1"}, "decksvc-test", time.Now())
	require.NoError(t, err)
	raw, err := json.Marshal(event)
	require.NoError(t, err)

	b.handleMessages(&nats.Msg{Data: raw})

	require.NotNil(t, got)
	assert.Equal(t, int64(42), gotUser)
	assert.Equal(t, "deck-saved", got.Type)
	assert.JSONEq(t, `{"id":"d1"}`, string(got.Data))
}

func TestHandleMessagesDropsBadEvents(t *testing.T) {
	calls := 0
	b := NewBroker(nil, "decksvc-test", func(int64, *comm.WSMessage) { calls++ })

	b.handleMessages(&nats.Msg{Data: []byte("not json")})
	b.handleMessages(&nats.Msg{Data: []byte(`{"type":"deck-saved","data":{}}`)})

	assert.Zero(t, calls)
}

func TestPublishEventWithoutConnection(t *testing.T) {
	b := NewBroker(nil, "decksvc-test", nil)
	assert.NotPanics(t, func() {
		b.PublishEvent("deck-deleted", 1, map[string]string{"id": "d1"})
	})
}
