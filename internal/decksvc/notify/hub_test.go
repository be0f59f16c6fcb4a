package notify

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avvvet/deckbuilder-services/internal/comm"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendToUser(t *testing.T) {
	hub := NewHub()
	registered := make(chan string, 2)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		socketId := r.URL.Query().Get("socket")
		userID := int64(7)
		if r.URL.Query().Get("user") == "other" {
			userID = 8
		}
		hub.StoreConnection(socketId, userID, conn)
		registered <- socketId
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	mine, _, err := websocket.DefaultDialer.Dial(wsURL+"?socket=a", nil)
	require.NoError(t, err)
	defer mine.Close()
	other, _, err := websocket.DefaultDialer.Dial(wsURL+"?socket=b&user=other", nil)
	require.NoError(t, err)
	defer other.Close()
	<-registered
	<-registered

	assert.Equal(t, []string{"a"}, hub.UserSockets(7))

	hub.SendToUser(7, &comm.WSMessage{Type: "deck-saved", Data: []byte(`{"id":"d1"}`)})

	require.NoError(t, mine.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got comm.WSMessage
	require.NoError(t, mine.ReadJSON(&got))
	assert.Equal(t, "deck-saved", got.Type)
	assert.JSONEq(t, `{"id":"d1"}`, string(got.Data))

	require.NoError(t, other.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err = other.ReadMessage()
	assert.Error(t, err, "other users receive nothing")

	hub.HandleDisconnect("a")
	assert.Empty(t, hub.UserSockets(7))
}

func TestStalledSocketIsDropped(t *testing.T) {
	hub := NewHub()
	hub.writeWait = 50 * time.Millisecond
	registered := make(chan struct{}, 1)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.StoreConnection("stalled", 7, conn)
		registered <- struct{}{}
	}))
	defer srv.Close()

	// the client never reads, so socket buffers fill and writes block
	stalled, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer stalled.Close()
	<-registered

	payload := []byte(`"` + strings.Repeat("x", 1<<20) + `"`)
	deadline := time.Now().Add(10 * time.Second)
	for len(hub.UserSockets(7)) > 0 && time.Now().Before(deadline) {
		start := time.Now()
		hub.SendToUser(7, &comm.WSMessage{Type: "deck-saved", Data: payload})
		assert.Less(t, time.Since(start), 2*time.Second, "a write never blocks past its deadline")
	}
	assert.Empty(t, hub.UserSockets(7))
}
