package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/avvvet/deckbuilder-services/internal/comm"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// HandleWebSocket streams the caller's deck and collection events.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	socketId := uuid.New().String()
	h.hub.StoreConnection(socketId, user.UserId, conn)

	log.Infof("New WebSocket connection established: %s for user %d", socketId, user.UserId)

	go h.handleConnection(conn, socketId)
}

// handleConnection reads until the client goes away. Clients only send pings.
func (h *Handler) handleConnection(conn *websocket.Conn, socketId string) {
	defer func() {
		log.Infof("Closing WebSocket connection: %s", socketId)
		h.hub.HandleDisconnect(socketId)
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Errorf("WebSocket unexpected close error for socket %s: %v", socketId, err)
			}
			return
		}

		message := &comm.WSMessage{}
		if err := json.Unmarshal(raw, message); err != nil {
			h.hub.Send(socketId, &comm.WSMessage{Type: "error", Data: json.RawMessage(`"invalid message format"`)})
			continue
		}

		switch message.Type {
		case "ping":
			h.hub.Send(socketId, &comm.WSMessage{Type: "pong"})
		default:
			log.Warnf("unknown event received: %s", message.Type)
		}
	}
}
