package notify

import (
	"sync"
	"time"

	"github.com/avvvet/deckbuilder-services/internal/comm"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

type client struct {
	userID int64
	conn   *websocket.Conn
	mu     sync.Mutex // gorilla allows one concurrent writer
}

// writeWait bounds a single write so one stalled client cannot hold up delivery.
const writeWait = 10 * time.Second

func (c *client) write(msg *comm.WSMessage, wait time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(wait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// Hub tracks open websocket connections by socket id.
type Hub struct {
	connMap   sync.Map // socketId -> *client
	writeWait time.Duration
}

func NewHub() *Hub {
	return &Hub{writeWait: writeWait}
}

func (h *Hub) StoreConnection(socketId string, userID int64, conn *websocket.Conn) {
	h.connMap.Store(socketId, &client{userID: userID, conn: conn})
}

func (h *Hub) HandleDisconnect(socketId string) {
	h.connMap.Delete(socketId)
}

// UserSockets returns the socket ids open for userID.
func (h *Hub) UserSockets(userID int64) []string {
	var sockets []string
	h.connMap.Range(func(key, value any) bool {
		if value.(*client).userID == userID {
			sockets = append(sockets, key.(string))
		}
		return true
	})
	return sockets
}

// Send writes msg to a single socket. A failed or timed out write drops the socket.
func (h *Hub) Send(socketId string, msg *comm.WSMessage) {
	value, ok := h.connMap.Load(socketId)
	if !ok {
		return
	}
	c := value.(*client)
	if err := c.write(msg, h.writeWait); err != nil {
		log.Errorf("Failed to write to socket %s, dropping it: %v", socketId, err)
		h.HandleDisconnect(socketId)
		c.conn.Close()
	}
}

// SendToUser writes msg to every socket the user has open.
func (h *Hub) SendToUser(userID int64, msg *comm.WSMessage) {
	for _, socketId := range h.UserSockets(userID) {
		h.Send(socketId, msg)
	}
}
