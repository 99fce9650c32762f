package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/amterp/calcus/internal/service"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// Message types sent to clients.
const (
	MessageConnected      = "connected"
	MessageSessionChange  = "session_change"
	MessageSettingsChange = "settings_change"
)

// ClientTracker is told when websocket clients come and go.
type ClientTracker interface {
	ClientConnected()
	ClientDisconnected()
}

// WebSocketHub manages WebSocket connections and broadcasts session and
// settings changes.
type WebSocketHub struct {
	mu      sync.RWMutex
	clients map[*WebSocketClient]bool
	tracker ClientTracker
	logger  *slog.Logger
}

// WebSocketClient represents a connected WebSocket client.
type WebSocketClient struct {
	id   string
	hub  *WebSocketHub
	conn *websocket.Conn
	send chan []byte
}

// WebSocketMessage is the JSON message sent to clients.
type WebSocketMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// NewWebSocketHub creates a new WebSocket hub. tracker may be nil.
func NewWebSocketHub(logger *slog.Logger, tracker ClientTracker) *WebSocketHub {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebSocketHub{
		clients: make(map[*WebSocketClient]bool),
		tracker: tracker,
		logger:  logger,
	}
}

// OnSessionChange implements service.Subscriber.
func (h *WebSocketHub) OnSessionChange(change service.Change) {
	h.publish(MessageSessionChange, change)
}

// OnSettingsChange implements SettingsSubscriber.
func (h *WebSocketHub) OnSettingsChange(change SettingsChange) {
	h.publish(MessageSettingsChange, change)
}

func (h *WebSocketHub) publish(msgType string, payload any) {
	data, err := json.Marshal(WebSocketMessage{Type: msgType, Data: payload})
	if err != nil {
		h.logger.Warn("failed to marshal websocket message", "type", msgType, "error", err)
		return
	}
	h.broadcast(data)
}

// broadcast sends a message to all connected clients.
func (h *WebSocketHub) broadcast(data []byte) {
	h.mu.RLock()
	clients := make([]*WebSocketClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.trySend(client, data)
	}
}

// trySend attempts to send data to a client, handling the case where
// the client's channel was closed between snapshot and send.
func (h *WebSocketHub) trySend(client *WebSocketClient, data []byte) {
	defer func() {
		// Channel was closed by removeClient; client already cleaned up
		_ = recover()
	}()

	select {
	case client.send <- data:
	default:
		// Client buffer full, close it
		h.logger.Warn("websocket client too slow, dropping", "client", client.id)
		h.removeClient(client)
	}
}

func (h *WebSocketHub) addClient(client *WebSocketClient) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	if h.tracker != nil {
		h.tracker.ClientConnected()
	}
	h.logger.Info("websocket client connected", "client", client.id)
}

func (h *WebSocketHub) removeClient(client *WebSocketClient) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()

	if ok {
		if h.tracker != nil {
			h.tracker.ClientDisconnected()
		}
		h.logger.Info("websocket client disconnected", "client", client.id)
	}
}

// ServeWS handles WebSocket connection requests.
func (h *WebSocketHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &WebSocketClient{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}

	// Queue the welcome message before the client becomes visible to
	// broadcasts so it is always the first frame
	welcome := WebSocketMessage{
		Type: MessageConnected,
		Data: map[string]string{"client_id": client.id},
	}
	if data, err := json.Marshal(welcome); err == nil {
		client.send <- data
	}

	h.addClient(client)

	// Start read/write goroutines
	go client.writePump()
	go client.readPump()
}

// readPump reads messages from the WebSocket connection.
// We don't expect client messages, but we need to read to detect disconnects.
func (c *WebSocketClient) readPump() {
	defer func() {
		// Only call removeClient here; closing send signals writePump to exit
		// and writePump is responsible for closing the connection
		c.hub.removeClient(c)
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read error", "client", c.id, "error", err)
			}
			break
		}
	}
}

// writePump writes messages to the WebSocket connection.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(30 * time.Second) // Ping interval
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One frame per message so every frame is a complete JSON document
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *WebSocketHub) Close() {
	h.mu.RLock()
	clients := make([]*WebSocketClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.removeClient(client)
	}
}
