package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jpickering/rpsls-arena/internal/model"
)

// Handler consumes inbound frames and disconnects. Frames from one
// connection are delivered in order, on that connection's read
// goroutine.
type Handler interface {
	HandleMessage(ctx context.Context, connID string, env model.Envelope)
	HandleDisconnect(ctx context.Context, connID string)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser client is served from a different origin; access
	// control beyond that is out of scope here
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub owns the set of live connections and the named rooms used for
// lobby multicast. It implements the session coordinator's Transport.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[string]*Client

	handler Handler
	logger  *slog.Logger
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
		logger:  logger.With(slog.String("component", "ws")),
	}
}

// SetHandler wires the inbound event handler. Must be called before
// ServeWS accepts connections.
func (h *Hub) SetHandler(handler Handler) {
	h.handler = handler
}

// ServeWS upgrades an HTTP request to a game connection and runs its
// read loop until the peer goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := newClient(h, uuid.NewString(), conn)

	h.mu.Lock()
	h.clients[client.id] = client
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("connection opened",
		slog.String("conn_id", client.id),
		slog.Int("total_connections", total),
	)

	go client.writePump()
	client.readPump()
}

// unregister drops a closed connection from the hub and every room it
// joined, then notifies the handler.
func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.id]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.id)
	for room, members := range h.rooms {
		delete(members, client.id)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	close(client.send)
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("connection closed",
		slog.String("conn_id", client.id),
		slog.Int("total_connections", total),
	)

	if h.handler != nil {
		h.handler.HandleDisconnect(context.Background(), client.id)
	}
}

// JoinRoom adds a connection to a room
func (h *Hub) JoinRoom(connID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[connID]
	if !ok {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]*Client)
		h.rooms[room] = members
	}
	members[connID] = client
}

// LeaveRoom removes a connection from a room
func (h *Hub) LeaveRoom(connID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// ToRoom broadcasts an event to every connection in a room
func (h *Hub) ToRoom(room string, event model.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal event",
			slog.String("type", string(event.Type)),
			slog.Any("error", err),
		)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.rooms[room] {
		client.enqueue(data)
	}
}

// ToConn sends an event to a single connection
func (h *Hub) ToConn(connID string, event model.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal event",
			slog.String("type", string(event.Type)),
			slog.Any("error", err),
		)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if client, ok := h.clients[connID]; ok {
		client.enqueue(data)
	}
}

// ConnectionCount returns the number of live connections
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RoomSize returns the number of connections in a room
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
