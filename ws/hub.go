package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/amravati-mc/e-library-backend/services"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// ActiveUsersMessage is the only message shape this channel carries.
type ActiveUsersMessage struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// Hub owns the set of live connections and the broadcast timer. It is
// created in main, started with Run and torn down with Stop; there is no
// package-global state.
type Hub struct {
	DB *gorm.DB

	// One broadcast tick recomputes the active-session count once and
	// fans it out to every client.
	BroadcastInterval time.Duration

	// Per-connection keep-alive ping, detects dead peers.
	PingInterval time.Duration

	mutex   sync.RWMutex
	clients map[*websocket.Conn]*Client
	done    chan struct{}
	once    sync.Once
}

func NewHub(db *gorm.DB) *Hub {
	return &Hub{
		DB:                db,
		BroadcastInterval: 5 * time.Second,
		PingInterval:      30 * time.Second,
		clients:           make(map[*websocket.Conn]*Client),
		done:              make(chan struct{}),
	}
}

// Run drives the periodic active-user broadcast until Stop is called.
func (h *Hub) Run() {
	ticker := time.NewTicker(h.BroadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.BroadcastActiveUsers()
		}
	}
}

// Stop ends the broadcast loop and closes every connection.
func (h *Hub) Stop() {
	h.once.Do(func() { close(h.done) })

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn, client := range h.clients {
		close(client.Send)
		delete(h.clients, conn)
	}
}

// BroadcastActiveUsers queries the session count once and fans it out.
func (h *Hub) BroadcastActiveUsers() {
	h.mutex.RLock()
	empty := len(h.clients) == 0
	h.mutex.RUnlock()
	if empty {
		return
	}

	data, err := json.Marshal(ActiveUsersMessage{
		Type:  "active_users",
		Count: services.CountActiveSessions(h.DB),
	})
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Slow client; best-effort delivery only.
		}
	}
}

// Register adds a connection to the broadcast set and starts its pumps.
func (h *Hub) Register(conn *websocket.Conn) *Client {
	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.mutex.Lock()
	h.clients[conn] = client
	h.mutex.Unlock()

	go h.readPump(conn)
	go h.writePump(client)
	return client
}

// Unregister drops the connection from the broadcast set; its pumps and
// timers wind down with it.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if client, ok := h.clients[conn]; ok {
		close(client.Send)
		delete(h.clients, conn)
	}
}

func (h *Hub) Stats() map[string]interface{} {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return map[string]interface{}{"clients": len(h.clients)}
}

// readPump drains inbound frames; any read error means the peer is gone.
func (h *Hub) readPump(conn *websocket.Conn) {
	defer h.Unregister(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// writePump serializes writes for one connection and sends keep-alive
// pings on its own timer.
func (h *Hub) writePump(client *Client) {
	pinger := time.NewTicker(h.PingInterval)
	defer func() {
		pinger.Stop()
		client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
		client.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-pinger.C:
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
