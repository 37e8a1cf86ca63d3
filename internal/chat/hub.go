// Package chat is a broadcast websocket chat server.
package chat

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Welcome is sent to every client right after it connects.
	Welcome = "Welcome to the chat!"

	sendBuffer   = 16
	writeTimeout = 10 * time.Second
	// CloseMessageCode is the normal closure status sent on shutdown.
	CloseMessageCode = websocket.CloseNormalClosure
)

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub upgrades HTTP requests to websockets and relays every text message
// to all other connected clients. A message is dropped for a client whose
// send buffer is full.
type Hub struct {
	log      zerolog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
	wg      sync.WaitGroup
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log: log.With().Str("component", "chat").Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP handles one client for the lifetime of its connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("upgrade failed")
		return
	}

	c := &client{id: r.RemoteAddr, conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.register(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeTimeout))
		_ = conn.Close()
		return
	}
	h.log.Info().Str("client", c.id).Msg("a user connected")

	h.wg.Add(1)
	go h.writeLoop(c)
	c.send <- []byte(Welcome)

	h.readLoop(c)

	h.log.Info().Str("client", c.id).Msg("user disconnected")
	h.unregister(c)
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and waits for their goroutines to finish.
// New connections are refused afterwards.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c.conn)
	}
	h.mu.Unlock()

	deadline := time.Now().Add(writeTimeout)
	for _, conn := range conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(CloseMessageCode, ""), deadline)
		_ = conn.Close()
	}
	h.wg.Wait()
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.wg.Add(1)
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	h.wg.Done()
}

func (h *Hub) broadcast(from *client, msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if c == from {
			continue
		}
		select {
		case c.send <- msg:
		default:
			h.log.Warn().Str("client", c.id).Msg("send buffer full, message dropped")
		}
	}
}

func (h *Hub) readLoop(c *client) {
	for {
		kind, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug().Err(err).Str("client", c.id).Msg("read failed")
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		h.log.Info().Str("client", c.id).Msgf("Received: %s", msg)
		h.broadcast(c, msg)
	}
}

// writeLoop is the only writer of data frames for c.
func (h *Hub) writeLoop(c *client) {
	defer h.wg.Done()
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Debug().Err(err).Str("client", c.id).Msg("write failed")
			return
		}
	}
}
