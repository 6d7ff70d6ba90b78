package mirror

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/tetherpanel/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512

	// Frames buffered per client before it is dropped
	clientBuffer = 8
)

// Frame is one rendered panel image, as text.
type Frame struct {
	Text     string    `json:"text"`
	FontSize int       `json:"font_size"`
	At       time.Time `json:"at"`
}

type client struct {
	conn       *websocket.Conn
	remoteAddr string
	send       chan []byte
}

// Hub fans rendered frames out to websocket clients.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	last    *Frame

	now      func() time.Time
	upgrader websocket.Upgrader
}

// NewHub creates a hub with no clients.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		now:     time.Now,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Read-only status feed; any origin may watch.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Render implements display.Renderer.
func (h *Hub) Render(text string, fontSize int) error {
	h.publish(Frame{Text: text, FontSize: fontSize, At: h.now()})
	return nil
}

// Clear implements display.Renderer by publishing an empty frame.
func (h *Hub) Clear() error {
	h.publish(Frame{At: h.now()})
	return nil
}

// Last returns the most recent frame.
func (h *Hub) Last() (Frame, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last == nil {
		return Frame{}, false
	}
	return *h.last, true
}

// ClientCount returns the number of connected websocket clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) publish(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		logging.Warn("Failed to encode mirror frame", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = &f
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			logging.Info("Dropping slow mirror client", zap.String("remote_addr", c.remoteAddr))
			h.removeLocked(c)
		}
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	if h.last != nil {
		if data, err := json.Marshal(h.last); err == nil {
			c.send <- data
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// ServeWS upgrades the request and streams frames until the client leaves.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("Mirror upgrade failed", zap.String("remote_addr", r.RemoteAddr), zap.Error(err))
		return
	}
	logging.Debug("Mirror client connected", zap.String("remote_addr", r.RemoteAddr))

	c := &client{conn: conn, remoteAddr: r.RemoteAddr, send: make(chan []byte, clientBuffer)}
	h.add(c)

	go h.writePump(c)
	h.readPump(c)
}

// readPump discards client messages and detects disconnects.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		_ = c.conn.Close()
		logging.Debug("Mirror client disconnected", zap.String("remote_addr", c.remoteAddr))
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeText writes the latest frame as plain text.
func (h *Hub) ServeText(w http.ResponseWriter, r *http.Request) {
	f, ok := h.Last()
	if !ok {
		http.Error(w, "no frame rendered yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(f.Text + "\n"))
}

// Handler routes /ws to ServeWS and / to ServeText.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/", h.ServeText)
	return mux
}
