// Package livefeed broadcasts fight summaries to websocket subscribers while
// a live encounter log is being tailed.
package livefeed

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// sendBuffer is the per-client outbound queue. A slow subscriber that falls
// behind drops messages rather than blocking the parsing pipeline.
const sendBuffer = 64

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		close(c.send)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

func (c *client) enqueue(b []byte) bool {
	select {
	case <-c.done:
		return false
	case c.send <- b:
		return true
	default:
		return false
	}
}

// Hub fans fight summaries out to websocket subscribers.
type Hub struct {
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[*client]struct{}
	// last holds the most recent broadcast so a new subscriber catches up
	// immediately.
	last []byte
}

// NewHub returns an empty hub. A nil logger disables logging.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = discardLogger
	}
	return &Hub{
		log:  logger,
		subs: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Broadcast sends v as JSON to all connected subscribers.
func (h *Hub) Broadcast(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		h.log.Warn("livefeed marshal failed", "error", err)
		return
	}

	h.mu.Lock()
	h.last = b
	for c := range h.subs {
		if !c.enqueue(b) {
			delete(h.subs, c)
			c.close()
		}
	}
	h.mu.Unlock()
}

// Subscribers returns the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// ServeHTTP upgrades the request to a websocket and streams summaries.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := newClient(conn)

	h.mu.Lock()
	h.subs[c] = struct{}{}
	replay := h.last
	h.mu.Unlock()

	if replay != nil {
		c.enqueue(replay)
	}

	go h.writeLoop(c)
	go h.readLoop(c)
}

func (h *Hub) writeLoop(c *client) {
	for b := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
			h.drop(c)
			return
		}
	}
}

// readLoop drains and discards inbound frames so pings and close frames are
// processed.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.drop(c)
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	delete(h.subs, c)
	h.mu.Unlock()
	c.close()
}

// Serve runs an HTTP server exposing the hub at /ws until ctx is cancelled.
func Serve(ctx context.Context, addr string, h *Hub) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	err := srv.ListenAndServe()
	if err == http.ErrServerClosed || ctx.Err() != nil {
		return nil
	}
	return err
}
