package lobby

import (
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/core"
	"github.com/lixenwraith/vi-racer/engine"
)

var ErrHubClosed = errors.New("lobby hub closed")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type outbound struct {
	kind int // websocket.BinaryMessage or websocket.TextMessage
	data []byte
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan outbound
}

// Hub fans HUD frames and session results out to read-only websocket clients
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan outbound
	done       chan struct{}

	clients map[*client]struct{} // Owned by run
	last    *outbound            // Latest HUD frame, replayed to new clients

	count     atomic.Int32
	stopOnce  sync.Once
	startOnce sync.Once
	wg        sync.WaitGroup
}

// NewHub creates a stopped hub
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan outbound, constants.LobbyClientBuffer),
		done:       make(chan struct{}),
		clients:    make(map[*client]struct{}),
	}
}

// Start runs the hub loop
func (h *Hub) Start() {
	h.startOnce.Do(func() {
		h.wg.Add(1)
		core.Go(func() {
			defer h.wg.Done()
			h.run()
		})
	})
}

// Stop closes every client and waits for the hub loop
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
	h.wg.Wait()
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.count.Store(int32(len(h.clients)))
			if hello, err := encodeText(TypeHello, Hello{Clients: len(h.clients)}); err == nil {
				h.deliver(c, outbound{kind: websocket.TextMessage, data: hello})
			}
			if h.last != nil {
				h.deliver(c, *h.last)
			}
			log.Debug("lobby client joined", "clients", len(h.clients))

		case c := <-h.unregister:
			h.drop(c)

		case msg := <-h.broadcast:
			if msg.kind == websocket.BinaryMessage {
				m := msg
				h.last = &m
			}
			for c := range h.clients {
				h.deliver(c, msg)
			}

		case <-h.done:
			for c := range h.clients {
				h.drop(c)
			}
			return
		}
	}
}

// deliver queues without blocking; a client that cannot keep up is dropped
func (h *Hub) deliver(c *client, msg outbound) {
	select {
	case c.send <- msg:
	default:
		log.Warn("lobby client too slow, dropping")
		h.drop(c)
	}
}

func (h *Hub) drop(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.count.Store(int32(len(h.clients)))
}

// PublishHUD sends a binary HUD frame; frames are dropped when the hub is backed up
func (h *Hub) PublishHUD(hud engine.HUDSnapshot) error {
	data, err := EncodeHUD(hud)
	if err != nil {
		return err
	}
	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}
	select {
	case h.broadcast <- outbound{kind: websocket.BinaryMessage, data: data}:
	default:
	}
	return nil
}

// PublishResult sends the session result envelope; unlike HUD frames it is never dropped
func (h *Hub) PublishResult(res engine.SessionResult) error {
	data, err := encodeText(TypeResult, res)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- outbound{kind: websocket.TextMessage, data: data}:
		return nil
	case <-h.done:
		return ErrHubClosed
	}
}

// ServeHTTP upgrades the request and attaches the connection as a read-only client
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	select {
	case <-h.done:
		http.Error(w, "lobby closed", http.StatusServiceUnavailable)
		return
	default:
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("lobby upgrade failed", "err", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan outbound, constants.LobbyClientBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	core.Go(c.writePump)
	core.Go(c.readPump)
}

// readPump discards input and detects disconnects
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(constants.LobbyWriteWait))
		if err := c.conn.WriteMessage(msg.kind, msg.data); err != nil {
			return
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(constants.LobbyWriteWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
