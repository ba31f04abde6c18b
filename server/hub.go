package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/ZaguanLabs/furigo"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	sendBuffer = 16
	writeWait  = 10 * time.Second
)

// Responder answers a message sent by a surface over the push channel.
type Responder func(msg furigo.Message) (furigo.TranslationResult, bool)

// Hub fans controller messages out to websocket subscribers. It implements
// furigo.Notifier.
type Hub struct {
	logger  zerolog.Logger
	respond Responder
	// checkOrigin defaults to gorilla's same-host check when nil.
	checkOrigin func(r *http.Request) bool

	mu          sync.RWMutex
	subscribers map[string]*subscriber
	closed      bool
}

type subscriber struct {
	id   string
	conn *websocket.Conn
	send chan furigo.Message
}

// HubOption is a functional option for configuring the Hub.
type HubOption func(*Hub)

// WithHubLogger sets the hub's logger.
func WithHubLogger(logger zerolog.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

// WithResponder lets subscribers ask for the latest result over the socket.
func WithResponder(r Responder) HubOption {
	return func(h *Hub) {
		h.respond = r
	}
}

// WithOriginCheck decides which pages may open the push channel.
func WithOriginCheck(check func(r *http.Request) bool) HubOption {
	return func(h *Hub) {
		h.checkOrigin = check
	}
}

// NewHub creates an empty Hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		logger:      zerolog.Nop(),
		subscribers: make(map[string]*subscriber),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Notify queues msg for every subscriber. It returns furigo.ErrNoListener
// when nobody is subscribed. A subscriber whose queue is full misses msg.
func (h *Hub) Notify(ctx context.Context, msg furigo.Message) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.subscribers) == 0 {
		return furigo.ErrNoListener
	}

	for _, sub := range h.subscribers {
		select {
		case sub.send <- msg:
		default:
			h.logger.Warn().Str("subscriber", sub.id).Str("type", msg.Type).Msg("subscriber queue full, message dropped")
		}
	}
	return nil
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// ServeHTTP upgrades the request and registers the connection until it closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: h.checkOrigin}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	sub := &subscriber{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan furigo.Message, sendBuffer),
	}
	if !h.register(sub) {
		conn.Close()
		return
	}
	h.logger.Debug().Str("subscriber", sub.id).Msg("subscriber connected")

	go h.writeLoop(sub)
	h.readLoop(sub)

	h.unregister(sub)
	h.logger.Debug().Str("subscriber", sub.id).Msg("subscriber disconnected")
}

func (h *Hub) register(sub *subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.subscribers[sub.id] = sub
	return true
}

func (h *Hub) unregister(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[sub.id]; ok {
		delete(h.subscribers, sub.id)
		close(sub.send)
	}
}

func (h *Hub) writeLoop(sub *subscriber) {
	defer sub.conn.Close()

	for msg := range sub.send {
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := sub.conn.WriteJSON(msg); err != nil {
			h.logger.Debug().Err(err).Str("subscriber", sub.id).Msg("websocket write failed")
			return
		}
	}

	sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
	sub.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readLoop answers getTranslation requests and returns when the peer goes away.
func (h *Hub) readLoop(sub *subscriber) {
	for {
		_, raw, err := sub.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug().Err(err).Str("subscriber", sub.id).Msg("websocket read failed")
			}
			return
		}

		var msg furigo.Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if h.respond == nil {
			continue
		}
		if result, ok := h.respond(msg); ok {
			h.reply(sub, furigo.ResultMessage(result))
		}
	}
}

func (h *Hub) reply(sub *subscriber, msg furigo.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.subscribers[sub.id]; !ok {
		return
	}
	select {
	case sub.send <- msg:
	default:
	}
}

// Close disconnects every subscriber and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, sub := range h.subscribers {
		delete(h.subscribers, id)
		close(sub.send)
	}
}
