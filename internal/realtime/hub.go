package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/logger"
	"github.com/osse101/SpinHall_Go/internal/metrics"
)

// SessionLookup resolves the token sent in an authenticate handshake
type SessionLookup interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
}

// Message is one outbound message queued for a subscriber
type Message struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type subscriberKind int

const (
	kindSocket subscriberKind = iota
	kindStream
)

// Subscriber is a connection registered with the hub
type Subscriber struct {
	ID       string
	Out      chan Message
	kind     subscriberKind
	filter   map[string]bool // nil means all types
	userID   string
	username string
}

func (s *Subscriber) wants(msgType string) bool {
	return s.filter == nil || s.filter[msgType]
}

type delivery struct {
	msg    Message
	target func(*Subscriber) bool
}

// Hub tracks socket and stream subscribers and routes messages between
// them. Delivery is at-most-once: a full subscriber buffer drops the
// message for that subscriber only.
type Hub struct {
	subscribers map[string]*Subscriber
	deliver     chan delivery
	mu          sync.RWMutex
	shutdown    chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
	sessions    SessionLookup
}

// NewHub creates a new Hub. sessions may be nil, in which case the
// authenticate handshake always fails.
func NewHub(sessions SessionLookup) *Hub {
	return &Hub{
		subscribers: make(map[string]*Subscriber),
		deliver:     make(chan delivery, DeliveryBufferSize),
		shutdown:    make(chan struct{}),
		sessions:    sessions,
	}
}

// Start starts the hub's delivery loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop shuts the loop down and closes every subscriber channel
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for id, s := range h.subscribers {
			close(s.Out)
			delete(h.subscribers, id)
			metrics.RealtimeConnections.WithLabelValues(s.kind.label()).Dec()
		}
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case d := <-h.deliver:
			h.fanOut(d)
		case <-h.shutdown:
			return
		}
	}
}

func (h *Hub) fanOut(d delivery) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, s := range h.subscribers {
		if !d.target(s) || !s.wants(d.msg.Type) {
			continue
		}
		select {
		case s.Out <- d.msg:
			metrics.RealtimeMessagesTotal.WithLabelValues(metrics.DirectionOutbound, d.msg.Type).Inc()
		default:
			metrics.RealtimeDroppedTotal.WithLabelValues(d.msg.Type).Inc()
			logger.Debug(LogMsgSubscriberSlow, "subscriber_id", s.ID, "type", d.msg.Type)
		}
	}
}

// RegisterSocket adds a WebSocket subscriber, optionally bound to a session
func (h *Hub) RegisterSocket(sess *domain.Session) *Subscriber {
	s := &Subscriber{
		ID:   uuid.New().String(),
		Out:  make(chan Message, SubscriberBufferSize),
		kind: kindSocket,
	}
	if sess.Authenticated() {
		s.userID, s.username = sess.UserID, sess.Username
	}
	h.add(s)
	return s
}

// RegisterStream adds a read-only SSE subscriber for the given types.
// An empty list subscribes to every public notification.
func (h *Hub) RegisterStream(eventTypes []string) *Subscriber {
	s := &Subscriber{
		ID:   uuid.New().String(),
		Out:  make(chan Message, SubscriberBufferSize),
		kind: kindStream,
	}
	if len(eventTypes) > 0 {
		s.filter = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			s.filter[t] = true
		}
	}
	h.add(s)
	return s
}

func (h *Hub) add(s *Subscriber) {
	h.mu.Lock()
	h.subscribers[s.ID] = s
	h.mu.Unlock()
	metrics.RealtimeConnections.WithLabelValues(s.kind.label()).Inc()
}

// Unregister removes a subscriber and closes its channel
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.subscribers[id]; ok {
		close(s.Out)
		delete(h.subscribers, id)
		metrics.RealtimeConnections.WithLabelValues(s.kind.label()).Dec()
	}
}

// Bind attaches a subscriber to a user
func (h *Hub) Bind(id, userID, username string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.subscribers[id]
	if !ok {
		return false
	}
	s.userID, s.username = userID, username
	return true
}

// ClientCount returns the number of registered subscribers
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

func (h *Hub) identity(id string) (userID, username string, ok bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.subscribers[id]
	if !ok {
		return "", "", false
	}
	return s.userID, s.username, true
}

func (h *Hub) enqueue(msgType string, payload any, target func(*Subscriber) bool) {
	var data json.RawMessage
	switch p := payload.(type) {
	case nil:
	case json.RawMessage:
		data = p
	default:
		b, err := json.Marshal(p)
		if err != nil {
			logger.Error(LogMsgBadEnvelope, "type", msgType, "error", err)
			return
		}
		data = b
	}

	d := delivery{
		msg:    Message{ID: uuid.New().String(), Type: msgType, Data: data},
		target: target,
	}
	select {
	case h.deliver <- d:
	default:
		metrics.RealtimeDroppedTotal.WithLabelValues(msgType).Inc()
		logger.Warn(LogMsgDeliveryDropped, "type", msgType)
	}
}

// Broadcast sends a message to every interested subscriber
func (h *Hub) Broadcast(msgType string, payload any) {
	h.enqueue(msgType, payload, func(*Subscriber) bool { return true })
}

// SendToUser sends a message to every socket bound to userID
func (h *Hub) SendToUser(userID, msgType string, payload any) {
	if userID == "" {
		return
	}
	h.enqueue(msgType, payload, func(s *Subscriber) bool {
		return s.kind == kindSocket && s.userID == userID
	})
}

// sendToOthers sends to the user's sockets except the sender's own
func (h *Hub) sendToOthers(senderID, userID, msgType string, payload any) {
	if userID == "" {
		return
	}
	h.enqueue(msgType, payload, func(s *Subscriber) bool {
		return s.kind == kindSocket && s.userID == userID && s.ID != senderID
	})
}

// sendTo sends to a single subscriber
func (h *Hub) sendTo(id, msgType string, payload any) {
	h.enqueue(msgType, payload, func(s *Subscriber) bool { return s.ID == id })
}

func (k subscriberKind) label() string {
	if k == kindStream {
		return "sse"
	}
	return "ws"
}
