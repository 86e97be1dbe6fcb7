package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/logger"
)

// ClientConfig configures a Client
type ClientConfig struct {
	URL                  string
	Header               http.Header
	Token                func() string // optional; sent in the authenticate handshake
	ReconnectInterval    time.Duration
	MaxReconnectAttempts int
	DialTimeout          time.Duration
}

type listenerEntry struct {
	id ListenerID
	fn Listener
}

// Client is the WebSocket implementation of Transport
type Client struct {
	cfg    ClientConfig
	dialer *websocket.Dialer

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	running   bool
	stop      chan struct{}
	wg        sync.WaitGroup

	writeMu sync.Mutex

	listenersMu sync.RWMutex
	listeners   map[string][]listenerEntry
	nextID      ListenerID
}

var _ Transport = (*Client)(nil)

// NewClient creates a client; call Connect to open the socket
func NewClient(cfg ClientConfig) *Client {
	if cfg.ReconnectInterval <= 0 {
		cfg.ReconnectInterval = DefaultReconnectInterval
	}
	if cfg.MaxReconnectAttempts <= 0 {
		cfg.MaxReconnectAttempts = DefaultMaxReconnectAttempts
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}
	return &Client{
		cfg: cfg,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.DialTimeout,
			ReadBufferSize:   ReadBufferSize,
			WriteBufferSize:  WriteBufferSize,
		},
		listeners: make(map[string][]listenerEntry),
	}
}

// Connect dials the server. It is a no-op while already running. After a
// successful dial the connection is kept alive in the background, with a
// bounded number of fixed-interval reconnect attempts after a drop.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	running := c.running
	c.mu.Unlock()
	if running {
		return nil
	}

	// Dial without the lock so Send and IsConnected never wait on it
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.running {
		// A concurrent Connect won the race
		c.mu.Unlock()
		_ = conn.Close()
		return nil
	}
	c.conn = conn
	c.connected = true
	c.running = true
	c.stop = make(chan struct{})
	c.wg.Add(1)
	go c.run(conn, c.stop)
	c.mu.Unlock()

	c.authenticate(conn)
	return nil
}

// Disconnect closes the socket, stops reconnecting and drops all
// listeners. Safe to call more than once.
func (c *Client) Disconnect() {
	c.mu.Lock()
	if c.running {
		close(c.stop)
		c.running = false
	}
	c.connected = false
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	c.wg.Wait()

	c.listenersMu.Lock()
	c.listeners = make(map[string][]listenerEntry)
	c.listenersMu.Unlock()
}

// IsConnected reports whether the socket is currently open
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Send writes one message; it is dropped when not connected
func (c *Client) Send(eventType string, payload any) {
	frame, err := Encode(eventType, payload)
	if err != nil {
		logger.Error(LogMsgBadEnvelope, "type", eventType, "error", err)
		return
	}

	c.mu.Lock()
	conn := c.conn
	connected := c.connected
	c.mu.Unlock()

	if !connected || conn == nil {
		logger.Debug(LogMsgDroppedNotSent, "type", eventType)
		return
	}

	if err := c.write(conn, frame); err != nil {
		logger.Warn(LogMsgWriteError, "type", eventType, "error", err)
	}
}

// On registers a listener for eventType
func (c *Client) On(eventType string, l Listener) ListenerID {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()

	c.nextID++
	id := c.nextID
	c.listeners[eventType] = append(c.listeners[eventType], listenerEntry{id: id, fn: l})
	return id
}

// Off removes a listener; unknown ids are ignored
func (c *Client) Off(eventType string, id ListenerID) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()

	entries := c.listeners[eventType]
	for i, e := range entries {
		if e.id == id {
			c.listeners[eventType] = append(entries[:i:i], entries[i+1:]...)
			break
		}
	}
	if len(c.listeners[eventType]) == 0 {
		delete(c.listeners, eventType)
	}
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, c.cfg.DialTimeout)
	defer cancel()

	logger.Debug(LogMsgDialing, "url", c.cfg.URL)
	conn, resp, err := c.dialer.DialContext(dialCtx, c.cfg.URL, c.cfg.Header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotConnected, err)
	}
	conn.SetReadLimit(MaxMessageSize)
	return conn, nil
}

func (c *Client) write(conn *websocket.Conn, frame []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(WriteWait))
	return conn.WriteMessage(websocket.TextMessage, frame)
}

func (c *Client) authenticate(conn *websocket.Conn) {
	if c.cfg.Token == nil {
		return
	}
	token := c.cfg.Token()
	if token == "" {
		return
	}
	frame, err := Encode(domain.MessageAuthenticate, domain.AuthenticateMessage{Token: token})
	if err != nil {
		return
	}
	if err := c.write(conn, frame); err != nil {
		logger.Warn(LogMsgWriteError, "type", domain.MessageAuthenticate, "error", err)
	}
}

// run reads until the connection drops, then reconnects
func (c *Client) run(conn *websocket.Conn, stop chan struct{}) {
	defer c.wg.Done()

	for {
		c.readLoop(conn)
		_ = conn.Close()

		select {
		case <-stop:
			return
		default:
		}

		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()

		next := c.reconnect(stop)
		if next == nil {
			return
		}
		conn = next
	}
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn(LogMsgReadError, "error", err)
			}
			return
		}

		env, err := Decode(frame)
		if err != nil {
			logger.Debug(LogMsgBadEnvelope, "error", err)
			continue
		}
		c.dispatch(env)
	}
}

func (c *Client) dispatch(env Envelope) {
	c.listenersMu.RLock()
	entries := append([]listenerEntry(nil), c.listeners[env.Type]...)
	c.listenersMu.RUnlock()

	data := env.Data
	if data == nil {
		data = json.RawMessage("null")
	}
	for _, e := range entries {
		e.fn(data)
	}
}

// reconnect tries a fixed number of times at a fixed interval. It returns
// nil when stopped or out of attempts.
func (c *Client) reconnect(stop chan struct{}) *websocket.Conn {
	for attempt := 1; attempt <= c.cfg.MaxReconnectAttempts; attempt++ {
		select {
		case <-stop:
			return nil
		case <-time.After(c.cfg.ReconnectInterval):
		}

		conn, err := c.dial(context.Background())
		if err != nil {
			logger.Warn(LogMsgDialFailed, "attempt", attempt, "error", err)
			continue
		}

		c.mu.Lock()
		select {
		case <-stop:
			c.mu.Unlock()
			_ = conn.Close()
			return nil
		default:
		}
		c.conn = conn
		c.connected = true
		c.mu.Unlock()

		logger.Info(LogMsgReconnected, "attempt", attempt)
		c.authenticate(conn)
		return conn
	}

	logger.Warn(LogMsgGivingUp, "attempts", c.cfg.MaxReconnectAttempts)

	c.mu.Lock()
	select {
	case <-stop:
	default:
		c.running = false
		c.conn = nil
	}
	c.mu.Unlock()
	return nil
}
