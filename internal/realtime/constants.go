package realtime

import "time"

// Buffer sizes
const (
	// DeliveryBufferSize is the buffer size for the hub's delivery channel
	DeliveryBufferSize = 256

	// SubscriberBufferSize is the buffer size for each connection's outbound channel
	SubscriberBufferSize = 32
)

// Socket settings
const (
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	MaxMessageSize = 8 << 10

	ReadBufferSize  = 4096
	WriteBufferSize = 4096
)

// Client reconnect policy
const (
	DefaultReconnectInterval    = 3 * time.Second
	DefaultMaxReconnectAttempts = 5
	DefaultDialTimeout          = 10 * time.Second
)

// SSE settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"

	// EventTypeConnected is the first event written to a new stream
	EventTypeConnected = "connected"
)

// Log messages
const (
	LogMsgClientConnected    = "Realtime client connected"
	LogMsgClientDisconnected = "Realtime client disconnected"
	LogMsgStreamConnected    = "SSE client connected"
	LogMsgStreamDisconnected = "SSE client disconnected"
	LogMsgUpgradeFailed      = "WebSocket upgrade failed"
	LogMsgReadError          = "Error reading from WebSocket"
	LogMsgWriteError         = "Error writing to WebSocket"
	LogMsgBadEnvelope        = "Ignoring malformed realtime message"
	LogMsgUnknownType        = "Ignoring unknown realtime message type"
	LogMsgUnboundSender      = "Ignoring user-scoped message from unauthenticated connection"
	LogMsgAuthFailed         = "Realtime authentication failed"
	LogMsgAuthenticated      = "Realtime connection bound to session"
	LogMsgDeliveryDropped    = "Hub delivery buffer full, dropping message"
	LogMsgSubscriberSlow     = "Subscriber buffer full, dropping message"
	LogMsgSSEWriteError      = "Failed to write SSE event"

	LogMsgDialing          = "Connecting to realtime endpoint"
	LogMsgDialFailed       = "Realtime connection attempt failed"
	LogMsgReconnected      = "Realtime connection restored"
	LogMsgGivingUp         = "Realtime reconnect attempts exhausted"
	LogMsgDroppedNotSent   = "Dropping realtime message, not connected"
	LogMsgClientStopped    = "Realtime client stopped"
	LogMsgSubscriberBridge = "Realtime subscriber registered for bus events"
)
