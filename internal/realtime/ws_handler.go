package realtime

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/osse101/SpinHall_Go/internal/logger"
	"github.com/osse101/SpinHall_Go/internal/session"
)

// NewUpgrader builds an upgrader that accepts same-host origins plus the
// listed ones. A "*" entry accepts any origin.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.ToLower(strings.TrimRight(o, "/"))] = true
	}

	return &websocket.Upgrader{
		ReadBufferSize:  ReadBufferSize,
		WriteBufferSize: WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowed["*"] {
				return true
			}
			if allowed[strings.ToLower(origin)] {
				return true
			}
			u, err := url.Parse(origin)
			return err == nil && strings.EqualFold(u.Host, r.Host)
		},
	}
}

// WSHandler upgrades the request and serves one realtime connection.
// A session already attached to the request binds the connection
// immediately; otherwise the client may authenticate in-band.
func WSHandler(hub *Hub, upgrader *websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn(LogMsgUpgradeFailed, "error", err)
			return
		}

		sub := hub.RegisterSocket(session.FromContext(r.Context()))
		log.Info(LogMsgClientConnected,
			"subscriber_id", sub.ID,
			"user_id", sub.userID,
			"total_clients", hub.ClientCount())

		// the request context ends when the handler returns
		ctx := logger.WithRequestID(context.Background(), logger.GetRequestID(r.Context()))

		go writePump(ctx, conn, sub)
		readPump(ctx, hub, conn, sub)
	}
}

func readPump(ctx context.Context, hub *Hub, conn *websocket.Conn, sub *Subscriber) {
	log := logger.FromContext(ctx)
	defer func() {
		hub.Unregister(sub.ID)
		_ = conn.Close()
		log.Info(LogMsgClientDisconnected,
			"subscriber_id", sub.ID,
			"total_clients", hub.ClientCount())
	}()

	conn.SetReadLimit(MaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(PongWait))
	})

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn(LogMsgReadError, "subscriber_id", sub.ID, "error", err)
			}
			return
		}
		hub.HandleInbound(ctx, sub.ID, frame)
	}
}

func writePump(ctx context.Context, conn *websocket.Conn, sub *Subscriber) {
	log := logger.FromContext(ctx)
	ticker := time.NewTicker(PingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sub.Out:
			_ = conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(Envelope{Type: msg.Type, Data: msg.Data}); err != nil {
				log.Warn(LogMsgWriteError, "subscriber_id", sub.ID, "error", err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
