package realtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/logger"
)

// streamTypes are the message types an SSE stream may receive
var streamTypes = map[string]bool{
	domain.MessageWinNotification:     true,
	domain.MessageJackpotNotification: true,
}

// StreamEvent is the JSON body of one SSE event
type StreamEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// FormatSSEMessage renders an event in text/event-stream framing
func FormatSSEMessage(evt StreamEvent) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	if evt.ID != "" {
		fmt.Fprintf(&b, "id: %s\n", evt.ID)
	}
	fmt.Fprintf(&b, "event: %s\ndata: %s\n\n", evt.Type, data)
	return []byte(b.String()), nil
}

// SSEHandler serves the read-only stream of public notifications
func SSEHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		eventTypes := parseTypes(r.URL.Query().Get("types"))

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		sub := hub.RegisterStream(eventTypes)
		log.Info(LogMsgStreamConnected,
			"subscriber_id", sub.ID,
			"filters", eventTypes,
			"total_clients", hub.ClientCount())

		defer func() {
			hub.Unregister(sub.ID)
			log.Info(LogMsgStreamDisconnected,
				"subscriber_id", sub.ID,
				"total_clients", hub.ClientCount())
		}()

		payload, _ := json.Marshal(map[string]interface{}{
			"client_id": sub.ID,
			"filters":   eventTypes,
		})
		if !writeEvent(w, flusher, StreamEvent{
			ID:        sub.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload:   payload,
		}) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case msg, ok := <-sub.Out:
				if !ok {
					return
				}
				if !writeEvent(w, flusher, StreamEvent{
					ID:        msg.ID,
					Type:      msg.Type,
					Timestamp: time.Now().Unix(),
					Payload:   msg.Data,
				}) {
					return
				}

			case <-ticker.C:
				if !writeEvent(w, flusher, StreamEvent{
					Type:      EventTypeKeepalive,
					Timestamp: time.Now().Unix(),
				}) {
					return
				}
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, evt StreamEvent) bool {
	msg, err := FormatSSEMessage(evt)
	if err != nil {
		logger.Error(LogMsgSSEWriteError, "error", err)
		return true
	}
	if _, err := w.Write(msg); err != nil {
		logger.Warn(LogMsgSSEWriteError, "error", err)
		return false
	}
	flusher.Flush()
	return true
}

// parseTypes keeps only public notification types. No filter means all
// of them.
func parseTypes(param string) []string {
	types := make([]string, 0, len(streamTypes))
	if param != "" {
		for _, t := range strings.Split(param, ",") {
			t = strings.TrimSpace(t)
			if streamTypes[t] {
				types = append(types, t)
			}
		}
	}
	if len(types) == 0 {
		for t := range streamTypes {
			types = append(types, t)
		}
	}
	return types
}
