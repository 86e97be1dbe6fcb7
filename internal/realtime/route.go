package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/logger"
	"github.com/osse101/SpinHall_Go/internal/metrics"
)

// AuthenticatedMessage confirms the authenticate handshake
type AuthenticatedMessage struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// ErrorMessage reports a failed request back to one connection
type ErrorMessage struct {
	Message string `json:"message"`
}

// winFrame covers both shapes of the "win" message
type winFrame struct {
	Username  string    `json:"username"`
	Amount    float64   `json:"amount"`
	Game      string    `json:"game"`
	BetAmount *float64  `json:"betAmount"`
	Symbols   *[]string `json:"symbols"`
}

func (w winFrame) legacy() bool {
	return w.Symbols != nil
}

// HandleInbound routes one frame received from the subscriber fromID.
// Malformed frames and unknown types are ignored.
func (h *Hub) HandleInbound(ctx context.Context, fromID string, frame []byte) {
	log := logger.FromContext(ctx)

	env, err := Decode(frame)
	if err != nil {
		log.Debug(LogMsgBadEnvelope, "subscriber_id", fromID, "error", err)
		return
	}
	metrics.RealtimeMessagesTotal.WithLabelValues(metrics.DirectionInbound, env.Type).Inc()

	if env.Type == domain.MessageAuthenticate {
		h.authenticate(ctx, fromID, env.Data)
		return
	}

	userID, username, ok := h.identity(fromID)
	if !ok {
		return
	}
	if userID == "" {
		log.Debug(LogMsgUnboundSender, "subscriber_id", fromID, "type", env.Type)
		return
	}

	switch env.Type {
	case domain.MessageBalanceUpdate:
		var msg domain.BalanceUpdateMessage
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			log.Debug(LogMsgBadEnvelope, "subscriber_id", fromID, "error", err)
			return
		}
		h.sendToOthers(fromID, userID, domain.MessageBalanceChanged,
			domain.BalanceChangedMessage{Balance: msg.Balance})

	case domain.MessageWin:
		var msg winFrame
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			log.Debug(LogMsgBadEnvelope, "subscriber_id", fromID, "error", err)
			return
		}
		if msg.legacy() {
			h.sendToOthers(fromID, userID, domain.MessageWin, env.Data)
			return
		}
		h.Broadcast(domain.MessageWinNotification, domain.PublicWinMessage{
			Username: username,
			Amount:   msg.Amount,
			Game:     msg.Game,
		})

	case domain.MessageJackpot:
		var msg domain.PublicWinMessage
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			log.Debug(LogMsgBadEnvelope, "subscriber_id", fromID, "error", err)
			return
		}
		msg.Username = username
		h.Broadcast(domain.MessageJackpotNotification, msg)

	case domain.MessageSpinStart:
		h.sendToOthers(fromID, userID, domain.MessageSpinStart, env.Data)

	default:
		log.Debug(LogMsgUnknownType, "subscriber_id", fromID, "type", env.Type)
	}
}

func (h *Hub) authenticate(ctx context.Context, fromID string, data json.RawMessage) {
	log := logger.FromContext(ctx)

	var msg domain.AuthenticateMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.Token == "" {
		h.sendTo(fromID, domain.MessageError, ErrorMessage{Message: domain.ErrMsgInvalidInput})
		return
	}
	if h.sessions == nil {
		h.sendTo(fromID, domain.MessageError, ErrorMessage{Message: domain.ErrMsgSessionNotFound})
		return
	}

	sess, err := h.sessions.Get(ctx, msg.Token)
	if err != nil || !sess.Authenticated() || sess.Expired(time.Now()) {
		log.Info(LogMsgAuthFailed, "subscriber_id", fromID, "error", err)
		h.sendTo(fromID, domain.MessageError, ErrorMessage{Message: domain.ErrMsgSessionNotFound})
		return
	}

	if !h.Bind(fromID, sess.UserID, sess.Username) {
		return
	}
	log.Info(LogMsgAuthenticated, "subscriber_id", fromID, "user_id", sess.UserID)
	h.sendTo(fromID, domain.MessageAuthenticated, AuthenticatedMessage{
		UserID:   sess.UserID,
		Username: sess.Username,
	})
}
