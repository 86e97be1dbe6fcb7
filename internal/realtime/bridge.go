package realtime

import (
	"context"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/event"
	"github.com/osse101/SpinHall_Go/internal/logger"
)

// BusBridge forwards server-side events from the event bus to the hub
type BusBridge struct {
	hub *Hub
	bus event.Bus
}

// NewBusBridge creates a new bridge
func NewBusBridge(hub *Hub, bus event.Bus) *BusBridge {
	return &BusBridge{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers the bridge's handlers
func (b *BusBridge) Subscribe() {
	b.bus.Subscribe(event.BalanceChanged, b.handleBalanceChanged)

	logger.Info(LogMsgSubscriberBridge, "types", []string{string(event.BalanceChanged)})
}

func (b *BusBridge) handleBalanceChanged(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.BalanceChangedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgBadEnvelope, "event_type", evt.Type, "error", err)
		return nil
	}

	b.hub.SendToUser(payload.UserID, domain.MessageBalanceChanged,
		domain.BalanceChangedMessage{Balance: payload.Balance})
	return nil
}
