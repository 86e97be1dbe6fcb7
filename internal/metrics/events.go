package metrics

import (
	"context"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/event"
	"github.com/osse101/SpinHall_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.BalanceChanged,
		event.UserLoggedIn,
		event.SessionsPurged,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.BalanceChanged:
		p, err := event.DecodePayload[domain.BalanceChangedPayload](evt.Payload)
		if err != nil || p.Transaction == nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type)
			return nil
		}
		tx := p.Transaction
		WalletTransactions.WithLabelValues(string(tx.Type)).Inc()
		amount, _ := tx.Amount.Float64()
		WalletAmount.WithLabelValues(string(tx.Type)).Add(amount)

	case event.SessionsPurged:
		p, err := event.DecodePayload[domain.SessionsPurgedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type)
			return nil
		}
		SessionsPurged.Add(float64(p.Count))
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
