package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/SpinHall_Go/internal/event"
	"github.com/osse101/SpinHall_Go/internal/metrics"
	"github.com/osse101/SpinHall_Go/internal/realtime"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
	Hub      *realtime.Hub
}

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (event-based counters)
// - Realtime bridge (balance pushes to connected sessions)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Hub != nil {
		realtime.NewBusBridge(deps.Hub, deps.EventBus).Subscribe()
		slog.Info(LogMsgRealtimeBridgeRegistered)
	}

	return nil
}
