package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/SpinHall_Go/internal/event"
	"github.com/osse101/SpinHall_Go/internal/realtime"
	"github.com/osse101/SpinHall_Go/internal/scheduler"
	"github.com/osse101/SpinHall_Go/internal/worker"
)

// Stoppable is anything that stops accepting work within ctx
type Stoppable interface {
	Stop(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             Stoppable
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	Hub                *realtime.Hub
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops components in order:
// 1. Realtime hub (closes subscriber channels so streams return)
// 2. HTTP server (stop accepting new requests)
// 3. Scheduler and worker pool (no new background jobs)
// 4. Event publisher (flush pending events)
//
// Errors are logged and do not stop the sequence. Nil components are skipped.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Hub != nil {
		slog.Info(LogMsgShuttingDownHub)
		components.Hub.Stop()
	}

	slog.Info(LogMsgShuttingDownServer)
	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	slog.Info(LogMsgShuttingDownWorkers)
	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
