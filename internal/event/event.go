package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/SpinHall_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Common event types
const (
	BalanceChanged Type = Type(domain.EventTypeBalanceChanged)
	UserLoggedIn   Type = Type(domain.EventTypeUserLoggedIn)
	SessionsPurged Type = Type(domain.EventTypeSessionsPurged)
)

// NewBalanceChangedEvent creates a balance.changed event for a committed transaction
func NewBalanceChangedEvent(tx *domain.Transaction) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BalanceChanged,
		Payload: domain.BalanceChangedPayload{
			UserID:      tx.UserID,
			Balance:     tx.BalanceAfter.InexactFloat64(),
			Transaction: tx,
		},
		Metadata: Metadata{
			"transaction_type": string(tx.Type),
		},
	}
}

// NewUserLoggedInEvent creates a user.logged_in event
func NewUserLoggedInEvent(userID, username string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    UserLoggedIn,
		Payload: domain.UserLoggedInPayload{
			UserID:   userID,
			Username: username,
		},
	}
}

// NewSessionsPurgedEvent creates a sessions.purged event
func NewSessionsPurgedEvent(count int64) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     SessionsPurged,
		Payload:  domain.SessionsPurgedPayload{Count: count},
		Metadata: Metadata{"purged_at": time.Now().Unix()},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
