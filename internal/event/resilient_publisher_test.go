package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinHall_Go/internal/domain"
)

var errBusDown = errors.New("bus unavailable")

// flakyBus fails the first failures publishes, or every publish when
// failures is negative
type flakyBus struct {
	mu       sync.Mutex
	failures int
	calls    []Event
}

func (b *flakyBus) Publish(_ context.Context, evt Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, evt)
	if b.failures < 0 || len(b.calls) <= b.failures {
		return errBusDown
	}
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) CallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func deadLetterPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "deadletter.jsonl")
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry DeadLetterEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func betTransaction() *domain.Transaction {
	return &domain.Transaction{
		ID:            "tx-1",
		UserID:        "user-1",
		Type:          domain.TransactionBet,
		Amount:        decimal.RequireFromString("2.50"),
		BalanceBefore: decimal.RequireFromString("10.00"),
		BalanceAfter:  decimal.RequireFromString("7.50"),
		CreatedAt:     time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
}

func TestResilientPublisher_DeliversBalanceChange(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{}

	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), NewBalanceChangedEvent(betTransaction()))
	require.NoError(t, rp.Shutdown(context.Background()))

	require.Equal(t, 1, bus.CallCount())
	assert.Equal(t, BalanceChanged, bus.calls[0].Type)
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_RetriesPurgeEventUntilBusRecovers(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{failures: 1}

	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), NewSessionsPurgedEvent(4))

	assert.Eventually(t, func() bool { return bus.CallCount() == 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Equal(t, 2, bus.CallCount())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_ExhaustedBalanceChangeIsDeadLettered(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{failures: -1}

	rp, err := NewResilientPublisher(bus, 2, 5*time.Millisecond, path)
	require.NoError(t, err)

	tx := betTransaction()
	rp.PublishWithRetry(context.Background(), NewBalanceChangedEvent(tx))

	// Initial publish plus two retries
	assert.Eventually(t, func() bool { return bus.CallCount() == 3 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, DeadLetterSchemaVersion, entry.SchemaVersion)
	assert.Equal(t, BalanceChanged, entry.Event.Type)
	assert.Equal(t, 2, entry.Attempts)
	assert.Equal(t, errBusDown.Error(), entry.LastError)
	assert.Equal(t, string(domain.TransactionBet), entry.Event.GetMetadataValue("transaction_type"))

	payload, err := DecodePayload[domain.BalanceChangedPayload](entry.Event.Payload)
	require.NoError(t, err)
	assert.Equal(t, "user-1", payload.UserID)
	assert.Equal(t, 7.5, payload.Balance)
	require.NotNil(t, payload.Transaction)
	assert.Equal(t, tx.ID, payload.Transaction.ID)
	assert.Equal(t, domain.TransactionBet, payload.Transaction.Type)
	assert.True(t, tx.Amount.Equal(payload.Transaction.Amount))
	assert.True(t, tx.BalanceAfter.Equal(payload.Transaction.BalanceAfter))
}

func TestResilientPublisher_QueueOverflowDeadLettersImmediately(t *testing.T) {
	path := deadLetterPath(t)
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)

	// No worker: the single queue slot stays taken
	rp := &ResilientPublisher{
		bus:        &flakyBus{failures: -1},
		retryQueue: make(chan retryEntry, 1),
		maxRetries: 3,
		retryDelay: time.Hour,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	for _, user := range []string{"alice", "bob", "carol"} {
		rp.PublishWithRetry(context.Background(), NewUserLoggedInEvent("id-"+user, user))
	}
	require.NoError(t, rp.Shutdown(context.Background()))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, UserLoggedIn, entry.Event.Type)
		assert.Equal(t, 1, entry.Attempts)
	}
	payload, err := DecodePayload[domain.UserLoggedInPayload](entries[0].Event.Payload)
	require.NoError(t, err)
	assert.Equal(t, "bob", payload.Username)
}

func TestResilientPublisher_ShutdownMakesFinalAttempt(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{failures: 1}

	// The retry would not fire for an hour; shutdown publishes it now
	rp, err := NewResilientPublisher(bus, 3, time.Hour, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), NewBalanceChangedEvent(betTransaction()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	assert.Equal(t, 2, bus.CallCount())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_ShutdownIsIdempotent(t *testing.T) {
	rp, err := NewResilientPublisher(&flakyBus{}, 3, time.Millisecond, deadLetterPath(t))
	require.NoError(t, err)

	require.NoError(t, rp.Shutdown(context.Background()))
	assert.NotPanics(t, func() { _ = rp.Shutdown(context.Background()) })
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{5, 32 * time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateRetryDelay(base, tt.attempt), "attempt %d", tt.attempt)
	}
}
