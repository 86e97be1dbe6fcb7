package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/event"
	"github.com/osse101/SpinHall_Go/internal/testing/leaktest"
)

type fakeSessions map[string]*domain.Session

func (f fakeSessions) Get(_ context.Context, id string) (*domain.Session, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSessionNotFound
}

func userSession(userID, username string) *domain.Session {
	return &domain.Session{
		ID:        "sess-" + userID,
		UserID:    userID,
		Username:  username,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func newTestHub(t *testing.T, sessions SessionLookup) *Hub {
	t.Helper()
	h := NewHub(sessions)
	h.Start()
	t.Cleanup(h.Stop)
	return h
}

func frame(t *testing.T, msgType string, payload any) []byte {
	t.Helper()
	b, err := Encode(msgType, payload)
	require.NoError(t, err)
	return b
}

func expectMessage(t *testing.T, s *Subscriber, msgType string) Message {
	t.Helper()
	select {
	case msg := <-s.Out:
		require.Equal(t, msgType, msg.Type)
		return msg
	case <-time.After(time.Second):
		t.Fatalf("subscriber %s: no %s message", s.ID, msgType)
		return Message{}
	}
}

func expectNothing(t *testing.T, s *Subscriber) {
	t.Helper()
	select {
	case msg := <-s.Out:
		t.Fatalf("subscriber %s: unexpected %s message", s.ID, msg.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_BalanceUpdateGoesToSendersOtherConnections(t *testing.T) {
	h := newTestHub(t, nil)
	alice := userSession("u1", "alice")

	phone := h.RegisterSocket(alice)
	laptop := h.RegisterSocket(alice)
	bob := h.RegisterSocket(userSession("u2", "bob"))

	h.HandleInbound(context.Background(), phone.ID,
		frame(t, domain.MessageBalanceUpdate, domain.BalanceUpdateMessage{UserID: "u1", Balance: 42.5}))

	msg := expectMessage(t, laptop, domain.MessageBalanceChanged)
	var got domain.BalanceChangedMessage
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, 42.5, got.Balance)

	expectNothing(t, phone)
	expectNothing(t, bob)
}

func TestHub_PublicWinBroadcastsWithSessionUsername(t *testing.T) {
	h := newTestHub(t, nil)
	sender := h.RegisterSocket(userSession("u1", "alice"))
	other := h.RegisterSocket(nil)
	stream := h.RegisterStream(nil)

	h.HandleInbound(context.Background(), sender.ID,
		frame(t, domain.MessageWin, domain.PublicWinMessage{Username: "mallory", Amount: 50, Game: "Lucky Reels"}))

	for _, s := range []*Subscriber{sender, other, stream} {
		msg := expectMessage(t, s, domain.MessageWinNotification)
		var got domain.PublicWinMessage
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, 50.0, got.Amount)
		assert.Equal(t, "Lucky Reels", got.Game)
	}
}

func TestHub_JackpotBroadcasts(t *testing.T) {
	h := newTestHub(t, nil)
	sender := h.RegisterSocket(userSession("u1", "alice"))
	other := h.RegisterSocket(userSession("u2", "bob"))

	h.HandleInbound(context.Background(), sender.ID,
		frame(t, domain.MessageJackpot, domain.PublicWinMessage{Amount: 2000, Game: "Lucky Reels"}))

	expectMessage(t, sender, domain.MessageJackpotNotification)
	msg := expectMessage(t, other, domain.MessageJackpotNotification)
	assert.Contains(t, string(msg.Data), `"username":"alice"`)
}

func TestHub_SpinSyncRelaysToOtherDevices(t *testing.T) {
	h := newTestHub(t, nil)
	alice := userSession("u1", "alice")
	phone := h.RegisterSocket(alice)
	laptop := h.RegisterSocket(alice)
	bob := h.RegisterSocket(userSession("u2", "bob"))

	h.HandleInbound(context.Background(), phone.ID,
		frame(t, domain.MessageSpinStart, domain.SpinStartMessage{Bet: 2}))
	expectMessage(t, laptop, domain.MessageSpinStart)

	h.HandleInbound(context.Background(), phone.ID,
		frame(t, domain.MessageWin, domain.SpinWinMessage{Amount: 4, BetAmount: 2, Symbols: []string{"cherry", "cherry", "cherry", "lemon", "bar"}}))
	msg := expectMessage(t, laptop, domain.MessageWin)
	assert.Contains(t, string(msg.Data), `"symbols"`)

	expectNothing(t, phone)
	expectNothing(t, bob)
}

func TestHub_IgnoresUnboundAndUnknown(t *testing.T) {
	h := newTestHub(t, nil)
	anon := h.RegisterSocket(nil)
	other := h.RegisterSocket(nil)

	h.HandleInbound(context.Background(), anon.ID,
		frame(t, domain.MessageWin, domain.PublicWinMessage{Username: "x", Amount: 10}))
	h.HandleInbound(context.Background(), anon.ID, []byte(`not json`))
	h.HandleInbound(context.Background(), anon.ID, frame(t, "mystery", nil))

	expectNothing(t, anon)
	expectNothing(t, other)
}

func TestHub_AuthenticateBindsConnection(t *testing.T) {
	alice := userSession("u1", "alice")
	h := newTestHub(t, fakeSessions{"tok": alice})

	conn := h.RegisterSocket(nil)
	h.HandleInbound(context.Background(), conn.ID,
		frame(t, domain.MessageAuthenticate, domain.AuthenticateMessage{Token: "tok"}))

	msg := expectMessage(t, conn, domain.MessageAuthenticated)
	assert.Contains(t, string(msg.Data), `"userId":"u1"`)

	h.SendToUser("u1", domain.MessageBalanceChanged, domain.BalanceChangedMessage{Balance: 7})
	expectMessage(t, conn, domain.MessageBalanceChanged)
}

func TestHub_AuthenticateRejectsUnknownToken(t *testing.T) {
	h := newTestHub(t, fakeSessions{})
	conn := h.RegisterSocket(nil)

	h.HandleInbound(context.Background(), conn.ID,
		frame(t, domain.MessageAuthenticate, domain.AuthenticateMessage{Token: "nope"}))

	msg := expectMessage(t, conn, domain.MessageError)
	assert.Contains(t, string(msg.Data), domain.ErrMsgSessionNotFound)
}

func TestHub_StreamFilterAndUserScope(t *testing.T) {
	h := newTestHub(t, nil)
	jackpotsOnly := h.RegisterStream([]string{domain.MessageJackpotNotification})
	all := h.RegisterStream(parseTypes(""))

	h.Broadcast(domain.MessageWinNotification, domain.PublicWinMessage{Username: "a", Amount: 10})
	h.SendToUser("u1", domain.MessageBalanceChanged, domain.BalanceChangedMessage{Balance: 1})
	h.Broadcast(domain.MessageJackpotNotification, domain.PublicWinMessage{Username: "a", Amount: 1000})

	expectMessage(t, jackpotsOnly, domain.MessageJackpotNotification)
	expectMessage(t, all, domain.MessageWinNotification)
	expectMessage(t, all, domain.MessageJackpotNotification)
	expectNothing(t, all)
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	h := newTestHub(t, nil)
	slow := h.RegisterSocket(nil)
	fast := h.RegisterSocket(nil)

	for i := 0; i < SubscriberBufferSize+10; i++ {
		h.Broadcast(domain.MessageWinNotification, domain.PublicWinMessage{Amount: float64(i)})
		expectMessage(t, fast, domain.MessageWinNotification)
	}

	assert.Len(t, slow.Out, SubscriberBufferSize)
}

func TestHub_UnregisterAndStop(t *testing.T) {
	h := NewHub(nil)
	h.Start()

	a := h.RegisterSocket(nil)
	b := h.RegisterStream(nil)
	assert.Equal(t, 2, h.ClientCount())

	h.Unregister(a.ID)
	_, open := <-a.Out
	assert.False(t, open)
	assert.Equal(t, 1, h.ClientCount())

	h.Unregister("missing")
	h.Stop()
	h.Stop()

	_, open = <-b.Out
	assert.False(t, open)
	assert.Equal(t, 0, h.ClientCount())
}

type fakeBus struct {
	handlers map[event.Type][]event.Handler
}

func (b *fakeBus) Publish(ctx context.Context, evt event.Event) error {
	var errs []error
	for _, h := range b.handlers[evt.Type] {
		if err := h(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *fakeBus) Subscribe(t event.Type, h event.Handler) {
	if b.handlers == nil {
		b.handlers = make(map[event.Type][]event.Handler)
	}
	b.handlers[t] = append(b.handlers[t], h)
}

func TestBusBridge_BalanceChangedReachesUserSockets(t *testing.T) {
	h := newTestHub(t, nil)
	bus := &fakeBus{}
	NewBusBridge(h, bus).Subscribe()

	mine := h.RegisterSocket(userSession("u1", "alice"))
	theirs := h.RegisterSocket(userSession("u2", "bob"))

	tx := &domain.Transaction{ID: "t1", UserID: "u1", Type: domain.TransactionWithdraw}
	evt := event.NewBalanceChangedEvent(tx)
	require.NoError(t, bus.Publish(context.Background(), evt))

	expectMessage(t, mine, domain.MessageBalanceChanged)
	expectNothing(t, theirs)
}

func TestHub_StopReleasesLoop(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		h := NewHub(nil)
		h.Start()
		sub := h.RegisterStream(nil)
		h.Stop()

		_, open := <-sub.Out
		assert.False(t, open)
	})
}
