package balance

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinHall_Go/internal/apiclient"
	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/realtime"
)

// MockAPI is a mock implementation of API
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAPI) PostTransaction(ctx context.Context, amount decimal.Decimal, action domain.TransactionType) (*apiclient.BalanceResponse, error) {
	args := m.Called(ctx, amount, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apiclient.BalanceResponse), args.Error(1)
}

func (m *MockAPI) InvalidateBalance() {
	m.Called()
}

type fakeTransport struct {
	mu        sync.Mutex
	sent      []string
	payloads  []any
	listeners map[string]realtime.Listener
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{listeners: map[string]realtime.Listener{}}
}

func (f *fakeTransport) Send(eventType string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, eventType)
	f.payloads = append(f.payloads, payload)
}

func (f *fakeTransport) On(eventType string, l realtime.Listener) realtime.ListenerID {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners[eventType] = l
	return 1
}

func (f *fakeTransport) Off(eventType string, _ realtime.ListenerID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.listeners, eventType)
}

func (f *fakeTransport) push(eventType string, payload any) {
	data, _ := json.Marshal(payload)
	f.mu.Lock()
	l := f.listeners[eventType]
	f.mu.Unlock()
	if l != nil {
		l(data)
	}
}

type recordingNotifier struct {
	levels []NoticeLevel
	texts  []string
}

func (r *recordingNotifier) Notify(level NoticeLevel, text string) {
	r.levels = append(r.levels, level)
	r.texts = append(r.texts, text)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decEq(want string) interface{} {
	return mock.MatchedBy(func(v decimal.Decimal) bool { return v.Equal(d(want)) })
}

func newLoadedService(t *testing.T, balance string) (*Service, *MockAPI, *fakeTransport, *recordingNotifier) {
	t.Helper()
	api := new(MockAPI)
	tr := newFakeTransport()
	n := &recordingNotifier{}
	s := NewService(api, tr, n, Identity{UserID: "u1", Username: "ada", Game: "Lucky Reels"})

	api.On("GetBalance", mock.Anything).Return(d(balance), nil).Once()
	require.NoError(t, s.Load(context.Background()))
	return s, api, tr, n
}

func TestPlaceBet_InsufficientBalanceMakesNoCall(t *testing.T) {
	s, api, tr, n := newLoadedService(t, "5")

	ok := s.PlaceBet(context.Background(), d("10"))

	assert.False(t, ok)
	api.AssertNotCalled(t, "PostTransaction", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, tr.sent)
	require.Len(t, n.texts, 1)
	assert.Equal(t, NoticeWarning, n.levels[0])
	assert.Contains(t, n.texts[0], "$5.00")
	assert.Contains(t, n.texts[0], "$10.00")
	assert.True(t, s.Balance().Equal(d("5")))
}

func TestPlaceBet_SuccessUpdatesAndBroadcasts(t *testing.T) {
	s, api, tr, _ := newLoadedService(t, "20")
	api.On("PostTransaction", mock.Anything, decEq("2"), domain.TransactionBet).
		Return(&apiclient.BalanceResponse{Balance: d("18")}, nil)

	ok := s.PlaceBet(context.Background(), d("2"))

	assert.True(t, ok)
	assert.True(t, s.Balance().Equal(d("18")))
	assert.Equal(t, []string{domain.MessageBalanceUpdate}, tr.sent)
	assert.Equal(t, domain.BalanceUpdateMessage{UserID: "u1", Balance: 18}, tr.payloads[0])
}

func TestPlaceBet_FailureKeepsBalance(t *testing.T) {
	s, api, tr, n := newLoadedService(t, "20")
	api.On("PostTransaction", mock.Anything, mock.Anything, domain.TransactionBet).
		Return(nil, &apiclient.APIError{Status: 400, Message: "Not enough money"})

	ok := s.PlaceBet(context.Background(), d("2"))

	assert.False(t, ok)
	assert.True(t, s.Balance().Equal(d("20")))
	assert.Empty(t, tr.sent)
	require.Len(t, n.texts, 1)
	assert.Equal(t, NoticeError, n.levels[0])
	assert.Contains(t, n.texts[0], "Not enough money")
}

func TestAddWin_Thresholds(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   []string
	}{
		{"small win stays private", "9.5", nil},
		{"public win", "10", []string{domain.MessageWin}},
		{"jackpot", "1000", []string{domain.MessageWin, domain.MessageJackpot}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, api, tr, _ := newLoadedService(t, "100")
			api.On("PostTransaction", mock.Anything, decEq(tt.amount), domain.TransactionWin).
				Return(&apiclient.BalanceResponse{
					Balance:         d("100").Add(d(tt.amount)),
					LastTransaction: &apiclient.Transaction{Type: "win", Amount: d(tt.amount)},
				}, nil)

			require.NoError(t, s.AddWin(context.Background(), d(tt.amount)))

			assert.Equal(t, tt.want, tr.sent)
			assert.True(t, s.Balance().Equal(d("100").Add(d(tt.amount))))
			for _, p := range tr.payloads {
				msg := p.(domain.PublicWinMessage)
				assert.Equal(t, "ada", msg.Username)
				assert.Equal(t, "Lucky Reels", msg.Game)
			}
		})
	}
}

func TestAddWin_NonPositiveIsNoop(t *testing.T) {
	s, api, _, _ := newLoadedService(t, "10")

	require.NoError(t, s.AddWin(context.Background(), decimal.Zero))
	require.NoError(t, s.AddWin(context.Background(), d("-3")))
	api.AssertNotCalled(t, "PostTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddWin_FailureReturnsError(t *testing.T) {
	s, api, tr, n := newLoadedService(t, "10")
	api.On("PostTransaction", mock.Anything, mock.Anything, domain.TransactionWin).Return(nil, assert.AnError)

	err := s.AddWin(context.Background(), d("50"))

	require.Error(t, err)
	assert.True(t, s.Balance().Equal(d("10")))
	assert.Empty(t, tr.sent)
	assert.Equal(t, []string{NoticeTransactionFailed}, n.texts)
}

func TestLoad_FailureKeepsLastKnown(t *testing.T) {
	s, api, _, _ := newLoadedService(t, "12")
	api.On("GetBalance", mock.Anything).Return(decimal.Zero, assert.AnError).Once()

	err := s.Load(context.Background())

	require.Error(t, err)
	assert.True(t, s.Balance().Equal(d("12")))
}

func TestBalanceChangedPushOverwritesAndInvalidates(t *testing.T) {
	api := new(MockAPI)
	tr := newFakeTransport()
	s := NewService(api, tr, &recordingNotifier{}, Identity{UserID: "u1"})

	api.On("GetBalance", mock.Anything).Return(d("3"), nil).Once()
	api.On("InvalidateBalance").Return().Once()
	s.Start(context.Background())

	tr.push(domain.MessageBalanceChanged, domain.BalanceChangedMessage{Balance: 77.25})

	assert.True(t, s.Balance().Equal(d("77.25")))
	api.AssertExpectations(t)

	s.Stop()
	assert.Empty(t, tr.listeners)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatMoney(d("1234.5")))
}
