package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/promotion"
	"github.com/osse101/SpinHall_Go/internal/ratelimit"
	"github.com/osse101/SpinHall_Go/internal/realtime"
	"github.com/osse101/SpinHall_Go/internal/session"
)

type MockAuth struct {
	mock.Mock
}

func (m *MockAuth) Login(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuth) CreateUser(ctx context.Context, username, password, role string, balance decimal.Decimal) (*domain.User, error) {
	args := m.Called(ctx, username, password, role, balance)
	return nil, args.Error(1)
}

func (m *MockAuth) SetPassword(ctx context.Context, username, password string) error {
	return m.Called(ctx, username, password).Error(0)
}

func (m *MockAuth) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockWallet struct {
	mock.Mock
}

func (m *MockWallet) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWallet) Apply(ctx context.Context, userID string, action domain.TransactionType, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, action, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockWallet) Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockWallet) History(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

type MockPromotions struct {
	mock.Mock
}

func (m *MockPromotions) List(ctx context.Context) ([]domain.Promotion, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Promotion), args.Error(1)
}

func (m *MockPromotions) Availability(ctx context.Context, promotionID, userID string) (*promotion.Availability, error) {
	args := m.Called(ctx, promotionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promotion.Availability), args.Error(1)
}

type fakePool struct{}

func (fakePool) Ping(context.Context) error { return nil }
func (fakePool) Close()                     {}

type testEnv struct {
	router     http.Handler
	auth       *MockAuth
	wallet     *MockWallet
	promotions *MockPromotions
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := session.NewMemoryStore(100, time.Hour)
	hub := realtime.NewHub(store)
	hub.Start()
	t.Cleanup(hub.Stop)

	env := &testEnv{
		auth:       &MockAuth{},
		wallet:     &MockWallet{},
		promotions: &MockPromotions{},
	}
	env.router = NewRouter(Dependencies{
		DBPool:     fakePool{},
		Sessions:   session.NewManager(store, time.Hour, false),
		Wallet:     env.wallet,
		Auth:       env.auth,
		Promotions: env.promotions,
		Hub:        hub,
	})
	return env
}

func (e *testEnv) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestRouter_Health(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))

	rec = env.do(http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_BalanceRequiresLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/balance", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// Anonymous visitors still get a session id to key limits on
	assert.NotEmpty(t, sessionCookie(t, rec).Value)
}

func TestRouter_LoginIsProgressivelyLimited(t *testing.T) {
	env := newTestEnv(t)
	env.auth.On("Login", mock.Anything, "root", "wrong-password").Return(nil, domain.ErrInvalidCredentials)

	first := env.do(http.MethodGet, "/healthz", "")
	cookie := sessionCookie(t, first)

	body := `{"username":"root","password":"wrong-password"}`
	for i := 0; i < ratelimit.LoginBaseAttempts; i++ {
		rec := env.do(http.MethodPost, "/api/admin/login", body, cookie)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "attempt %d", i+1)
	}

	rec := env.do(http.MethodPost, "/api/admin/login", body, cookie)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(ratelimit.HeaderRetryAfter))

	var resp ratelimit.LimitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ratelimit.CodeTooManyAttempts, resp.Error.Code)
	assert.Equal(t, 1, resp.Error.Strikes)
	assert.Greater(t, resp.Error.NextAttemptIn, 0)

	env.auth.AssertNumberOfCalls(t, "Login", ratelimit.LoginBaseAttempts)
}

func TestRouter_LoginThenBalanceWithBearer(t *testing.T) {
	env := newTestEnv(t)
	env.auth.On("Login", mock.Anything, "alice", "correct-horse").
		Return(&domain.User{ID: "user-1", Username: "alice", Role: domain.RolePlayer}, nil)
	env.wallet.On("GetBalance", mock.Anything, "user-1").Return(decimal.RequireFromString("42.10"), nil)

	rec := env.do(http.MethodPost, "/api/admin/login", `{"username":"alice","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/balance", nil)
	req.Header.Set(session.AuthorizationHeader, session.BearerPrefix+login.Token)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"balance":42.1}`, rec.Body.String())

	// Players are not admins
	req = httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.Header.Set(session.AuthorizationHeader, session.BearerPrefix+login.Token)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_PromotionAvailabilityRoute(t *testing.T) {
	env := newTestEnv(t)
	env.promotions.On("Availability", mock.Anything, "weekend", "").
		Return(&promotion.Availability{PromotionID: "weekend", Available: true}, nil)

	rec := env.do(http.MethodGet, "/api/promotions/weekend/availability", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"promotionId":"weekend","available":true,"canUse":false}`, rec.Body.String())
}

func TestRouter_UnknownRoute(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/nope", "").Code)
}

func TestLoggingMiddleware_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	handler := loggingMiddleware(okHandler())

	req := httptest.NewRequest("GET", "/api/balance", nil)
	req.Header.Set("Authorization", "Bearer mytoken")
	req.Header.Set("Cookie", "session_id=secret-session")
	req.Header.Set("User-Agent", "TestAgent")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	logOutput := buf.String()
	require.Contains(t, logOutput, LogMsgRequestHeaders)
	assert.NotContains(t, logOutput, "mytoken")
	assert.NotContains(t, logOutput, "secret-session")
	assert.Contains(t, logOutput, "TestAgent")
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
}

func TestRecoverMiddleware(t *testing.T) {
	handler := recoverMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
