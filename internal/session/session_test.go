package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinHall_Go/internal/domain"
)

func TestMemoryStore_CreateGetDelete(t *testing.T) {
	store := NewMemoryStore(10, time.Hour)
	ctx := context.Background()

	sess := &domain.Session{ID: "abc", UserID: "u1", Username: "alice", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Create(ctx, sess))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestMemoryStore_CreateRequiresID(t *testing.T) {
	store := NewMemoryStore(10, time.Hour)
	err := store.Create(context.Background(), &domain.Session{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMemoryStore_PurgeExpired(t *testing.T) {
	store := NewMemoryStore(10, time.Hour)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Create(ctx, &domain.Session{ID: "old", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, store.Create(ctx, &domain.Session{ID: "new", ExpiresAt: now.Add(time.Hour)}))

	n, err := store.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.Get(ctx, "new")
	assert.NoError(t, err)
}

func captureSession(t *testing.T, m *Manager, req *http.Request) (*domain.Session, *httptest.ResponseRecorder) {
	t.Helper()
	var got *domain.Session
	h := m.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.NotNil(t, got)
	return got, rec
}

func TestMiddleware_IssuesAnonymousCookie(t *testing.T) {
	m := NewManager(NewMemoryStore(10, time.Hour), time.Hour, false)

	sess, rec := captureSession(t, m, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, sess.Authenticated())
	assert.NotEmpty(t, sess.ID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, sess.ID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestMiddleware_KeepsUnknownCookieAsAnonymousKey(t *testing.T) {
	m := NewManager(NewMemoryStore(10, time.Hour), time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "visitor-1"})
	sess, rec := captureSession(t, m, req)

	assert.Equal(t, "visitor-1", sess.ID)
	assert.False(t, sess.Authenticated())
	assert.Empty(t, rec.Result().Cookies())
}

func TestMiddleware_LoadsSessionFromCookieAndBearer(t *testing.T) {
	store := NewMemoryStore(10, time.Hour)
	m := NewManager(store, time.Hour, false)
	user := &domain.User{ID: "u1", Username: "admin", Role: domain.RoleAdmin}

	rec := httptest.NewRecorder()
	created, err := m.Begin(rec, httptest.NewRequest(http.MethodPost, "/", nil), user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: created.ID})
	sess, _ := captureSession(t, m, req)
	assert.True(t, sess.IsAdmin())
	assert.Equal(t, "u1", sess.UserID)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+created.ID)
	sess, _ = captureSession(t, m, req)
	assert.Equal(t, created.ID, sess.ID)
	assert.True(t, sess.Authenticated())
}

func TestEnd_DeletesSessionAndExpiresCookie(t *testing.T) {
	store := NewMemoryStore(10, time.Hour)
	m := NewManager(store, time.Hour, true)
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	sess, err := m.Begin(httptest.NewRecorder(), req, &domain.User{ID: "u1", Username: "a", Role: domain.RoleAdmin})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.End(rec, req, sess))

	_, err = store.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].MaxAge < 0)
	assert.True(t, cookies[0].Secure)
}

func TestFromContext_Empty(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
}
