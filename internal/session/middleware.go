package session

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/logger"
)

// Manager issues, loads and clears sessions for HTTP requests
type Manager struct {
	store  Store
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewManager creates a session manager
func NewManager(store Store, ttl time.Duration, secureCookie bool) *Manager {
	return &Manager{
		store:  store,
		ttl:    ttl,
		secure: secureCookie,
		now:    time.Now,
	}
}

// Store returns the underlying store
func (m *Manager) Store() Store {
	return m.store
}

// Middleware attaches a session to every request. Requests without a
// valid token get an anonymous session whose id is set as a cookie, so
// per-visitor limits have a stable key.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx)

		token := tokenFromRequest(r)
		var sess *domain.Session
		if token != "" {
			loaded, err := m.store.Get(ctx, token)
			switch {
			case err == nil:
				sess = loaded
				log.Debug(LogMsgSessionLoaded, "session_id", loaded.ID, "user_id", loaded.UserID)
			case !errors.Is(err, domain.ErrSessionNotFound):
				log.Warn(LogMsgSessionLookupError, "error", err)
			}
		}

		if sess == nil {
			sess = m.anonymous(token)
			if token == "" {
				m.setCookie(w, sess.ID, sess.ExpiresAt)
				log.Debug(LogMsgAnonymousIssued, "session_id", sess.ID)
			}
		}

		next.ServeHTTP(w, r.WithContext(WithSession(ctx, sess)))
	})
}

// Begin creates an authenticated session for user and sets the cookie
func (m *Manager) Begin(w http.ResponseWriter, r *http.Request, user *domain.User) (*domain.Session, error) {
	now := m.now()
	sess := &domain.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Create(r.Context(), sess); err != nil {
		return nil, err
	}
	m.setCookie(w, sess.ID, sess.ExpiresAt)
	return sess, nil
}

// End deletes the session and expires the cookie
func (m *Manager) End(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	if sess != nil && sess.Authenticated() {
		if err := m.store.Delete(r.Context(), sess.ID); err != nil {
			return err
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Manager) anonymous(id string) *domain.Session {
	now := m.now()
	if id == "" {
		id = uuid.New().String()
	}
	return &domain.Session{
		ID:        id,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
}

func (m *Manager) setCookie(w http.ResponseWriter, id string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get(AuthorizationHeader); strings.HasPrefix(h, BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, BearerPrefix))
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}
