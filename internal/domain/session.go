package domain

import "time"

// Session is a server-side login or anonymous visitor session
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"` // Empty for anonymous sessions
	Username  string    `json:"username,omitempty"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Authenticated reports whether the session belongs to a logged in user
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != ""
}

// Expired reports whether the session is past its expiry at now
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// IsAdmin reports whether the session user is an admin
func (s *Session) IsAdmin() bool {
	return s.Authenticated() && s.Role == RoleAdmin
}
