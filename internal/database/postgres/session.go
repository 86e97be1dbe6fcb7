package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpinHall_Go/internal/domain"
)

// SessionRepository stores authenticated sessions in PostgreSQL
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create stores an authenticated session
func (r *SessionRepository) Create(ctx context.Context, sess *domain.Session) error {
	if sess == nil || sess.ID == "" || !sess.Authenticated() {
		return fmt.Errorf("%w: only authenticated sessions are stored", domain.ErrInvalidInput)
	}
	uid, err := parseUUID(sess.UserID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO sessions (session_id, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)`,
		sess.ID, uid, sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateSession, err)
	}
	return nil
}

// Get returns an unexpired session with its user's name and role
func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	var sess domain.Session
	var uid uuid.UUID
	err := r.db.QueryRow(ctx, `
		SELECT s.session_id, s.user_id, u.username, u.role, s.created_at, s.expires_at
		FROM sessions s
		JOIN users u ON u.user_id = s.user_id
		WHERE s.session_id = $1 AND s.expires_at > NOW()`, id).
		Scan(&sess.ID, &uid, &sess.Username, &sess.Role, &sess.CreatedAt, &sess.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSession, err)
	}
	sess.UserID = uid.String()
	return &sess, nil
}

// Delete removes a session
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE session_id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteSession, err)
	}
	return nil
}

// PurgeExpired deletes sessions that expired before now
func (r *SessionRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToPurgeSessions, err)
	}
	return tag.RowsAffected(), nil
}
