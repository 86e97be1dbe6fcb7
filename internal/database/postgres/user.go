package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpinHall_Go/internal/domain"
)

// UserRepository implements the user repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `user_id, username, password_hash, role, balance, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var id uuid.UUID
	if err := row.Scan(&id, &u.Username, &u.PasswordHash, &u.Role, &u.Balance, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.ID = id.String()
	return &u, nil
}

// CreateUser inserts a user and sets its ID and CreatedAt
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, password_hash, role, balance)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRow(ctx, query, user.Username, user.PasswordHash, user.Role, user.Balance))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUsernameTaken)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertUser, err)
	}

	user.ID = created.ID
	user.CreatedAt = created.CreatedAt
	return nil
}

// GetUserByID finds a user by id
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	id, err := parseUUID(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUserByID, err)
	}
	return user, nil
}

// GetUserByUsername finds a user by username, case-insensitively
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(username) = LOWER($1)`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUserByUsername, err)
	}
	return user, nil
}

// UpdatePasswordHash replaces a user's password hash
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	id, err := parseUUID(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE user_id = $2`, hash, id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdatePassword, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
