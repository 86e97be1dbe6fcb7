package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/event"
	"github.com/osse101/SpinHall_Go/internal/logger"
	"github.com/osse101/SpinHall_Go/internal/metrics"
	"github.com/osse101/SpinHall_Go/internal/repository"
)

// Service authenticates users and manages credentials
type Service interface {
	Login(ctx context.Context, username, password string) (*domain.User, error)
	CreateUser(ctx context.Context, username, password, role string, balance decimal.Decimal) (*domain.User, error)
	SetPassword(ctx context.Context, username, password string) error
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	repo      repository.User
	publisher event.Publisher
}

// NewService creates a new auth service. publisher may be nil.
func NewService(repo repository.User, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
	}
}

// Login checks the credentials. Unknown users and wrong passwords both
// return domain.ErrInvalidCredentials.
func (s *service) Login(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContext(ctx)
	username = strings.TrimSpace(username)

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// spend the same time as a real comparison
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			metrics.LoginsTotal.WithLabelValues(metrics.ResultFailure).Inc()
			log.Info(LogMsgLoginFailed, "username", username, "reason", "unknown user")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		log.Info(LogMsgLoginFailed, "username", username, "reason", "bad password")
		return nil, domain.ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	log.Info(LogMsgLoginSucceeded, "user_id", user.ID, "username", user.Username)

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewUserLoggedInEvent(user.ID, user.Username))
	}
	return user, nil
}

// CreateUser validates and stores a new account
func (s *service) CreateUser(ctx context.Context, username, password, role string, balance decimal.Decimal) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if role != domain.RoleAdmin && role != domain.RolePlayer {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance cannot be negative", domain.ErrInvalidAmount)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Balance:      balance,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgUserCreated, "user_id", user.ID, "username", user.Username, "role", role)
	return user, nil
}

// SetPassword replaces a user's password
func (s *service) SetPassword(ctx context.Context, username, password string) error {
	user, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgPasswordReset, "user_id", user.ID)
	return nil
}

// GetUser returns the user by id
func (s *service) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// HashPassword validates the password policy and returns a bcrypt hash
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return "", fmt.Errorf("%w: password must be %d to %d bytes",
			domain.ErrInvalidInput, MinPasswordLength, MaxPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// dummyHash is compared against when the user does not exist
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("spinhall-placeholder"), PasswordCost)
