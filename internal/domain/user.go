package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles
const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

// User represents a registered account
type User struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"-"`
	Role         string          `json:"role"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
}

// IsAdmin reports whether the user has admin rights
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
