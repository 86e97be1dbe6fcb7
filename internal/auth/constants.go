package auth

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt cost for stored password hashes
const PasswordCost = bcrypt.DefaultCost

// Password policy
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt input limit
)

// Log messages
const (
	LogMsgLoginSucceeded = "Login succeeded"
	LogMsgLoginFailed    = "Login failed"
	LogMsgUserCreated    = "User created"
	LogMsgPasswordReset  = "Password updated"
)
