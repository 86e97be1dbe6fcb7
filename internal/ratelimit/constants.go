package ratelimit

import "time"

// Progressive login limiter
const (
	LoginWindow       = 15 * time.Minute
	LoginBaseAttempts = 5
	LoginMinAttempts  = 1

	// StrikeTTL bounds how long an idle key keeps its strikes
	StrikeTTL = 24 * time.Hour
)

// Fixed withdrawal limiter
const (
	WithdrawWindow   = time.Hour
	WithdrawAttempts = 3
)

// DefaultMaxKeys caps the number of tracked keys per limiter
const DefaultMaxKeys = 10000

// Error codes and messages returned with 429
const (
	CodeTooManyAttempts = "TOO_MANY_ATTEMPTS"
	CodeWithdrawalLimit = "WITHDRAWAL_LIMIT"

	MsgTooManyAttempts = "Too many login attempts. Please try again later."
	MsgWithdrawalLimit = "Withdrawal limit reached. Please try again later."
)

// Headers
const (
	HeaderRetryAfter = "Retry-After"
)

// Log messages
const (
	LogMsgRateLimited  = "Request rate limited"
	LogMsgStrikeAdded  = "Rate limit strike recorded"
	LogMsgStrikesReset = "Rate limit strikes reset"
	LogMsgEncodeFailed = "Failed to encode rate limit response"
	LogMsgMissingKey   = "No session for rate limited request, falling back to remote address"
)
