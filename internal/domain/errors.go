package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Wallet errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInvalidAmount     = "invalid amount"
	ErrMsgInvalidAction     = "invalid action"

	// Auth/session errors
	ErrMsgInvalidCredentials = "invalid credentials"
	ErrMsgSessionNotFound    = "session not found"
	ErrMsgForbidden          = "forbidden"

	// Promotion errors
	ErrMsgPromotionNotFound = "promotion not found"

	// Slot machine errors
	ErrMsgSpinInProgress = "a spin is already in progress"
	ErrMsgBetDeclined    = "bet declined"

	// Transport errors
	ErrMsgNotConnected = "transport not connected"

	// Database/System errors
	ErrMsgConnectionTimeout = "connection timeout"
	ErrMsgDatabaseError     = "database error"
	ErrMsgTxClosed          = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)
	ErrInvalidAction     = errors.New(ErrMsgInvalidAction)

	ErrInvalidCredentials = errors.New(ErrMsgInvalidCredentials)
	ErrSessionNotFound    = errors.New(ErrMsgSessionNotFound)
	ErrForbidden          = errors.New(ErrMsgForbidden)

	ErrPromotionNotFound = errors.New(ErrMsgPromotionNotFound)

	ErrSpinInProgress = errors.New(ErrMsgSpinInProgress)
	ErrBetDeclined    = errors.New(ErrMsgBetDeclined)

	ErrNotConnected = errors.New(ErrMsgNotConnected)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
