package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - User Operations
const (
	ErrMsgInvalidUserID             = "invalid user id"
	ErrMsgFailedToInsertUser        = "failed to insert user"
	ErrMsgFailedToGetUserByID       = "failed to get user by id"
	ErrMsgFailedToGetUserByUsername = "failed to get user by username"
	ErrMsgFailedToUpdatePassword    = "failed to update password"
	ErrMsgUsernameTaken             = "username already taken"
)

// Error Messages - Wallet Operations
const (
	ErrMsgFailedToGetBalance        = "failed to get balance"
	ErrMsgFailedToLockBalance       = "failed to lock balance"
	ErrMsgFailedToUpdateBalance     = "failed to update balance"
	ErrMsgFailedToInsertTransaction = "failed to insert transaction"
	ErrMsgFailedToListTransactions  = "failed to list transactions"
)

// Error Messages - Promotion Operations
const (
	ErrMsgFailedToListPromotions = "failed to list promotions"
	ErrMsgFailedToGetPromotion   = "failed to get promotion"
)

// Error Messages - Session Operations
const (
	ErrMsgFailedToCreateSession = "failed to create session"
	ErrMsgFailedToGetSession    = "failed to get session"
	ErrMsgFailedToDeleteSession = "failed to delete session"
	ErrMsgFailedToPurgeSessions = "failed to purge sessions"
)
