package handler

// Generic HTTP error messages for client responses.
// These never carry internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgNotLoggedIn           = "Not logged in"
	ErrMsgAdminRequired         = "Admin access required"
	ErrMsgMissingPromotionID    = "Missing promotion id"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgLogoutFailed          = "Failed to log out"
	ErrMsgLoginFailed           = "Failed to log in"
)

// User-facing messages derived from domain errors
const (
	ErrMsgGenericServerError      = "Something went wrong"
	ErrMsgUnknownError            = "Unknown error"
	ErrMsgUserNotFoundError       = "User not found"
	ErrMsgNotEnoughMoneyError     = "Insufficient balance"
	ErrMsgInvalidAmountError      = "Amount must be positive with at most 2 decimal places"
	ErrMsgInvalidActionError      = "Action must be bet or win"
	ErrMsgInvalidCredentialsError = "Invalid username or password"
	ErrMsgSessionNotFoundError    = "Session expired. Please log in again"
	ErrMsgForbiddenError          = "You are not allowed to do that"
	ErrMsgPromotionNotFoundError  = "Promotion not found"
	ErrMsgInvalidInputError       = "Invalid request. Please check your inputs."
)

// Success messages
const (
	MsgLoggedOut = "Logged out"
)

// Log messages
const (
	LogMsgDecodeFailed        = "Failed to decode request"
	LogMsgRequestDecoded      = "Request decoded"
	LogMsgEncodeFailed        = "Failed to encode JSON response"
	LogMsgWriteFailed         = "Failed to write response buffer"
	LogMsgReadinessFailed     = "Readiness check failed"
	LogMsgUnauthenticated     = "Unauthenticated request"
	LogMsgBalanceFailed       = "Failed to get balance"
	LogMsgTransactionFailed   = "Balance transaction failed"
	LogMsgTransactionApplied  = "Balance transaction applied"
	LogMsgWithdrawFailed      = "Withdrawal failed"
	LogMsgHistoryFailed       = "Failed to list transactions"
	LogMsgLoginFailed         = "Login failed"
	LogMsgLoginSucceeded      = "Login succeeded"
	LogMsgSessionBeginFailed  = "Failed to create session"
	LogMsgLogoutFailed        = "Failed to end session"
	LogMsgMeFailed            = "Failed to load session user"
	LogMsgPromotionsFailed    = "Failed to list promotions"
	LogMsgAvailabilityFailed  = "Failed to check promotion availability"
	LogMsgForbiddenNonAdmin   = "Non-admin session rejected"
)

// Health status values
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	HealthMsgDatabaseDown   = "database connection failed"
)
