package wallet

// History limits
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Log messages
const (
	LogMsgApplyCalled      = "Balance transaction requested"
	LogMsgApplied          = "Balance transaction committed"
	LogMsgInsufficientFund = "Balance transaction rejected, insufficient funds"
	LogMsgBeginTxFailed    = "Failed to begin transaction"
	LogMsgCommitFailed     = "Failed to commit transaction"
)
