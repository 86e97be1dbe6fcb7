package balance

// Notice texts
const (
	NoticeInsufficientBalanceFmt = "Insufficient balance: you have %s, the bet is %s"
	NoticeTransactionFailedFmt   = "Transaction failed: %s"
	NoticeTransactionFailed      = "Transaction failed. Please try again."
)

// Log messages
const (
	LogMsgLoadFailed = "Failed to load balance, keeping last known value"
	LogMsgBetFailed  = "Bet transaction failed"
	LogMsgWinFailed  = "Win transaction failed"
	LogMsgBadPush    = "Ignoring malformed balance_changed message"
	LogMsgNotice     = "Notice"
)
