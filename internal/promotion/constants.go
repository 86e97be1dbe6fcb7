package promotion

// Log messages
const (
	LogMsgTimezoneFailed = "Failed to load promotion timezone, treating promotion as available"
	LogMsgUsageFailed    = "Failed to read promotion usage"
	LogMsgListed         = "Promotions listed"
)
