package session

// Cookie and header names
const (
	CookieName          = "session_id"
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
)

// Log messages
const (
	LogMsgSessionLoaded      = "Session loaded"
	LogMsgSessionLookupError = "Session lookup failed, treating request as anonymous"
	LogMsgAnonymousIssued    = "Issued anonymous session"
	LogMsgSessionsPurged     = "Expired sessions purged"
)
