package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "balance.changed")
const (
	// EventTypeBalanceChanged is published after the wallet commits a balance movement
	EventTypeBalanceChanged = "balance.changed"

	// EventTypeUserLoggedIn is published after a successful admin login
	EventTypeUserLoggedIn = "user.logged_in"

	// EventTypeSessionsPurged is published when the purge job removes expired sessions
	EventTypeSessionsPurged = "sessions.purged"
)

// Real-time message types. These names are the wire contract between
// clients and the hub.
const (
	// Client -> server
	MessageBalanceUpdate = "balance_update"
	MessageWin           = "win"
	MessageJackpot       = "jackpot"
	MessageSpinStart     = "spin_start"
	MessageAuthenticate  = "authenticate"

	// Server -> client
	MessageBalanceChanged      = "balance_changed"
	MessageWinNotification     = "win_notification"
	MessageJackpotNotification = "jackpot_notification"
	MessageAuthenticated       = "authenticated"
	MessageError               = "error"
)
