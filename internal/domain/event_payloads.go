package domain

// BalanceChangedPayload is the bus payload for balance.changed
type BalanceChangedPayload struct {
	UserID      string       `json:"user_id"`
	Balance     float64      `json:"balance"`
	Transaction *Transaction `json:"transaction,omitempty"`
}

// UserLoggedInPayload is the bus payload for user.logged_in
type UserLoggedInPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// SessionsPurgedPayload is the bus payload for sessions.purged
type SessionsPurgedPayload struct {
	Count int64 `json:"count"`
}

// Wire payloads for real-time messages. Amounts are JSON numbers.

// BalanceUpdateMessage is sent by a client after its own bet settles
type BalanceUpdateMessage struct {
	UserID  string  `json:"userId"`
	Balance float64 `json:"balance"`
}

// BalanceChangedMessage tells a client to overwrite its cached balance
type BalanceChangedMessage struct {
	Balance float64 `json:"balance"`
}

// PublicWinMessage is a win or jackpot surfaced to every connected client
type PublicWinMessage struct {
	Username string  `json:"username"`
	Amount   float64 `json:"amount"`
	Game     string  `json:"game"`
}

// SpinStartMessage announces a spin to the player's other devices
type SpinStartMessage struct {
	Bet float64 `json:"bet"`
}

// SpinWinMessage is the legacy point-to-point win sync message
type SpinWinMessage struct {
	Amount    float64  `json:"amount"`
	BetAmount float64  `json:"betAmount"`
	Symbols   []string `json:"symbols"`
}

// AuthenticateMessage binds a connection to a session token
type AuthenticateMessage struct {
	Token string `json:"token"`
}
