package domain

import "github.com/shopspring/decimal"

// Public broadcast thresholds for settled wins
var (
	PublicWinThreshold = decimal.NewFromInt(10)
	JackpotThreshold   = decimal.NewFromInt(1000)
)

// Bet limits
var (
	MinBet     = decimal.NewFromFloat(0.5)
	MaxBet     = decimal.NewFromInt(100)
	BetStep    = decimal.NewFromFloat(0.5)
	DefaultBet = decimal.NewFromInt(1)
)

// MoneyPlaces is the number of decimal places money is stored with
const MoneyPlaces = 2
