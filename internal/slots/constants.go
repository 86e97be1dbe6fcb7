package slots

import (
	"time"

	"github.com/osse101/SpinHall_Go/internal/domain"
)

// Catalog is the fixed symbol set, drawn from uniformly
var Catalog = []domain.Symbol{
	{ID: domain.SymbolCherry, Name: "Cherry", Value: 2, Image: "/symbols/cherry.png"},
	{ID: domain.SymbolLemon, Name: "Lemon", Value: 3, Image: "/symbols/lemon.png"},
	{ID: domain.SymbolOrange, Name: "Orange", Value: 4, Image: "/symbols/orange.png"},
	{ID: domain.SymbolPlum, Name: "Plum", Value: 5, Image: "/symbols/plum.png"},
	{ID: domain.SymbolBell, Name: "Bell", Value: 8, Image: "/symbols/bell.png"},
	{ID: domain.SymbolBar, Name: "Bar", Value: 10, Image: "/symbols/bar.png"},
	{ID: domain.SymbolSeven, Name: "Seven", Value: 15, Image: "/symbols/seven.png"},
	{ID: domain.SymbolDiamond, Name: "Diamond", Value: 20, Image: "/symbols/diamond.png"},
}

// Timing of the landing sequence
const (
	ReelDelayStep = 200 * time.Millisecond // reel i waits i*step
	SettleDelay   = 500 * time.Millisecond
)

// Payout rules
const (
	MinPayingRun       = 3
	ConsolationChance  = 0.2
	ConsolationMinMult = 1
	ConsolationMaxMult = 5
)

// Log messages
const (
	LogMsgBetDeclined     = "Bet declined, spin aborted"
	LogMsgSpinStarted     = "Spin started"
	LogMsgSpinSettled     = "Spin settled"
	LogMsgWinCreditFailed = "Failed to credit win"
)

// SymbolByID looks up a catalog symbol
func SymbolByID(id string) (domain.Symbol, bool) {
	for _, s := range Catalog {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Symbol{}, false
}
