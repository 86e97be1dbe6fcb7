package domain

import "github.com/shopspring/decimal"

// Symbol is one entry of the reel catalog
type Symbol struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value int    `json:"value"` // Payout multiplier for a matched run
	Image string `json:"image"`
}

// Symbol identifiers
const (
	SymbolCherry  = "cherry"
	SymbolLemon   = "lemon"
	SymbolOrange  = "orange"
	SymbolPlum    = "plum"
	SymbolBell    = "bell"
	SymbolBar     = "bar"
	SymbolSeven   = "seven"
	SymbolDiamond = "diamond"
)

// Reel geometry
const (
	ReelCount   = 5
	VisibleRows = 3
	MiddleRow   = 1
)

// Reel holds the visible symbols of one column, top to bottom
type Reel [VisibleRows]Symbol

// SpinOutcome is the settled result of a single spin
type SpinOutcome struct {
	Reels     [ReelCount]Reel `json:"reels"`
	Bet       decimal.Decimal `json:"bet"`
	Payout    decimal.Decimal `json:"payout"`
	Run       int             `json:"run"`
	RunSymbol string          `json:"run_symbol,omitempty"`
	Bonus     bool            `json:"bonus"` // Consolation payout, not tied to a visible line
}

// MiddleRowIDs returns the symbol ids of the evaluated row, left to right
func (o SpinOutcome) MiddleRowIDs() []string {
	ids := make([]string, ReelCount)
	for i, r := range o.Reels {
		ids[i] = r[MiddleRow].ID
	}
	return ids
}

// IsWin reports whether the spin paid anything
func (o SpinOutcome) IsWin() bool {
	return o.Payout.IsPositive()
}
