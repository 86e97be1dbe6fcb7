package utils

import (
	"github.com/shopspring/decimal"
)

// HasAtMostPlaces reports whether d needs no more than places fractional digits
func HasAtMostPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// ValidMoneyAmount reports whether d is a positive amount with at most two
// decimal places
func ValidMoneyAmount(d decimal.Decimal) bool {
	return d.IsPositive() && HasAtMostPlaces(d, 2)
}

// ToWire converts a money amount to the JSON number sent to clients
func ToWire(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
