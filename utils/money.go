// utils/money.go
package utils

import "github.com/shopspring/decimal"

// Round2 rounds to two decimal places, half away from zero. All money in
// this service is non-negative so this is plain half-up rounding.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// CommissionFor applies a percentage rate to an amount and rounds the result.
func CommissionFor(amount, rate float64) float64 {
	f, _ := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(rate)).
		Div(decimal.NewFromInt(100)).
		Round(2).
		Float64()
	return f
}
