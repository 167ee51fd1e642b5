package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundCurrency rounds an amount to whole euro cents.
func RoundCurrency(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	d, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return d
}

// RoundEuro rounds an amount to the nearest whole euro.
func RoundEuro(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	d, _ := decimal.NewFromFloat(amount).Round(0).Float64()
	return d
}

// FormatEUR formats an amount as a euro string with two decimals.
// Example: 1234.5 returns "1234.50 EUR".
func FormatEUR(amount float64) string {
	return decimal.NewFromFloat(amount).Round(2).StringFixed(2) + " EUR"
}

// FormatWithPrecision formats an amount with the given precision.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
