package domain

import "github.com/shopspring/decimal"

// Monetary amounts are fixed-point with two minor units. Every arithmetic
// result is rounded before it is stored or compared so repeated partial
// payments cannot accumulate drift.

const currencyPlaces = 2

// Money rounds d to the currency's minor unit.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(currencyPlaces)
}

// MoneyFromFloat builds a rounded amount from a float input (API payloads).
func MoneyFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(currencyPlaces)
}
