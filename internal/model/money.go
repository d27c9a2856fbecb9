package model

import "github.com/shopspring/decimal"

// Money is a decimal amount with fixed two-digit scale on the wire.
//
// decimal.Decimal alone is exact, but its String() trims trailing zeros, so
// a price stored as 129.90 would serialize as "129.9". Money overrides only
// the JSON marshalling to StringFixed(2); everything else — parsing,
// arithmetic, comparison, database Scan/Value — is the embedded Decimal.
type Money struct {
	decimal.Decimal
}

// MoneyFromDecimal wraps a decimal amount.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MarshalJSON renders the amount as a string with exactly two fraction
// digits: "129.90", never "129.9".
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}
