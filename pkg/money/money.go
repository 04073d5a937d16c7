package money

import "github.com/shopspring/decimal"

// All ledger and loan arithmetic is decimal so every amount stays exact
// to the cent. Binary floats only exist at the JSON edge.

// Round2 rounds to 2 fractional digits, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FromFloat converts a request-level float64 amount into a cent-exact
// decimal. Callers validate range and decimal places before conversion.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

// MustFromString parses a trusted decimal literal (configuration
// constants such as the repay interest rate). Panics on malformed input.
func MustFromString(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
