package calculator

import "math"

// Tolerance is the rounding noise floor shared by balance aggregation, debt
// simplification and the tests. Balances are float currency; two amounts
// closer than this are the same amount, and a balance below it is settled.
const Tolerance = 0.01

// IsNegligible reports whether amount is indistinguishable from zero at the
// shared tolerance. Every "is this settled" comparison goes through here so
// the same threshold applies everywhere.
func IsNegligible(amount float64) bool {
	return math.Abs(amount) < Tolerance
}
