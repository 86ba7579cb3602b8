package decimal

import (
	"github.com/shopspring/decimal"
)

// LedgerPlaces is the number of fractional digits kept on running balances.
// Monthly compounding multiplies digits on every step, so balances are
// rounded back to this precision after each mutation.
const LedgerPlaces int32 = 10

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Min returns the smaller of two amounts
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Clamp bounds v to [lo, hi]. When hi < lo the result is lo.
func Clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	return Max(lo, Min(v, hi))
}

// NonNegative floors an amount at zero
func NonNegative(v decimal.Decimal) decimal.Decimal {
	return Max(v, decimal.Zero)
}

// Monthly converts an annual amount or rate to its monthly share
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve)
}

// RoundLedger rounds a running balance to LedgerPlaces
func RoundLedger(v decimal.Decimal) decimal.Decimal {
	return v.Round(LedgerPlaces)
}

// RoundToStep rounds v to the nearest multiple of step (e.g. 0.0025 for a
// quarter-percent grid). A non-positive step returns v unchanged.
func RoundToStep(v, step decimal.Decimal) decimal.Decimal {
	if !step.IsPositive() {
		return v
	}
	return v.Div(step).Round(0).Mul(step)
}

// Percent renders a fractional rate as a percentage value (0.07 -> 7)
func Percent(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(hundred)
}

// WithinTolerance reports whether |a-b| <= tol
func WithinTolerance(a, b, tol decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tol)
}
