package calculation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	dec "github.com/rpgo/savings-projector/pkg/decimal"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func assertDecimalEqual(t *testing.T, expected, actual decimal.Decimal, what string) {
	t.Helper()
	assert.True(t, expected.Equal(actual), "%s: expected %s, got %s", what, expected, actual)
}

func assertDecimalNear(t *testing.T, expected, actual decimal.Decimal, tol float64, what string) {
	t.Helper()
	assert.True(t, dec.WithinTolerance(expected, actual, decimal.NewFromFloat(tol)),
		"%s: expected %s ± %v, got %s", what, expected, tol, actual)
}
