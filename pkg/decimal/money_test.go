package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func d(s string) stddec.Decimal { return stddec.RequireFromString(s) }

func TestMinMaxClamp(t *testing.T) {
	a, b := d("10"), d("20")
	if !Min(a, b).Equal(a) || !Min(b, a).Equal(a) {
		t.Fatalf("Min failed")
	}
	if !Max(a, b).Equal(b) || !Max(b, a).Equal(b) {
		t.Fatalf("Max failed")
	}

	cases := []struct{ v, lo, hi, want string }{
		{"5", "0", "10", "5"},
		{"-3", "0", "10", "0"},
		{"12", "0", "10", "10"},
		{"7", "5", "1", "5"}, // inverted bounds collapse to lo
	}
	for _, c := range cases {
		if got := Clamp(d(c.v), d(c.lo), d(c.hi)); !got.Equal(d(c.want)) {
			t.Fatalf("Clamp(%s,%s,%s) got %s want %s", c.v, c.lo, c.hi, got, c.want)
		}
	}

	if !NonNegative(d("-0.01")).IsZero() || !NonNegative(d("3")).Equal(d("3")) {
		t.Fatalf("NonNegative failed")
	}
}

func TestMonthly(t *testing.T) {
	if got := Monthly(d("1200")); !got.Equal(d("100")) {
		t.Fatalf("Monthly got %s", got)
	}
}

func TestRoundToStep(t *testing.T) {
	step := d("0.0025")
	cases := []struct{ in, want string }{
		{"0.07", "0.07"},
		{"0.0712", "0.07"},
		{"0.0713", "0.0725"},
		{"0.0001", "0"},
		{"0.15", "0.15"},
	}
	for _, c := range cases {
		if got := RoundToStep(d(c.in), step); !got.Equal(d(c.want)) {
			t.Fatalf("RoundToStep(%s) got %s want %s", c.in, got, c.want)
		}
	}
	if got := RoundToStep(d("0.0713"), stddec.Zero); !got.Equal(d("0.0713")) {
		t.Fatalf("zero step should be a no-op, got %s", got)
	}
}

func TestRoundLedgerAndTolerance(t *testing.T) {
	if got := RoundLedger(d("1.123456789012345")); got.String() != "1.123456789" {
		t.Fatalf("RoundLedger got %s", got)
	}
	if !WithinTolerance(d("100.004"), d("100"), d("0.01")) {
		t.Fatalf("expected within tolerance")
	}
	if WithinTolerance(d("100.02"), d("100"), d("0.01")) {
		t.Fatalf("expected outside tolerance")
	}
	if got := Percent(d("0.0725")); !got.Equal(d("7.25")) {
		t.Fatalf("Percent got %s", got)
	}
}
