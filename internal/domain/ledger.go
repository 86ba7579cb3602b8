package domain

import (
	"github.com/shopspring/decimal"

	dec "github.com/rpgo/savings-projector/pkg/decimal"
)

// Ledger is the mutable account state of a single simulation run.
// Balances never go negative: withdrawals are clamped to what is available.
type Ledger struct {
	balances AccountAmounts
}

// NewLedger seeds a ledger with starting balances. Negative inputs are floored at zero.
func NewLedger(starting AccountAmounts) Ledger {
	var l Ledger
	for _, a := range AllAccounts {
		l.balances.Set(a, dec.RoundLedger(dec.NonNegative(starting.Get(a))))
	}
	return l
}

// Balance returns the current balance of an account
func (l *Ledger) Balance(a Account) decimal.Decimal {
	return l.balances.Get(a)
}

// Balances returns a snapshot of all balances
func (l *Ledger) Balances() AccountAmounts {
	return l.balances
}

// Total returns the combined balance across accounts
func (l *Ledger) Total() decimal.Decimal {
	return l.balances.Total()
}

// Deposit credits an account. Non-positive amounts are ignored.
func (l *Ledger) Deposit(a Account, amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	amount = dec.RoundLedger(amount)
	l.balances.Add(a, amount)
	return amount
}

// Withdraw debits up to amount from an account and returns what was actually drawn
func (l *Ledger) Withdraw(a Account, amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	drawn := dec.RoundLedger(dec.Min(amount, l.balances.Get(a)))
	l.balances.Set(a, dec.NonNegative(l.balances.Get(a).Sub(drawn)))
	return drawn
}

// Grow applies one period of growth at rate and returns the growth credited.
// Growth on an empty account is zero; a loss never pushes the balance below zero.
func (l *Ledger) Grow(a Account, rate decimal.Decimal) decimal.Decimal {
	bal := l.balances.Get(a)
	if !bal.IsPositive() {
		return decimal.Zero
	}
	next := dec.NonNegative(dec.RoundLedger(bal.Mul(decimal.NewFromInt(1).Add(rate))))
	l.balances.Set(a, next)
	return next.Sub(bal)
}
