package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/savings-projector/internal/domain"
)

// PenaltyFreeAge is the age from which tax-deferred withdrawals are no longer penalized.
var PenaltyFreeAge = decimal.RequireFromString("59.5")

var (
	// Before 59.5 the tax-deferred account is the last resort.
	earlyWithdrawalOrder = []domain.Account{domain.Taxable, domain.Cash, domain.TaxFree, domain.Medical, domain.Deferred}
	// From 59.5 the tax-deferred account is drawn first.
	standardWithdrawalOrder = []domain.Account{domain.Deferred, domain.TaxFree, domain.Medical, domain.Taxable, domain.Cash}
)

// IsEarlyWithdrawal reports whether a tax-deferred withdrawal at age is penalized
func IsEarlyWithdrawal(age decimal.Decimal) bool {
	return age.LessThan(PenaltyFreeAge)
}

// WithdrawalOrder returns the account priority used at age
func WithdrawalOrder(age decimal.Decimal) []domain.Account {
	if IsEarlyWithdrawal(age) {
		return earlyWithdrawalOrder
	}
	return standardWithdrawalOrder
}

// WithdrawalResult is what one waterfall pass drew and what it cost
type WithdrawalResult struct {
	Drawn   domain.AccountAmounts
	Total   decimal.Decimal
	Tax     decimal.Decimal
	Penalty decimal.Decimal
}

// WithdrawalPolicy carries the rates applied to tax-deferred withdrawals
type WithdrawalPolicy struct {
	TaxRate     decimal.Decimal
	PenaltyRate decimal.Decimal
}

// Withdraw satisfies need from the ledger by walking order, emptying each
// account before moving to the next. A shortfall is absorbed silently: the
// result simply totals less than need.
func Withdraw(ledger *domain.Ledger, need decimal.Decimal, order []domain.Account) WithdrawalResult {
	var res WithdrawalResult
	remaining := need
	for _, a := range order {
		if !remaining.IsPositive() {
			break
		}
		drawn := ledger.Withdraw(a, remaining)
		res.Drawn.Add(a, drawn)
		res.Total = res.Total.Add(drawn)
		remaining = remaining.Sub(drawn)
	}
	return res
}

// WithdrawAtAge runs the age-appropriate waterfall and accrues tax and
// penalty on the tax-deferred portion.
func WithdrawAtAge(ledger *domain.Ledger, need, age decimal.Decimal, policy WithdrawalPolicy) WithdrawalResult {
	res := Withdraw(ledger, need, WithdrawalOrder(age))
	deferred := res.Drawn.Deferred
	res.Tax = deferred.Mul(policy.TaxRate)
	if IsEarlyWithdrawal(age) {
		res.Penalty = deferred.Mul(policy.PenaltyRate)
	}
	return res
}
