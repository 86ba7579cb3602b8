package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Account identifies one of the five savings buckets tracked by the ledger
type Account int

const (
	// Deferred is the tax-deferred retirement account (401k-style)
	Deferred Account = iota
	// TaxFree is the Roth-style account
	TaxFree
	// Medical is the health savings account
	Medical
	// Taxable is the brokerage account
	Taxable
	// Cash is plain savings
	Cash
)

// AllAccounts lists every account in ledger order
var AllAccounts = []Account{Deferred, TaxFree, Medical, Taxable, Cash}

// LimitedAccounts lists the accounts bound by annual contribution limits
var LimitedAccounts = []Account{Deferred, TaxFree, Medical}

var accountNames = map[Account]string{
	Deferred: "deferred",
	TaxFree:  "tax_free",
	Medical:  "medical",
	Taxable:  "taxable",
	Cash:     "cash",
}

func (a Account) String() string {
	if name, ok := accountNames[a]; ok {
		return name
	}
	return fmt.Sprintf("account(%d)", int(a))
}

// ParseAccount resolves an account from its name
func ParseAccount(name string) (Account, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for a, s := range accountNames {
		if s == n {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown account %q", name)
}

// IsLimited reports whether the account has an IRS-style contribution ceiling
func (a Account) IsLimited() bool {
	return a == Deferred || a == TaxFree || a == Medical
}

// AccountAmounts holds one amount per account. It is used for balances,
// contributions, growth and withdrawals alike.
type AccountAmounts struct {
	Deferred decimal.Decimal `yaml:"deferred" json:"deferred"`
	TaxFree  decimal.Decimal `yaml:"tax_free" json:"tax_free"`
	Medical  decimal.Decimal `yaml:"medical" json:"medical"`
	Taxable  decimal.Decimal `yaml:"taxable" json:"taxable"`
	Cash     decimal.Decimal `yaml:"cash" json:"cash"`
}

func (aa *AccountAmounts) field(a Account) *decimal.Decimal {
	switch a {
	case Deferred:
		return &aa.Deferred
	case TaxFree:
		return &aa.TaxFree
	case Medical:
		return &aa.Medical
	case Taxable:
		return &aa.Taxable
	case Cash:
		return &aa.Cash
	}
	panic(fmt.Sprintf("domain: unknown account %d", int(a)))
}

// Get returns the amount for an account
func (aa AccountAmounts) Get(a Account) decimal.Decimal {
	return *aa.field(a)
}

// Set replaces the amount for an account
func (aa *AccountAmounts) Set(a Account, v decimal.Decimal) {
	*aa.field(a) = v
}

// Add accumulates v into an account's amount
func (aa *AccountAmounts) Add(a Account, v decimal.Decimal) {
	f := aa.field(a)
	*f = f.Add(v)
}

// Total sums every account
func (aa AccountAmounts) Total() decimal.Decimal {
	total := decimal.Zero
	for _, a := range AllAccounts {
		total = total.Add(aa.Get(a))
	}
	return total
}

// Round returns a copy with every amount rounded to places
func (aa AccountAmounts) Round(places int32) AccountAmounts {
	var out AccountAmounts
	for _, a := range AllAccounts {
		out.Set(a, aa.Get(a).Round(places))
	}
	return out
}
