package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	dec "github.com/rpgo/savings-projector/pkg/decimal"
)

// Configuration is the immutable input of one simulation run.
// Rates are fractions (0.07 for 7%).
type Configuration struct {
	CurrentAge    int `yaml:"current_age" json:"current_age"`
	RetirementAge int `yaml:"retirement_age" json:"retirement_age"`
	DeathAge      int `yaml:"death_age" json:"death_age"`

	// Optional; used to derive RMDStartAge when that is left at zero
	BirthYear int `yaml:"birth_year,omitempty" json:"birth_year,omitempty"`

	StartingBalances      AccountAmounts `yaml:"starting_balances" json:"starting_balances"`
	AnnualContributions   AccountAmounts `yaml:"annual_contributions" json:"annual_contributions"`
	ContributionIncreases AccountAmounts `yaml:"contribution_increases" json:"contribution_increases"`

	CatchUpAge     int            `yaml:"catch_up_age" json:"catch_up_age"`
	CatchUpAmounts CatchUpAmounts `yaml:"catch_up_amounts" json:"catch_up_amounts"`

	EmployerMatchRate    decimal.Decimal `yaml:"employer_match_rate" json:"employer_match_rate"`
	EmployerMatchCeiling decimal.Decimal `yaml:"employer_match_ceiling" json:"employer_match_ceiling"`
	ProfitSharingRate    decimal.Decimal `yaml:"profit_sharing_rate" json:"profit_sharing_rate"`

	AnnualWithdrawal           decimal.Decimal `yaml:"annual_withdrawal" json:"annual_withdrawal"`
	WithdrawalTaxRate          decimal.Decimal `yaml:"withdrawal_tax_rate" json:"withdrawal_tax_rate"`
	EarlyWithdrawalPenaltyRate decimal.Decimal `yaml:"early_withdrawal_penalty_rate" json:"early_withdrawal_penalty_rate"`
	RMDStartAge                int             `yaml:"rmd_start_age" json:"rmd_start_age"`

	Returns Returns `yaml:"returns" json:"returns"`

	Salary           decimal.Decimal `yaml:"salary" json:"salary"`
	SalaryGrowthRate decimal.Decimal `yaml:"salary_growth_rate" json:"salary_growth_rate"`

	// Optional override of the built-in contribution limit tables
	LimitTables *LimitSchedule `yaml:"limit_tables,omitempty" json:"limit_tables,omitempty"`
}

// Years returns the number of simulated years (inclusive of both ends)
func (c *Configuration) Years() int {
	if c.DeathAge < c.CurrentAge {
		return 0
	}
	return c.DeathAge - c.CurrentAge + 1
}

// CatchUpAmounts are the user's declared catch-up contributions per limited account
type CatchUpAmounts struct {
	Deferred decimal.Decimal `yaml:"deferred" json:"deferred"`
	TaxFree  decimal.Decimal `yaml:"tax_free" json:"tax_free"`
	Medical  decimal.Decimal `yaml:"medical" json:"medical"`
}

// For returns the declared catch-up for an account (zero for unlimited accounts)
func (c CatchUpAmounts) For(a Account) decimal.Decimal {
	switch a {
	case Deferred:
		return c.Deferred
	case TaxFree:
		return c.TaxFree
	case Medical:
		return c.Medical
	default:
		return decimal.Zero
	}
}

// Returns holds the annual rate of return per account class
type Returns struct {
	Retirement decimal.Decimal `yaml:"retirement" json:"retirement"` // deferred and tax-free
	Brokerage  decimal.Decimal `yaml:"brokerage" json:"brokerage"`   // taxable
	Savings    decimal.Decimal `yaml:"savings" json:"savings"`       // medical and cash
}

// AnnualRate returns the annual rate applied to an account
func (r Returns) AnnualRate(a Account) decimal.Decimal {
	switch a {
	case Deferred, TaxFree:
		return r.Retirement
	case Taxable:
		return r.Brokerage
	default:
		return r.Savings
	}
}

// MonthlyRate returns annualRate/12 for an account
func (r Returns) MonthlyRate(a Account) decimal.Decimal {
	return dec.Monthly(r.AnnualRate(a))
}

// SuperCatchUp is the elevated catch-up tier active only inside [AgeMin, AgeMax]
type SuperCatchUp struct {
	Limit  decimal.Decimal `yaml:"limit" json:"limit"`
	AgeMin int             `yaml:"age_min" json:"age_min"`
	AgeMax int             `yaml:"age_max" json:"age_max"`
}

// Contains reports whether age falls inside the super catch-up band
func (s *SuperCatchUp) Contains(age int) bool {
	return s != nil && age >= s.AgeMin && age <= s.AgeMax
}

// LimitTable is the static contribution limit data for one account category
type LimitTable struct {
	StandardLimit  decimal.Decimal `yaml:"standard_limit" json:"standard_limit"`
	CatchUpLimit   decimal.Decimal `yaml:"catch_up_limit" json:"catch_up_limit"`
	CatchUpAge     int             `yaml:"catch_up_age" json:"catch_up_age"`
	AnnualIncrease decimal.Decimal `yaml:"annual_increase" json:"annual_increase"`
	Super          *SuperCatchUp   `yaml:"super,omitempty" json:"super,omitempty"`
}

// LimitSchedule groups the limit tables of the three limited accounts
type LimitSchedule struct {
	Deferred LimitTable `yaml:"deferred" json:"deferred"`
	TaxFree  LimitTable `yaml:"tax_free" json:"tax_free"`
	Medical  LimitTable `yaml:"medical" json:"medical"`
}

// For returns the limit table for a limited account
func (s LimitSchedule) For(a Account) (LimitTable, error) {
	switch a {
	case Deferred:
		return s.Deferred, nil
	case TaxFree:
		return s.TaxFree, nil
	case Medical:
		return s.Medical, nil
	}
	return LimitTable{}, fmt.Errorf("account %s has no contribution limit", a)
}

// Scenario is a named configuration
type Scenario struct {
	Name   string        `yaml:"name" json:"name"`
	Config Configuration `yaml:"config" json:"config"`
}

// InputFile is the top-level document read from disk
type InputFile struct {
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}
