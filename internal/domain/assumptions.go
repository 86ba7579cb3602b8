package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	dec "github.com/rpgo/savings-projector/pkg/decimal"
)

func pct(v decimal.Decimal) string {
	return dec.Percent(v).StringFixed(2) + "%"
}

// GenerateAssumptions creates the assumptions list from actual config values
func (c *Configuration) GenerateAssumptions() []string {
	rmd := "RMDs start at the age implied by birth year (SECURE 2.0)"
	if c.RMDStartAge > 0 {
		rmd = fmt.Sprintf("RMDs start at age %d (Uniform Lifetime Table)", c.RMDStartAge)
	}
	return []string{
		fmt.Sprintf("Retirement accounts return %s annually, compounded monthly", pct(c.Returns.Retirement)),
		fmt.Sprintf("Brokerage returns %s annually, savings %s", pct(c.Returns.Brokerage), pct(c.Returns.Savings)),
		fmt.Sprintf("Salary grows %s annually while working", pct(c.SalaryGrowthRate)),
		fmt.Sprintf("Tax-deferred withdrawals taxed at a flat %s", pct(c.WithdrawalTaxRate)),
		fmt.Sprintf("Early withdrawal penalty %s on tax-deferred draws before age 59.5", pct(c.EarlyWithdrawalPenaltyRate)),
		rmd,
		"Contribution limits grow by a fixed dollar amount each year",
	}
}
