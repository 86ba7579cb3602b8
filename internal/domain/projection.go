package domain

import (
	"github.com/shopspring/decimal"
)

// YearRecord is the outcome of one simulated year. Records are produced in
// age order and never mutated afterwards.
type YearRecord struct {
	Age     int             `json:"age"`
	Working bool            `json:"working"`
	Salary  decimal.Decimal `json:"salary"`

	Contributions        AccountAmounts  `json:"contributions"`
	EmployerContribution decimal.Decimal `json:"employer_contribution"`
	Growth               AccountAmounts  `json:"growth"`

	Withdrawals      AccountAmounts  `json:"withdrawals"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	RMD              decimal.Decimal `json:"rmd"`
	Tax              decimal.Decimal `json:"tax"`
	Penalty          decimal.Decimal `json:"penalty"`

	Balances                AccountAmounts  `json:"balances"`
	CumulativeContributions decimal.Decimal `json:"cumulative_contributions"`

	// Informational: projected ceiling (standard + applicable catch-up) for each limited account
	MaxContributions ContributionCeilings `json:"max_contributions"`
}

// ContributionCeilings holds the IRS-style maximum per limited account for a year
type ContributionCeilings struct {
	Deferred decimal.Decimal `json:"deferred"`
	TaxFree  decimal.Decimal `json:"tax_free"`
	Medical  decimal.Decimal `json:"medical"`
}

// Set stores the ceiling for a limited account; other accounts are ignored
func (c *ContributionCeilings) Set(a Account, v decimal.Decimal) {
	switch a {
	case Deferred:
		c.Deferred = v
	case TaxFree:
		c.TaxFree = v
	case Medical:
		c.Medical = v
	}
}

// TotalBalance returns the combined end-of-year balance
func (yr *YearRecord) TotalBalance() decimal.Decimal {
	return yr.Balances.Total()
}

// PersonalContributions returns the year's employee contributions across accounts
func (yr *YearRecord) PersonalContributions() decimal.Decimal {
	return yr.Contributions.Total()
}

// IsDepleted reports whether every account is empty at year end
func (yr *YearRecord) IsDepleted() bool {
	return yr.TotalBalance().LessThanOrEqual(decimal.Zero)
}

// ScenarioSummary provides key metrics for one scenario
type ScenarioSummary struct {
	Name               string          `json:"name"`
	RetirementAge      int             `json:"retirement_age"`
	RetirementBalance  decimal.Decimal `json:"retirement_balance"`
	FinalBalance       decimal.Decimal `json:"final_balance"`
	TotalContributions decimal.Decimal `json:"total_contributions"`
	TotalWithdrawals   decimal.Decimal `json:"total_withdrawals"`
	TotalTax           decimal.Decimal `json:"total_tax"`
	TotalPenalty       decimal.Decimal `json:"total_penalty"`
	TotalRMD           decimal.Decimal `json:"total_rmd"`
	DepletionAge       int             `json:"depletion_age"` // 0 when savings last to death
	SustainedToDeath   bool            `json:"sustained_to_death"`
	Projection         []YearRecord    `json:"projection"`
}

// ScenarioComparison collects the summaries of every scenario in an input file
type ScenarioComparison struct {
	Scenarios                []ScenarioSummary `json:"scenarios"`
	BestScenarioForBalance   string            `json:"best_scenario_for_balance"`
	BestScenarioForLongevity string            `json:"best_scenario_for_longevity"`
	Assumptions              []string          `json:"assumptions"`
}

// MonteCarloResult represents the results of a Monte Carlo run over one configuration
type MonteCarloResult struct {
	ScenarioName       string              `json:"scenario_name"`
	NumSimulations     int                 `json:"num_simulations"`
	Seed               int64               `json:"seed"`
	SuccessRate        decimal.Decimal     `json:"success_rate"`
	MedianFinalBalance decimal.Decimal     `json:"median_final_balance"`
	PercentileRanges   PercentileRanges    `json:"percentile_ranges"`
	Simulations        []SimulationOutcome `json:"simulations,omitempty"`
}

// SimulationOutcome represents a single Monte Carlo simulation outcome
type SimulationOutcome struct {
	FinalBalance      decimal.Decimal `json:"final_balance"`
	RetirementBalance decimal.Decimal `json:"retirement_balance"`
	DepletionAge      int             `json:"depletion_age"`
	Success           bool            `json:"success"`
}

// PercentileRanges represents percentile ranges for Monte Carlo results
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}
