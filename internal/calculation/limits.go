package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/savings-projector/internal/domain"
	dec "github.com/rpgo/savings-projector/pkg/decimal"
)

// Medical accounts have their own catch-up age regardless of the plan's trigger age.
const medicalCatchUpAge = 55

// DefaultLimitSchedule returns the built-in limit tables. Values follow the
// current IRS limits with an assumed linear yearly increase.
func DefaultLimitSchedule() domain.LimitSchedule {
	return domain.LimitSchedule{
		Deferred: domain.LimitTable{
			StandardLimit:  decimal.NewFromInt(23500),
			CatchUpLimit:   decimal.NewFromInt(7500),
			CatchUpAge:     50,
			AnnualIncrease: decimal.NewFromInt(500),
			Super: &domain.SuperCatchUp{
				Limit:  decimal.NewFromInt(11250),
				AgeMin: 60,
				AgeMax: 63,
			},
		},
		TaxFree: domain.LimitTable{
			StandardLimit:  decimal.NewFromInt(7000),
			CatchUpLimit:   decimal.NewFromInt(1000),
			CatchUpAge:     50,
			AnnualIncrease: decimal.NewFromInt(250),
		},
		Medical: domain.LimitTable{
			StandardLimit:  decimal.NewFromInt(4300),
			CatchUpLimit:   decimal.NewFromInt(1000),
			CatchUpAge:     medicalCatchUpAge,
			AnnualIncrease: decimal.NewFromInt(100),
		},
	}
}

// LimitScheduleFor resolves the tables used for a configuration: the
// configured override (or the defaults) with the plan's catch-up trigger age
// applied to every category except medical.
func LimitScheduleFor(cfg *domain.Configuration) domain.LimitSchedule {
	schedule := DefaultLimitSchedule()
	if cfg.LimitTables != nil {
		schedule = *cfg.LimitTables
	}
	if cfg.CatchUpAge > 0 {
		schedule.Deferred.CatchUpAge = cfg.CatchUpAge
		schedule.TaxFree.CatchUpAge = cfg.CatchUpAge
	}
	schedule.Medical.CatchUpAge = medicalCatchUpAge
	return schedule
}

// ProjectedLimit returns the inflation-projected standard ceiling and the
// catch-up ceiling that applies at age.
func ProjectedLimit(table domain.LimitTable, yearsElapsed, age int) (standard, catchUp decimal.Decimal) {
	standard = table.StandardLimit.Add(table.AnnualIncrease.Mul(decimal.NewFromInt(int64(yearsElapsed))))
	return standard, CatchUpCeiling(table, yearsElapsed, age)
}

// CatchUpCeiling returns the projected catch-up ceiling at age. The super tier
// replaces the standard tier while age is inside its band.
func CatchUpCeiling(table domain.LimitTable, yearsElapsed, age int) decimal.Decimal {
	if age < table.CatchUpAge {
		return decimal.Zero
	}
	base := table.CatchUpLimit
	if table.Super.Contains(age) {
		base = table.Super.Limit
	}
	step := tierIncrease(base, table)
	return base.Add(step.Mul(decimal.NewFromInt(int64(yearsElapsed))))
}

// tierIncrease scales a catch-up tier by the standard limit's yearly increase:
// round(tier / standard × annualIncrease).
func tierIncrease(tier decimal.Decimal, table domain.LimitTable) decimal.Decimal {
	if !table.StandardLimit.IsPositive() {
		return decimal.Zero
	}
	return tier.Div(table.StandardLimit).Mul(table.AnnualIncrease).Round(0)
}

// ClampCatchUp caps a declared catch-up amount at the ceiling for age.
// Below the catch-up age the result is zero.
func ClampCatchUp(requested decimal.Decimal, table domain.LimitTable, age int) decimal.Decimal {
	return dec.Clamp(requested, decimal.Zero, CatchUpCeiling(table, 0, age))
}

// MaxContribution is the informational ceiling for a year: standard plus applicable catch-up.
func MaxContribution(table domain.LimitTable, yearsElapsed, age int) decimal.Decimal {
	standard, catchUp := ProjectedLimit(table, yearsElapsed, age)
	return standard.Add(catchUp)
}
