package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/savings-projector/internal/domain"
	dec "github.com/rpgo/savings-projector/pkg/decimal"
)

const (
	monthsPerYear = 12
	// Employer match and profit sharing land once a year, in July.
	employerContributionMonth = 7
)

// ReturnPath supplies the annual rates of return for each simulated year
type ReturnPath interface {
	ReturnsFor(year int) domain.Returns
}

// ConstantReturns applies the same rates every year
type ConstantReturns domain.Returns

// ReturnsFor implements ReturnPath
func (c ConstantReturns) ReturnsFor(int) domain.Returns { return domain.Returns(c) }

// YearState is everything one year hands to the next. The prior year-end
// tax-deferred balance is frozen here so the RMD never sees mid-year balances.
type YearState struct {
	Year                    int
	Ledger                  domain.Ledger
	BaseContributions       domain.AccountAmounts
	Salary                  decimal.Decimal
	PriorYearEndDeferred    decimal.Decimal
	CumulativeContributions decimal.Decimal
}

// InitialState builds the state entering the first simulated year
func InitialState(cfg *domain.Configuration) YearState {
	ledger := domain.NewLedger(cfg.StartingBalances)
	return YearState{
		Ledger:               ledger,
		BaseContributions:    cfg.AnnualContributions,
		Salary:               cfg.Salary,
		PriorYearEndDeferred: ledger.Balance(domain.Deferred),
	}
}

// Simulator runs the month-by-month projection for one configuration
type Simulator struct {
	cfg         *domain.Configuration
	tables      map[domain.Account]domain.LimitTable
	rmdStartAge int
	policy      WithdrawalPolicy
	logger      Logger
}

// NewSimulator resolves limit tables and the RMD start age for cfg
func NewSimulator(cfg *domain.Configuration) *Simulator {
	schedule := LimitScheduleFor(cfg)
	return &Simulator{
		cfg: cfg,
		tables: map[domain.Account]domain.LimitTable{
			domain.Deferred: schedule.Deferred,
			domain.TaxFree:  schedule.TaxFree,
			domain.Medical:  schedule.Medical,
		},
		rmdStartAge: EffectiveRMDStartAge(cfg.RMDStartAge, cfg.BirthYear),
		policy: WithdrawalPolicy{
			TaxRate:     cfg.WithdrawalTaxRate,
			PenaltyRate: cfg.EarlyWithdrawalPenaltyRate,
		},
		logger: NopLogger{},
	}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (s *Simulator) SetLogger(l Logger) {
	if l == nil {
		s.logger = NopLogger{}
		return
	}
	s.logger = l
}

// RMDStartAge returns the RMD start age in effect for this run
func (s *Simulator) RMDStartAge() int { return s.rmdStartAge }

// Simulate projects cfg from current age to death age with its configured returns
func Simulate(cfg *domain.Configuration) []domain.YearRecord {
	return NewSimulator(cfg).Run(ConstantReturns(cfg.Returns))
}

// SimulateWithReturns projects cfg using per-year returns from path
func SimulateWithReturns(cfg *domain.Configuration, path ReturnPath) []domain.YearRecord {
	return NewSimulator(cfg).Run(path)
}

// StepYear simulates a single year of cfg starting from state
func StepYear(cfg *domain.Configuration, state YearState, returns domain.Returns) (domain.YearRecord, YearState) {
	return NewSimulator(cfg).Step(state, returns)
}

// Run produces one record per year, strictly in age order
func (s *Simulator) Run(path ReturnPath) []domain.YearRecord {
	years := s.cfg.Years()
	records := make([]domain.YearRecord, 0, years)
	state := InitialState(s.cfg)
	for i := 0; i < years; i++ {
		rec, next := s.Step(state, path.ReturnsFor(i))
		records = append(records, rec)
		state = next
	}
	return records
}

// Step simulates the twelve months of state.Year and returns the year's
// record together with the state entering the following year.
func (s *Simulator) Step(state YearState, returns domain.Returns) (domain.YearRecord, YearState) {
	cfg := s.cfg
	year := state.Year
	age := cfg.CurrentAge + year
	working := age <= cfg.RetirementAge
	ledger := state.Ledger

	rec := domain.YearRecord{Age: age, Working: working}
	targets := state.BaseContributions
	if working {
		rec.Salary = state.Salary
		targets = s.contributionTargets(state.BaseContributions, age)
	}

	var monthlyWithdrawal decimal.Decimal
	if !working {
		rec.RMD = CalculateRMD(state.PriorYearEndDeferred, age, s.rmdStartAge)
		monthlyWithdrawal = dec.Monthly(dec.Max(rec.RMD, cfg.AnnualWithdrawal))
	}
	withdrawalAge := decimal.NewFromInt(int64(age))

	for month := 1; month <= monthsPerYear; month++ {
		if working {
			for _, a := range domain.AllAccounts {
				rec.Contributions.Add(a, ledger.Deposit(a, dec.Monthly(targets.Get(a))))
			}
		} else {
			res := WithdrawAtAge(&ledger, monthlyWithdrawal, withdrawalAge, s.policy)
			for _, a := range domain.AllAccounts {
				rec.Withdrawals.Add(a, res.Drawn.Get(a))
			}
			rec.TotalWithdrawals = rec.TotalWithdrawals.Add(res.Total)
			rec.Tax = rec.Tax.Add(res.Tax)
			rec.Penalty = rec.Penalty.Add(res.Penalty)
		}

		for _, a := range domain.AllAccounts {
			rec.Growth.Add(a, ledger.Grow(a, returns.MonthlyRate(a)))
		}

		if working && month == employerContributionMonth {
			employer := EmployerContribution(cfg, targets.Deferred, state.Salary)
			rec.EmployerContribution = ledger.Deposit(domain.Deferred, employer)
		}
	}

	rec.Balances = ledger.Balances()
	rec.CumulativeContributions = state.CumulativeContributions.
		Add(rec.Contributions.Total()).
		Add(rec.EmployerContribution)
	for _, a := range domain.LimitedAccounts {
		rec.MaxContributions.Set(a, MaxContribution(s.tables[a], year, age))
	}

	s.logger.Debugf("age %d working=%t contributions=%s withdrawals=%s rmd=%s balance=%s",
		age, working, rec.Contributions.Total().StringFixed(2), rec.TotalWithdrawals.StringFixed(2),
		rec.RMD.StringFixed(2), rec.TotalBalance().StringFixed(2))

	next := YearState{
		Year:                    year + 1,
		Ledger:                  ledger,
		BaseContributions:       state.BaseContributions,
		Salary:                  state.Salary,
		PriorYearEndDeferred:    ledger.Balance(domain.Deferred),
		CumulativeContributions: rec.CumulativeContributions,
	}
	if working && age < cfg.DeathAge {
		next.BaseContributions = s.escalate(state.BaseContributions, year, age)
		next.Salary = state.Salary.Mul(decimal.NewFromInt(1).Add(cfg.SalaryGrowthRate))
	}
	return rec, next
}

// contributionTargets layers the validated catch-up on top of each limited
// account's base contribution. Taxable and cash use their base amount.
func (s *Simulator) contributionTargets(base domain.AccountAmounts, age int) domain.AccountAmounts {
	targets := base
	for _, a := range domain.LimitedAccounts {
		targets.Add(a, ClampCatchUp(s.cfg.CatchUpAmounts.For(a), s.tables[a], age))
	}
	return targets
}

// escalate raises next year's base contributions by the configured increase,
// capping limited accounts at next year's projected standard ceiling.
func (s *Simulator) escalate(base domain.AccountAmounts, year, age int) domain.AccountAmounts {
	var next domain.AccountAmounts
	for _, a := range domain.AllAccounts {
		v := base.Get(a).Add(s.cfg.ContributionIncreases.Get(a))
		if a.IsLimited() {
			standard, _ := ProjectedLimit(s.tables[a], year+1, age+1)
			v = dec.Min(v, standard)
		}
		next.Set(a, v)
	}
	return next
}

// EmployerContribution computes the yearly match plus profit sharing:
// min(employee rate, match ceiling) × match rate × salary + profit sharing × salary.
// A non-positive salary yields zero.
func EmployerContribution(cfg *domain.Configuration, employeeContribution, salary decimal.Decimal) decimal.Decimal {
	if !salary.IsPositive() {
		return decimal.Zero
	}
	employeeRate := employeeContribution.Div(salary)
	match := dec.Min(employeeRate, cfg.EmployerMatchCeiling).Mul(cfg.EmployerMatchRate).Mul(salary)
	profitSharing := cfg.ProfitSharingRate.Mul(salary)
	return dec.NonNegative(match.Add(profitSharing))
}
