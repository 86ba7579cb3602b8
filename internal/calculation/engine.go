package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpgo/savings-projector/internal/domain"
)

// CalculationEngine runs named scenarios through the simulation and summarizes them
type CalculationEngine struct {
	Debug  bool // Enable per-year debug output
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// RunScenario projects a single scenario and summarizes its outcome
func (ce *CalculationEngine) RunScenario(ctx context.Context, scenario *domain.Scenario) (*domain.ScenarioSummary, error) {
	if scenario == nil {
		return nil, errors.New("scenario is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := &scenario.Config
	if cfg.DeathAge < cfg.CurrentAge {
		return nil, fmt.Errorf("scenario %q: death age (%d) cannot be before current age (%d)",
			scenario.Name, cfg.DeathAge, cfg.CurrentAge)
	}

	sim := NewSimulator(cfg)
	if ce.Debug {
		sim.SetLogger(ce.logger())
	}
	ce.logger().Infof("running scenario %q: ages %d-%d, retiring at %d, RMDs from %d",
		scenario.Name, cfg.CurrentAge, cfg.DeathAge, cfg.RetirementAge, sim.RMDStartAge())

	projection := sim.Run(ConstantReturns(cfg.Returns))
	summary := Summarize(scenario.Name, cfg, projection)
	if !summary.SustainedToDeath {
		ce.logger().Warnf("scenario %q: savings depleted at age %d", scenario.Name, summary.DepletionAge)
	}
	return summary, nil
}

// Summarize reduces a projection to its key metrics
func Summarize(name string, cfg *domain.Configuration, projection []domain.YearRecord) *domain.ScenarioSummary {
	summary := &domain.ScenarioSummary{
		Name:              name,
		RetirementAge:     cfg.RetirementAge,
		RetirementBalance: cfg.StartingBalances.Total(),
		Projection:        projection,
	}

	for i := range projection {
		yr := &projection[i]
		if yr.Working {
			summary.RetirementBalance = yr.TotalBalance()
		}
		summary.TotalWithdrawals = summary.TotalWithdrawals.Add(yr.TotalWithdrawals)
		summary.TotalTax = summary.TotalTax.Add(yr.Tax)
		summary.TotalPenalty = summary.TotalPenalty.Add(yr.Penalty)
		summary.TotalRMD = summary.TotalRMD.Add(yr.RMD)
		if summary.DepletionAge == 0 && !yr.Working && yr.IsDepleted() {
			summary.DepletionAge = yr.Age
		}
	}

	if n := len(projection); n > 0 {
		last := projection[n-1]
		summary.FinalBalance = last.TotalBalance()
		summary.TotalContributions = last.CumulativeContributions
	}
	summary.SustainedToDeath = summary.DepletionAge == 0
	return summary
}

// RunScenarios runs all scenarios and returns a comparison
func (ce *CalculationEngine) RunScenarios(ctx context.Context, input *domain.InputFile) (*domain.ScenarioComparison, error) {
	if input == nil || len(input.Scenarios) == 0 {
		return nil, errors.New("no scenarios to run")
	}

	scenarios := make([]domain.ScenarioSummary, len(input.Scenarios))
	for i := range input.Scenarios {
		summary, err := ce.RunScenario(ctx, &input.Scenarios[i])
		if err != nil {
			return nil, fmt.Errorf("RunScenario failed: %w", err)
		}
		scenarios[i] = *summary
	}

	comparison := &domain.ScenarioComparison{
		Scenarios:   scenarios,
		Assumptions: input.Scenarios[0].Config.GenerateAssumptions(),
	}
	comparison.BestScenarioForBalance = bestForBalance(scenarios)
	comparison.BestScenarioForLongevity = bestForLongevity(scenarios)
	return comparison, nil
}

func bestForBalance(scenarios []domain.ScenarioSummary) string {
	best := 0
	for i := 1; i < len(scenarios); i++ {
		if scenarios[i].FinalBalance.GreaterThan(scenarios[best].FinalBalance) {
			best = i
		}
	}
	return scenarios[best].Name
}

// bestForLongevity prefers scenarios that last to death, then the latest
// depletion age, then the larger final balance.
func bestForLongevity(scenarios []domain.ScenarioSummary) string {
	best := 0
	for i := 1; i < len(scenarios); i++ {
		if outlasts(scenarios[i], scenarios[best]) {
			best = i
		}
	}
	return scenarios[best].Name
}

func outlasts(a, b domain.ScenarioSummary) bool {
	if a.SustainedToDeath != b.SustainedToDeath {
		return a.SustainedToDeath
	}
	if !a.SustainedToDeath && a.DepletionAge != b.DepletionAge {
		return a.DepletionAge > b.DepletionAge
	}
	return a.FinalBalance.GreaterThan(b.FinalBalance)
}
