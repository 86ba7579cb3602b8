package output

import (
	"sort"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName        string
	FinalBalance        decimal.Decimal
	RetirementBalance   decimal.Decimal
	SustainedToDeath    bool
	DepletionAge        int
	BalanceAdvantage    decimal.Decimal // final balance over the runner-up
	PercentageAdvantage decimal.Decimal
}

// AnalyzeScenarios picks the scenario whose savings last longest, breaking
// ties on final balance. Extracted from console logic for testability.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	if results == nil || len(results.Scenarios) == 0 {
		return Recommendation{}
	}
	ranks := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.SliceStable(ranks, func(i, j int) bool { return ranksAbove(ranks[i], ranks[j]) })

	best := ranks[0]
	rec := Recommendation{
		ScenarioName:      best.Name,
		FinalBalance:      best.FinalBalance,
		RetirementBalance: best.RetirementBalance,
		SustainedToDeath:  best.SustainedToDeath,
		DepletionAge:      best.DepletionAge,
	}
	if len(ranks) > 1 {
		runnerUp := ranks[1].FinalBalance
		rec.BalanceAdvantage = best.FinalBalance.Sub(runnerUp)
		if !runnerUp.IsZero() {
			rec.PercentageAdvantage = rec.BalanceAdvantage.Div(runnerUp).Mul(decimal.NewFromInt(100))
		}
	}
	return rec
}

func ranksAbove(a, b domain.ScenarioSummary) bool {
	if a.SustainedToDeath != b.SustainedToDeath {
		return a.SustainedToDeath
	}
	if !a.SustainedToDeath && a.DepletionAge != b.DepletionAge {
		return a.DepletionAge > b.DepletionAge
	}
	return a.FinalBalance.GreaterThan(b.FinalBalance)
}
