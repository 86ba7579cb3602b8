package output

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/rpgo/savings-projector/internal/domain"
)

// ConsoleLiteFormatter provides a concise one-line-per-scenario summary via the formatter interface.
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "SAVINGS SCENARIO SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, sc := range sortedScenarios(results) {
		fmt.Fprintf(&buf, "%s: AtRetirement=%s Final=%s Contributions=%s Withdrawals=%s Depletion=%s\n",
			sc.Name,
			FormatCurrency(sc.RetirementBalance),
			FormatCurrency(sc.FinalBalance),
			FormatCurrency(sc.TotalContributions),
			FormatCurrency(sc.TotalWithdrawals),
			depletionLabel(sc),
		)
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (Δ %s / %s)\n", rec.ScenarioName, FormatCurrency(rec.BalanceAdvantage), FormatPercentage(rec.PercentageAdvantage))
	}
	return buf.Bytes(), nil
}

func sortedScenarios(results *domain.ScenarioComparison) []domain.ScenarioSummary {
	if results == nil {
		return nil
	}
	scenarios := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	return scenarios
}

func depletionLabel(sc domain.ScenarioSummary) string {
	if sc.SustainedToDeath {
		return "never"
	}
	return intToString(sc.DepletionAge)
}
