package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/savings-projector/internal/domain"
)

// ConsoleFormatter renders the detailed console report: assumptions, a
// summary per scenario and a milestone table of year-end balances.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

// milestoneEvery controls how often a retired year is printed in the milestone table.
const milestoneEvery = 5

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	line := strings.Repeat("=", 100)

	fmt.Fprintln(&buf, line)
	fmt.Fprintln(&buf, "MULTI-ACCOUNT SAVINGS PROJECTION")
	fmt.Fprintln(&buf, line)
	fmt.Fprintln(&buf)

	assumptions := DefaultAssumptions
	if results != nil && len(results.Assumptions) > 0 {
		assumptions = results.Assumptions
	}
	fmt.Fprintln(&buf, "ASSUMPTIONS:")
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "  • %s\n", a)
	}
	fmt.Fprintln(&buf)

	for _, sc := range sortedScenarios(results) {
		writeScenario(&buf, sc)
	}

	if results != nil {
		fmt.Fprintln(&buf, "COMPARISON:")
		fmt.Fprintf(&buf, "  Best for final balance: %s\n", results.BestScenarioForBalance)
		fmt.Fprintf(&buf, "  Best for longevity:     %s\n", results.BestScenarioForLongevity)
		rec := AnalyzeScenarios(results)
		if rec.ScenarioName != "" && !rec.BalanceAdvantage.IsZero() {
			fmt.Fprintf(&buf, "  %s leads the runner-up by %s (%s)\n", rec.ScenarioName,
				FormatCurrencyGrouped(rec.BalanceAdvantage), FormatPercentage(rec.PercentageAdvantage))
		}
	}
	return buf.Bytes(), nil
}

func writeScenario(buf *bytes.Buffer, sc domain.ScenarioSummary) {
	fmt.Fprintf(buf, "SCENARIO: %s\n", sc.Name)
	fmt.Fprintln(buf, strings.Repeat("-", 60))
	fmt.Fprintf(buf, "  Retirement age:        %d\n", sc.RetirementAge)
	fmt.Fprintf(buf, "  Balance at retirement: %s\n", FormatCurrencyGrouped(sc.RetirementBalance))
	fmt.Fprintf(buf, "  Final balance:         %s\n", FormatCurrencyGrouped(sc.FinalBalance))
	fmt.Fprintf(buf, "  Total contributions:   %s\n", FormatCurrencyGrouped(sc.TotalContributions))
	fmt.Fprintf(buf, "  Total withdrawals:     %s\n", FormatCurrencyGrouped(sc.TotalWithdrawals))
	fmt.Fprintf(buf, "  Total RMDs:            %s\n", FormatCurrencyGrouped(sc.TotalRMD))
	fmt.Fprintf(buf, "  Tax / penalty:         %s / %s\n", FormatCurrencyGrouped(sc.TotalTax), FormatCurrencyGrouped(sc.TotalPenalty))
	if sc.SustainedToDeath {
		fmt.Fprintln(buf, "  Savings last through the final year")
	} else {
		fmt.Fprintf(buf, "  Savings depleted at age %d\n", sc.DepletionAge)
	}
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "  %-4s %-8s %14s %14s %14s %14s %14s %16s\n",
		"Age", "Status", "Deferred", "Tax-Free", "Medical", "Taxable", "Cash", "Total")
	for i, yr := range sc.Projection {
		if !isMilestone(sc.Projection, i) {
			continue
		}
		status := "Working"
		if !yr.Working {
			status = "Retired"
		}
		fmt.Fprintf(buf, "  %-4d %-8s %14s %14s %14s %14s %14s %16s\n",
			yr.Age, status,
			FormatCurrencyGrouped(yr.Balances.Deferred),
			FormatCurrencyGrouped(yr.Balances.TaxFree),
			FormatCurrencyGrouped(yr.Balances.Medical),
			FormatCurrencyGrouped(yr.Balances.Taxable),
			FormatCurrencyGrouped(yr.Balances.Cash),
			FormatCurrencyGrouped(yr.TotalBalance()))
	}
	fmt.Fprintln(buf)
}

// isMilestone keeps the first and last years, the retirement transition and every fifth year.
func isMilestone(projection []domain.YearRecord, i int) bool {
	if i == 0 || i == len(projection)-1 || i%milestoneEvery == 0 {
		return true
	}
	return projection[i-1].Working && !projection[i].Working
}
