package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/savings-projector/internal/domain"
)

// CSVSummarizer outputs one summary row per scenario.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"Scenario", "Retirement Age", "Retirement Balance", "Final Balance",
		"Total Contributions", "Total Withdrawals", "Total RMD", "Total Tax", "Total Penalty",
		"Depletion Age", "Sustained To Death",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(results) {
		row := []string{
			sc.Name,
			intToString(sc.RetirementAge),
			sc.RetirementBalance.StringFixed(2),
			sc.FinalBalance.StringFixed(2),
			sc.TotalContributions.StringFixed(2),
			sc.TotalWithdrawals.StringFixed(2),
			sc.TotalRMD.StringFixed(2),
			sc.TotalTax.StringFixed(2),
			sc.TotalPenalty.StringFixed(2),
			intToString(sc.DepletionAge),
			boolToString(sc.SustainedToDeath),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
