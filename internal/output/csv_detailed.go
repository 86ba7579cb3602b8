package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/savings-projector/internal/domain"
)

// CSVDetailedExporter outputs one row per scenario-year with every per-account column.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"Scenario", "Age", "Working", "Salary"}
	for _, a := range domain.AllAccounts {
		header = append(header, "Contribution "+a.String())
	}
	header = append(header, "Employer Contribution")
	for _, a := range domain.AllAccounts {
		header = append(header, "Growth "+a.String())
	}
	for _, a := range domain.AllAccounts {
		header = append(header, "Withdrawal "+a.String())
	}
	header = append(header, "Total Withdrawals", "RMD", "Tax", "Penalty")
	for _, a := range domain.AllAccounts {
		header = append(header, "Balance "+a.String())
	}
	header = append(header, "Total Balance", "Cumulative Contributions",
		"Max Deferred", "Max Tax Free", "Max Medical")
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, sc := range sortedScenarios(results) {
		for _, yr := range sc.Projection {
			row := []string{sc.Name, intToString(yr.Age), boolToString(yr.Working), yr.Salary.StringFixed(2)}
			row = appendAmounts(row, yr.Contributions)
			row = append(row, yr.EmployerContribution.StringFixed(2))
			row = appendAmounts(row, yr.Growth)
			row = appendAmounts(row, yr.Withdrawals)
			row = append(row,
				yr.TotalWithdrawals.StringFixed(2),
				yr.RMD.StringFixed(2),
				yr.Tax.StringFixed(2),
				yr.Penalty.StringFixed(2))
			row = appendAmounts(row, yr.Balances)
			row = append(row,
				yr.TotalBalance().StringFixed(2),
				yr.CumulativeContributions.StringFixed(2),
				yr.MaxContributions.Deferred.StringFixed(2),
				yr.MaxContributions.TaxFree.StringFixed(2),
				yr.MaxContributions.Medical.StringFixed(2))
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendAmounts(row []string, amounts domain.AccountAmounts) []string {
	for _, a := range domain.AllAccounts {
		row = append(row, amounts.Get(a).StringFixed(2))
	}
	return row
}
