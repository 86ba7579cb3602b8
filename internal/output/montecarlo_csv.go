package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// MonteCarloCSVReport generates CSV exports for Monte Carlo results
type MonteCarloCSVReport struct {
	Result *domain.MonteCarloResult
}

func writeCSVFile(outputPath string, rows [][]string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(outputPath), err)
	}
	return nil
}

// GenerateSummaryCSV creates a summary CSV with aggregate statistics
func (m *MonteCarloCSVReport) GenerateSummaryCSV(outputPath string) error {
	r := m.Result
	rows := [][]string{
		{"Metric", "Value", "Description"},
		{"Scenario", r.ScenarioName, "Configuration the simulations were drawn from"},
		{"Success Rate", FormatRate(r.SuccessRate), "Percentage of simulations where savings last to death age"},
		{"Median Final Balance", "$" + r.MedianFinalBalance.StringFixed(0), "Median balance at death age"},
		{"10th Percentile Balance", "$" + r.PercentileRanges.P10.StringFixed(0), "10th percentile of final balance"},
		{"25th Percentile Balance", "$" + r.PercentileRanges.P25.StringFixed(0), "25th percentile of final balance"},
		{"75th Percentile Balance", "$" + r.PercentileRanges.P75.StringFixed(0), "75th percentile of final balance"},
		{"90th Percentile Balance", "$" + r.PercentileRanges.P90.StringFixed(0), "90th percentile of final balance"},
		{"Number of Simulations", strconv.Itoa(r.NumSimulations), "Total number of simulations run"},
		{"Seed", strconv.FormatInt(r.Seed, 10), "Base seed; simulation i uses seed+i"},
	}
	return writeCSVFile(outputPath, rows)
}

// GenerateDetailedCSV creates a detailed CSV with individual simulation results
func (m *MonteCarloCSVReport) GenerateDetailedCSV(outputPath string) error {
	rows := [][]string{{"SimulationID", "Success", "RetirementBalance", "FinalBalance", "DepletionAge"}}
	for i, sim := range m.Result.Simulations {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.FormatBool(sim.Success),
			"$" + sim.RetirementBalance.StringFixed(0),
			"$" + sim.FinalBalance.StringFixed(0),
			strconv.Itoa(sim.DepletionAge),
		})
	}
	return writeCSVFile(outputPath, rows)
}

// GeneratePercentileCSV creates a CSV with the final balance percentiles
func (m *MonteCarloCSVReport) GeneratePercentileCSV(outputPath string) error {
	p := m.Result.PercentileRanges
	rows := [][]string{
		{"Percentile", "FinalBalance", "Interpretation"},
		{"10th", "$" + p.P10.StringFixed(0), "Worst 10% of scenarios"},
		{"25th", "$" + p.P25.StringFixed(0), "Below average scenarios"},
		{"50th (Median)", "$" + p.P50.StringFixed(0), "Typical scenario"},
		{"75th", "$" + p.P75.StringFixed(0), "Above average scenarios"},
		{"90th", "$" + p.P90.StringFixed(0), "Best 10% of scenarios"},
	}
	return writeCSVFile(outputPath, rows)
}

// GenerateAllCSVReports creates all CSV reports in a single directory
func (m *MonteCarloCSVReport) GenerateAllCSVReports(outputDir string) ([]string, error) {
	if m.Result == nil {
		return nil, fmt.Errorf("no monte carlo result to export")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	reports := []struct {
		name string
		gen  func(string) error
	}{
		{"monte_carlo_summary.csv", m.GenerateSummaryCSV},
		{"monte_carlo_detailed.csv", m.GenerateDetailedCSV},
		{"monte_carlo_percentiles.csv", m.GeneratePercentileCSV},
	}
	var files []string
	for _, r := range reports {
		path := filepath.Join(outputDir, r.name)
		if err := r.gen(path); err != nil {
			return files, fmt.Errorf("failed to generate %s: %w", r.name, err)
		}
		files = append(files, path)
	}
	return files, nil
}

// FormatMonteCarloConsole renders a Monte Carlo result for the terminal.
func FormatMonteCarloConsole(r *domain.MonteCarloResult) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "MONTE CARLO: %s\n", r.ScenarioName)
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Simulations:          %d (seed %d)\n", r.NumSimulations, r.Seed)
	fmt.Fprintf(&buf, "Success rate:         %s\n", FormatRate(r.SuccessRate))
	fmt.Fprintf(&buf, "Median final balance: %s\n", FormatCurrencyGrouped(r.MedianFinalBalance))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "Final balance percentiles:")
	p := r.PercentileRanges
	for _, row := range []struct {
		label string
		v     decimal.Decimal
	}{{"P10", p.P10}, {"P25", p.P25}, {"P50", p.P50}, {"P75", p.P75}, {"P90", p.P90}} {
		fmt.Fprintf(&buf, "  %s  %18s\n", row.label, FormatCurrencyGrouped(row.v))
	}
	return buf.Bytes()
}
