package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rpgo/savings-projector/internal/calculation"
	"github.com/rpgo/savings-projector/internal/config"
	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/internal/output"
)

func newMonteCarloCmd(a *app) *cobra.Command {
	var (
		configPath string
		scenario   string
		sims       int
		seed       int64
		workers    int
		csvDir     string
	)
	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "Run randomized-return simulations for each scenario",
		Long: `Run the projection many times with normally distributed annual returns
around each scenario's configured means and report the success rate and
final balance percentiles. A fixed --seed makes the run reproducible.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := config.NewInputParser().LoadFromFile(configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			selected := input.Scenarios
			if scenario != "" {
				selected = nil
				for _, sc := range input.Scenarios {
					if sc.Name == scenario {
						selected = append(selected, sc)
					}
				}
				if len(selected) == 0 {
					return fmt.Errorf("scenario %q not found in %s", scenario, configPath)
				}
			}

			sim := calculation.NewMonteCarloSimulator(calculation.MonteCarloConfig{
				NumSimulations: sims,
				Seed:           seed,
				Volatility:     calculation.DefaultVolatility(),
				Workers:        workers,
			})
			sim.Logger = calculation.NewZerologLogger(a.log)

			for i, sc := range selected {
				result, err := sim.RunSimulation(cmd.Context(), sc.Name, &sc.Config)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				if _, err := cmd.OutOrStdout().Write(output.FormatMonteCarloConsole(result)); err != nil {
					return err
				}
				if csvDir != "" {
					if err := writeMonteCarloCSV(a, result, csvDir, len(selected) > 1); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the YAML scenario file")
	cmd.Flags().StringVar(&scenario, "scenario", "", "Only simulate the named scenario")
	cmd.Flags().IntVar(&sims, "sims", 1000, "Number of simulations per scenario")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 picks one from the clock)")
	cmd.Flags().IntVar(&workers, "workers", a.env.Workers, "Concurrent simulation workers")
	cmd.Flags().StringVar(&csvDir, "csv-dir", "", "Also write CSV reports to this directory")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func writeMonteCarloCSV(a *app, result *domain.MonteCarloResult, dir string, perScenario bool) error {
	if perScenario {
		dir = filepath.Join(dir, result.ScenarioName)
	}
	report := output.MonteCarloCSVReport{Result: result}
	files, err := report.GenerateAllCSVReports(dir)
	if err != nil {
		return err
	}
	a.log.Info().Strs("files", files).Str("scenario", result.ScenarioName).Msg("monte carlo reports written")
	return nil
}
