package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/savings-projector/internal/calculation"
	"github.com/rpgo/savings-projector/internal/config"
	"github.com/rpgo/savings-projector/internal/domain"
)

func loadExample(t *testing.T) *domain.InputFile {
	t.Helper()
	parser := config.NewInputParser()
	input, err := parser.LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)
	require.Len(t, input.Scenarios, 2)
	return input
}

func TestEndToEndCalculation(t *testing.T) {
	input := loadExample(t)

	engine := calculation.NewCalculationEngine()
	results, err := engine.RunScenarios(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, results.Scenarios, 2)
	assert.NotEmpty(t, results.Assumptions)

	names := map[string]bool{}
	for _, sc := range results.Scenarios {
		names[sc.Name] = true

		require.Len(t, sc.Projection, 48, sc.Name)
		assert.Equal(t, 45, sc.Projection[0].Age)
		assert.Equal(t, 92, sc.Projection[len(sc.Projection)-1].Age)

		totalTax := decimal.Zero
		for i, yr := range sc.Projection {
			if i > 0 {
				assert.Equal(t, sc.Projection[i-1].Age+1, yr.Age)
			}
			for _, a := range domain.AllAccounts {
				assert.False(t, yr.Balances.Get(a).IsNegative(), "%s age %d %s negative", sc.Name, yr.Age, a)
			}
			totalTax = totalTax.Add(yr.Tax)
		}
		assert.True(t, totalTax.Equal(sc.TotalTax), sc.Name)
		assert.True(t, sc.TotalContributions.Equal(sc.Projection[len(sc.Projection)-1].CumulativeContributions))
	}
	assert.True(t, names[results.BestScenarioForBalance])
	assert.True(t, names[results.BestScenarioForLongevity])
}

func TestRetirementTransitionAndRMDStart(t *testing.T) {
	input := loadExample(t)
	engine := calculation.NewCalculationEngine()
	summary, err := engine.RunScenario(context.Background(), &input.Scenarios[0])
	require.NoError(t, err)

	byAge := map[int]domain.YearRecord{}
	for _, yr := range summary.Projection {
		byAge[yr.Age] = yr
	}
	assert.True(t, byAge[62].Working)
	assert.False(t, byAge[63].Working)
	atRetirement := byAge[62]
	assert.True(t, summary.RetirementBalance.Equal(atRetirement.TotalBalance()))

	// born 1980: distributions begin at 75
	assert.True(t, byAge[74].RMD.IsZero())
	assert.True(t, byAge[75].RMD.IsPositive())
	assert.True(t, byAge[62].RMD.IsZero())
	assert.True(t, byAge[50].EmployerContribution.IsPositive())
	assert.True(t, byAge[63].EmployerContribution.IsZero())
}

func TestMonteCarloOverExample(t *testing.T) {
	input := loadExample(t)
	sim := calculation.NewMonteCarloSimulator(calculation.MonteCarloConfig{
		NumSimulations: 50,
		Seed:           11,
		Volatility:     calculation.DefaultVolatility(),
		Workers:        4,
	})
	result, err := sim.RunSimulation(context.Background(), input.Scenarios[0].Name, &input.Scenarios[0].Config)
	require.NoError(t, err)
	assert.Equal(t, 50, result.NumSimulations)
	assert.Len(t, result.Simulations, 50)
	assert.True(t, result.SuccessRate.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, result.SuccessRate.LessThanOrEqual(decimal.NewFromInt(1)))
	assert.True(t, result.PercentileRanges.P10.LessThanOrEqual(result.PercentileRanges.P90))
}

func TestCancelledContext(t *testing.T) {
	input := loadExample(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := calculation.NewCalculationEngine().RunScenarios(ctx, input)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
