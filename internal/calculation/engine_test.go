package calculation

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/savings-projector/internal/domain"
)

type recordingLogger struct {
	NopLogger
	warnings []string
	debugs   []string
}

func (r *recordingLogger) Debugf(format string, args ...any) {
	r.debugs = append(r.debugs, fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, format)
}

func depletingScenario() domain.Scenario {
	cfg := zeroReturnConfig(60, 59, 70)
	cfg.StartingBalances = domain.AccountAmounts{Cash: d(50000)}
	cfg.AnnualWithdrawal = d(20000)
	return domain.Scenario{Name: "Depleting", Config: *cfg}
}

func TestRunScenarioDebugLogsEveryYear(t *testing.T) {
	scenario := depletingScenario()

	quiet := &recordingLogger{}
	engine := NewCalculationEngine()
	engine.SetLogger(quiet)
	_, err := engine.RunScenario(context.Background(), &scenario)
	require.NoError(t, err)
	assert.Empty(t, quiet.debugs)

	verbose := &recordingLogger{}
	engine.SetLogger(verbose)
	engine.Debug = true
	_, err = engine.RunScenario(context.Background(), &scenario)
	require.NoError(t, err)
	require.Len(t, verbose.debugs, 11)
	assert.True(t, strings.HasPrefix(verbose.debugs[0], "age 60 working=false"), verbose.debugs[0])
}

func TestRunScenarioSummarizesDepletion(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &recordingLogger{}
	engine.SetLogger(logger)

	scenario := depletingScenario()
	summary, err := engine.RunScenario(context.Background(), &scenario)
	require.NoError(t, err)

	assert.Equal(t, "Depleting", summary.Name)
	assert.Equal(t, 62, summary.DepletionAge)
	assert.False(t, summary.SustainedToDeath)
	assertDecimalEqual(t, d(50000), summary.TotalWithdrawals, "everything withdrawn")
	assertDecimalEqual(t, d(50000), summary.RetirementBalance, "no working years")
	assert.True(t, summary.FinalBalance.IsZero())
	assert.True(t, summary.TotalTax.IsZero(), "cash withdrawals are untaxed")
	assert.Len(t, summary.Projection, 11)
	assert.Len(t, logger.warnings, 1)
}

func TestRunScenarioSustained(t *testing.T) {
	cfg := workingConfig()
	scenario := domain.Scenario{Name: "Base", Config: *cfg}

	summary, err := NewCalculationEngine().RunScenario(context.Background(), &scenario)
	require.NoError(t, err)

	require.NotEmpty(t, summary.Projection)
	last := summary.Projection[len(summary.Projection)-1]
	assert.True(t, summary.SustainedToDeath)
	assert.Zero(t, summary.DepletionAge)
	assertDecimalEqual(t, last.TotalBalance(), summary.FinalBalance, "final balance")
	assertDecimalEqual(t, last.CumulativeContributions, summary.TotalContributions, "total contributions")

	var atRetirement domain.YearRecord
	for _, yr := range summary.Projection {
		if yr.Age == cfg.RetirementAge {
			atRetirement = yr
		}
	}
	assertDecimalEqual(t, atRetirement.TotalBalance(), summary.RetirementBalance, "retirement balance")
}

func TestRunScenarioErrors(t *testing.T) {
	engine := NewCalculationEngine()

	_, err := engine.RunScenario(context.Background(), nil)
	assert.Error(t, err)

	bad := depletingScenario()
	bad.Config.DeathAge = 50
	_, err = engine.RunScenario(context.Background(), &bad)
	assert.ErrorContains(t, err, "death age")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok := depletingScenario()
	_, err = engine.RunScenario(ctx, &ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunScenariosPicksBest(t *testing.T) {
	rich := domain.Scenario{Name: "Rich", Config: *workingConfig()}
	poor := depletingScenario()

	lateCfg := zeroReturnConfig(60, 59, 70)
	lateCfg.StartingBalances = domain.AccountAmounts{Cash: d(100000)}
	lateCfg.AnnualWithdrawal = d(20000)
	late := domain.Scenario{Name: "Late", Config: *lateCfg}

	input := &domain.InputFile{Scenarios: []domain.Scenario{poor, late, rich}}
	comparison, err := NewCalculationEngine().RunScenarios(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, comparison.Scenarios, 3)
	assert.Equal(t, "Rich", comparison.BestScenarioForBalance)
	assert.Equal(t, "Rich", comparison.BestScenarioForLongevity)
	assert.Equal(t, 64, comparison.Scenarios[1].DepletionAge)
	assert.NotEmpty(t, comparison.Assumptions)

	// Without the sustained scenario the later depletion wins.
	input.Scenarios = []domain.Scenario{poor, late}
	comparison, err = NewCalculationEngine().RunScenarios(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Late", comparison.BestScenarioForLongevity)
}

func TestRunScenariosRequiresScenarios(t *testing.T) {
	_, err := NewCalculationEngine().RunScenarios(context.Background(), &domain.InputFile{})
	assert.Error(t, err)
}

func TestSetLoggerNil(t *testing.T) {
	engine := NewCalculationEngine()
	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}
