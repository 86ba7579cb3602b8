package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/savings-projector/internal/domain"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	parser := NewInputParser()
	input, err := parser.LoadFromFile("../../test/testdata/example_config.yaml")
	require.NoError(t, err)

	require.Len(t, input.Scenarios, 2)
	assert.Equal(t, "Retire at 62", input.Scenarios[0].Name)

	cfg := input.Scenarios[0].Config
	assert.Equal(t, 45, cfg.CurrentAge)
	assert.Equal(t, 62, cfg.RetirementAge)
	assert.Equal(t, 1980, cfg.BirthYear)
	assert.True(t, cfg.StartingBalances.Deferred.Equal(decimal.NewFromInt(250000)))
	assert.True(t, cfg.Returns.Retirement.Equal(decimal.NewFromFloat(0.065)))
	assert.Nil(t, cfg.LimitTables)

	limits := input.Scenarios[1].Config.LimitTables
	require.NotNil(t, limits)
	require.NotNil(t, limits.Deferred.Super)
	assert.Equal(t, 60, limits.Deferred.Super.AgeMin)
	assert.True(t, limits.Medical.StandardLimit.Equal(decimal.NewFromInt(4300)))
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	input, err := parser.LoadFromFile("nonexistent_file.yaml")
	assert.Error(t, err)
	assert.Nil(t, input)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_BareConfiguration(t *testing.T) {
	data := []byte(`
current_age: 40
retirement_age: 65
death_age: 90
annual_contributions:
  deferred: 12000
returns:
  retirement: 0.07
`)
	input, err := NewInputParser().Parse(data)
	require.NoError(t, err)
	require.Len(t, input.Scenarios, 1)
	assert.Equal(t, DefaultScenarioName, input.Scenarios[0].Name)
	assert.True(t, input.Scenarios[0].Config.AnnualContributions.Deferred.Equal(decimal.NewFromInt(12000)))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		contains string
	}{
		{"empty document", "   \n", "empty"},
		{"malformed yaml", "current_age: [1, 2", "failed to parse YAML"},
		{"unknown field", "current_age: 40\ndeath_age: 90\nfavourite_color: blue\n", "favourite_color"},
		{"no scenarios", "scenarios: []\n", "no scenarios"},
		{"missing name", "scenarios:\n  - config:\n      current_age: 40\n      death_age: 90\n", "name is required"},
		{"duplicate names", "scenarios:\n  - name: a\n    config: {current_age: 40, death_age: 90}\n  - name: a\n    config: {current_age: 40, death_age: 90}\n", "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestParse_NormalizesRates(t *testing.T) {
	data := []byte(`
current_age: 40
retirement_age: 65
death_age: 90
employer_match_ceiling: 0.0612
returns:
  retirement: 0.0709
  brokerage: 0.0599
`)
	input, err := NewInputParser().Parse(data)
	require.NoError(t, err)
	cfg := input.Scenarios[0].Config
	assert.True(t, cfg.EmployerMatchCeiling.Equal(decimal.NewFromFloat(0.06)), cfg.EmployerMatchCeiling.String())
	assert.True(t, cfg.Returns.Retirement.Equal(decimal.NewFromFloat(0.07)), cfg.Returns.Retirement.String())
	assert.True(t, cfg.Returns.Brokerage.Equal(decimal.NewFromFloat(0.06)), cfg.Returns.Brokerage.String())
}

func validConfig() domain.Configuration {
	return NewInputParser().CreateExampleConfiguration().Scenarios[0].Config
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Configuration)
		field   string
		wantErr bool
	}{
		{"valid example", func(*domain.Configuration) {}, "", false},
		{"death before current age", func(c *domain.Configuration) { c.DeathAge = 30 }, "death_age", true},
		{"negative current age", func(c *domain.Configuration) { c.CurrentAge = -1 }, "current_age", true},
		{"negative balance", func(c *domain.Configuration) { c.StartingBalances.Cash = decimal.NewFromInt(-1) }, "starting_balances.cash", true},
		{"negative contribution", func(c *domain.Configuration) { c.AnnualContributions.Taxable = decimal.NewFromInt(-5) }, "annual_contributions.taxable", true},
		{"negative catch-up", func(c *domain.Configuration) { c.CatchUpAmounts.Medical = decimal.NewFromInt(-5) }, "catch_up_amounts.medical", true},
		{"match rate above one", func(c *domain.Configuration) { c.EmployerMatchRate = decimal.NewFromFloat(1.5) }, "employer_match_rate", true},
		{"negative tax rate", func(c *domain.Configuration) { c.WithdrawalTaxRate = decimal.NewFromFloat(-0.1) }, "withdrawal_tax_rate", true},
		{"total loss return", func(c *domain.Configuration) { c.Returns.Brokerage = decimal.NewFromInt(-1) }, "returns.brokerage", true},
		{"negative salary", func(c *domain.Configuration) { c.Salary = decimal.NewFromInt(-1) }, "salary", true},
		{"inverted super band", func(c *domain.Configuration) {
			c.LimitTables = &domain.LimitSchedule{
				Deferred: domain.LimitTable{Super: &domain.SuperCatchUp{AgeMin: 63, AgeMax: 60}},
			}
		}, "limit_tables.deferred.super", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := NewInputParser().ValidateConfiguration("test", &cfg)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "test", ve.Scenario)
			fields := make([]string, len(ve.Problems))
			for i, p := range ve.Problems {
				fields[i] = p.Field
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateConfiguration_CollectsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Salary = decimal.NewFromInt(-1)
	cfg.AnnualWithdrawal = decimal.NewFromInt(-1)
	cfg.ProfitSharingRate = decimal.NewFromInt(2)

	err := NewInputParser().ValidateConfiguration("multi", &cfg)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Problems, 3)
	assert.Contains(t, err.Error(), `scenario "multi"`)
}

func TestValidationErrorSurvivesParseWrapping(t *testing.T) {
	data := []byte("scenarios:\n  - name: bad\n    config:\n      current_age: 40\n      death_age: 90\n      salary: -5\n")
	_, err := NewInputParser().Parse(data)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "bad", ve.Scenario)
}

func TestCreateExampleConfiguration(t *testing.T) {
	input := NewInputParser().CreateExampleConfiguration()
	require.Len(t, input.Scenarios, 2)
	assert.NoError(t, NewInputParser().ValidateInput(input))
	assert.NotEqual(t, input.Scenarios[0].Config.RetirementAge, input.Scenarios[1].Config.RetirementAge)
	assert.Positive(t, input.Scenarios[0].Config.BirthYear)
}

func TestSaveInputFileRoundTrip(t *testing.T) {
	parser := NewInputParser()
	example := parser.CreateExampleConfiguration()
	path := filepath.Join(t.TempDir(), "example.yaml")

	require.NoError(t, SaveInputFile(example, path))
	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	require.Len(t, loaded.Scenarios, len(example.Scenarios))
	for i := range example.Scenarios {
		want, got := example.Scenarios[i].Config, loaded.Scenarios[i].Config
		assert.Equal(t, example.Scenarios[i].Name, loaded.Scenarios[i].Name)
		assert.Equal(t, want.RetirementAge, got.RetirementAge)
		assert.True(t, want.StartingBalances.Total().Equal(got.StartingBalances.Total()))
		assert.True(t, want.Returns.Retirement.Equal(got.Returns.Retirement))
	}
}

func TestNormalizeRates(t *testing.T) {
	cfg := domain.Configuration{
		WithdrawalTaxRate: decimal.NewFromFloat(0.2213),
		SalaryGrowthRate:  decimal.NewFromFloat(0.0311),
	}
	NormalizeRates(&cfg)
	assert.True(t, cfg.WithdrawalTaxRate.Equal(decimal.NewFromFloat(0.2225)), cfg.WithdrawalTaxRate.String())
	assert.True(t, cfg.SalaryGrowthRate.Equal(decimal.NewFromFloat(0.03)), cfg.SalaryGrowthRate.String())
}
