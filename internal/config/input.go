package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/savings-projector/internal/domain"
	dec "github.com/rpgo/savings-projector/pkg/decimal"
	"github.com/rpgo/savings-projector/pkg/dateutil"
)

// DefaultScenarioName names the scenario built from a bare configuration document
const DefaultScenarioName = "Default"

// RateStep is the grid user-supplied rates are rounded to (0.25%)
var RateStep = decimal.RequireFromString("0.0025")

var (
	one      = decimal.NewFromInt(1)
	minusOne = decimal.NewFromInt(-1)
)

const maxAge = 120

// FieldError is a single validation problem
type FieldError struct {
	Field   string
	Message string
}

func (fe FieldError) String() string { return fe.Field + ": " + fe.Message }

// ValidationError collects every problem found in one scenario
type ValidationError struct {
	Scenario string
	Problems []FieldError
}

func (ve *ValidationError) Error() string {
	parts := make([]string, len(ve.Problems))
	for i, p := range ve.Problems {
		parts[i] = p.String()
	}
	return fmt.Sprintf("scenario %q: %s", ve.Scenario, strings.Join(parts, "; "))
}

func (ve *ValidationError) add(field, format string, args ...any) {
	ve.Problems = append(ve.Problems, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads scenarios from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.InputFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return input, nil
}

// Parse decodes a YAML document, normalizes rates and validates every scenario.
// The document is either a list of named scenarios or a single bare configuration.
func (ip *InputParser) Parse(data []byte) (*domain.InputFile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("configuration is empty")
	}

	var probe map[string]any
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var input domain.InputFile
	if _, ok := probe["scenarios"]; ok {
		if err := decodeStrict(data, &input); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	} else {
		var cfg domain.Configuration
		if err := decodeStrict(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		input.Scenarios = []domain.Scenario{{Name: DefaultScenarioName, Config: cfg}}
	}

	for i := range input.Scenarios {
		NormalizeRates(&input.Scenarios[i].Config)
	}
	if err := ip.ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &input, nil
}

func decodeStrict(data []byte, out any) error {
	d := yaml.NewDecoder(bytes.NewReader(data))
	d.KnownFields(true)
	return d.Decode(out)
}

// ValidateInput validates every scenario and rejects missing or duplicate names
func (ip *InputParser) ValidateInput(input *domain.InputFile) error {
	if len(input.Scenarios) == 0 {
		return errors.New("no scenarios provided")
	}
	seen := make(map[string]bool, len(input.Scenarios))
	var errs []error
	for i := range input.Scenarios {
		s := &input.Scenarios[i]
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Errorf("scenario %d: name is required", i))
			continue
		}
		if seen[s.Name] {
			errs = append(errs, fmt.Errorf("scenario %q: duplicate name", s.Name))
			continue
		}
		seen[s.Name] = true
		if err := ip.ValidateConfiguration(s.Name, &s.Config); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ValidateConfiguration checks one configuration and returns a *ValidationError
// listing every problem, or nil.
func (ip *InputParser) ValidateConfiguration(name string, cfg *domain.Configuration) error {
	ve := &ValidationError{Scenario: name}

	validateAge(ve, "current_age", cfg.CurrentAge)
	validateAge(ve, "retirement_age", cfg.RetirementAge)
	validateAge(ve, "death_age", cfg.DeathAge)
	if cfg.DeathAge < cfg.CurrentAge {
		ve.add("death_age", "must not be before current age (%d)", cfg.CurrentAge)
	}
	if cfg.CatchUpAge < 0 || cfg.CatchUpAge > maxAge {
		ve.add("catch_up_age", "must be between 0 and %d", maxAge)
	}
	if cfg.RMDStartAge < 0 || cfg.RMDStartAge > maxAge {
		ve.add("rmd_start_age", "must be between 0 and %d", maxAge)
	}
	if cfg.BirthYear < 0 {
		ve.add("birth_year", "cannot be negative")
	}

	for _, a := range domain.AllAccounts {
		nonNegative(ve, "starting_balances."+a.String(), cfg.StartingBalances.Get(a))
		nonNegative(ve, "annual_contributions."+a.String(), cfg.AnnualContributions.Get(a))
	}
	for _, a := range domain.LimitedAccounts {
		nonNegative(ve, "catch_up_amounts."+a.String(), cfg.CatchUpAmounts.For(a))
	}

	fraction(ve, "employer_match_rate", cfg.EmployerMatchRate)
	fraction(ve, "employer_match_ceiling", cfg.EmployerMatchCeiling)
	fraction(ve, "profit_sharing_rate", cfg.ProfitSharingRate)
	fraction(ve, "withdrawal_tax_rate", cfg.WithdrawalTaxRate)
	fraction(ve, "early_withdrawal_penalty_rate", cfg.EarlyWithdrawalPenaltyRate)

	nonNegative(ve, "annual_withdrawal", cfg.AnnualWithdrawal)
	nonNegative(ve, "salary", cfg.Salary)
	aboveTotalLoss(ve, "salary_growth_rate", cfg.SalaryGrowthRate)
	aboveTotalLoss(ve, "returns.retirement", cfg.Returns.Retirement)
	aboveTotalLoss(ve, "returns.brokerage", cfg.Returns.Brokerage)
	aboveTotalLoss(ve, "returns.savings", cfg.Returns.Savings)

	if cfg.LimitTables != nil {
		for _, a := range domain.LimitedAccounts {
			table, _ := cfg.LimitTables.For(a)
			validateLimitTable(ve, "limit_tables."+a.String(), table)
		}
	}

	if len(ve.Problems) > 0 {
		return ve
	}
	return nil
}

func validateAge(ve *ValidationError, field string, age int) {
	if age < 0 || age > maxAge {
		ve.add(field, "must be between 0 and %d, got %d", maxAge, age)
	}
}

func nonNegative(ve *ValidationError, field string, v decimal.Decimal) {
	if v.IsNegative() {
		ve.add(field, "cannot be negative")
	}
}

func fraction(ve *ValidationError, field string, v decimal.Decimal) {
	if v.IsNegative() || v.GreaterThan(one) {
		ve.add(field, "must be between 0 and 1, got %s", v)
	}
}

func aboveTotalLoss(ve *ValidationError, field string, v decimal.Decimal) {
	if v.LessThanOrEqual(minusOne) {
		ve.add(field, "must be greater than -100%%")
	}
}

func validateLimitTable(ve *ValidationError, field string, t domain.LimitTable) {
	nonNegative(ve, field+".standard_limit", t.StandardLimit)
	nonNegative(ve, field+".catch_up_limit", t.CatchUpLimit)
	nonNegative(ve, field+".annual_increase", t.AnnualIncrease)
	if t.Super != nil {
		nonNegative(ve, field+".super.limit", t.Super.Limit)
		if t.Super.AgeMin > t.Super.AgeMax {
			ve.add(field+".super", "age_min (%d) is after age_max (%d)", t.Super.AgeMin, t.Super.AgeMax)
		}
	}
}

// NormalizeRates rounds every rate of cfg to the RateStep grid
func NormalizeRates(cfg *domain.Configuration) {
	for _, r := range []*decimal.Decimal{
		&cfg.EmployerMatchRate,
		&cfg.EmployerMatchCeiling,
		&cfg.ProfitSharingRate,
		&cfg.WithdrawalTaxRate,
		&cfg.EarlyWithdrawalPenaltyRate,
		&cfg.SalaryGrowthRate,
		&cfg.Returns.Retirement,
		&cfg.Returns.Brokerage,
		&cfg.Returns.Savings,
	} {
		*r = dec.RoundToStep(*r, RateStep)
	}
}

// SaveInputFile writes scenarios back out as YAML
func SaveInputFile(input *domain.InputFile, filename string) error {
	b, err := yaml.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := os.WriteFile(filename, b, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// CreateExampleConfiguration creates an example input with two retirement ages
func (ip *InputParser) CreateExampleConfiguration() *domain.InputFile {
	base := domain.Configuration{
		CurrentAge:    45,
		RetirementAge: 62,
		DeathAge:      92,
		BirthYear:     dateutil.BirthYear(45, time.Now()),
		StartingBalances: domain.AccountAmounts{
			Deferred: decimal.NewFromInt(250000),
			TaxFree:  decimal.NewFromInt(60000),
			Medical:  decimal.NewFromInt(15000),
			Taxable:  decimal.NewFromInt(40000),
			Cash:     decimal.NewFromInt(25000),
		},
		AnnualContributions: domain.AccountAmounts{
			Deferred: decimal.NewFromInt(20000),
			TaxFree:  decimal.NewFromInt(7000),
			Medical:  decimal.NewFromInt(4000),
			Taxable:  decimal.NewFromInt(6000),
			Cash:     decimal.NewFromInt(2400),
		},
		ContributionIncreases: domain.AccountAmounts{
			Deferred: decimal.NewFromInt(500),
			TaxFree:  decimal.NewFromInt(250),
			Medical:  decimal.NewFromInt(100),
			Taxable:  decimal.NewFromInt(250),
		},
		CatchUpAge: 50,
		CatchUpAmounts: domain.CatchUpAmounts{
			Deferred: decimal.NewFromInt(7500),
			TaxFree:  decimal.NewFromInt(1000),
			Medical:  decimal.NewFromInt(1000),
		},
		EmployerMatchRate:          decimal.NewFromFloat(0.5),
		EmployerMatchCeiling:       decimal.NewFromFloat(0.06),
		ProfitSharingRate:          decimal.NewFromFloat(0.02),
		AnnualWithdrawal:           decimal.NewFromInt(90000),
		WithdrawalTaxRate:          decimal.NewFromFloat(0.22),
		EarlyWithdrawalPenaltyRate: decimal.NewFromFloat(0.10),
		Returns: domain.Returns{
			Retirement: decimal.NewFromFloat(0.065),
			Brokerage:  decimal.NewFromFloat(0.06),
			Savings:    decimal.NewFromFloat(0.02),
		},
		Salary:           decimal.NewFromInt(120000),
		SalaryGrowthRate: decimal.NewFromFloat(0.03),
	}

	late := base
	late.RetirementAge = 67

	return &domain.InputFile{
		Scenarios: []domain.Scenario{
			{Name: "Retire at 62", Config: base},
			{Name: "Retire at 67", Config: late},
		},
	}
}
