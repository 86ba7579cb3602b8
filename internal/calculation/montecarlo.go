package calculation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/rpgo/savings-projector/internal/domain"
)

const (
	defaultNumSimulations = 1000
	defaultWorkers        = 10
)

// Sampled annual returns never fall below -95%.
var minSampledReturn = decimal.NewFromFloat(-0.95)

// Volatility is the annual standard deviation of returns per account class
type Volatility struct {
	Retirement decimal.Decimal `json:"retirement"`
	Brokerage  decimal.Decimal `json:"brokerage"`
	Savings    decimal.Decimal `json:"savings"`
}

// DefaultVolatility returns long-run standard deviations for a stock-heavy
// retirement portfolio, a brokerage account and cash-like savings.
func DefaultVolatility() Volatility {
	return Volatility{
		Retirement: decimal.NewFromFloat(0.15),
		Brokerage:  decimal.NewFromFloat(0.18),
		Savings:    decimal.NewFromFloat(0.01),
	}
}

// MonteCarloConfig holds configuration for Monte Carlo simulations
type MonteCarloConfig struct {
	NumSimulations int
	Seed           int64
	Volatility     Volatility
	Workers        int
}

// MonteCarloSimulator runs the projection many times with randomized annual returns
type MonteCarloSimulator struct {
	NumSimulations int
	Seed           int64
	Volatility     Volatility
	Workers        int
	Logger         Logger
}

// NewMonteCarloSimulator creates a new Monte Carlo simulator
func NewMonteCarloSimulator(config MonteCarloConfig) *MonteCarloSimulator {
	if config.Seed == 0 {
		config.Seed = seedFunc()
	}
	if config.NumSimulations <= 0 {
		config.NumSimulations = defaultNumSimulations
	}
	if config.Workers <= 0 {
		config.Workers = defaultWorkers
	}
	return &MonteCarloSimulator{
		NumSimulations: config.NumSimulations,
		Seed:           config.Seed,
		Volatility:     config.Volatility,
		Workers:        config.Workers,
		Logger:         NopLogger{},
	}
}

// SampledReturns is a ReturnPath with one drawn set of returns per year.
// Years past the end of the path repeat the last entry.
type SampledReturns []domain.Returns

// ReturnsFor implements ReturnPath
func (s SampledReturns) ReturnsFor(year int) domain.Returns {
	if len(s) == 0 {
		return domain.Returns{}
	}
	if year < 0 {
		year = 0
	}
	if year >= len(s) {
		year = len(s) - 1
	}
	return s[year]
}

// RunSimulation executes the Monte Carlo simulation for one configuration.
// Simulation i always uses seed Seed+i, so results do not depend on Workers.
func (mcs *MonteCarloSimulator) RunSimulation(ctx context.Context, name string, cfg *domain.Configuration) (*domain.MonteCarloResult, error) {
	if cfg == nil {
		return nil, errors.New("configuration is nil")
	}
	if mcs.NumSimulations <= 0 {
		return nil, fmt.Errorf("number of simulations must be positive, got %d", mcs.NumSimulations)
	}
	logger := mcs.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	logger.Infof("monte carlo %q: %d simulations, seed %d, %d workers", name, mcs.NumSimulations, mcs.Seed, mcs.Workers)

	results := make([]domain.SimulationOutcome, mcs.NumSimulations)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(mcs.Workers, 1))

	for i := 0; i < mcs.NumSimulations; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = mcs.runSingleSimulation(cfg, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("monte carlo %q: %w", name, err)
	}
	// A cancellation that lands after the last Go call is only visible on ctx.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("monte carlo %q: %w", name, err)
	}

	balances := sortedFinalBalances(results)
	return &domain.MonteCarloResult{
		ScenarioName:       name,
		NumSimulations:     mcs.NumSimulations,
		Seed:               mcs.Seed,
		SuccessRate:        calculateSuccessRate(results),
		MedianFinalBalance: balances[len(balances)/2],
		PercentileRanges:   calculatePercentileRanges(balances),
		Simulations:        results,
	}, nil
}

// runSingleSimulation runs one projection over a freshly sampled return path
func (mcs *MonteCarloSimulator) runSingleSimulation(cfg *domain.Configuration, index int) domain.SimulationOutcome {
	rng := rand.New(rand.NewSource(mcs.Seed + int64(index)))
	path := mcs.SamplePath(rng, cfg.Returns, cfg.Years())
	summary := Summarize("", cfg, SimulateWithReturns(cfg, path))
	return domain.SimulationOutcome{
		FinalBalance:      summary.FinalBalance,
		RetirementBalance: summary.RetirementBalance,
		DepletionAge:      summary.DepletionAge,
		Success:           summary.SustainedToDeath,
	}
}

// SamplePath draws one normally distributed return per class per year around the configured means
func (mcs *MonteCarloSimulator) SamplePath(rng *rand.Rand, mean domain.Returns, years int) SampledReturns {
	path := make(SampledReturns, years)
	for y := range path {
		path[y] = domain.Returns{
			Retirement: sampleReturn(rng, mean.Retirement, mcs.Volatility.Retirement),
			Brokerage:  sampleReturn(rng, mean.Brokerage, mcs.Volatility.Brokerage),
			Savings:    sampleReturn(rng, mean.Savings, mcs.Volatility.Savings),
		}
	}
	return path
}

func sampleReturn(rng *rand.Rand, mean, stdDev decimal.Decimal) decimal.Decimal {
	z := decimal.NewFromFloat(boxMullerTransform(1-rng.Float64(), rng.Float64()))
	r := mean.Add(z.Mul(stdDev)).Round(6)
	if r.LessThan(minSampledReturn) {
		return minSampledReturn
	}
	return r
}

// boxMullerTransform converts two uniform variables (u1 in (0,1]) to a standard normal
func boxMullerTransform(u1, u2 float64) float64 {
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// calculateSuccessRate returns the fraction of simulations that last to death
func calculateSuccessRate(simulations []domain.SimulationOutcome) decimal.Decimal {
	if len(simulations) == 0 {
		return decimal.Zero
	}
	successCount := 0
	for _, sim := range simulations {
		if sim.Success {
			successCount++
		}
	}
	return decimal.NewFromInt(int64(successCount)).Div(decimal.NewFromInt(int64(len(simulations))))
}

func sortedFinalBalances(simulations []domain.SimulationOutcome) []decimal.Decimal {
	balances := make([]decimal.Decimal, len(simulations))
	for i, sim := range simulations {
		balances[i] = sim.FinalBalance
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].LessThan(balances[j]) })
	return balances
}

// calculatePercentileRanges picks nearest-rank percentiles from sorted balances
func calculatePercentileRanges(balances []decimal.Decimal) domain.PercentileRanges {
	n := len(balances)
	if n == 0 {
		return domain.PercentileRanges{}
	}
	return domain.PercentileRanges{
		P10: balances[n/10],
		P25: balances[n/4],
		P50: balances[n/2],
		P75: balances[3*n/4],
		P90: balances[9*n/10],
	}
}
