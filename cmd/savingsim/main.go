package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rpgo/savings-projector/internal/calculation"
	"github.com/rpgo/savings-projector/internal/config"
)

// app carries state shared by every subcommand
type app struct {
	env      config.CLIEnv
	logLevel string
	log      zerolog.Logger
}

func (a *app) engine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(calculation.NewZerologLogger(a.log))
	engine.Debug = a.log.GetLevel() <= zerolog.DebugLevel
	return engine
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// newRootCmd builds the savingsim command tree
func newRootCmd(env config.CLIEnv) *cobra.Command {
	a := &app{env: env, log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "savingsim",
		Short: "Multi-account retirement savings projector",
		Long: `savingsim projects savings across tax-deferred, tax-free, medical,
taxable and cash accounts from today until the planning horizon, applying
contribution limits, catch-up rules, withdrawals and required minimum
distributions year by year.

Examples:
  savingsim example --out scenarios.yaml
  savingsim run --config scenarios.yaml --format all --output-dir reports
  savingsim montecarlo --config scenarios.yaml --sims 2000 --seed 7
  savingsim limits --age 58 --years 8`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(cmd.ErrOrStderr(), a.logLevel)
			if err != nil {
				return err
			}
			a.log = l
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", env.LogLevel, "Log level (debug|info|warn|error)")

	root.AddCommand(
		newRunCmd(a),
		newExampleCmd(a),
		newLimitsCmd(a),
		newMonteCarloCmd(a),
	)
	return root
}

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(env).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
