package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rpgo/savings-projector/internal/calculation"
	"github.com/rpgo/savings-projector/internal/config"
	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/internal/output"
)

func newLimitsCmd(a *app) *cobra.Command {
	var (
		age        int
		years      int
		configPath string
		accounts   []string
	)
	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Print the projected contribution limits by year",
		Long: `Print the standard and catch-up contribution ceilings of the limited
accounts for consecutive years, starting at --age in the base year.
With --config the first scenario's limit tables and catch-up age are used.
--account restricts the table to deferred, tax_free or medical.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if years <= 0 {
				return fmt.Errorf("years must be positive, got %d", years)
			}
			if age < 0 {
				return fmt.Errorf("age cannot be negative, got %d", age)
			}
			cfg := &domain.Configuration{}
			if configPath != "" {
				input, err := config.NewInputParser().LoadFromFile(configPath)
				if err != nil {
					return fmt.Errorf("failed to load configuration: %w", err)
				}
				cfg = &input.Scenarios[0].Config
			}
			selected, err := limitedAccounts(accounts)
			if err != nil {
				return err
			}
			schedule := calculation.LimitScheduleFor(cfg)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			header := "Year\tAge\t"
			for _, acct := range selected {
				header += acct.String() + "\tcatch-up\t"
			}
			fmt.Fprintln(w, header)
			for i := 0; i < years; i++ {
				row := fmt.Sprintf("%d\t%d\t", i, age+i)
				for _, acct := range selected {
					table, err := schedule.For(acct)
					if err != nil {
						return err
					}
					standard, catchUp := calculation.ProjectedLimit(table, i, age+i)
					row += output.FormatCurrencyGrouped(standard) + "\t" + output.FormatCurrencyGrouped(catchUp) + "\t"
				}
				fmt.Fprintln(w, row)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&age, "age", 50, "Age in the base year")
	cmd.Flags().IntVar(&years, "years", 10, "Number of years to project")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Optional scenario file providing limit tables")
	cmd.Flags().StringSliceVar(&accounts, "account", nil, "Limited accounts to show (default all)")
	return cmd
}

// limitedAccounts resolves --account names, defaulting to every limited account
func limitedAccounts(names []string) ([]domain.Account, error) {
	if len(names) == 0 {
		return domain.LimitedAccounts, nil
	}
	out := make([]domain.Account, 0, len(names))
	for _, name := range names {
		acct, err := domain.ParseAccount(name)
		if err != nil {
			return nil, err
		}
		if !acct.IsLimited() {
			return nil, fmt.Errorf("account %s has no contribution limit", acct)
		}
		out = append(out, acct)
	}
	return out, nil
}
