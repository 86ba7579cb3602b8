package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/savings-projector/internal/config"
)

func newExampleCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := config.NewInputParser().CreateExampleConfiguration()
			if err := config.SaveInputFile(input, out); err != nil {
				return fmt.Errorf("failed to write example: %w", err)
			}
			a.log.Info().Str("file", out).Int("scenarios", len(input.Scenarios)).Msg("example configuration written")
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "example_config.yaml", "Destination file")
	return cmd
}
