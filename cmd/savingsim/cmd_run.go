package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/savings-projector/internal/config"
	"github.com/rpgo/savings-projector/internal/output"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		configPath string
		format     string
		outputDir  string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Project every scenario in a configuration file",
		Long: `Run the year-by-year projection for each scenario and report the results.

Console formats print to stdout; file formats (csv, detailed-csv, json, all)
are written to timestamped files under --output-dir.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := config.NewInputParser().LoadFromFile(configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			results, err := a.engine().RunScenarios(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("failed to run scenarios: %w", err)
			}

			switch name := output.NormalizeFormatName(format); name {
			case "console", "console-lite":
				data, err := output.GetFormatterByName(name).Format(results)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			default:
				files, err := output.GenerateReport(results, format, outputDir)
				if err != nil {
					return err
				}
				for _, f := range files {
					a.log.Info().Str("file", f).Msg("report written")
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
				return nil
			}
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the YAML scenario file")
	cmd.Flags().StringVarP(&format, "format", "f", a.env.Format, "Output format: console, console-lite, csv, detailed-csv, json, all")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", a.env.OutputDir, "Directory for file reports")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}
