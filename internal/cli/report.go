package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/neorent/forecast/internal/config"
	"github.com/neorent/forecast/internal/domain"
	"github.com/neorent/forecast/internal/output"
)

// ReportCmd builds the portfolio forecast from a file or the snapshot database
func ReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Forecast the profitability of a rental portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			useDB, _ := cmd.Flags().GetBool("db")
			format, _ := cmd.Flags().GetString("format")
			outputPath, _ := cmd.Flags().GetString("output")

			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format)
			}

			src, closeSource, err := a.source(input, useDB)
			if err != nil {
				return err
			}
			defer closeSource()

			ctx := commandContext(cmd)
			cfg, err := src.Load(ctx)
			if err != nil {
				return err
			}
			report, err := a.engine().BuildReport(ctx, cfg)
			if err != nil {
				return err
			}

			if outputPath == "" {
				return output.Render(out(cmd), report, format)
			}
			data, err := f.Format(report)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outputPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write file %s: %w", outputPath, err)
			}
			a.logger.Info("report written", zap.String("path", outputPath), zap.String("format", f.Name()))
			return nil
		},
	}

	cmd.Flags().String("input", "", "portfolio YAML file")
	cmd.Flags().Bool("db", false, "read the snapshot database instead of a file")
	cmd.Flags().String("format", "console", "output format (console, console-lite, json, csv, detailed-csv, html)")
	cmd.Flags().String("output", "", "write to this file instead of stdout")

	return cmd
}

// ExampleCmd writes a sample portfolio file
func ExampleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example portfolio file",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputPath, _ := cmd.Flags().GetString("output")
			parser := config.NewInputParser()
			if err := parser.SaveToFile(parser.CreateExampleConfiguration(), outputPath); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Example portfolio written to %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().String("output", "portfolio.yaml", "destination file")

	return cmd
}

func loadFile(cmd *cobra.Command, path string) (*domain.Configuration, error) {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	return cfg, commandContext(cmd).Err()
}
