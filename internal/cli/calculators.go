package cli

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/neorent/forecast/internal/calculation"
	"github.com/neorent/forecast/internal/domain"
	"github.com/neorent/forecast/internal/output"
	money "github.com/neorent/forecast/pkg/decimal"
)

// TaxCmd computes the income tax owed on an annual income
func TaxCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Compute progressive income tax for a country",
		RunE: func(cmd *cobra.Command, args []string) error {
			incomeRaw, _ := cmd.Flags().GetString("income")
			breakdown, _ := cmd.Flags().GetBool("breakdown")
			asJSON, _ := cmd.Flags().GetBool("json")

			income, err := parseDecimal("income", incomeRaw)
			if err != nil {
				return err
			}
			// --country selects the table; settings already rejected codes without one
			te := calculation.NewDefaultTaxEngine()
			te.SetLogger(a.logger.Sugar())
			result := te.Breakdown(income, a.settings.DefaultCountry)
			if asJSON {
				return writeJSON(cmd, result)
			}
			return output.WriteTaxBreakdown(out(cmd), result, breakdown)
		},
	}

	cmd.Flags().String("income", "", "annual taxable income")
	cmd.Flags().Bool("breakdown", false, "show the tax of every bracket")
	cmd.Flags().Bool("json", false, "print JSON")
	_ = cmd.MarkFlagRequired("income")

	return cmd
}

// LoanCmd computes a fixed-rate loan payment
func LoanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Compute the monthly payment of a fixed-rate loan",
		RunE: func(cmd *cobra.Command, args []string) error {
			principalRaw, _ := cmd.Flags().GetString("principal")
			rateRaw, _ := cmd.Flags().GetString("rate")
			months, _ := cmd.Flags().GetInt("months")
			schedule, _ := cmd.Flags().GetBool("schedule")

			principal, err := parseDecimal("principal", principalRaw)
			if err != nil {
				return err
			}
			rate, err := parseDecimal("rate", rateRaw)
			if err != nil {
				return err
			}

			if schedule {
				entries, err := calculation.AmortizationSchedule(principal, rate, months)
				if err != nil {
					return err
				}
				return output.WriteScheduleCSV(out(cmd), entries)
			}

			payment, err := calculation.MonthlyPayment(principal, rate, months)
			if err != nil {
				return err
			}
			interest, err := calculation.TotalInterest(principal, rate, months)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Monthly payment: %s\n", output.FormatCurrency(payment))
			fmt.Fprintf(out(cmd), "Total interest:  %s\n", output.FormatCurrency(interest))
			return nil
		},
	}

	cmd.Flags().String("principal", "", "amount borrowed")
	cmd.Flags().String("rate", "", "annual interest rate in percent")
	cmd.Flags().Int("months", 0, "loan term in months")
	cmd.Flags().Bool("schedule", false, "print the amortization schedule as CSV")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("rate")
	_ = cmd.MarkFlagRequired("months")

	return cmd
}

// SimulateCmd runs an investment simulation from flags, or every simulation of
// a portfolio file
func SimulateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a financed property purchase",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			asJSON, _ := cmd.Flags().GetBool("json")
			e := a.engine()

			var results []domain.SimulationResult
			if input != "" {
				cfg, err := loadFile(cmd, input)
				if err != nil {
					return err
				}
				if results, err = e.RunSimulations(cfg); err != nil {
					return err
				}
			} else {
				in := domain.SimulationInput{}
				for flag, target := range map[string]*money.Money{
					"price": &in.TargetPrice,
					"rent":  &in.EstimatedMonthlyRent,
					"down":  &in.DownPaymentPercent,
					"rate":  &in.AnnualInterestRate,
					"years": &in.LoanTermYears,
				} {
					raw, _ := cmd.Flags().GetString(flag)
					*target = money.ParseMoney(raw)
				}
				result, err := e.Simulation.Simulate(in)
				if err != nil {
					return err
				}
				results = append(results, result)
			}

			if asJSON {
				return writeJSON(cmd, results)
			}
			for i, r := range results {
				if i > 0 {
					fmt.Fprintln(out(cmd))
				}
				if err := output.WriteSimulation(out(cmd), r); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().String("input", "", "portfolio file whose simulations to run")
	cmd.Flags().String("price", "", "target price")
	cmd.Flags().String("rent", "", "estimated monthly rent")
	cmd.Flags().String("down", "20", "down payment in percent of the price")
	cmd.Flags().String("rate", "", "annual interest rate in percent")
	cmd.Flags().String("years", "", "loan term in years")
	cmd.Flags().Bool("json", false, "print JSON")

	return cmd
}

func parseDecimal(name, raw string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: --%s must be a number, got %q", calculation.ErrInvalidInput, name, raw)
	}
	return v, nil
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(out(cmd))
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
