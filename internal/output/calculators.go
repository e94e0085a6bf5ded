package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/neorent/forecast/internal/calculation"
	"github.com/neorent/forecast/internal/domain"
)

// WriteTaxBreakdown renders a progressive tax computation, one line per bracket slice
func WriteTaxBreakdown(w io.Writer, b domain.TaxBreakdown, slices bool) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Income tax (%s) on %s\n", b.Country, FormatCurrency(b.Income))
	if b.UsedDefault {
		fmt.Fprintln(&buf, "  (unknown country, default brackets applied)")
	}
	if slices && len(b.Slices) > 0 {
		fmt.Fprintf(&buf, "  %-24s %8s %15s %12s\n", "BRACKET", "RATE", "TAXED", "TAX")
		fmt.Fprintln(&buf, "  "+strings.Repeat("-", 62))
		for _, s := range b.Slices {
			fmt.Fprintf(&buf, "  %-24s %8s %15s %12s\n", s.Label, FormatPercentage(s.Rate), FormatCurrency(s.Amount), FormatCurrency(s.Tax))
		}
		fmt.Fprintln(&buf, "  "+strings.Repeat("-", 62))
	}
	fmt.Fprintf(&buf, "  Tax:            %s\n", FormatCurrency(b.Tax))
	fmt.Fprintf(&buf, "  Effective rate: %s\n", FormatPercentage(b.EffectiveRate))
	fmt.Fprintf(&buf, "  Marginal rate:  %s\n", FormatPercentage(b.MarginalRate))
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteSimulation renders the outcome of one investment simulation
func WriteSimulation(w io.Writer, r domain.SimulationResult) error {
	var buf bytes.Buffer
	in := r.Input
	fmt.Fprintf(&buf, "INVESTMENT SIMULATION: %s at %s%% over %s years\n",
		FormatCurrency(in.TargetPrice.Decimal), in.AnnualInterestRate.String(), in.LoanTermYears.String())
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintf(&buf, "  Down payment (%s%%):     %s\n", in.DownPaymentPercent.String(), FormatCurrency(r.RequiredDownPayment))
	fmt.Fprintf(&buf, "  Loan amount:            %s\n", FormatCurrency(r.LoanAmount))
	fmt.Fprintf(&buf, "  Monthly payment:        %s\n", FormatCurrency(r.MonthlyLoanPayment))
	fmt.Fprintf(&buf, "  Estimated rent:         %s\n", FormatCurrency(in.EstimatedMonthlyRent.Decimal))
	fmt.Fprintf(&buf, "  Net cash flow:          %s\n", FormatCurrency(r.NetCashFlow))
	fmt.Fprintf(&buf, "  Gross annual yield:     %s\n", FormatPercentage(r.GrossAnnualYieldPercent))
	fmt.Fprintf(&buf, "  Total interest:         %s\n", FormatCurrency(r.TotalInterest))
	fmt.Fprintf(&buf, "  Total cost:             %s\n", FormatCurrency(r.TotalCost))
	fmt.Fprintf(&buf, "  Affordable:             %t\n", r.CanAffordProperty)
	fmt.Fprintf(&buf, "  Risk:                   %s\n", strings.ToUpper(string(r.RiskLevel)))
	fmt.Fprintf(&buf, "  %s\n", r.Recommendation)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteScheduleCSV writes an amortization schedule, one row per month
func WriteScheduleCSV(w io.Writer, entries []calculation.AmortizationEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Period", "Payment", "Interest", "Principal", "RemainingBalance"}); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			intToString(e.Period),
			e.Payment.StringFixed(2),
			e.Interest.StringFixed(2),
			e.Principal.StringFixed(2),
			e.RemainingBalance.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
