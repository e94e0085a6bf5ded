package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/neorent/forecast/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.PortfolioReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "RENTAL PORTFOLIO PROFITABILITY FORECAST")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintf(&buf, "Month: %s   Generated: %s   Charge basis: %s\n", report.Month, report.GeneratedAt.Format("2006-01-02 15:04"), report.ChargeBasis)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, p := range report.Properties {
		writeProperty(&buf, i+1, p)
	}

	writePortfolioTotals(&buf, report)

	rec := AnalyzePortfolio(report)
	if rec.BestProperty != "" {
		fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
		fmt.Fprintln(&buf, "=========================")
		fmt.Fprintf(&buf, "Most profitable:  %s (%s / year)\n", rec.BestProperty, FormatCurrency(rec.BestAnnualProfit))
		fmt.Fprintf(&buf, "Least profitable: %s (%s / year)\n", rec.WorstProperty, FormatCurrency(rec.WorstAnnualProfit))
		if len(rec.LossMaking) > 0 {
			fmt.Fprintf(&buf, "Loss-making:      %s\n", strings.Join(rec.LossMaking, ", "))
		}
		fmt.Fprintf(&buf, "Monthly after tax: %s\n", FormatCurrency(rec.MonthlyAfterTax))
	}

	return buf.Bytes(), nil
}

func writeProperty(buf *bytes.Buffer, n int, p domain.PropertyReport) {
	pr := p.Profitability
	title := fmt.Sprintf("PROPERTY %d: %s", n, pr.PropertyTitle)
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("=", len(title)))
	if p.Property != nil {
		fmt.Fprintf(buf, "  Type:                   %s\n", p.Property.LocationType)
		if p.Property.IsSharedHousing() {
			fmt.Fprintf(buf, "  Rooms:                  %d total, %d available\n", p.Property.TotalRooms, p.Property.AvailableRooms)
			fmt.Fprintf(buf, "  Occupancy:              %s\n", FormatPercentage(p.OccupancyRate))
		}
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "%-35s %15s %15s\n", "", "MONTHLY", "ANNUAL")
	fmt.Fprintln(buf, strings.Repeat("-", 67))
	amountLine(buf, fmt.Sprintf("Revenue (%s)", pr.RevenueSource), pr.MonthlyRevenue, pr.AnnualRevenue)
	amountLine(buf, "Charges", pr.MonthlyCharges, pr.AnnualCharges)
	fmt.Fprintln(buf, strings.Repeat("-", 67))
	amountLine(buf, "PROFIT", pr.MonthlyProfit, pr.AnnualProfit)
	fmt.Fprintf(buf, "  Profitability:          %s\n", FormatPercentage(pr.ProfitabilityPercentage))
	fmt.Fprintf(buf, "  Charges ratio:          %s\n", FormatPercentage(pr.ChargesPercentage))

	cs := p.Charges
	if len(cs.MonthlyCharges) > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "  CHARGES (%d months, total %s, average %s, last %s %s)\n",
			len(cs.MonthlyCharges), FormatCurrency(cs.TotalCharges), FormatCurrency(cs.AverageMonthlyCharges),
			cs.LastMonth, FormatCurrency(cs.LastMonthCharges))
		for _, rec := range cs.MonthlyCharges {
			fmt.Fprintf(buf, "    %-10s %15s\n", rec.Month, FormatCurrency(rec.EffectiveTotal()))
		}
	}
	fmt.Fprintln(buf)
}

func writePortfolioTotals(buf *bytes.Buffer, report *domain.PortfolioReport) {
	s := report.Summary
	f := report.Fiscal
	title := fmt.Sprintf("PORTFOLIO (%d properties)", s.PropertyCount)
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("=", len(title)))
	amountLine(buf, "Revenue", s.MonthlyRevenue, s.AnnualRevenue)
	amountLine(buf, "Charges", s.MonthlyCharges, s.AnnualCharges)
	amountLine(buf, "PROFIT", s.MonthlyProfit, s.AnnualProfit)
	fmt.Fprintf(buf, "  Profitability:          %s\n", FormatPercentage(s.ProfitabilityPercentage))
	fmt.Fprintf(buf, "  Charges ratio:          %s\n", FormatPercentage(s.ChargesPercentage))
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "FISCAL ESTIMATE (%s):\n", f.Country)
	fmt.Fprintf(buf, "  Taxable income:         %s\n", FormatCurrency(f.TaxableIncome))
	fmt.Fprintf(buf, "  Income tax:             %s (%s)\n", FormatCurrency(f.Tax), FormatPercentage(f.EffectiveRate))
	fmt.Fprintf(buf, "  After-tax profit:       %s\n", FormatCurrency(f.AfterTaxProfit))
	fmt.Fprintln(buf)
}

func amountLine(buf *bytes.Buffer, label string, monthly, annual decimal.Decimal) {
	fmt.Fprintf(buf, "%-35s %15s %15s\n", "  "+label, FormatCurrency(monthly), FormatCurrency(annual))
}
