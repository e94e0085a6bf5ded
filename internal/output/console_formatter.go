package output

import (
	"bytes"
	"fmt"

	"github.com/neorent/forecast/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.PortfolioReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "PORTFOLIO SUMMARY (%s)\n", report.Month)
	fmt.Fprintln(&buf, "================================")
	for _, p := range report.Properties {
		pr := p.Profitability
		fmt.Fprintf(&buf, "%s: Revenue=%s (%s) Charges=%s Profit=%s Margin=%s\n",
			pr.PropertyTitle,
			FormatCurrency(pr.MonthlyRevenue),
			pr.RevenueSource,
			FormatCurrency(pr.MonthlyCharges),
			FormatCurrency(pr.MonthlyProfit),
			FormatPercentage(pr.ProfitabilityPercentage),
		)
	}
	s := report.Summary
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Total: Revenue=%s Charges=%s Profit=%s AnnualProfit=%s\n",
		FormatCurrency(s.MonthlyRevenue), FormatCurrency(s.MonthlyCharges), FormatCurrency(s.MonthlyProfit), FormatCurrency(s.AnnualProfit))
	fmt.Fprintf(&buf, "Tax (%s): %s  After tax: %s\n", report.Fiscal.Country, FormatCurrency(report.Fiscal.Tax), FormatCurrency(report.Fiscal.AfterTaxProfit))

	rec := AnalyzePortfolio(report)
	if rec.BestProperty != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Best: %s (%s / year)\n", rec.BestProperty, FormatCurrency(rec.BestAnnualProfit))
	}
	return buf.Bytes(), nil
}
