package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/neorent/forecast/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per property).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.PortfolioReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Property", "RevenueSource", "MonthlyRevenue", "MonthlyCharges", "MonthlyProfit", "AnnualRevenue", "AnnualCharges", "AnnualProfit", "ProfitabilityPercentage", "ChargesPercentage", "OccupancyRate", "ChargeMonths"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	properties := append([]domain.PropertyReport(nil), report.Properties...)
	sort.SliceStable(properties, func(i, j int) bool {
		return properties[i].Profitability.PropertyTitle < properties[j].Profitability.PropertyTitle
	})
	for _, p := range properties {
		pr := p.Profitability
		row := []string{
			pr.PropertyTitle,
			string(pr.RevenueSource),
			pr.MonthlyRevenue.StringFixed(2),
			pr.MonthlyCharges.StringFixed(2),
			pr.MonthlyProfit.StringFixed(2),
			pr.AnnualRevenue.StringFixed(2),
			pr.AnnualCharges.StringFixed(2),
			pr.AnnualProfit.StringFixed(2),
			pr.ProfitabilityPercentage.StringFixed(2),
			pr.ChargesPercentage.StringFixed(2),
			p.OccupancyRate.StringFixed(2),
			intToString(len(p.Charges.MonthlyCharges)),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
