package output

import (
	"bytes"
	"encoding/csv"

	"github.com/neorent/forecast/internal/domain"
)

// CSVDetailedExporter provides one row per property and charge month, newest first.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.PortfolioReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Property", "Month"}
	for _, cat := range domain.ChargeCategories {
		header = append(header, string(cat))
	}
	header = append(header, "Total", "IsLastMonth")
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range report.Properties {
		for i, rec := range p.Charges.MonthlyCharges {
			row := []string{p.Profitability.PropertyTitle, rec.Month}
			for _, cat := range domain.ChargeCategories {
				row = append(row, rec.Amount(cat).StringFixed(2))
			}
			row = append(row, rec.EffectiveTotal().StringFixed(2), boolToString(i == 0))
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
