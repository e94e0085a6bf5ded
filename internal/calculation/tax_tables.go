package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/neorent/forecast/internal/domain"
)

// DefaultCountry is the fallback country of the built-in tax configuration
const DefaultCountry = "FR"

func bracket(rate float64, min, max int64) domain.TaxBracket {
	upper := decimal.NewFromInt(max)
	return domain.TaxBracket{
		Rate:  decimal.NewFromFloat(rate),
		Min:   decimal.NewFromInt(min),
		Max:   &upper,
		Label: fmt.Sprintf("%d - %d", min, max),
	}
}

func topBracket(rate float64, min int64) domain.TaxBracket {
	return domain.TaxBracket{
		Rate:  decimal.NewFromFloat(rate),
		Min:   decimal.NewFromInt(min),
		Label: fmt.Sprintf("%d+", min),
	}
}

// DefaultTaxConfig returns a fresh copy of the built-in bracket tables.
// Amounts are annual taxable income in the country's currency, per single share.
func DefaultTaxConfig() domain.TaxConfig {
	return domain.TaxConfig{
		DefaultCountry: DefaultCountry,
		Tables: map[string]domain.TaxTable{
			// France, barème 2024 (revenus 2023)
			"FR": {
				bracket(0, 0, 10777),
				bracket(11, 10778, 27478),
				bracket(30, 27479, 78570),
				bracket(41, 78571, 168994),
				topBracket(45, 168995),
			},
			// Belgium, federal rates, income year 2024
			"BE": {
				bracket(25, 0, 15820),
				bracket(40, 15821, 27920),
				bracket(45, 27921, 48320),
				topBracket(50, 48321),
			},
			// Spain, combined state and regional general scale
			"ES": {
				bracket(19, 0, 12450),
				bracket(24, 12451, 20200),
				bracket(30, 20201, 35200),
				bracket(37, 35201, 60000),
				bracket(45, 60001, 300000),
				topBracket(47, 300001),
			},
			// United Kingdom, England and Wales 2024/25 including the personal allowance
			"GB": {
				bracket(0, 0, 12570),
				bracket(20, 12571, 50270),
				bracket(40, 50271, 125140),
				topBracket(45, 125141),
			},
			// United Arab Emirates: no personal income tax
			"AE": {
				{Rate: decimal.Zero, Min: decimal.Zero, Label: "no income tax"},
			},
		},
	}
}
