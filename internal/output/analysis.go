package output

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/neorent/forecast/internal/domain"
	money "github.com/neorent/forecast/pkg/decimal"
)

// Recommendation encapsulates the ranking of a portfolio's properties.
type Recommendation struct {
	BestProperty      string
	BestAnnualProfit  decimal.Decimal
	WorstProperty     string
	WorstAnnualProfit decimal.Decimal
	LossMaking        []string
	// MonthlyAfterTax is the after-tax annual profit spread over twelve months
	MonthlyAfterTax decimal.Decimal
}

// AnalyzePortfolio ranks properties by annual profit. Ties keep report order.
func AnalyzePortfolio(report *domain.PortfolioReport) Recommendation {
	if report == nil || len(report.Properties) == 0 {
		return Recommendation{}
	}
	ranks := make([]domain.Profitability, 0, len(report.Properties))
	for _, p := range report.Properties {
		ranks = append(ranks, p.Profitability)
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].AnnualProfit.GreaterThan(ranks[j].AnnualProfit) })

	best, worst := ranks[0], ranks[len(ranks)-1]
	rec := Recommendation{
		BestProperty:      best.PropertyTitle,
		BestAnnualProfit:  best.AnnualProfit,
		WorstProperty:     worst.PropertyTitle,
		WorstAnnualProfit: worst.AnnualProfit,
		MonthlyAfterTax:   money.NewMoneyFromDecimal(report.Fiscal.AfterTaxProfit).Monthly().Round().Decimal,
	}
	for _, p := range report.Properties {
		if p.Profitability.MonthlyProfit.IsNegative() {
			rec.LossMaking = append(rec.LossMaking, p.Profitability.PropertyTitle)
		}
	}
	return rec
}
