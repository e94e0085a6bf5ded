package calculation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/neorent/forecast/internal/domain"
	money "github.com/neorent/forecast/pkg/decimal"
)

// ChargeBasis selects which charge figure counts as a property's monthly charges
type ChargeBasis string

const (
	// ChargeBasisAverage uses the average over every recorded month
	ChargeBasisAverage ChargeBasis = "average"
	// ChargeBasisLastMonth uses the most recent recorded month
	ChargeBasisLastMonth ChargeBasis = "last-month"
)

// ParseChargeBasis resolves a basis name; the empty string means average
func ParseChargeBasis(s string) (ChargeBasis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ChargeBasisAverage):
		return ChargeBasisAverage, nil
	case string(ChargeBasisLastMonth), "last_month", "last":
		return ChargeBasisLastMonth, nil
	}
	return "", fmt.Errorf("%w: unknown charge basis %q (want average or last-month)", ErrInvalidInput, s)
}

// ProfitabilityCalculator combines revenue and charges into profit figures
type ProfitabilityCalculator struct {
	Revenue *RevenueAggregator
	Charges *ChargeAggregator
	Basis   ChargeBasis
}

// NewProfitabilityCalculator creates a calculator using average monthly charges
func NewProfitabilityCalculator() *ProfitabilityCalculator {
	return &ProfitabilityCalculator{
		Revenue: NewRevenueAggregator(),
		Charges: NewChargeAggregator(),
		Basis:   ChargeBasisAverage,
	}
}

// MonthlyCharges returns the charge figure of a summary under the configured basis
func (pc *ProfitabilityCalculator) MonthlyCharges(summary domain.ChargeSummary) decimal.Decimal {
	if pc.Basis == ChargeBasisLastMonth {
		return summary.LastMonthCharges
	}
	return summary.AverageMonthlyCharges
}

// Profitability computes the monthly and annualised result of one property
func (pc *ProfitabilityCalculator) Profitability(l *Ledger, id domain.PropertyID) domain.Profitability {
	p, _ := pc.profitability(l, id)
	return p
}

func (pc *ProfitabilityCalculator) profitability(l *Ledger, id domain.PropertyID) (domain.Profitability, domain.ChargeSummary) {
	revenue, source := pc.Revenue.Revenue(l, id)
	summary := pc.Charges.Summarize(l, id)
	charges := pc.MonthlyCharges(summary)

	result := domain.Profitability{
		PropertyID:     id,
		PropertyTitle:  l.Title(id),
		RevenueSource:  source,
		MonthlyRevenue: revenue,
		MonthlyCharges: charges,
	}
	f := computeProfit(revenue, charges)
	result.MonthlyProfit = f.profit
	result.AnnualRevenue = f.annualRevenue
	result.AnnualCharges = f.annualCharges
	result.AnnualProfit = f.annualProfit
	result.ProfitabilityPercentage = f.profitPct
	result.ChargesPercentage = f.chargesPct
	return result, summary
}

// Portfolio sums the profitability of every property with a revenue signal.
// Percentages are recomputed from the totals rather than averaged.
func (pc *ProfitabilityCalculator) Portfolio(l *Ledger) domain.PortfolioSummary {
	summary, _ := pc.portfolio(l)
	return summary
}

func (pc *ProfitabilityCalculator) portfolio(l *Ledger) (domain.PortfolioSummary, []domain.PropertyReport) {
	revenue := decimal.Zero
	charges := decimal.Zero
	ids := l.RevenueProperties()
	reports := make([]domain.PropertyReport, 0, len(ids))

	for _, id := range ids {
		p, cs := pc.profitability(l, id)
		revenue = revenue.Add(p.MonthlyRevenue)
		charges = charges.Add(p.MonthlyCharges)

		report := domain.PropertyReport{Profitability: p, Charges: cs, OccupancyRate: decimal.Zero}
		if rec, ok := l.Property(id); ok {
			report.Property = rec
			report.OccupancyRate = rec.OccupancyRate()
		}
		reports = append(reports, report)
	}

	f := computeProfit(revenue, charges)
	s := domain.PortfolioSummary{
		PropertyCount:           len(ids),
		MonthlyRevenue:          revenue,
		MonthlyCharges:          charges,
		MonthlyProfit:           f.profit,
		AnnualRevenue:           f.annualRevenue,
		AnnualCharges:           f.annualCharges,
		AnnualProfit:            f.annualProfit,
		ProfitabilityPercentage: f.profitPct,
		ChargesPercentage:       f.chargesPct,
	}
	return s, reports
}

type profitFigures struct {
	profit        decimal.Decimal
	annualRevenue decimal.Decimal
	annualCharges decimal.Decimal
	annualProfit  decimal.Decimal
	profitPct     decimal.Decimal
	chargesPct    decimal.Decimal
}

// computeProfit derives profit and ratios from monthly revenue and charges.
// Annual figures are the monthly ones times twelve.
func computeProfit(revenue, charges decimal.Decimal) profitFigures {
	profit := revenue.Sub(charges)
	return profitFigures{
		profit:        profit,
		annualRevenue: revenue.Mul(monthsPerYear),
		annualCharges: charges.Mul(monthsPerYear),
		annualProfit:  profit.Mul(monthsPerYear),
		profitPct:     money.Percent(profit, revenue),
		chargesPct:    money.Percent(charges, revenue),
	}
}
