package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neorent/forecast/internal/calculation"
	"github.com/neorent/forecast/internal/config"
	"github.com/neorent/forecast/internal/domain"
)

const portfolioPath = "../testdata/portfolio.yaml"

func forecastTime() time.Time {
	return time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
}

func loadPortfolio(t *testing.T) *domain.Configuration {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(portfolioPath)
	require.NoError(t, err)
	return cfg
}

func newEngine() *calculation.Engine {
	engine := calculation.NewEngine()
	engine.SetClock(forecastTime)
	return engine
}

func byTitle(t *testing.T, report *domain.PortfolioReport, title string) domain.PropertyReport {
	t.Helper()
	for _, p := range report.Properties {
		if p.Profitability.PropertyTitle == title {
			return p
		}
	}
	t.Fatalf("property %q not in report", title)
	return domain.PropertyReport{}
}

func TestEndToEndForecast(t *testing.T) {
	cfg := loadPortfolio(t)
	assert.Len(t, cfg.Properties, 4)
	assert.Equal(t, "1150.00", cfg.Payments[0].PaidAmount.String())

	report, err := newEngine().BuildReport(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "2025-06", report.Month)
	assert.Equal(t, "average", report.ChargeBasis)
	require.Len(t, report.Properties, 3, "the parking has no revenue signal")

	tests := []struct {
		title    string
		source   domain.RevenueSource
		revenue  string
		charges  string
		profit   string
		lastDate string
	}{
		{"Studio Bastille", domain.RevenueActual, "1150.00", "90.00", "1060.00", "2025-05"},
		{"Coloc Canal Saint-Martin", domain.RevenueExpected, "1900.00", "220.00", "1680.00", "2025-05"},
		{"Loft Belleville", domain.RevenueExpected, "900.00", "1000.00", "-100.00", "2025-05"},
	}
	for i, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			p := report.Properties[i]
			pr := p.Profitability
			assert.Equal(t, tt.title, pr.PropertyTitle)
			assert.Equal(t, tt.source, pr.RevenueSource)
			assert.Equal(t, tt.revenue, pr.MonthlyRevenue.StringFixed(2))
			assert.Equal(t, tt.charges, pr.MonthlyCharges.StringFixed(2))
			assert.Equal(t, tt.profit, pr.MonthlyProfit.StringFixed(2))
			assert.True(t, pr.AnnualProfit.Equal(pr.MonthlyProfit.Mul(decimal.NewFromInt(12))))
			assert.Equal(t, tt.lastDate, p.Charges.LastMonth)
		})
	}

	coloc := byTitle(t, report, "Coloc Canal Saint-Martin")
	require.Len(t, coloc.Charges.MonthlyCharges, 1)
	assert.Equal(t, "35.00", coloc.Charges.MonthlyCharges[0].Water.String(), "water is derived from the quarterly amount")
	assert.Equal(t, "30.00", coloc.Charges.MonthlyCharges[0].Maintenance.String(), "maintenance stays as entered")
	assert.Equal(t, "75.00", coloc.OccupancyRate.StringFixed(2))

	studio := byTitle(t, report, "Studio Bastille")
	require.Len(t, studio.Charges.MonthlyCharges, 2)
	assert.Equal(t, "2025-05", studio.Charges.MonthlyCharges[0].Month)
	assert.Equal(t, "180.00", studio.Charges.TotalCharges.StringFixed(2), "a record without total counts its categories")

	s := report.Summary
	assert.Equal(t, 3, s.PropertyCount)
	assert.Equal(t, "3950.00", s.MonthlyRevenue.StringFixed(2))
	assert.Equal(t, "1310.00", s.MonthlyCharges.StringFixed(2))
	assert.Equal(t, "2640.00", s.MonthlyProfit.StringFixed(2))
	assert.Equal(t, "31680.00", s.AnnualProfit.StringFixed(2))

	f := report.Fiscal
	assert.Equal(t, "FR", f.Country)
	assert.Equal(t, "31680.00", f.TaxableIncome.StringFixed(2))
	assert.Equal(t, "3097.71", f.Tax.StringFixed(2))
	assert.Equal(t, "28582.29", f.AfterTaxProfit.StringFixed(2))
}

func TestForecast_LastMonthBasis(t *testing.T) {
	engine := newEngine()
	engine.SetChargeBasis(calculation.ChargeBasisLastMonth)

	report, err := engine.BuildReport(context.Background(), loadPortfolio(t))
	require.NoError(t, err)

	assert.Equal(t, "last-month", report.ChargeBasis)
	assert.Equal(t, "85.00", byTitle(t, report, "Studio Bastille").Profitability.MonthlyCharges.StringFixed(2))
	assert.Equal(t, "1305.00", report.Summary.MonthlyCharges.StringFixed(2))
	assert.Equal(t, "2645.00", report.Summary.MonthlyProfit.StringFixed(2))
}

func TestForecast_NextMonthFallsBackToExpectedRent(t *testing.T) {
	engine := newEngine()
	engine.SetClock(func() time.Time { return time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC) })

	report, err := engine.BuildReport(context.Background(), loadPortfolio(t))
	require.NoError(t, err)

	studio := byTitle(t, report, "Studio Bastille").Profitability
	assert.Equal(t, domain.RevenueExpected, studio.RevenueSource)
	assert.Equal(t, "1200.00", studio.MonthlyRevenue.StringFixed(2))
	assert.Equal(t, "4000.00", report.Summary.MonthlyRevenue.StringFixed(2))
}

func TestPropertyProfitability(t *testing.T) {
	cfg := loadPortfolio(t)
	engine := newEngine()

	p, err := engine.PropertyProfitability(cfg, "Loft Belleville")
	require.NoError(t, err)
	assert.True(t, p.MonthlyProfit.IsNegative())
	assert.Equal(t, "-1200.00", p.AnnualProfit.StringFixed(2))

	parking, err := engine.PropertyProfitability(cfg, "Parking Oberkampf")
	require.NoError(t, err)
	assert.Equal(t, domain.RevenueNone, parking.RevenueSource)
	assert.Equal(t, "-40.00", parking.MonthlyProfit.StringFixed(2))

	_, err = engine.PropertyProfitability(cfg, "studio bastille")
	assert.ErrorIs(t, err, calculation.ErrUnknownProperty, "titles match exactly")
}

func TestRunSimulations(t *testing.T) {
	results, err := newEngine().RunSimulations(loadPortfolio(t))
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "1201.50", results[0].MonthlyLoanPayment.StringFixed(2))
	assert.Equal(t, "-1.50", results[0].NetCashFlow.StringFixed(2))
	assert.Equal(t, domain.RiskHigh, results[0].RiskLevel)

	assert.Equal(t, "45000.00", results[1].RequiredDownPayment.StringFixed(2))
	assert.Equal(t, "105000.00", results[1].LoanAmount.StringFixed(2))
	assert.True(t, results[1].NetCashFlow.IsPositive())
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()
	cfg := loadPortfolio(t)
	require.NoError(t, parser.ValidateConfiguration(cfg))

	cfg.Charges[0].Month = "May 2025"
	err := parser.ValidateConfiguration(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "charge 0")
}
