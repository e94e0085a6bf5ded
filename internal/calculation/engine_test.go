package calculation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neorent/forecast/internal/domain"
)

func newTestEngine() *Engine {
	e := NewEngine()
	e.SetClock(fixedNow)
	return e
}

func testConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Snapshot:      testSnapshot(),
		ChargesConfig: testChargesConfig(),
		Simulations: []domain.SimulationInput{
			simInput(300000, 1200, 20, 3.5, 25),
			simInput(200000, 1500, 20, 3.5, 25),
		},
	}
}

func TestBuildReport(t *testing.T) {
	report, err := newTestEngine().BuildReport(context.Background(), testConfiguration())
	require.NoError(t, err)

	assert.Equal(t, "2025-06", report.Month)
	assert.Equal(t, fixedNow(), report.GeneratedAt)
	assert.Equal(t, string(ChargeBasisAverage), report.ChargeBasis)
	require.Len(t, report.Properties, 2)

	first := report.Properties[0]
	require.NotNil(t, first.Property)
	assert.Equal(t, studio, first.Property.Title)
	assert.True(t, first.OccupancyRate.IsZero())
	assert.True(t, first.Charges.AverageMonthlyCharges.Equal(d("65")))

	second := report.Properties[1]
	assert.Equal(t, coloc, second.Profitability.PropertyTitle)
	assert.True(t, second.OccupancyRate.Equal(d("75")))
	assert.Equal(t, domain.RevenueExpected, second.Profitability.RevenueSource)

	assert.True(t, report.Summary.AnnualProfit.Equal(d("23730")))

	// 23730 taxed with the French table: 12953 at 11%.
	fiscal := report.Fiscal
	assert.Equal(t, "FR", fiscal.Country)
	assert.True(t, fiscal.TaxableIncome.Equal(d("23730")))
	assert.True(t, fiscal.Tax.Equal(d("1424.83")))
	assert.True(t, fiscal.AfterTaxProfit.Equal(d("22305.17")))
	assert.Equal(t, "6.00", fiscal.EffectiveRate.StringFixed(2))
}

func TestBuildReportLossOwesNoTax(t *testing.T) {
	cfg := &domain.Configuration{Snapshot: domain.Snapshot{
		Tenants: []domain.TenantRecord{{PropertyTitle: "A", Status: domain.StatusActive, RentAmount: m(100)}},
		Charges: []domain.ChargeRecord{{PropertyTitle: "A", Month: "2025-06", Total: m(300)}},
	}}
	report, err := newTestEngine().BuildReport(context.Background(), cfg)
	require.NoError(t, err)

	assert.True(t, report.Summary.AnnualProfit.Equal(d("-2400")))
	assert.True(t, report.Fiscal.TaxableIncome.IsZero())
	assert.True(t, report.Fiscal.Tax.IsZero())
	assert.True(t, report.Fiscal.AfterTaxProfit.Equal(d("-2400")))
}

func TestBuildReportUsesConfiguredTaxTables(t *testing.T) {
	cfg := testConfiguration()
	tax := DefaultTaxConfig()
	tax.DefaultCountry = "AE"
	cfg.Tax = &tax

	report, err := newTestEngine().BuildReport(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "AE", report.Fiscal.Country)
	assert.True(t, report.Fiscal.Tax.IsZero())
}

func TestBuildReportDefaultCountryWithoutTable(t *testing.T) {
	tax := DefaultTaxConfig()
	tax.DefaultCountry = "DE"
	e := NewEngineWithTaxConfig(tax)
	e.SetClock(fixedNow)

	report, err := e.BuildReport(context.Background(), testConfiguration())
	require.NoError(t, err)
	require.True(t, report.Fiscal.TaxableIncome.IsPositive())

	want := NewDefaultTaxEngine().CalculateTax(report.Fiscal.TaxableIncome, "FR")
	assert.Equal(t, "FR", report.Fiscal.Country)
	assert.True(t, report.Fiscal.Tax.IsPositive())
	assert.True(t, report.Fiscal.Tax.Equal(want), "got %s, want %s", report.Fiscal.Tax, want)
}

func TestBuildReportLastMonthBasis(t *testing.T) {
	e := newTestEngine()
	e.SetChargeBasis(ChargeBasisLastMonth)
	report, err := e.BuildReport(context.Background(), testConfiguration())
	require.NoError(t, err)

	assert.Equal(t, "last-month", report.ChargeBasis)
	assert.True(t, report.Properties[0].Profitability.MonthlyCharges.Equal(d("70")))
}

func TestBuildReportErrors(t *testing.T) {
	e := newTestEngine()

	_, err := e.BuildReport(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.BuildReport(ctx, testConfiguration())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnginePropertyProfitability(t *testing.T) {
	e := newTestEngine()
	cfg := testConfiguration()

	p, err := e.PropertyProfitability(cfg, coloc)
	require.NoError(t, err)
	assert.True(t, p.MonthlyRevenue.Equal(d("950")))
	assert.True(t, p.MonthlyCharges.Equal(d("57.5")))

	_, err = e.PropertyProfitability(cfg, "coloc canal")
	assert.ErrorIs(t, err, ErrUnknownProperty)
}

func TestRunSimulations(t *testing.T) {
	e := newTestEngine()
	results, err := e.RunSimulations(testConfiguration())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, domain.RiskHigh, results[0].RiskLevel)
	assert.Equal(t, domain.RiskLow, results[1].RiskLevel)

	cfg := testConfiguration()
	cfg.Simulations = append(cfg.Simulations, simInput(100000, 700, 10, 3, 0))
	_, err = e.RunSimulations(cfg)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "simulation 3")
}

type recordingLogger struct {
	NopLogger
	debug []string
}

func (r *recordingLogger) Debugf(format string, args ...any) { r.debug = append(r.debug, format) }

func TestEngineSetLoggerReachesCalculators(t *testing.T) {
	e := newTestEngine()
	rec := &recordingLogger{}
	e.SetLogger(rec)

	e.Tax.CalculateTax(d("1000"), "ZZ")
	assert.NotEmpty(t, rec.debug)

	e.SetLogger(nil)
	assert.IsType(t, NopLogger{}, e.Logger)
}

func TestSetNowFuncReachesDefaultClock(t *testing.T) {
	SetNowFunc(fixedNow)
	defer SetNowFunc(time.Now)

	report, err := NewEngine().BuildReport(context.Background(), testConfiguration())
	require.NoError(t, err)
	assert.Equal(t, "2025-06", report.Month)
	assert.Equal(t, fixedNow(), report.GeneratedAt)
}
