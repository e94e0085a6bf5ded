package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/neorent/forecast/internal/domain"
	"github.com/neorent/forecast/pkg/dateutil"
	money "github.com/neorent/forecast/pkg/decimal"
)

// Engine orchestrates the forecasting calculations over a configuration
type Engine struct {
	Tax           *TaxEngine
	Profitability *ProfitabilityCalculator
	Simulation    *SimulationEngine
	Logger        Logger

	now func() time.Time
}

// NewEngine creates an engine with the built-in tax tables
func NewEngine() *Engine {
	return NewEngineWithTaxConfig(DefaultTaxConfig())
}

// NewEngineWithTaxConfig creates an engine over the given tax tables
func NewEngineWithTaxConfig(taxConfig domain.TaxConfig) *Engine {
	return &Engine{
		Tax:           NewTaxEngine(taxConfig),
		Profitability: NewProfitabilityCalculator(),
		Simulation:    NewSimulationEngine(),
		Logger:        NopLogger{},
		now:           defaultClock,
	}
}

// SetLogger sets the logger for the engine and every calculator it owns.
// If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	l = orNop(l)
	e.Logger = l
	e.Tax.SetLogger(l)
	e.Profitability.Revenue.SetLogger(l)
	e.Profitability.Charges.SetLogger(l)
	e.Simulation.SetLogger(l)
}

// SetClock overrides the clock that decides the current month
func (e *Engine) SetClock(now func() time.Time) {
	if now == nil {
		now = defaultClock
	}
	e.now = now
	e.Profitability.Revenue.SetClock(now)
}

// SetChargeBasis selects the charge figure used as monthly charges
func (e *Engine) SetChargeBasis(basis ChargeBasis) {
	e.Profitability.Basis = basis
}

// taxEngineFor returns the tax engine to use for a configuration. Tables shipped
// with the configuration take precedence over the engine's own.
func (e *Engine) taxEngineFor(cfg *domain.Configuration) *TaxEngine {
	if cfg.Tax == nil || len(cfg.Tax.Tables) == 0 {
		return e.Tax
	}
	te := NewTaxEngine(*cfg.Tax)
	te.SetLogger(e.Logger)
	return te
}

// Ledger indexes the records of a configuration
func (e *Engine) Ledger(cfg *domain.Configuration) *Ledger {
	return NewLedger(cfg.Snapshot, cfg.ChargesConfig)
}

// BuildReport computes the full portfolio forecast of a configuration
func (e *Engine) BuildReport(ctx context.Context, cfg *domain.Configuration) (*domain.PortfolioReport, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil configuration", ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ledger := e.Ledger(cfg)
	summary, properties := e.Profitability.portfolio(ledger)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	generatedAt := e.now()
	report := &domain.PortfolioReport{
		GeneratedAt: generatedAt,
		Month:       dateutil.MonthKey(generatedAt),
		ChargeBasis: string(e.Profitability.Basis),
		Properties:  properties,
		Summary:     summary,
		Fiscal:      e.fiscalEstimate(e.taxEngineFor(cfg), summary.AnnualProfit),
	}
	e.Logger.Infof("portfolio report: %d properties, monthly revenue %s, monthly profit %s",
		summary.PropertyCount, summary.MonthlyRevenue.StringFixed(2), summary.MonthlyProfit.StringFixed(2))
	return report, nil
}

// fiscalEstimate taxes the annual profit in the default country. A loss owes no tax.
func (e *Engine) fiscalEstimate(te *TaxEngine, annualProfit decimal.Decimal) domain.FiscalEstimate {
	estimate := domain.FiscalEstimate{
		Country:        te.DefaultCountry(),
		TaxableIncome:  decimal.Max(annualProfit, decimal.Zero),
		Tax:            decimal.Zero,
		EffectiveRate:  decimal.Zero,
		AfterTaxProfit: annualProfit,
	}
	if !annualProfit.IsPositive() {
		return estimate
	}
	breakdown := te.Breakdown(annualProfit, estimate.Country)
	estimate.Tax = breakdown.Tax
	estimate.EffectiveRate = money.Percent(breakdown.Tax, annualProfit)
	estimate.AfterTaxProfit = annualProfit.Sub(breakdown.Tax)
	return estimate
}

// PropertyProfitability computes the profitability of the property with exactly
// this title. Titles that match no record return ErrUnknownProperty.
func (e *Engine) PropertyProfitability(cfg *domain.Configuration, title string) (domain.Profitability, error) {
	ledger := e.Ledger(cfg)
	id, ok := ledger.Lookup(title)
	if !ok {
		return domain.Profitability{}, fmt.Errorf("%w: %q", ErrUnknownProperty, title)
	}
	return e.Profitability.Profitability(ledger, id), nil
}

// RunSimulations runs every simulation stored in the configuration
func (e *Engine) RunSimulations(cfg *domain.Configuration) ([]domain.SimulationResult, error) {
	results := make([]domain.SimulationResult, 0, len(cfg.Simulations))
	for i, in := range cfg.Simulations {
		res, err := e.Simulation.Simulate(in)
		if err != nil {
			return nil, fmt.Errorf("simulation %d: %w", i+1, err)
		}
		results = append(results, res)
	}
	return results, nil
}
