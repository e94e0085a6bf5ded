package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/neorent/forecast/internal/domain"
	money "github.com/neorent/forecast/pkg/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Brackets are progressive and marginal: each slice of income is taxed at the
//    rate of the bracket it falls in.
// 2. Bracket bounds are whole currency units and inclusive. The slice taxed in a
//    bracket runs from the previous bracket's upper bound, so on 30,000 with the
//    French table 10,777 is taxed at 0%, the next 16,701 at 11% and the last
//    2,522 at 30%.
// 3. Unknown country codes use the configured default table; they are never an error.
// 4. A table made of a single 0% bracket means the jurisdiction has no income tax.

var one = decimal.NewFromInt(1)

// TaxEngine computes progressive income tax from per-country bracket tables
type TaxEngine struct {
	config domain.TaxConfig
	logger Logger
}

// NewTaxEngine creates a tax engine over the given tables
func NewTaxEngine(config domain.TaxConfig) *TaxEngine {
	return &TaxEngine{config: config, logger: NopLogger{}}
}

// NewDefaultTaxEngine creates a tax engine over the built-in tables
func NewDefaultTaxEngine() *TaxEngine {
	return NewTaxEngine(DefaultTaxConfig())
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (te *TaxEngine) SetLogger(l Logger) { te.logger = orNop(l) }

// Config returns the tables the engine was built with
func (te *TaxEngine) Config() domain.TaxConfig { return te.config }

// CalculateTax returns the income tax owed on income in the given country
func (te *TaxEngine) CalculateTax(income decimal.Decimal, countryCode string) decimal.Decimal {
	return te.Breakdown(income, countryCode).Tax
}

// table resolves a country's table. When the configured default country has no
// table either, the built-in default country's table is used.
func (te *TaxEngine) table(countryCode string) (string, domain.TaxTable, bool) {
	code, table, known := te.config.Table(countryCode)
	if table == nil && code != DefaultCountry {
		te.logger.Warnf("default tax country %q has no table, using %s", code, DefaultCountry)
		code, table, _ = te.config.Table(DefaultCountry)
	}
	return code, table, known
}

// DefaultCountry returns the normalised country whose table unknown codes are
// taxed with
func (te *TaxEngine) DefaultCountry() string {
	code, _, _ := te.table(te.config.DefaultCountry)
	return code
}

// Breakdown computes the tax and details how each bracket contributed
func (te *TaxEngine) Breakdown(income decimal.Decimal, countryCode string) domain.TaxBreakdown {
	code, table, known := te.table(countryCode)
	if !known {
		te.logger.Debugf("no tax table for country %q, using default %s", countryCode, code)
	}

	result := domain.TaxBreakdown{
		Country:       code,
		UsedDefault:   !known,
		Income:        income,
		Tax:           decimal.Zero,
		EffectiveRate: decimal.Zero,
		MarginalRate:  decimal.Zero,
	}
	if table.IsZeroTax() {
		return result
	}

	tax, slices := ProgressiveTax(table, income)
	result.Tax = tax
	result.Slices = slices
	result.EffectiveRate = money.Percent(tax, income)
	if len(slices) > 0 {
		result.MarginalRate = slices[len(slices)-1].Rate
	}
	return result
}

// ProgressiveTax walks the brackets of table in ascending order and taxes each
// slice of income at its bracket's rate.
func ProgressiveTax(table domain.TaxTable, income decimal.Decimal) (decimal.Decimal, []domain.TaxSlice) {
	tax := decimal.Zero
	remaining := income
	var slices []domain.TaxSlice

	for _, bracket := range table {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		// The unit at Min belongs to this bracket, so the slice starts just below it.
		floor := bracket.Min
		if floor.IsPositive() {
			floor = floor.Sub(one)
		}
		if income.LessThanOrEqual(floor) {
			break
		}

		slice := remaining
		if bracket.Max != nil {
			slice = decimal.Min(remaining, bracket.Max.Sub(floor))
		}
		if slice.LessThanOrEqual(decimal.Zero) {
			continue
		}

		sliceTax := slice.Mul(money.FromPercent(bracket.Rate))
		tax = tax.Add(sliceTax)
		remaining = remaining.Sub(slice)
		slices = append(slices, domain.TaxSlice{
			Label:  bracket.Label,
			Rate:   bracket.Rate,
			Amount: slice,
			Tax:    sliceTax,
		})
	}

	return tax, slices
}
