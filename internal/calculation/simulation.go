package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/neorent/forecast/internal/domain"
	money "github.com/neorent/forecast/pkg/decimal"
)

var (
	// MinimumViablePrice is the purchase price a property must exceed to be
	// considered a viable investment.
	MinimumViablePrice = decimal.NewFromInt(50000)

	// ComfortableCashFlow is the monthly net cash flow from which a simulation
	// can be rated low risk.
	ComfortableCashFlow = decimal.NewFromInt(100)

	// HealthyGrossYield is the gross annual yield, in percent, from which a
	// simulation can be rated low risk.
	HealthyGrossYield = decimal.NewFromInt(5)
)

var recommendations = map[domain.RiskLevel]string{
	domain.RiskLow:    "Rent covers the loan with room to spare and the yield is healthy: the investment looks sound.",
	domain.RiskMedium: "Rent covers the loan but the margin is thin: check charges and vacancy before committing.",
	domain.RiskHigh:   "Rent does not cover the loan payment: the property will need monthly top-ups from your own funds.",
}

// ClassifyRisk rates a simulation from its monthly net cash flow and gross yield.
// Negative cash flow is high risk; cash flow of at least ComfortableCashFlow with a
// yield of at least HealthyGrossYield is low risk; anything else is medium.
func ClassifyRisk(netCashFlow, grossYieldPercent decimal.Decimal) domain.RiskLevel {
	switch {
	case netCashFlow.IsNegative():
		return domain.RiskHigh
	case netCashFlow.GreaterThanOrEqual(ComfortableCashFlow) && grossYieldPercent.GreaterThanOrEqual(HealthyGrossYield):
		return domain.RiskLow
	default:
		return domain.RiskMedium
	}
}

// Recommendation returns the advice shown for a risk level
func Recommendation(level domain.RiskLevel) string {
	return recommendations[level]
}

// SimulationEngine projects the financing of a rental property purchase
type SimulationEngine struct {
	logger Logger
}

// NewSimulationEngine creates a simulation engine
func NewSimulationEngine() *SimulationEngine {
	return &SimulationEngine{logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (se *SimulationEngine) SetLogger(l Logger) { se.logger = orNop(l) }

// Simulate computes down payment, loan, monthly payment, cash flow, yield and
// risk for a purchase. Inputs are not range checked; only a loan term that
// rounds to zero months is rejected, with ErrInvalidInput.
func (se *SimulationEngine) Simulate(in domain.SimulationInput) (domain.SimulationResult, error) {
	price := in.TargetPrice.Decimal
	rent := in.EstimatedMonthlyRent.Decimal
	downShare := money.FromPercent(in.DownPaymentPercent.Decimal)

	termMonths := int(in.LoanTermYears.Decimal.Mul(monthsPerYear).Round(0).IntPart())
	loanAmount := price.Mul(one.Sub(downShare))

	payment, err := MonthlyPayment(loanAmount, in.AnnualInterestRate.Decimal, termMonths)
	if err != nil {
		return domain.SimulationResult{}, fmt.Errorf("simulate purchase at %s: %w", in.TargetPrice.Format(), err)
	}

	totalPaid := payment.Mul(decimal.NewFromInt(int64(termMonths)))
	netCashFlow := rent.Sub(payment)
	grossYield := money.Percent(in.EstimatedMonthlyRent.Annual().Decimal, price)
	risk := ClassifyRisk(netCashFlow, grossYield)

	result := domain.SimulationResult{
		Input:                   in,
		RequiredDownPayment:     price.Mul(downShare),
		LoanAmount:              loanAmount,
		MonthlyLoanPayment:      payment,
		NetCashFlow:             netCashFlow,
		GrossAnnualYieldPercent: grossYield,
		TotalInterest:           totalPaid.Sub(loanAmount),
		TotalCost:               price.Mul(downShare).Add(totalPaid),
		CanAffordProperty:       price.GreaterThan(MinimumViablePrice),
		RiskLevel:               risk,
		Recommendation:          Recommendation(risk),
	}
	se.logger.Debugf("simulation price=%s payment=%s cash_flow=%s risk=%s",
		price.StringFixed(2), payment.StringFixed(2), netCashFlow.StringFixed(2), risk)
	return result, nil
}
