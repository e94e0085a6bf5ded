package domain

import (
	"time"

	"github.com/shopspring/decimal"

	money "github.com/neorent/forecast/pkg/decimal"
)

// RevenueSource tells where a monthly revenue figure came from
type RevenueSource string

const (
	// RevenueActual is money received: Paid payments dated in the current month
	RevenueActual RevenueSource = "actual"
	// RevenueExpected is the rent owed by active tenants and roommates
	RevenueExpected RevenueSource = "expected"
	// RevenueNone means neither source produced a figure
	RevenueNone RevenueSource = "none"
)

// ChargeSummary aggregates the charge records of one property
type ChargeSummary struct {
	PropertyID            PropertyID      `json:"property_id"`
	PropertyTitle         string          `json:"property_title"`
	TotalCharges          decimal.Decimal `json:"total_charges"`
	AverageMonthlyCharges decimal.Decimal `json:"average_monthly_charges"`
	LastMonthCharges      decimal.Decimal `json:"last_month_charges"`
	LastMonth             string          `json:"last_month,omitempty"`
	MonthlyCharges        []ChargeRecord  `json:"monthly_charges"`
}

// Profitability is the monthly and annualised result of one property
type Profitability struct {
	PropertyID              PropertyID      `json:"property_id"`
	PropertyTitle           string          `json:"property_title"`
	RevenueSource           RevenueSource   `json:"revenue_source"`
	MonthlyRevenue          decimal.Decimal `json:"monthly_revenue"`
	MonthlyCharges          decimal.Decimal `json:"monthly_charges"`
	MonthlyProfit           decimal.Decimal `json:"monthly_profit"`
	AnnualRevenue           decimal.Decimal `json:"annual_revenue"`
	AnnualCharges           decimal.Decimal `json:"annual_charges"`
	AnnualProfit            decimal.Decimal `json:"annual_profit"`
	ProfitabilityPercentage decimal.Decimal `json:"profitability_percentage"`
	ChargesPercentage       decimal.Decimal `json:"charges_percentage"`
}

// PortfolioSummary sums profitability over every property with a revenue signal.
// Percentages are recomputed from the totals.
type PortfolioSummary struct {
	PropertyCount           int             `json:"property_count"`
	MonthlyRevenue          decimal.Decimal `json:"monthly_revenue"`
	MonthlyCharges          decimal.Decimal `json:"monthly_charges"`
	MonthlyProfit           decimal.Decimal `json:"monthly_profit"`
	AnnualRevenue           decimal.Decimal `json:"annual_revenue"`
	AnnualCharges           decimal.Decimal `json:"annual_charges"`
	AnnualProfit            decimal.Decimal `json:"annual_profit"`
	ProfitabilityPercentage decimal.Decimal `json:"profitability_percentage"`
	ChargesPercentage       decimal.Decimal `json:"charges_percentage"`
}

// FiscalEstimate is the income tax owed on the annual portfolio profit
type FiscalEstimate struct {
	Country        string          `json:"country"`
	TaxableIncome  decimal.Decimal `json:"taxable_income"`
	Tax            decimal.Decimal `json:"tax"`
	EffectiveRate  decimal.Decimal `json:"effective_rate"`
	AfterTaxProfit decimal.Decimal `json:"after_tax_profit"`
}

// PropertyReport bundles everything computed for one property
type PropertyReport struct {
	Property      *PropertyRecord `json:"property,omitempty"`
	Profitability Profitability   `json:"profitability"`
	Charges       ChargeSummary   `json:"charges"`
	OccupancyRate decimal.Decimal `json:"occupancy_rate"`
}

// PortfolioReport is the full forecast over one data snapshot
type PortfolioReport struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Month       string           `json:"month"`
	ChargeBasis string           `json:"charge_basis"`
	Properties  []PropertyReport `json:"properties"`
	Summary     PortfolioSummary `json:"summary"`
	Fiscal      FiscalEstimate   `json:"fiscal"`
}

// RiskLevel is the qualitative risk of an investment simulation
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// SimulationInput holds the user-entered parameters of an investment simulation.
// Every field is decoded leniently: missing or non-numeric input becomes zero.
type SimulationInput struct {
	TargetPrice          money.Money `yaml:"target_price" json:"target_price"`
	EstimatedMonthlyRent money.Money `yaml:"estimated_monthly_rent" json:"estimated_monthly_rent"`
	DownPaymentPercent   money.Money `yaml:"down_payment_percent" json:"down_payment_percent"`
	AnnualInterestRate   money.Money `yaml:"annual_interest_rate" json:"annual_interest_rate"`
	LoanTermYears        money.Money `yaml:"loan_term_years" json:"loan_term_years"`
}

// SimulationResult is the outcome of an investment simulation
type SimulationResult struct {
	Input                   SimulationInput `json:"input"`
	RequiredDownPayment     decimal.Decimal `json:"required_down_payment"`
	LoanAmount              decimal.Decimal `json:"loan_amount"`
	MonthlyLoanPayment      decimal.Decimal `json:"monthly_loan_payment"`
	NetCashFlow             decimal.Decimal `json:"net_cash_flow"`
	GrossAnnualYieldPercent decimal.Decimal `json:"gross_annual_yield_percent"`
	TotalInterest           decimal.Decimal `json:"total_interest"`
	TotalCost               decimal.Decimal `json:"total_cost"`
	CanAffordProperty       bool            `json:"can_afford_property"`
	RiskLevel               RiskLevel       `json:"risk_level"`
	Recommendation          string          `json:"recommendation"`
}
