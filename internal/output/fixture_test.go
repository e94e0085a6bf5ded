package output

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/neorent/forecast/internal/domain"
	money "github.com/neorent/forecast/pkg/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildTestReport() *domain.PortfolioReport {
	coloc := &domain.PropertyRecord{Title: "Coloc", LocationType: domain.LocationSharedHousing, TotalRooms: 4, AvailableRooms: 1}
	return &domain.PortfolioReport{
		GeneratedAt: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
		Month:       "2025-06",
		ChargeBasis: "average",
		Properties: []domain.PropertyReport{
			{
				Property: &domain.PropertyRecord{Title: "Studio", LocationType: domain.LocationSingle},
				Profitability: domain.Profitability{
					PropertyTitle: "Studio", RevenueSource: domain.RevenueActual,
					MonthlyRevenue: d("1150"), MonthlyCharges: d("65"), MonthlyProfit: d("1085"),
					AnnualRevenue: d("13800"), AnnualCharges: d("780"), AnnualProfit: d("13020"),
					ProfitabilityPercentage: d("94.35"), ChargesPercentage: d("5.65"),
				},
				Charges: domain.ChargeSummary{
					PropertyTitle: "Studio", TotalCharges: d("130"), AverageMonthlyCharges: d("65"),
					LastMonthCharges: d("70"), LastMonth: "2025-05",
					MonthlyCharges: []domain.ChargeRecord{
						{Month: "2025-05", Electricity: money.NewMoneyFromInt(50), Water: money.NewMoneyFromInt(20), Total: money.NewMoneyFromInt(70)},
						{Month: "2025-04", Electricity: money.NewMoneyFromInt(45), Water: money.NewMoneyFromInt(15)},
					},
				},
				OccupancyRate: decimal.Zero,
			},
			{
				Property: coloc,
				Profitability: domain.Profitability{
					PropertyTitle: "Coloc", RevenueSource: domain.RevenueExpected,
					MonthlyRevenue: d("100"), MonthlyCharges: d("150"), MonthlyProfit: d("-50"),
					AnnualRevenue: d("1200"), AnnualCharges: d("1800"), AnnualProfit: d("-600"),
					ProfitabilityPercentage: d("-50"), ChargesPercentage: d("150"),
				},
				OccupancyRate: d("75"),
			},
		},
		Summary: domain.PortfolioSummary{
			PropertyCount: 2, MonthlyRevenue: d("1250"), MonthlyCharges: d("215"), MonthlyProfit: d("1035"),
			AnnualRevenue: d("15000"), AnnualCharges: d("2580"), AnnualProfit: d("12420"),
			ProfitabilityPercentage: d("82.8"), ChargesPercentage: d("17.2"),
		},
		Fiscal: domain.FiscalEstimate{
			Country: "FR", TaxableIncome: d("12420"), Tax: d("180.84"), EffectiveRate: d("1.46"), AfterTaxProfit: d("12239.16"),
		},
	}
}
