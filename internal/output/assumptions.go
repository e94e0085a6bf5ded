package output

import (
	"fmt"

	"github.com/neorent/forecast/internal/domain"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Revenue: rent actually received this month, or active leases when nothing was received",
	"Charges: average of every recorded month",
	"Co-ownership charges: quarterly amount divided by three",
	"Annual figures: current month times twelve",
	"Income tax: progressive brackets applied to the annual portfolio profit",
}

// GenerateAssumptions creates the assumptions list from the report's parameters
func GenerateAssumptions(report *domain.PortfolioReport) []string {
	charges := DefaultAssumptions[1]
	if report.ChargeBasis == "last-month" {
		charges = "Charges: most recent recorded month"
	}
	return []string{
		DefaultAssumptions[0],
		charges,
		DefaultAssumptions[2],
		fmt.Sprintf("Annual figures: %s times twelve", report.Month),
		fmt.Sprintf("Income tax: %s progressive brackets applied to the annual portfolio profit", report.Fiscal.Country),
	}
}
