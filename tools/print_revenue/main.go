package main

import (
	"fmt"
	"os"
	"time"

	"github.com/neorent/forecast/internal/calculation"
	"github.com/neorent/forecast/internal/config"
	"github.com/neorent/forecast/pkg/dateutil"
)

// Prints the actual and expected revenue of every property for a given month
// ("YYYY-MM", default current) and which of the two the forecast would use.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: print_revenue <portfolio-file> [YYYY-MM]")
		return
	}
	cfg, err := config.NewInputParser().LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}

	month := time.Now()
	if len(os.Args) > 2 {
		if month, err = dateutil.ParseMonth(os.Args[2]); err != nil {
			panic(err)
		}
	}

	ra := calculation.NewRevenueAggregator()
	ra.SetClock(func() time.Time { return month })
	ledger := calculation.NewLedger(cfg.Snapshot, cfg.ChargesConfig)

	fmt.Printf("Revenue for %s\n", dateutil.MonthKey(month))
	for _, id := range ledger.PropertyIDs() {
		revenue, source := ra.Revenue(ledger, id)
		fmt.Printf("%-32s actual=%10s expected=%10s -> %s (%s)\n",
			ledger.Title(id),
			ra.ActualRevenue(ledger, id).StringFixed(2),
			ra.ExpectedRevenue(ledger, id).StringFixed(2),
			revenue.StringFixed(2),
			source,
		)
	}
	fmt.Printf("Portfolio: %s\n", ra.PortfolioMonthlyRevenue(ledger).StringFixed(2))
}
