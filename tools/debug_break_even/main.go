package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	calc "github.com/neorent/forecast/internal/calculation"
	"github.com/neorent/forecast/internal/config"
)

// Prints, for every simulation of a portfolio file, the yearly equity and
// cumulative cash flow of the loan, and the first year where the equity built
// exceeds the cash put in (down payment plus negative cash flow).
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <portfolio-file>")
		return
	}
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	engine := calc.NewEngine()
	results, err := engine.RunSimulations(cfg)
	if err != nil {
		panic(err)
	}
	if len(results) == 0 {
		fmt.Println("no simulations")
		return
	}

	fmt.Println("Simulation,Year,Equity,CumulativeCashFlow,CashIn,BrokeEven")
	for sidx, res := range results {
		in := res.Input
		months := int(in.LoanTermYears.Decimal.Mul(decimal.NewFromInt(12)).Round(0).IntPart())
		schedule, err := calc.AmortizationSchedule(res.LoanAmount, in.AnnualInterestRate.Decimal, months)
		if err != nil {
			panic(err)
		}

		equity := res.RequiredDownPayment
		cumulative := decimal.Zero
		breakEven := 0
		for _, e := range schedule {
			equity = equity.Add(e.Principal)
			cumulative = cumulative.Add(res.NetCashFlow)
			if e.Period%12 != 0 {
				continue
			}
			year := e.Period / 12
			cashIn := res.RequiredDownPayment.Sub(decimal.Min(cumulative, decimal.Zero))
			even := equity.Add(decimal.Max(cumulative, decimal.Zero)).GreaterThanOrEqual(cashIn)
			if even && breakEven == 0 {
				breakEven = year
			}
			fmt.Printf("S%d,%d,%s,%s,%s,%t\n", sidx+1, year, equity.StringFixed(0), cumulative.StringFixed(0), cashIn.StringFixed(0), even)
		}
		fmt.Fprintf(os.Stderr, "S%d: break-even year %d of %d\n", sidx+1, breakEven, months/12)
	}
}
