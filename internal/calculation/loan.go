package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	money "github.com/neorent/forecast/pkg/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// AmortizationEntry is one monthly period of a fixed-rate loan
type AmortizationEntry struct {
	Period           int             `json:"period"`
	Payment          decimal.Decimal `json:"payment"`
	Interest         decimal.Decimal `json:"interest"`
	Principal        decimal.Decimal `json:"principal"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

func monthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return money.FromPercent(annualRatePercent).Div(monthsPerYear)
}

// MonthlyPayment returns the fixed monthly payment of an amortizing loan:
//
//	r       = annualRatePercent / 100 / 12
//	payment = principal * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate degrades to principal / n. A term of zero or fewer months is
// rejected with ErrInvalidInput.
func MonthlyPayment(principal, annualRatePercent decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if termMonths <= 0 {
		return decimal.Zero, fmt.Errorf("%w: loan term must be at least one month, got %d", ErrInvalidInput, termMonths)
	}

	n := decimal.NewFromInt(int64(termMonths))
	if annualRatePercent.IsZero() {
		return principal.Div(n), nil
	}

	r := monthlyRate(annualRatePercent)
	growth := one.Add(r).Pow(n)
	return principal.Mul(r).Mul(growth).Div(growth.Sub(one)), nil
}

// AmortizationSchedule lists every period of the loan. The last period absorbs
// the rounding residue so the remaining balance ends at exactly zero.
func AmortizationSchedule(principal, annualRatePercent decimal.Decimal, termMonths int) ([]AmortizationEntry, error) {
	payment, err := MonthlyPayment(principal, annualRatePercent, termMonths)
	if err != nil {
		return nil, err
	}

	r := monthlyRate(annualRatePercent)
	balance := principal
	schedule := make([]AmortizationEntry, 0, termMonths)
	for period := 1; period <= termMonths; period++ {
		interest := balance.Mul(r)
		principalPart := payment.Sub(interest)
		due := payment
		if period == termMonths {
			principalPart = balance
			due = interest.Add(balance)
		}
		balance = balance.Sub(principalPart)
		schedule = append(schedule, AmortizationEntry{
			Period:           period,
			Payment:          due,
			Interest:         interest,
			Principal:        principalPart,
			RemainingBalance: balance,
		})
	}
	return schedule, nil
}

// TotalInterest is the interest paid over the whole term at the fixed payment
func TotalInterest(principal, annualRatePercent decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	payment, err := MonthlyPayment(principal, annualRatePercent, termMonths)
	if err != nil {
		return decimal.Zero, err
	}
	return payment.Mul(decimal.NewFromInt(int64(termMonths))).Sub(principal), nil
}
