package decimal

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)

	// nonNumeric matches everything ParseCurrency discards.
	nonNumeric = regexp.MustCompile(`[^0-9.\-]`)
	// leadingNumber is the longest numeric prefix a cleaned string may start with.
	leadingNumber = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromInt creates a new Money instance from a whole amount
func NewMoneyFromInt(value int64) Money {
	return Money{decimal.NewFromInt(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a strictly formatted string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// ParseCurrency converts free-text currency input such as "1,200€" or " 850.50 EUR"
// into a decimal amount.
//
// Every character other than digits, '.' and '-' is removed, then the longest
// numeric prefix of what remains is parsed. Input with no numeric prefix
// (empty fields, "N/A", a lone "-") yields zero rather than an error.
func ParseCurrency(raw string) decimal.Decimal {
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	match := leadingNumber.FindString(cleaned)
	match = strings.TrimSuffix(match, ".")
	if match == "" || match == "-" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseMoney is ParseCurrency wrapped as Money
func ParseMoney(raw string) Money {
	return Money{ParseCurrency(raw)}
}

// Percent returns part/whole*100, or zero when whole is zero
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// FromPercent converts a percentage (e.g. 3.5) into a fraction (0.035)
func FromPercent(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred)
}

// Round rounds the money amount to cents, halves away from zero
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(twelve)}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(twelve)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Mul multiplies by a decimal factor
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// Div divides by a decimal factor
func (m Money) Div(factor decimal.Decimal) Money {
	return Money{m.Decimal.Div(factor)}
}

func (m Money) GreaterThan(other Money) bool { return m.Decimal.GreaterThan(other.Decimal) }
func (m Money) LessThan(other Money) bool    { return m.Decimal.LessThan(other.Decimal) }
func (m Money) Equal(other Money) bool       { return m.Decimal.Equal(other.Decimal) }

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount with two decimals
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount the way the portal displays euros
func (m Money) Format() string {
	return m.String() + " €"
}

// UnmarshalJSON accepts a JSON number or a free-text string; see ParseCurrency.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		m.Decimal = decimal.Zero
		return nil
	}
	m.Decimal = ParseCurrency(strings.Trim(s, `"`))
	return nil
}

// UnmarshalYAML accepts a YAML number or a free-text string; see ParseCurrency.
func (m *Money) UnmarshalYAML(value *yaml.Node) error {
	m.Decimal = ParseCurrency(value.Value)
	return nil
}

// MarshalYAML writes the amount as a plain YAML number.
func (m Money) MarshalYAML() (interface{}, error) {
	return m.Decimal.InexactFloat64(), nil
}
