package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxBracket is one marginal band of a progressive income tax schedule.
// Rate is a percentage (11 means 11%). Min and Max are inclusive; a nil Max
// marks the unbounded top bracket.
type TaxBracket struct {
	Rate  decimal.Decimal  `yaml:"rate" json:"rate"`
	Min   decimal.Decimal  `yaml:"min" json:"min"`
	Max   *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Label string           `yaml:"label,omitempty" json:"label,omitempty"`
}

// TaxTable is an ascending list of contiguous brackets starting at zero
type TaxTable []TaxBracket

// IsZeroTax reports whether the table describes a jurisdiction without income tax
func (t TaxTable) IsZeroTax() bool {
	return len(t) == 1 && t[0].Rate.IsZero()
}

// Validate checks that the brackets partition [0, inf) without gaps or overlaps
// and that every rate lies between 0 and 100.
func (t TaxTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("tax table has no brackets")
	}
	if !t[0].Min.IsZero() {
		return fmt.Errorf("first bracket must start at 0, got %s", t[0].Min)
	}
	one := decimal.NewFromInt(1)
	for i, b := range t {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("bracket %d: rate %s%% outside 0-100", i, b.Rate)
		}
		last := i == len(t)-1
		if b.Max == nil {
			if !last {
				return fmt.Errorf("bracket %d: only the last bracket may be unbounded", i)
			}
			continue
		}
		if last {
			return fmt.Errorf("bracket %d: last bracket must be unbounded", i)
		}
		if b.Max.LessThan(b.Min) {
			return fmt.Errorf("bracket %d: max %s below min %s", i, b.Max, b.Min)
		}
		if next := t[i+1].Min; !next.Equal(b.Max.Add(one)) {
			return fmt.Errorf("bracket %d: next bracket starts at %s, want %s", i, next, b.Max.Add(one))
		}
	}
	return nil
}

// TaxConfig carries the bracket tables keyed by country code and the code used
// when a lookup misses.
type TaxConfig struct {
	DefaultCountry string              `yaml:"default_country" json:"default_country"`
	Tables         map[string]TaxTable `yaml:"tables" json:"tables"`
}

// NormalizeCountry canonicalises a country code for table lookups
func NormalizeCountry(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Table resolves a country's table. The second result is false when the code was
// unknown and the default table was returned instead.
func (c TaxConfig) Table(code string) (string, TaxTable, bool) {
	key := NormalizeCountry(code)
	for k, t := range c.Tables {
		if NormalizeCountry(k) == key {
			return key, t, true
		}
	}
	def := NormalizeCountry(c.DefaultCountry)
	for k, t := range c.Tables {
		if NormalizeCountry(k) == def {
			return def, t, false
		}
	}
	return def, nil, false
}

// Validate checks the default country and every table
func (c TaxConfig) Validate() error {
	if len(c.Tables) == 0 {
		return fmt.Errorf("no tax tables configured")
	}
	if _, _, ok := c.Table(c.DefaultCountry); !ok {
		return fmt.Errorf("default country %q has no tax table", c.DefaultCountry)
	}
	for code, t := range c.Tables {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("tax table %s: %w", code, err)
		}
	}
	return nil
}

// TaxSlice is the part of an income taxed inside one bracket
type TaxSlice struct {
	Label  string          `json:"label"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
	Tax    decimal.Decimal `json:"tax"`
}

// TaxBreakdown details a progressive tax computation
type TaxBreakdown struct {
	Country       string          `json:"country"`
	UsedDefault   bool            `json:"used_default"`
	Income        decimal.Decimal `json:"income"`
	Tax           decimal.Decimal `json:"tax"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
	MarginalRate  decimal.Decimal `json:"marginal_rate"`
	Slices        []TaxSlice      `json:"slices"`
}
