package domain

import (
	"strings"

	"github.com/shopspring/decimal"

	money "github.com/neorent/forecast/pkg/decimal"
)

// ChargeCategory names one line of a monthly charge record
type ChargeCategory string

const (
	ChargeElectricity   ChargeCategory = "electricity"
	ChargeWater         ChargeCategory = "water"
	ChargeHeating       ChargeCategory = "heating"
	ChargeMaintenance   ChargeCategory = "maintenance"
	ChargeInsurance     ChargeCategory = "insurance"
	ChargeGarbage       ChargeCategory = "garbage"
	ChargeInternet      ChargeCategory = "internet"
	ChargeHabitationTax ChargeCategory = "habitation_tax"
	ChargePropertyTax   ChargeCategory = "property_tax"
)

// ChargeCategories lists every category in display order
var ChargeCategories = []ChargeCategory{
	ChargeElectricity,
	ChargeWater,
	ChargeHeating,
	ChargeMaintenance,
	ChargeInsurance,
	ChargeGarbage,
	ChargeInternet,
	ChargeHabitationTax,
	ChargePropertyTax,
}

// ParseChargeCategory resolves a category name written in snake, kebab or camel case.
func ParseChargeCategory(name string) (ChargeCategory, bool) {
	key := normalizeCategory(name)
	for _, c := range ChargeCategories {
		if normalizeCategory(string(c)) == key {
			return c, true
		}
	}
	return "", false
}

func normalizeCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

// ChargeRecord holds one month of charges for a property
type ChargeRecord struct {
	ID            string      `yaml:"id" json:"id"`
	PropertyTitle string      `yaml:"property_title" json:"property_title"`
	Month         string      `yaml:"month" json:"month"`
	Electricity   money.Money `yaml:"electricity" json:"electricity"`
	Water         money.Money `yaml:"water" json:"water"`
	Heating       money.Money `yaml:"heating" json:"heating"`
	Maintenance   money.Money `yaml:"maintenance" json:"maintenance"`
	Insurance     money.Money `yaml:"insurance" json:"insurance"`
	Garbage       money.Money `yaml:"garbage" json:"garbage"`
	Internet      money.Money `yaml:"internet" json:"internet"`
	HabitationTax money.Money `yaml:"habitation_tax,omitempty" json:"habitation_tax,omitempty"`
	PropertyTax   money.Money `yaml:"property_tax,omitempty" json:"property_tax,omitempty"`
	Total         money.Money `yaml:"total" json:"total"`
}

func (c *ChargeRecord) field(cat ChargeCategory) *money.Money {
	switch cat {
	case ChargeElectricity:
		return &c.Electricity
	case ChargeWater:
		return &c.Water
	case ChargeHeating:
		return &c.Heating
	case ChargeMaintenance:
		return &c.Maintenance
	case ChargeInsurance:
		return &c.Insurance
	case ChargeGarbage:
		return &c.Garbage
	case ChargeInternet:
		return &c.Internet
	case ChargeHabitationTax:
		return &c.HabitationTax
	case ChargePropertyTax:
		return &c.PropertyTax
	}
	return nil
}

// Amount returns the value of one category (zero for unknown categories)
func (c ChargeRecord) Amount(cat ChargeCategory) decimal.Decimal {
	if f := c.field(cat); f != nil {
		return f.Decimal
	}
	return decimal.Zero
}

// SetAmount overwrites one category; unknown categories are ignored
func (c *ChargeRecord) SetAmount(cat ChargeCategory, amount decimal.Decimal) {
	if f := c.field(cat); f != nil {
		*f = money.NewMoneyFromDecimal(amount)
	}
}

// SumCategories adds up every category
func (c ChargeRecord) SumCategories() decimal.Decimal {
	sum := decimal.Zero
	for _, cat := range ChargeCategories {
		sum = sum.Add(c.Amount(cat))
	}
	return sum
}

// EffectiveTotal is the stored total, or the category sum when no total was stored
func (c ChargeRecord) EffectiveTotal() decimal.Decimal {
	if !c.Total.IsZero() {
		return c.Total.Decimal
	}
	return c.SumCategories()
}

// PropertyChargesConfig is the static quarterly charge configuration of a property.
// Categories listed in ManagedByCoOwnership are set by the building's co-ownership
// and derived from the quarterly amounts instead of being entered by hand.
type PropertyChargesConfig struct {
	Quarterly            map[ChargeCategory]money.Money `yaml:"quarterly" json:"quarterly"`
	ManagedByCoOwnership []ChargeCategory               `yaml:"managed_by_co_ownership" json:"managed_by_co_ownership"`
}

// IsManaged reports whether a category is flagged as co-ownership managed
func (c PropertyChargesConfig) IsManaged(cat ChargeCategory) bool {
	for _, m := range c.ManagedByCoOwnership {
		if m == cat {
			return true
		}
	}
	return false
}

// QuarterlyAmount returns the configured quarterly amount of a category
func (c PropertyChargesConfig) QuarterlyAmount(cat ChargeCategory) decimal.Decimal {
	if m, ok := c.Quarterly[cat]; ok {
		return m.Decimal
	}
	return decimal.Zero
}

// ChargesConfigTable maps property titles to their charge configuration
type ChargesConfigTable map[string]PropertyChargesConfig
