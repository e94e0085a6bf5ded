package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neorent/forecast/internal/calculation"
	"github.com/neorent/forecast/internal/domain"
	"github.com/neorent/forecast/pkg/dateutil"
	money "github.com/neorent/forecast/pkg/decimal"
)

// InputParser handles parsing of portfolio input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a portfolio from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a portfolio document
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// SaveToFile writes a portfolio as YAML
func (ip *InputParser) SaveToFile(config *domain.Configuration, filename string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// ValidateConfiguration checks enumerations, dates and tables. Amounts are not
// range checked: negative figures are valid inputs.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	titles := make(map[string]bool, len(config.Properties))
	for i := range config.Properties {
		p := &config.Properties[i]
		if err := ip.validateProperty(p); err != nil {
			return fmt.Errorf("property %d (%q) validation failed: %w", i, p.Title, err)
		}
		if titles[p.Title] {
			return fmt.Errorf("property %d: duplicate title %q", i, p.Title)
		}
		titles[p.Title] = true
	}

	for i, t := range config.Tenants {
		if err := ip.validateOccupant(&t); err != nil {
			return fmt.Errorf("tenant %d validation failed: %w", i, err)
		}
	}
	for i, r := range config.Roommates {
		if err := ip.validateOccupant(&r); err != nil {
			return fmt.Errorf("roommate %d validation failed: %w", i, err)
		}
	}

	for i, p := range config.Payments {
		if err := ip.validatePayment(&p); err != nil {
			return fmt.Errorf("payment %d validation failed: %w", i, err)
		}
	}

	for i, c := range config.Charges {
		if _, err := dateutil.ParseMonth(c.Month); err != nil {
			return fmt.Errorf("charge %d validation failed: %w", i, err)
		}
	}

	for title, cfg := range config.ChargesConfig {
		if err := ip.validateChargesConfig(cfg); err != nil {
			return fmt.Errorf("charges config for %q validation failed: %w", title, err)
		}
	}

	if config.Tax != nil {
		if err := config.Tax.Validate(); err != nil {
			return fmt.Errorf("tax configuration validation failed: %w", err)
		}
	}

	return nil
}

func (ip *InputParser) validateProperty(p *domain.PropertyRecord) error {
	switch p.LocationType {
	case domain.LocationSingle, domain.LocationSharedHousing:
	default:
		return fmt.Errorf("location type must be 'single' or 'shared-housing', got %q", p.LocationType)
	}
	if p.TotalRooms < 0 || p.AvailableRooms < 0 {
		return fmt.Errorf("room counts cannot be negative")
	}
	if p.IsSharedHousing() && p.AvailableRooms > p.TotalRooms {
		return fmt.Errorf("available rooms (%d) cannot exceed total rooms (%d)", p.AvailableRooms, p.TotalRooms)
	}
	return nil
}

func (ip *InputParser) validateOccupant(o *domain.OccupantRecord) error {
	switch o.Status {
	case domain.StatusActive, domain.StatusInactive, domain.StatusPending:
	default:
		return fmt.Errorf("status must be 'Active', 'Inactive' or 'Pending', got %q", o.Status)
	}
	if o.LeaseStart != "" {
		if _, ok := dateutil.ParseISODate(o.LeaseStart); !ok {
			return fmt.Errorf("invalid lease start %q", o.LeaseStart)
		}
	}
	return nil
}

func (ip *InputParser) validatePayment(p *domain.PaymentRecord) error {
	switch p.Status {
	case domain.PaymentPaid, domain.PaymentLate, domain.PaymentPending:
	default:
		return fmt.Errorf("status must be 'Paid', 'Late' or 'Pending', got %q", p.Status)
	}
	for _, date := range []string{p.PaymentDate, p.DueDate} {
		if date == "" {
			continue
		}
		if _, ok := dateutil.ParseISODate(date); !ok {
			return fmt.Errorf("invalid date %q", date)
		}
	}
	return nil
}

func (ip *InputParser) validateChargesConfig(cfg domain.PropertyChargesConfig) error {
	for cat, amount := range cfg.Quarterly {
		if _, ok := domain.ParseChargeCategory(string(cat)); !ok {
			return fmt.Errorf("unknown charge category %q", cat)
		}
		if amount.IsNegative() {
			return fmt.Errorf("quarterly %s amount cannot be negative", cat)
		}
	}
	for _, cat := range cfg.ManagedByCoOwnership {
		known, ok := domain.ParseChargeCategory(string(cat))
		if !ok {
			return fmt.Errorf("unknown charge category %q", cat)
		}
		if _, ok := cfg.Quarterly[known]; !ok {
			return fmt.Errorf("co-ownership managed category %s has no quarterly amount", known)
		}
	}
	return nil
}

// CreateExampleConfiguration creates an example portfolio
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	paid := money.NewMoneyFromInt(1150)
	tax := calculation.DefaultTaxConfig()

	return &domain.Configuration{
		Snapshot: domain.Snapshot{
			Properties: []domain.PropertyRecord{
				{
					ID:           "prop-001",
					Title:        "Studio Bastille",
					OwnerID:      "owner-001",
					OwnerName:    "Claire Martin",
					LocationType: domain.LocationSingle,
					RentAmount:   money.NewMoneyFromInt(1200),
					Country:      "FR",
				},
				{
					ID:             "prop-002",
					Title:          "Coloc Canal Saint-Martin",
					OwnerID:        "owner-001",
					OwnerName:      "Claire Martin",
					LocationType:   domain.LocationSharedHousing,
					TotalRooms:     4,
					AvailableRooms: 1,
					RentAmount:     money.NewMoneyFromInt(1950),
					Country:        "FR",
				},
			},
			Tenants: []domain.TenantRecord{
				{ID: "ten-001", Name: "Alice Durand", PropertyTitle: "Studio Bastille", Status: domain.StatusActive, RentAmount: money.NewMoneyFromInt(1200), LeaseStart: "2024-09-01"},
			},
			Roommates: []domain.RoommateRecord{
				{ID: "rm-001", Name: "Bruno Petit", PropertyTitle: "Coloc Canal Saint-Martin", Status: domain.StatusActive, RentAmount: money.NewMoneyFromInt(650), LeaseStart: "2024-10-01"},
				{ID: "rm-002", Name: "Chloe Bernard", PropertyTitle: "Coloc Canal Saint-Martin", Status: domain.StatusActive, RentAmount: money.NewMoneyFromInt(650), LeaseStart: "2025-01-15"},
				{ID: "rm-003", Name: "David Roux", PropertyTitle: "Coloc Canal Saint-Martin", Status: domain.StatusActive, RentAmount: money.NewMoneyFromInt(600), LeaseStart: "2025-03-01"},
			},
			Payments: []domain.PaymentRecord{
				{ID: "pay-001", PropertyTitle: "Studio Bastille", TenantName: "Alice Durand", RentAmount: money.NewMoneyFromInt(1200), PaidAmount: &paid, PaymentDate: "2025-06-03", DueDate: "2025-06-05", Status: domain.PaymentPaid},
				{ID: "pay-002", PropertyTitle: "Coloc Canal Saint-Martin", TenantName: "Bruno Petit", RentAmount: money.NewMoneyFromInt(650), DueDate: "2025-06-05", Status: domain.PaymentLate},
			},
			Charges: []domain.ChargeRecord{
				{ID: "chg-001", PropertyTitle: "Studio Bastille", Month: "2025-05", Electricity: money.NewMoneyFromInt(45), Water: money.NewMoneyFromInt(18), Insurance: money.NewMoneyFromInt(22), Total: money.NewMoneyFromInt(85)},
				{ID: "chg-002", PropertyTitle: "Coloc Canal Saint-Martin", Month: "2025-05", Electricity: money.NewMoneyFromInt(120), Water: money.NewMoneyFromInt(40), Internet: money.NewMoneyFromInt(35), Maintenance: money.NewMoneyFromInt(30), Total: money.NewMoneyFromInt(225)},
			},
		},
		ChargesConfig: domain.ChargesConfigTable{
			"Coloc Canal Saint-Martin": {
				Quarterly: map[domain.ChargeCategory]money.Money{
					domain.ChargeWater:       money.NewMoneyFromInt(105),
					domain.ChargeMaintenance: money.NewMoneyFromInt(120),
				},
				ManagedByCoOwnership: []domain.ChargeCategory{domain.ChargeWater, domain.ChargeMaintenance},
			},
		},
		Tax: &tax,
		Simulations: []domain.SimulationInput{
			{
				TargetPrice:          money.NewMoneyFromInt(300000),
				EstimatedMonthlyRent: money.NewMoneyFromInt(1200),
				DownPaymentPercent:   money.NewMoneyFromInt(20),
				AnnualInterestRate:   money.NewMoney(3.5),
				LoanTermYears:        money.NewMoneyFromInt(25),
			},
		},
	}
}
