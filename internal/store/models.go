package store

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/neorent/forecast/internal/domain"
	money "github.com/neorent/forecast/pkg/decimal"
)

// Occupant kinds stored in OccupantRow.Kind
const (
	KindTenant   = "tenant"
	KindRoommate = "roommate"
)

// PropertyRow is a rental property
type PropertyRow struct {
	gorm.Model
	ExternalID     string
	Title          string `gorm:"uniqueIndex"`
	OwnerID        string
	OwnerName      string
	LocationType   string
	TotalRooms     int
	AvailableRooms int
	RentAmount     decimal.Decimal `gorm:"type:numeric"`
	Country        string
}

// OccupantRow is a tenant or a roommate, told apart by Kind
type OccupantRow struct {
	gorm.Model
	ExternalID    string
	Kind          string `gorm:"index"`
	Name          string
	PropertyTitle string `gorm:"index"`
	Status        string
	RentAmount    decimal.Decimal `gorm:"type:numeric"`
	LeaseStart    string
}

// PaymentRow is a rent payment
type PaymentRow struct {
	gorm.Model
	ExternalID    string
	PropertyTitle string `gorm:"index"`
	TenantName    string
	RentAmount    decimal.Decimal     `gorm:"type:numeric"`
	PaidAmount    decimal.NullDecimal `gorm:"type:numeric"`
	PaymentDate   string
	DueDate       string
	Status        string
}

// ChargeRow is one month of charges for a property
type ChargeRow struct {
	gorm.Model
	ExternalID    string
	PropertyTitle string `gorm:"index"`
	Month         string
	Electricity   decimal.Decimal `gorm:"type:numeric"`
	Water         decimal.Decimal `gorm:"type:numeric"`
	Heating       decimal.Decimal `gorm:"type:numeric"`
	Maintenance   decimal.Decimal `gorm:"type:numeric"`
	Insurance     decimal.Decimal `gorm:"type:numeric"`
	Garbage       decimal.Decimal `gorm:"type:numeric"`
	Internet      decimal.Decimal `gorm:"type:numeric"`
	HabitationTax decimal.Decimal `gorm:"type:numeric"`
	PropertyTax   decimal.Decimal `gorm:"type:numeric"`
	Total         decimal.Decimal `gorm:"type:numeric"`
}

// ChargeConfigRow is one category of a property's quarterly charge configuration
type ChargeConfigRow struct {
	gorm.Model
	PropertyTitle        string          `gorm:"uniqueIndex:idx_charge_config_category"`
	Category             string          `gorm:"uniqueIndex:idx_charge_config_category"`
	QuarterlyAmount      decimal.Decimal `gorm:"type:numeric"`
	ManagedByCoOwnership bool
}

// TableName overrides the default pluralised name
func (ChargeConfigRow) TableName() string { return "charge_configs" }

// Models lists every table the store migrates
var Models = []interface{}{
	&PropertyRow{},
	&OccupantRow{},
	&PaymentRow{},
	&ChargeRow{},
	&ChargeConfigRow{},
}

func newPropertyRow(p domain.PropertyRecord) PropertyRow {
	return PropertyRow{
		ExternalID:     p.ID,
		Title:          p.Title,
		OwnerID:        p.OwnerID,
		OwnerName:      p.OwnerName,
		LocationType:   string(p.LocationType),
		TotalRooms:     p.TotalRooms,
		AvailableRooms: p.AvailableRooms,
		RentAmount:     p.RentAmount.Decimal,
		Country:        p.Country,
	}
}

func (r PropertyRow) record() domain.PropertyRecord {
	return domain.PropertyRecord{
		ID:             r.ExternalID,
		Title:          r.Title,
		OwnerID:        r.OwnerID,
		OwnerName:      r.OwnerName,
		LocationType:   domain.LocationType(r.LocationType),
		TotalRooms:     r.TotalRooms,
		AvailableRooms: r.AvailableRooms,
		RentAmount:     money.NewMoneyFromDecimal(r.RentAmount),
		Country:        r.Country,
	}
}

func newOccupantRow(kind string, o domain.OccupantRecord) OccupantRow {
	return OccupantRow{
		ExternalID:    o.ID,
		Kind:          kind,
		Name:          o.Name,
		PropertyTitle: o.PropertyTitle,
		Status:        string(o.Status),
		RentAmount:    o.RentAmount.Decimal,
		LeaseStart:    o.LeaseStart,
	}
}

func (r OccupantRow) record() domain.OccupantRecord {
	return domain.OccupantRecord{
		ID:            r.ExternalID,
		Name:          r.Name,
		PropertyTitle: r.PropertyTitle,
		Status:        domain.OccupantStatus(r.Status),
		RentAmount:    money.NewMoneyFromDecimal(r.RentAmount),
		LeaseStart:    r.LeaseStart,
	}
}

func newPaymentRow(p domain.PaymentRecord) PaymentRow {
	row := PaymentRow{
		ExternalID:    p.ID,
		PropertyTitle: p.PropertyTitle,
		TenantName:    p.TenantName,
		RentAmount:    p.RentAmount.Decimal,
		PaymentDate:   p.PaymentDate,
		DueDate:       p.DueDate,
		Status:        string(p.Status),
	}
	if p.PaidAmount != nil {
		row.PaidAmount = decimal.NullDecimal{Decimal: p.PaidAmount.Decimal, Valid: true}
	}
	return row
}

func (r PaymentRow) record() domain.PaymentRecord {
	rec := domain.PaymentRecord{
		ID:            r.ExternalID,
		PropertyTitle: r.PropertyTitle,
		TenantName:    r.TenantName,
		RentAmount:    money.NewMoneyFromDecimal(r.RentAmount),
		PaymentDate:   r.PaymentDate,
		DueDate:       r.DueDate,
		Status:        domain.PaymentStatus(r.Status),
	}
	if r.PaidAmount.Valid {
		paid := money.NewMoneyFromDecimal(r.PaidAmount.Decimal)
		rec.PaidAmount = &paid
	}
	return rec
}

func newChargeRow(c domain.ChargeRecord) ChargeRow {
	return ChargeRow{
		ExternalID:    c.ID,
		PropertyTitle: c.PropertyTitle,
		Month:         c.Month,
		Electricity:   c.Electricity.Decimal,
		Water:         c.Water.Decimal,
		Heating:       c.Heating.Decimal,
		Maintenance:   c.Maintenance.Decimal,
		Insurance:     c.Insurance.Decimal,
		Garbage:       c.Garbage.Decimal,
		Internet:      c.Internet.Decimal,
		HabitationTax: c.HabitationTax.Decimal,
		PropertyTax:   c.PropertyTax.Decimal,
		Total:         c.Total.Decimal,
	}
}

func (r ChargeRow) record() domain.ChargeRecord {
	return domain.ChargeRecord{
		ID:            r.ExternalID,
		PropertyTitle: r.PropertyTitle,
		Month:         r.Month,
		Electricity:   money.NewMoneyFromDecimal(r.Electricity),
		Water:         money.NewMoneyFromDecimal(r.Water),
		Heating:       money.NewMoneyFromDecimal(r.Heating),
		Maintenance:   money.NewMoneyFromDecimal(r.Maintenance),
		Insurance:     money.NewMoneyFromDecimal(r.Insurance),
		Garbage:       money.NewMoneyFromDecimal(r.Garbage),
		Internet:      money.NewMoneyFromDecimal(r.Internet),
		HabitationTax: money.NewMoneyFromDecimal(r.HabitationTax),
		PropertyTax:   money.NewMoneyFromDecimal(r.PropertyTax),
		Total:         money.NewMoneyFromDecimal(r.Total),
	}
}

// chargeConfigRows flattens a configuration table into one row per category.
// A managed category without a quarterly amount still gets a row.
func chargeConfigRows(table domain.ChargesConfigTable) []ChargeConfigRow {
	var rows []ChargeConfigRow
	for title, cfg := range table {
		seen := make(map[domain.ChargeCategory]bool)
		for _, cat := range domain.ChargeCategories {
			amount, hasAmount := cfg.Quarterly[cat]
			managed := cfg.IsManaged(cat)
			if !hasAmount && !managed {
				continue
			}
			seen[cat] = true
			rows = append(rows, ChargeConfigRow{
				PropertyTitle:        title,
				Category:             string(cat),
				QuarterlyAmount:      amount.Decimal,
				ManagedByCoOwnership: managed,
			})
		}
		for cat, amount := range cfg.Quarterly {
			if seen[cat] {
				continue
			}
			rows = append(rows, ChargeConfigRow{
				PropertyTitle:   title,
				Category:        string(cat),
				QuarterlyAmount: amount.Decimal,
			})
		}
	}
	return rows
}

func chargesConfigTable(rows []ChargeConfigRow) domain.ChargesConfigTable {
	if len(rows) == 0 {
		return nil
	}
	table := make(domain.ChargesConfigTable)
	for _, r := range rows {
		cfg := table[r.PropertyTitle]
		if cfg.Quarterly == nil {
			cfg.Quarterly = make(map[domain.ChargeCategory]money.Money)
		}
		cat := domain.ChargeCategory(r.Category)
		cfg.Quarterly[cat] = money.NewMoneyFromDecimal(r.QuarterlyAmount)
		if r.ManagedByCoOwnership {
			cfg.ManagedByCoOwnership = append(cfg.ManagedByCoOwnership, cat)
		}
		table[r.PropertyTitle] = cfg
	}
	return table
}
