package domain

import (
	"github.com/shopspring/decimal"

	money "github.com/neorent/forecast/pkg/decimal"
)

// LocationType distinguishes whole-unit lets from room-by-room shared housing
type LocationType string

const (
	LocationSingle        LocationType = "single"
	LocationSharedHousing LocationType = "shared-housing"
)

// OccupantStatus is the lease status of a tenant or roommate
type OccupantStatus string

const (
	StatusActive   OccupantStatus = "Active"
	StatusInactive OccupantStatus = "Inactive"
	StatusPending  OccupantStatus = "Pending"
)

// PaymentStatus is the collection status of a rent payment
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentLate    PaymentStatus = "Late"
	PaymentPending PaymentStatus = "Pending"
)

// PropertyRecord is a rental property as supplied by the data layer.
// RentAmount arrives as free text in the source documents and is parsed leniently.
type PropertyRecord struct {
	ID             string       `yaml:"id" json:"id"`
	Title          string       `yaml:"title" json:"title"`
	OwnerID        string       `yaml:"owner_id" json:"owner_id"`
	OwnerName      string       `yaml:"owner_name" json:"owner_name"`
	LocationType   LocationType `yaml:"location_type" json:"location_type"`
	TotalRooms     int          `yaml:"total_rooms,omitempty" json:"total_rooms,omitempty"`
	AvailableRooms int          `yaml:"available_rooms,omitempty" json:"available_rooms,omitempty"`
	RentAmount     money.Money  `yaml:"rent_amount" json:"rent_amount"`
	Country        string       `yaml:"country,omitempty" json:"country,omitempty"`
}

// IsSharedHousing reports whether the property is let room by room
func (p PropertyRecord) IsSharedHousing() bool {
	return p.LocationType == LocationSharedHousing
}

// OccupancyRate returns the share of occupied rooms in percent. Single-unit
// properties and properties without a room count report zero.
func (p PropertyRecord) OccupancyRate() decimal.Decimal {
	if !p.IsSharedHousing() || p.TotalRooms <= 0 {
		return decimal.Zero
	}
	occupied := p.TotalRooms - p.AvailableRooms
	if occupied < 0 {
		occupied = 0
	}
	return money.Percent(decimal.NewFromInt(int64(occupied)), decimal.NewFromInt(int64(p.TotalRooms)))
}

// OccupantRecord is a tenant of a single unit or a roommate of a shared-housing
// property. Both join their property by title.
type OccupantRecord struct {
	ID            string         `yaml:"id" json:"id"`
	Name          string         `yaml:"name" json:"name"`
	PropertyTitle string         `yaml:"property_title" json:"property_title"`
	Status        OccupantStatus `yaml:"status" json:"status"`
	RentAmount    money.Money    `yaml:"rent_amount" json:"rent_amount"`
	LeaseStart    string         `yaml:"lease_start,omitempty" json:"lease_start,omitempty"`
}

type (
	TenantRecord   = OccupantRecord
	RoommateRecord = OccupantRecord
)

// IsActive reports whether the occupant currently pays rent
func (o OccupantRecord) IsActive() bool {
	return o.Status == StatusActive
}

// PaymentRecord is a single rent payment (or expected payment) for a property
type PaymentRecord struct {
	ID            string        `yaml:"id" json:"id"`
	PropertyTitle string        `yaml:"property_title" json:"property_title"`
	TenantName    string        `yaml:"tenant_name" json:"tenant_name"`
	RentAmount    money.Money   `yaml:"rent_amount" json:"rent_amount"`
	PaidAmount    *money.Money  `yaml:"paid_amount,omitempty" json:"paid_amount,omitempty"`
	PaymentDate   string        `yaml:"payment_date,omitempty" json:"payment_date,omitempty"`
	DueDate       string        `yaml:"due_date,omitempty" json:"due_date,omitempty"`
	Status        PaymentStatus `yaml:"status" json:"status"`
}

// CollectedAmount is the paid amount when recorded, else the nominal rent
func (p PaymentRecord) CollectedAmount() decimal.Decimal {
	if p.PaidAmount != nil {
		return p.PaidAmount.Decimal
	}
	return p.RentAmount.Decimal
}
