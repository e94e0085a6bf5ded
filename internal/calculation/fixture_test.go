package calculation

import (
	"time"

	"github.com/neorent/forecast/internal/domain"
	money "github.com/neorent/forecast/pkg/decimal"
)

const (
	studio = "Studio Bastille"
	coloc  = "Coloc Canal"
	loft   = "Loft Vacant"
	garage = "Garage Voltaire"
)

func fixedNow() time.Time { return time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC) }

func m(v float64) money.Money { return money.NewMoney(v) }

func mp(v float64) *money.Money {
	x := money.NewMoney(v)
	return &x
}

// testSnapshot is a small portfolio observed on 2025-06-15:
//   - Studio Bastille collected 1150 this month and has charges averaging 65.
//   - Coloc Canal has no Paid payment this month; two active roommates owe 950.
//   - Loft Vacant has no occupant and one charge month of 40.
//   - Garage Voltaire only appears in the charge records.
func testSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Properties: []domain.PropertyRecord{
			{ID: "p1", Title: studio, LocationType: domain.LocationSingle, RentAmount: m(1200), Country: "FR"},
			{ID: "p2", Title: coloc, LocationType: domain.LocationSharedHousing, TotalRooms: 4, AvailableRooms: 1, RentAmount: m(1430)},
			{ID: "p3", Title: loft, LocationType: domain.LocationSingle, RentAmount: m(900)},
		},
		Tenants: []domain.TenantRecord{
			{ID: "t1", Name: "Alice", PropertyTitle: studio, Status: domain.StatusActive, RentAmount: m(1200)},
			{ID: "t2", Name: "Bruno", PropertyTitle: studio, Status: domain.StatusInactive, RentAmount: m(1000)},
		},
		Roommates: []domain.RoommateRecord{
			{ID: "r1", Name: "Chloe", PropertyTitle: coloc, Status: domain.StatusActive, RentAmount: m(500)},
			{ID: "r2", Name: "David", PropertyTitle: coloc, Status: domain.StatusActive, RentAmount: m(450)},
			{ID: "r3", Name: "Emma", PropertyTitle: coloc, Status: domain.StatusPending, RentAmount: m(480)},
		},
		Payments: []domain.PaymentRecord{
			{ID: "pay1", PropertyTitle: studio, TenantName: "Alice", RentAmount: m(1200), PaidAmount: mp(1150), PaymentDate: "2025-06-03", Status: domain.PaymentPaid},
			{ID: "pay2", PropertyTitle: studio, TenantName: "Alice", RentAmount: m(1200), PaymentDate: "2025-05-03T09:30:00Z", Status: domain.PaymentPaid},
			{ID: "pay3", PropertyTitle: coloc, TenantName: "Chloe", RentAmount: m(500), PaymentDate: "2025-06-05", Status: domain.PaymentLate},
			{ID: "pay4", PropertyTitle: coloc, TenantName: "David", RentAmount: m(450), Status: domain.PaymentPaid},
		},
		Charges: []domain.ChargeRecord{
			{ID: "c1", PropertyTitle: studio, Month: "2025-05", Electricity: m(40), Water: m(20), Total: m(60)},
			{ID: "c2", PropertyTitle: studio, Month: "2025-06", Electricity: m(50), Water: m(20)},
			{ID: "c3", PropertyTitle: coloc, Month: "2025-04", Electricity: m(100), Water: m(30), Maintenance: m(25), Total: m(155)},
			{ID: "c4", PropertyTitle: coloc, Month: "April", Electricity: m(10), Total: m(10)},
			{ID: "c5", PropertyTitle: loft, Month: "2025-06", Insurance: m(40), Total: m(40)},
			{ID: "c6", PropertyTitle: garage, Month: "2025-06", Garbage: m(5), Total: m(5)},
		},
	}
}

func testChargesConfig() domain.ChargesConfigTable {
	return domain.ChargesConfigTable{
		coloc: {
			Quarterly: map[domain.ChargeCategory]money.Money{
				domain.ChargeElectricity: m(90),
				domain.ChargeMaintenance: m(60),
			},
			ManagedByCoOwnership: []domain.ChargeCategory{domain.ChargeElectricity, domain.ChargeMaintenance},
		},
		"Unknown Title": {
			Quarterly: map[domain.ChargeCategory]money.Money{domain.ChargeWater: m(30)},
		},
	}
}

func testLedger() *Ledger { return NewLedger(testSnapshot(), testChargesConfig()) }

func idOf(t interface{ Fatalf(string, ...any) }, l *Ledger, title string) domain.PropertyID {
	id, ok := l.Lookup(title)
	if !ok {
		t.Fatalf("title %q not indexed", title)
	}
	return id
}
