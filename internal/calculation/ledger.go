package calculation

import (
	"github.com/neorent/forecast/internal/domain"
)

// Ledger is a snapshot with every record resolved to a PropertyID. It is the
// boundary where title strings are matched; calculators only see IDs.
type Ledger struct {
	index      *domain.PropertyIndex
	properties map[domain.PropertyID]*domain.PropertyRecord
	occupants  map[domain.PropertyID][]domain.OccupantRecord
	payments   map[domain.PropertyID][]domain.PaymentRecord
	charges    map[domain.PropertyID][]domain.ChargeRecord
	configs    map[domain.PropertyID]domain.PropertyChargesConfig
	revenueIDs map[domain.PropertyID]bool
}

// NewLedger indexes a snapshot. Titles are registered in the order properties,
// tenants, roommates, payments, charges, so IDs() lists known properties first.
func NewLedger(snap domain.Snapshot, chargesConfig domain.ChargesConfigTable) *Ledger {
	l := &Ledger{
		index:      domain.NewPropertyIndex(),
		properties: make(map[domain.PropertyID]*domain.PropertyRecord),
		occupants:  make(map[domain.PropertyID][]domain.OccupantRecord),
		payments:   make(map[domain.PropertyID][]domain.PaymentRecord),
		charges:    make(map[domain.PropertyID][]domain.ChargeRecord),
		configs:    make(map[domain.PropertyID]domain.PropertyChargesConfig),
		revenueIDs: make(map[domain.PropertyID]bool),
	}

	for i := range snap.Properties {
		p := snap.Properties[i]
		id := l.index.Register(p.Title)
		if _, dup := l.properties[id]; !dup {
			l.properties[id] = &p
		}
	}
	for _, group := range [][]domain.OccupantRecord{snap.Tenants, snap.Roommates} {
		for _, o := range group {
			id := l.index.Register(o.PropertyTitle)
			l.occupants[id] = append(l.occupants[id], o)
			l.revenueIDs[id] = true
		}
	}
	for _, p := range snap.Payments {
		id := l.index.Register(p.PropertyTitle)
		l.payments[id] = append(l.payments[id], p)
		l.revenueIDs[id] = true
	}
	for _, c := range snap.Charges {
		id := l.index.Register(c.PropertyTitle)
		l.charges[id] = append(l.charges[id], c)
	}
	for title, cfg := range chargesConfig {
		if id, ok := l.index.Lookup(title); ok {
			l.configs[id] = cfg
		}
	}
	return l
}

// Index returns the title index
func (l *Ledger) Index() *domain.PropertyIndex { return l.index }

// Lookup resolves a property title to its ID
func (l *Ledger) Lookup(title string) (domain.PropertyID, bool) {
	return l.index.Lookup(title)
}

// Title returns the title registered for id
func (l *Ledger) Title(id domain.PropertyID) string { return l.index.Title(id) }

// Property returns the property record for id, if the snapshot has one
func (l *Ledger) Property(id domain.PropertyID) (*domain.PropertyRecord, bool) {
	p, ok := l.properties[id]
	return p, ok
}

// PropertyIDs returns every known ID in registration order
func (l *Ledger) PropertyIDs() []domain.PropertyID { return l.index.IDs() }

// RevenueProperties returns the IDs that have at least one tenant, roommate or
// payment, in registration order.
func (l *Ledger) RevenueProperties() []domain.PropertyID {
	var ids []domain.PropertyID
	for _, id := range l.index.IDs() {
		if l.revenueIDs[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// Occupants returns tenants and roommates in scope
func (l *Ledger) Occupants(scope domain.PropertyID) []domain.OccupantRecord {
	return collect(l, l.occupants, scope)
}

// Payments returns payments in scope
func (l *Ledger) Payments(scope domain.PropertyID) []domain.PaymentRecord {
	return collect(l, l.payments, scope)
}

// Charges returns charge records in scope
func (l *Ledger) Charges(scope domain.PropertyID) []domain.ChargeRecord {
	return collect(l, l.charges, scope)
}

// ChargesConfig returns the co-ownership configuration of a property
func (l *Ledger) ChargesConfig(id domain.PropertyID) (domain.PropertyChargesConfig, bool) {
	cfg, ok := l.configs[id]
	return cfg, ok
}

func collect[T any](l *Ledger, by map[domain.PropertyID][]T, scope domain.PropertyID) []T {
	if !scope.IsAll() {
		return by[scope]
	}
	var all []T
	for _, id := range l.index.IDs() {
		all = append(all, by[id]...)
	}
	return all
}
