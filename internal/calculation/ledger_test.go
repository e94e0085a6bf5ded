package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neorent/forecast/internal/domain"
)

func TestLedgerIndexesByTitle(t *testing.T) {
	l := testLedger()

	ids := l.PropertyIDs()
	require.Len(t, ids, 4)
	assert.Equal(t, []string{studio, coloc, loft, garage},
		[]string{l.Title(ids[0]), l.Title(ids[1]), l.Title(ids[2]), l.Title(ids[3])})

	studioID := idOf(t, l, studio)
	assert.Equal(t, domain.NewPropertyID(studio), studioID)
	assert.Len(t, l.Occupants(studioID), 2)
	assert.Len(t, l.Payments(studioID), 2)
	assert.Len(t, l.Charges(studioID), 2)

	p, ok := l.Property(studioID)
	require.True(t, ok)
	assert.Equal(t, "p1", p.ID)

	_, ok = l.Property(idOf(t, l, garage))
	assert.False(t, ok)
}

func TestLedgerScopes(t *testing.T) {
	l := testLedger()

	assert.Len(t, l.Occupants(domain.AllProperties), 5)
	assert.Len(t, l.Payments(domain.AllProperties), 4)
	assert.Len(t, l.Charges(domain.AllProperties), 6)
	assert.Empty(t, l.Occupants(domain.NewPropertyID("Nowhere")))
}

func TestLedgerRevenueProperties(t *testing.T) {
	l := testLedger()
	ids := l.RevenueProperties()
	require.Len(t, ids, 2)
	assert.Equal(t, studio, l.Title(ids[0]))
	assert.Equal(t, coloc, l.Title(ids[1]))
}

func TestLedgerChargesConfig(t *testing.T) {
	l := testLedger()

	cfg, ok := l.ChargesConfig(idOf(t, l, coloc))
	require.True(t, ok)
	assert.True(t, cfg.IsManaged(domain.ChargeElectricity))

	_, ok = l.ChargesConfig(idOf(t, l, studio))
	assert.False(t, ok)

	// Configuration for a title absent from the snapshot is not indexed.
	_, ok = l.Lookup("Unknown Title")
	assert.False(t, ok)
}

func TestLedgerExactTitleMatch(t *testing.T) {
	snap := domain.Snapshot{
		Properties: []domain.PropertyRecord{{Title: "Studio"}},
		Tenants: []domain.TenantRecord{
			{Name: "A", PropertyTitle: "studio", Status: domain.StatusActive, RentAmount: m(700)},
			{Name: "B", PropertyTitle: "Studio", Status: domain.StatusActive, RentAmount: m(800)},
		},
	}
	l := NewLedger(snap, nil)
	assert.Len(t, l.Occupants(idOf(t, l, "Studio")), 1)
	assert.Len(t, l.Occupants(idOf(t, l, "studio")), 1)
	assert.Equal(t, 2, l.Index().Len())
}
