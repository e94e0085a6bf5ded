package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/neorent/forecast/internal/domain"
	"github.com/neorent/forecast/pkg/dateutil"
)

// RevenueAggregator computes monthly rent revenue. Money actually received this
// month takes precedence; when none was received the rent owed by active
// tenants and roommates is used instead.
type RevenueAggregator struct {
	now    func() time.Time
	logger Logger
}

// NewRevenueAggregator creates a revenue aggregator on the package clock
func NewRevenueAggregator() *RevenueAggregator {
	return &RevenueAggregator{now: defaultClock, logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (ra *RevenueAggregator) SetLogger(l Logger) { ra.logger = orNop(l) }

// SetClock overrides the clock that decides the current month
func (ra *RevenueAggregator) SetClock(now func() time.Time) {
	if now == nil {
		now = defaultClock
	}
	ra.now = now
}

// ActualRevenue sums the collected amount of Paid payments dated in the current
// calendar month. Payments without a parseable date are skipped.
func (ra *RevenueAggregator) ActualRevenue(l *Ledger, scope domain.PropertyID) decimal.Decimal {
	now := ra.now()
	total := decimal.Zero
	for _, p := range l.Payments(scope) {
		if p.Status != domain.PaymentPaid {
			continue
		}
		paidOn, ok := dateutil.ParseISODate(p.PaymentDate)
		if !ok {
			if p.PaymentDate != "" {
				ra.logger.Debugf("payment %s: unparseable date %q", p.ID, p.PaymentDate)
			}
			continue
		}
		if !dateutil.SameMonth(paidOn, now) {
			continue
		}
		total = total.Add(p.CollectedAmount())
	}
	return total
}

// ExpectedRevenue sums the rent of active tenants and roommates in scope
func (ra *RevenueAggregator) ExpectedRevenue(l *Ledger, scope domain.PropertyID) decimal.Decimal {
	total := decimal.Zero
	for _, o := range l.Occupants(scope) {
		if o.IsActive() {
			total = total.Add(o.RentAmount.Decimal)
		}
	}
	return total
}

// Revenue returns the monthly revenue in scope and where it came from
func (ra *RevenueAggregator) Revenue(l *Ledger, scope domain.PropertyID) (decimal.Decimal, domain.RevenueSource) {
	if actual := ra.ActualRevenue(l, scope); !actual.IsZero() {
		return actual, domain.RevenueActual
	}
	if expected := ra.ExpectedRevenue(l, scope); !expected.IsZero() {
		return expected, domain.RevenueExpected
	}
	return decimal.Zero, domain.RevenueNone
}

// MonthlyRevenue returns the monthly revenue of one property, or of every
// property taken as a whole when scope is domain.AllProperties.
func (ra *RevenueAggregator) MonthlyRevenue(l *Ledger, scope domain.PropertyID) decimal.Decimal {
	revenue, _ := ra.Revenue(l, scope)
	return revenue
}

// PortfolioMonthlyRevenue sums the per-property revenue of every property with a
// tenant, roommate or payment. Each property falls back on its own.
func (ra *RevenueAggregator) PortfolioMonthlyRevenue(l *Ledger) decimal.Decimal {
	total := decimal.Zero
	for _, id := range l.RevenueProperties() {
		total = total.Add(ra.MonthlyRevenue(l, id))
	}
	return total
}
