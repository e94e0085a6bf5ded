package calculation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/neorent/forecast/internal/domain"
	"github.com/neorent/forecast/pkg/dateutil"
)

var quartersPerMonth = decimal.NewFromInt(3)

// ChargeAggregator summarises the monthly charge records of a property
type ChargeAggregator struct {
	logger Logger
}

// NewChargeAggregator creates a charge aggregator
func NewChargeAggregator() *ChargeAggregator {
	return &ChargeAggregator{logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (ca *ChargeAggregator) SetLogger(l Logger) { ca.logger = orNop(l) }

// IsEditable reports whether a charge category is entered by hand for a property.
// Co-ownership managed categories are derived, except maintenance which stays
// editable even when flagged.
func IsEditable(cat domain.ChargeCategory, cfg domain.PropertyChargesConfig) bool {
	return cat == domain.ChargeMaintenance || !cfg.IsManaged(cat)
}

// DerivedMonthlyCharge is the monthly share of a quarterly co-ownership amount
func DerivedMonthlyCharge(cat domain.ChargeCategory, cfg domain.PropertyChargesConfig) decimal.Decimal {
	return cfg.QuarterlyAmount(cat).Div(quartersPerMonth).Round(2)
}

// ApplyCoOwnership returns a copy of record where every non-editable category
// holds its derived monthly amount. When anything was replaced the total is
// recomputed from the categories.
func ApplyCoOwnership(record domain.ChargeRecord, cfg domain.PropertyChargesConfig) domain.ChargeRecord {
	changed := false
	for _, cat := range cfg.ManagedByCoOwnership {
		if IsEditable(cat, cfg) {
			continue
		}
		record.SetAmount(cat, DerivedMonthlyCharge(cat, cfg))
		changed = true
	}
	if changed {
		record.Total.Decimal = record.SumCategories()
	}
	return record
}

// Summarize aggregates the charge records of one property. Records are sorted by
// month, newest first; records with an unparseable month sort last.
func (ca *ChargeAggregator) Summarize(l *Ledger, id domain.PropertyID) domain.ChargeSummary {
	summary := domain.ChargeSummary{
		PropertyID:            id,
		PropertyTitle:         l.Title(id),
		TotalCharges:          decimal.Zero,
		AverageMonthlyCharges: decimal.Zero,
		LastMonthCharges:      decimal.Zero,
	}

	records := l.Charges(id)
	if len(records) == 0 {
		return summary
	}

	cfg, managed := l.ChargesConfig(id)
	monthly := make([]domain.ChargeRecord, 0, len(records))
	for _, r := range records {
		if managed {
			r = ApplyCoOwnership(r, cfg)
		}
		monthly = append(monthly, r)
	}
	ca.sortByMonthDesc(monthly)

	for _, r := range monthly {
		summary.TotalCharges = summary.TotalCharges.Add(r.EffectiveTotal())
	}
	summary.AverageMonthlyCharges = summary.TotalCharges.Div(decimal.NewFromInt(int64(len(monthly))))
	summary.LastMonthCharges = monthly[0].EffectiveTotal()
	summary.LastMonth = monthly[0].Month
	summary.MonthlyCharges = monthly
	return summary
}

func (ca *ChargeAggregator) sortByMonthDesc(records []domain.ChargeRecord) {
	months := make(map[string]time.Time, len(records))
	for _, r := range records {
		if _, seen := months[r.Month]; seen {
			continue
		}
		t, err := dateutil.ParseMonth(r.Month)
		if err != nil {
			ca.logger.Warnf("charge record %s: %v", r.ID, err)
		}
		months[r.Month] = t
	}
	sort.SliceStable(records, func(i, j int) bool {
		return months[records[i].Month].After(months[records[j].Month])
	})
}
