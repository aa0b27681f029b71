// Package plans holds the fixed membership plan catalog. Plans are not
// stored; the set is small and changes only with a release.
package plans

import (
	"time"

	"gatebot/internal/apperrors"
)

// A month of membership is a fixed 30-day block.
const MonthDuration = 30 * 24 * time.Hour

type Plan struct {
	Months    int
	PriceBirr int
}

func (p Plan) Duration() time.Duration {
	return time.Duration(p.Months) * MonthDuration
}

var catalog = []Plan{
	{Months: 1, PriceBirr: 700},
	{Months: 2, PriceBirr: 1400},
	{Months: 3, PriceBirr: 2000},
}

// All returns the catalog in display order.
func All() []Plan {
	out := make([]Plan, len(catalog))
	copy(out, catalog)
	return out
}

// ByMonths resolves a plan tier. Unknown tiers are a validation error, not a
// silent fallback.
func ByMonths(months int) (Plan, error) {
	for _, p := range catalog {
		if p.Months == months {
			return p, nil
		}
	}
	return Plan{}, apperrors.E(apperrors.KindValidation, "unknown plan tier: %d months", months)
}
