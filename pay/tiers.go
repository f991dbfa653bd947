/*
Package pay implements the conscript daily-allowance calculator.

PURPOSE:
  Looks up the daily rate for a cumulative days-served count and
  integrates total earnings across tier boundaries. Also estimates the
  next payment and exposes the allowance as a generic.AccrualSchedule.

TIERS:
  The base rate depends on cumulative days served:

    Tier  Days        Base (EUR/day)
    1     1 - 165     6.10   (also used for days <= 0)
    2     166 - 255   10.15
    3     256 -       14.15

  A flat 1.50/day supplement is added on every tier for profiles that
  qualify for it.

PRECISION:
  All arithmetic is decimal. Nothing is rounded here; callers round once
  when displaying (generic.Amount.Display).

SEE ALSO:
  - calculator.go: DailyRate, EarnedForDays, TotalEarned
  - payment.go: Next payment estimate
  - accrual.go: Per-day accrual schedule
*/
package pay

import (
	"github.com/palveluspolku/service-engine/generic"
)

// =============================================================================
// TIER TABLE
// =============================================================================

// Tier is one band of cumulative days served. LastDay 0 means open-ended.
type Tier struct {
	Number   int
	FirstDay int
	LastDay  int
	BaseRate generic.Amount
}

// Contains reports whether the day count falls inside the band.
func (t Tier) Contains(daysServed int) bool {
	if daysServed < t.FirstDay {
		return false
	}
	return t.LastDay == 0 || daysServed <= t.LastDay
}

// Span is the number of days in a closed band, 0 for the open one.
func (t Tier) Span() int {
	if t.LastDay == 0 {
		return 0
	}
	return t.LastDay - t.FirstDay + 1
}

func eur(s string) generic.Amount { return generic.NewAmountFromString(s, generic.UnitEUR) }

// Tiers is the static, ordered allowance table.
var Tiers = []Tier{
	{Number: 1, FirstDay: 1, LastDay: 165, BaseRate: eur("6.10")},
	{Number: 2, FirstDay: 166, LastDay: 255, BaseRate: eur("10.15")},
	{Number: 3, FirstDay: 256, LastDay: 0, BaseRate: eur("14.15")},
}

// Supplement is the flat per-day addition for qualifying profiles.
var Supplement = eur("1.50")

// TierFor returns the tier for a day count. Counts <= 0 fall back to tier 1.
func TierFor(daysServed int) Tier {
	for _, tier := range Tiers {
		if tier.Contains(daysServed) {
			return tier
		}
	}
	return Tiers[0]
}

// Profile holds the pay inputs that do not come from the service period.
type Profile struct {
	AppliesSupplement bool
}

// Rate is the tier's base rate plus the profile's supplement.
func (t Tier) Rate(p Profile) generic.Amount {
	if p.AppliesSupplement {
		return t.BaseRate.Add(Supplement)
	}
	return t.BaseRate
}
