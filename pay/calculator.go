package pay

import (
	"time"

	"github.com/palveluspolku/service-engine/generic"
	"github.com/palveluspolku/service-engine/timeline"
)

// =============================================================================
// RATE LOOKUP
// =============================================================================

// DailyRate is the allowance earned on the given cumulative day.
func DailyRate(daysServed int, p Profile) generic.Amount {
	return TierFor(daysServed).Rate(p)
}

// CurrentDailyRate is the rate for today's days-served count.
func CurrentDailyRate(period timeline.ServicePeriod, p Profile, now time.Time) generic.Amount {
	return DailyRate(timeline.DaysServed(period, now), p)
}

// =============================================================================
// EARNINGS
// =============================================================================

// TierEarning is the part of a total earned inside one tier.
type TierEarning struct {
	Tier   Tier
	Days   int
	Rate   generic.Amount
	Amount generic.Amount
}

// Breakdown splits days served across the tier table. Tiers not yet
// reached are omitted.
func Breakdown(days int, p Profile) []TierEarning {
	var out []TierEarning
	for _, tier := range Tiers {
		if days < tier.FirstDay {
			break
		}
		inTier := days - tier.FirstDay + 1
		if span := tier.Span(); span > 0 && inTier > span {
			inTier = span
		}
		rate := tier.Rate(p)
		out = append(out, TierEarning{
			Tier:   tier,
			Days:   inTier,
			Rate:   rate,
			Amount: rate.MulInt(inTier),
		})
	}
	return out
}

// EarnedForDays integrates the allowance piecewise over the tiers:
//
//	days <= 0    0
//	days <= 165  days*rate1
//	days <= 255  165*rate1 + (days-165)*rate2
//	otherwise    165*rate1 + 90*rate2 + (days-255)*rate3
func EarnedForDays(days int, p Profile) generic.Amount {
	total := generic.ZeroAmount(generic.UnitEUR)
	for _, part := range Breakdown(days, p) {
		total = total.Add(part.Amount)
	}
	return total
}

// TotalEarned is the allowance accumulated from the start of service to now.
func TotalEarned(period timeline.ServicePeriod, p Profile, now time.Time) generic.Amount {
	return EarnedForDays(timeline.DaysServed(period, now), p)
}

// ProjectedTotal is what the whole service pays out by the end date.
// Zero when either bound is unset.
func ProjectedTotal(period timeline.ServicePeriod, p Profile) generic.Amount {
	return EarnedForDays(timeline.TotalDays(period), p)
}
