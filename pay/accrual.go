package pay

import (
	"fmt"

	"github.com/palveluspolku/service-engine/generic"
	"github.com/palveluspolku/service-engine/timeline"
)

// Accrual implements generic.AccrualSchedule for the daily allowance.
// Day n of service is credited on start+n at DailyRate(n), so the events
// up to any date sum to TotalEarned on that date.
type Accrual struct {
	Period  timeline.ServicePeriod
	Profile Profile
}

// Compile-time check that Accrual implements generic.AccrualSchedule
var _ generic.AccrualSchedule = (*Accrual)(nil)

func (a *Accrual) GenerateAccruals(from, to generic.TimePoint) []generic.AccrualEvent {
	if a.Period.StartDate == nil || to.Before(from) {
		return nil
	}
	start := *a.Period.StartDate

	first := max(1, generic.DaysBetween(start, from))
	last := generic.DaysBetween(start, to)

	var events []generic.AccrualEvent
	for n := first; n <= last; n++ {
		tier := TierFor(n)
		events = append(events, generic.AccrualEvent{
			At:     start.AddDays(n),
			Amount: tier.Rate(a.Profile),
			Reason: fmt.Sprintf("tier %d allowance", tier.Number),
		})
	}
	return events
}

// IsDeterministic returns true - the tier table fixes every future day.
func (a *Accrual) IsDeterministic() bool {
	return true
}
