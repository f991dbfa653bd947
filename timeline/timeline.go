/*
Package timeline derives service counters from a service period and "now".

PURPOSE:
  Converts a ServicePeriod plus a caller-supplied clock reading into the
  numbers the app shows: days served, days until start or end, progress,
  phase and the home-screen countdown.

DAY SEMANTICS:
  Every difference is in whole calendar days. Both instants are truncated
  to midnight in their own location before subtracting, so "now" at 23:59
  on day N and a start at 00:01 on day N are 0 days apart.

TOTALITY:
  No function here returns an error. Missing dates and out-of-range
  instants clamp to neutral values (0, Unset) because callers render
  partial profiles during onboarding.

SEE ALSO:
  - milestone.go: Milestone detection and one-time firing
  - pay/calculator.go: Consumes DaysServed
*/
package timeline

import (
	"time"

	"github.com/palveluspolku/service-engine/generic"
)

// ServicePeriod is one conscript's service window. Either bound may be
// unset while the user is onboarding.
type ServicePeriod struct {
	StartDate *generic.TimePoint
	EndDate   *generic.TimePoint
}

// NewServicePeriod builds a period with both bounds set.
func NewServicePeriod(start, end generic.TimePoint) ServicePeriod {
	return ServicePeriod{StartDate: &start, EndDate: &end}
}

// Validate reports ErrInvalidPeriod when both bounds are set and reversed.
func (p ServicePeriod) Validate() error {
	if p.StartDate == nil || p.EndDate == nil {
		return nil
	}
	return generic.Period{Start: *p.StartDate, End: *p.EndDate}.Validate()
}

// Phase is where "now" sits relative to the service period.
type Phase string

const (
	PhaseUnset      Phase = "unset"
	PhaseNotStarted Phase = "not_started"
	PhaseInProgress Phase = "in_progress"
	PhaseCompleted  Phase = "completed"
)

// =============================================================================
// DAY COUNTERS
// =============================================================================

// DaysServed is the number of whole days from the start to now, never negative.
func DaysServed(p ServicePeriod, now time.Time) int {
	if p.StartDate == nil {
		return 0
	}
	return max(0, generic.DaysBetween(*p.StartDate, generic.DayOf(now)))
}

// DaysUntilStart is positive only while the start lies ahead.
func DaysUntilStart(p ServicePeriod, now time.Time) int {
	if p.StartDate == nil {
		return 0
	}
	return max(0, generic.DaysBetween(generic.DayOf(now), *p.StartDate))
}

// DaysUntilEnd is positive only while the end lies ahead.
func DaysUntilEnd(p ServicePeriod, now time.Time) int {
	if p.EndDate == nil {
		return 0
	}
	return max(0, generic.DaysBetween(generic.DayOf(now), *p.EndDate))
}

// TotalDays is the length of the service from start to end, or 0.
func TotalDays(p ServicePeriod) int {
	if p.StartDate == nil || p.EndDate == nil {
		return 0
	}
	return max(0, generic.DaysBetween(*p.StartDate, *p.EndDate))
}

// WeeksUntilStart counts full weeks to the start. ok is false without a start.
func WeeksUntilStart(p ServicePeriod, now time.Time) (int, bool) {
	if p.StartDate == nil {
		return 0, false
	}
	return DaysUntilStart(p, now) / 7, true
}

// =============================================================================
// PROGRESS & PHASE
// =============================================================================

// ProgressFraction is elapsed days over total days, clamped to [0, 1].
// ok is false (and the fraction 0) when either bound is missing.
func ProgressFraction(p ServicePeriod, now time.Time) (float64, bool) {
	if p.StartDate == nil || p.EndDate == nil {
		return 0, false
	}

	today := generic.DayOf(now)
	total := generic.DaysBetween(*p.StartDate, *p.EndDate)
	if total <= 0 {
		if today.AfterOrEqual(*p.EndDate) {
			return 1, true
		}
		return 0, true
	}

	elapsed := generic.DaysBetween(*p.StartDate, today)
	fraction := float64(elapsed) / float64(total)
	return min(1, max(0, fraction)), true
}

// PercentComplete is the progress fraction as a truncated whole percentage.
func PercentComplete(p ServicePeriod, now time.Time) int {
	fraction, _ := ProgressFraction(p, now)
	return int(fraction * 100)
}

// CurrentPhase classifies now against the period at day granularity.
// The end day itself already counts as completed.
func CurrentPhase(p ServicePeriod, now time.Time) Phase {
	if p.StartDate == nil {
		return PhaseUnset
	}

	today := generic.DayOf(now)
	switch {
	case today.Before(*p.StartDate):
		return PhaseNotStarted
	case p.EndDate != nil && today.AfterOrEqual(*p.EndDate):
		return PhaseCompleted
	default:
		return PhaseInProgress
	}
}

// =============================================================================
// COUNTDOWN - What the home card and widget show
// =============================================================================

// Countdown pairs the phase with the number the home card displays.
type Countdown struct {
	Phase Phase
	Days  int
}

// CountdownAt counts down to the start before service and to the end
// during it. Completed and unset periods show 0.
func CountdownAt(p ServicePeriod, now time.Time) Countdown {
	phase := CurrentPhase(p, now)
	switch phase {
	case PhaseNotStarted:
		return Countdown{Phase: phase, Days: DaysUntilStart(p, now)}
	case PhaseInProgress:
		return Countdown{Phase: phase, Days: DaysUntilEnd(p, now)}
	default:
		return Countdown{Phase: phase}
	}
}

// DaysLeft is the raw signed day difference the widget shows. ok is false
// without an end date. It goes negative after the service ends.
func DaysLeft(p ServicePeriod, now time.Time) (int, bool) {
	if p.EndDate == nil {
		return 0, false
	}
	return generic.DaysBetween(generic.DayOf(now), *p.EndDate), true
}
