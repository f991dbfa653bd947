package generic

import "fmt"

// MaxPeriodDays bounds day ranges taken from user input. A service lasts
// at most 347 days.
const MaxPeriodDays = 400

// =============================================================================
// PERIOD - Closed range of calendar days
// =============================================================================

// Period is an inclusive day range [Start, End].
//
// Examples:
//   - A leave block: Mar 3 - Mar 7 (5 days)
//   - A service window: Jan 1 - Jul 1
type Period struct {
	Start TimePoint
	End   TimePoint
}

// Validate rejects a period whose end precedes its start.
func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

// ValidateWithin is Validate plus a cap on the number of days, both ends
// included.
func (p Period) ValidateWithin(maxDays int) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if n := p.Length(); n > maxDays {
		return &ValidationError{Field: "period", Message: fmt.Sprintf("%d days exceeds the limit of %d", n, maxDays)}
	}
	return nil
}

// Contains returns true if the time point is within the period [Start, End]
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

// Length returns the number of days in the period, both ends included.
func (p Period) Length() int {
	if p.End.Before(p.Start) {
		return 0
	}
	return DaysBetween(p.Start, p.End) + 1
}

// Days returns all days in the period as a slice of TimePoints.
func (p Period) Days() []TimePoint {
	var days []TimePoint
	current := p.Start
	for current.BeforeOrEqual(p.End) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return days
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
