package generic

import (
	"time"
)

// =============================================================================
// TIME POINT - Calendar day in the caller's location
// =============================================================================

// DateLayout is the wire and storage format for calendar days.
const DateLayout = "2006-01-02"

// TimePoint is a calendar day. The location of Time decides where "midnight"
// is; all comparisons and differences ignore the time of day.
type TimePoint struct {
	Time time.Time
}

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// NewTimePointIn builds a day anchored at midnight in loc.
func NewTimePointIn(year int, month time.Month, day int, loc *time.Location) TimePoint {
	if loc == nil {
		loc = time.UTC
	}
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, loc)}
}

// DayOf truncates an instant to the start of its day in its own location.
// 23:59 and 00:01 of the same local date yield the same TimePoint.
func DayOf(t time.Time) TimePoint {
	return TimePoint{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())}
}

// ParseDate parses a YYYY-MM-DD day in loc.
func ParseDate(s string, loc *time.Location) (TimePoint, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return TimePoint{}, &ValidationError{Field: "date", Message: "use YYYY-MM-DD: " + s}
	}
	return DayOf(t), nil
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.civil().Before(other.civil()) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.civil().Equal(other.civil()) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.civil().After(other.civil()) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return !tp.After(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return !tp.Before(other) }

// civil maps the day onto UTC midnight so that days from different
// locations, or either side of a DST switch, are exactly 24h apart.
func (tp TimePoint) civil() time.Time {
	return time.Date(tp.Time.Year(), tp.Time.Month(), tp.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint { return DayOf(tp.Time.AddDate(0, 0, n)) }

// Properties
func (tp TimePoint) Year() int             { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month     { return tp.Time.Month() }
func (tp TimePoint) Day() int              { return tp.Time.Day() }
func (tp TimePoint) Weekday() time.Weekday { return tp.Time.Weekday() }
func (tp TimePoint) IsZero() bool          { return tp.Time.IsZero() }
func (tp TimePoint) Location() *time.Location {
	if tp.Time.Location() == nil {
		return time.UTC
	}
	return tp.Time.Location()
}

func (tp TimePoint) String() string {
	return tp.Time.Format(DateLayout)
}

// =============================================================================
// TIME UTILITIES
// =============================================================================

// DaysBetween returns the signed number of calendar days from -> to.
func DaysBetween(from, to TimePoint) int {
	return int(to.civil().Sub(from.civil()).Hours() / 24)
}

// StartOfMonth returns the first day of tp's month, keeping its location.
func StartOfMonth(tp TimePoint) TimePoint {
	return NewTimePointIn(tp.Year(), tp.Month(), 1, tp.Location())
}

// NextWeekday returns the first day on or after tp that falls on wd.
func NextWeekday(tp TimePoint, wd time.Weekday) TimePoint {
	offset := (int(wd) - int(tp.Weekday()) + 7) % 7
	return tp.AddDays(offset)
}
