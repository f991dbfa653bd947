/*
Package leave tracks leave days against the conscript's allowance.

PURPOSE:
  Leave is recorded one row per calendar day. Only Regular leave counts
  against the allowance; weekend and special leave are logged for the
  calendar but are free.

SEE ALSO:
  - generic/period.go: Range expansion
  - api/handlers_logs.go: HTTP surface
*/
package leave

import (
	"context"
	"sort"
	"time"

	"github.com/palveluspolku/service-engine/generic"
)

// Type classifies a leave day.
type Type string

const (
	TypeRegular Type = "Regular"
	TypeWeekend Type = "Weekend"
	TypeSpecial Type = "Special"
)

// Valid reports whether t is a known leave type.
func (t Type) Valid() bool {
	switch t {
	case TypeRegular, TypeWeekend, TypeSpecial:
		return true
	}
	return false
}

// Day is one calendar day of leave.
type Day struct {
	ID       string
	Date     generic.TimePoint
	Type     Type
	Approved bool
	Notes    string
}

// Store persists leave days.
type Store interface {
	ListLeaveDays(ctx context.Context) ([]Day, error)
	SaveLeaveDays(ctx context.Context, days []Day) error
	DeleteLeaveDay(ctx context.Context, id string) error
}

// Request describes a block of leave to record.
type Request struct {
	Period   generic.Period
	Type     Type
	Approved bool
	Notes    string
}

// Expand turns a request into one Day per date, both ends included.
// newID supplies row identifiers. Ranges longer than
// generic.MaxPeriodDays are rejected.
func (r Request) Expand(newID func() string) ([]Day, error) {
	if err := r.Period.ValidateWithin(generic.MaxPeriodDays); err != nil {
		return nil, err
	}
	kind := r.Type
	if kind == "" {
		kind = TypeRegular
	}
	if !kind.Valid() {
		return nil, &generic.ValidationError{Field: "leave_type", Message: string(kind)}
	}

	days := make([]Day, 0, r.Period.Length())
	for _, d := range r.Period.Days() {
		days = append(days, Day{
			ID:       newID(),
			Date:     d,
			Type:     kind,
			Approved: r.Approved,
			Notes:    r.Notes,
		})
	}
	return days, nil
}

// =============================================================================
// ALLOWANCE
// =============================================================================

// Used counts Regular leave days.
func Used(days []Day) int {
	n := 0
	for _, d := range days {
		if d.Type == TypeRegular {
			n++
		}
	}
	return n
}

// Remaining is allowance minus used. It goes negative when over-drawn.
func Remaining(allowance int, days []Day) int {
	return allowance - Used(days)
}

// Split separates days after today (upcoming) from today and earlier (past).
// Upcoming keeps ascending date order; past is most recent first.
func Split(days []Day, now time.Time) (upcoming, past []Day) {
	today := generic.DayOf(now)
	for _, d := range days {
		if d.Date.After(today) {
			upcoming = append(upcoming, d)
		} else {
			past = append(past, d)
		}
	}
	sortByDate(upcoming, false)
	sortByDate(past, true)
	return upcoming, past
}

// Summary is the leave calculator's header.
type Summary struct {
	Allowance int
	Used      int
	Remaining int
	Upcoming  []Day
	Past      []Day
}

// Summarize builds the leave overview for now.
func Summarize(allowance int, days []Day, now time.Time) Summary {
	upcoming, past := Split(days, now)
	return Summary{
		Allowance: allowance,
		Used:      Used(days),
		Remaining: Remaining(allowance, days),
		Upcoming:  upcoming,
		Past:      past,
	}
}

func sortByDate(days []Day, desc bool) {
	sort.SliceStable(days, func(i, j int) bool {
		if desc {
			return days[i].Date.After(days[j].Date)
		}
		return days[i].Date.Before(days[j].Date)
	})
}
