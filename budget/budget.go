// Package budget aggregates the conscript's expense log against earned pay.
package budget

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/palveluspolku/service-engine/generic"
)

// DefaultCategories are offered when adding an expense.
var DefaultCategories = []string{"Ruoka", "Matkat", "Kioski", "Puhelin", "Vaatteet", "Hygienia", "Muu"}

// Entry is one recorded expense.
type Entry struct {
	ID       string
	Date     generic.TimePoint
	Amount   generic.Amount
	Category string
	Notes    string
}

// Store persists expense entries.
type Store interface {
	ListBudgetEntries(ctx context.Context) ([]Entry, error)
	SaveBudgetEntry(ctx context.Context, e Entry) error
	DeleteBudgetEntry(ctx context.Context, id string) error
}

// Validate checks an entry before it is stored.
func (e Entry) Validate() error {
	if !e.Amount.IsPositive() {
		return generic.ErrInvalidAmount
	}
	if strings.TrimSpace(e.Category) == "" {
		return &generic.ValidationError{Field: "category", Message: "must not be empty"}
	}
	if e.Date.IsZero() {
		return &generic.ValidationError{Field: "date", Message: "must be set"}
	}
	return nil
}

// ParseAmount reads user input such as "12,50" or "12.50" as euros.
// Zero, negative and malformed amounts are rejected.
func ParseAmount(s string) (generic.Amount, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return generic.Amount{}, generic.ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return generic.Amount{}, generic.ErrInvalidAmount
	}
	return generic.Amount{Value: d, Unit: generic.UnitEUR}, nil
}

// =============================================================================
// AGGREGATION
// =============================================================================

// Total sums every entry.
func Total(entries []Entry) generic.Amount {
	total := generic.ZeroAmount(generic.UnitEUR)
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

// MonthToDate sums entries dated on or after the first day of now's month.
func MonthToDate(entries []Entry, now time.Time) generic.Amount {
	monthStart := generic.StartOfMonth(generic.DayOf(now))
	total := generic.ZeroAmount(generic.UnitEUR)
	for _, e := range entries {
		if e.Date.AfterOrEqual(monthStart) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// CategoryAmount is the spend for one category.
type CategoryAmount struct {
	Category string
	Amount   generic.Amount
}

// ByCategory groups spend, largest first; ties sort by name.
func ByCategory(entries []Entry) []CategoryAmount {
	sums := make(map[string]generic.Amount)
	for _, e := range entries {
		current, ok := sums[e.Category]
		if !ok {
			current = generic.ZeroAmount(generic.UnitEUR)
		}
		sums[e.Category] = current.Add(e.Amount)
	}

	out := make([]CategoryAmount, 0, len(sums))
	for category, amount := range sums {
		out = append(out, CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Recent returns up to n entries, newest first.
func Recent(entries []Entry, n int) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Summary is the pay tracker's money overview.
type Summary struct {
	Earned     generic.Amount
	Spent      generic.Amount
	MonthSpent generic.Amount
	Left       generic.Amount
	ByCategory []CategoryAmount
}

// Summarize compares spend against what has been earned. Left may be negative.
func Summarize(entries []Entry, earned generic.Amount, now time.Time) Summary {
	spent := Total(entries)
	return Summary{
		Earned:     earned,
		Spent:      spent,
		MonthSpent: MonthToDate(entries, now),
		Left:       earned.Sub(spent),
		ByCategory: ByCategory(entries),
	}
}
