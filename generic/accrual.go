package generic

// =============================================================================
// ACCRUAL SCHEDULE - Interface for how earnings accumulate
// =============================================================================

// AccrualSchedule generates accrual events for a time range.
// Implementations define the business logic (daily allowance, bonuses, ...).
type AccrualSchedule interface {
	// GenerateAccruals returns accrual events in [from, to].
	GenerateAccruals(from, to TimePoint) []AccrualEvent

	// IsDeterministic returns true if future accruals can be predicted.
	// A daily allowance with known tiers is deterministic; anything driven
	// by later user input is not.
	IsDeterministic() bool
}

// AccrualEvent represents a single accrual occurrence.
type AccrualEvent struct {
	At     TimePoint
	Amount Amount
	Reason string
}

// TotalAccrued sums the events that occur on or before at.
func TotalAccrued(events []AccrualEvent, unit Unit, at TimePoint) Amount {
	total := ZeroAmount(unit)
	for _, e := range events {
		if e.At.After(at) {
			continue
		}
		total = total.Add(e.Amount)
	}
	return total
}
