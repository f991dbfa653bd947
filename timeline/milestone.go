package timeline

import (
	"context"
	"fmt"
	"time"
)

// DefaultMilestones are the days-remaining counts that trigger a one-time
// notification.
var DefaultMilestones = []int{150, 50, 1}

// IsMilestoneDay reports whether daysUntilEnd is exactly one of milestones.
func IsMilestoneDay(daysUntilEnd int, milestones []int) bool {
	for _, m := range milestones {
		if m == daysUntilEnd {
			return true
		}
	}
	return false
}

// =============================================================================
// MILESTONE TRACKER - One-time firing per install
// =============================================================================

// MilestoneStore remembers which milestones have already fired.
// MarkMilestoneFired records a milestone and reports whether this call
// recorded it. Only one of any number of concurrent marks may return true.
type MilestoneStore interface {
	MarkMilestoneFired(ctx context.Context, daysRemaining int, at time.Time) (bool, error)
}

// MilestoneTracker fires each milestone at most once.
type MilestoneTracker struct {
	Store      MilestoneStore
	Milestones []int
}

// NewMilestoneTracker uses DefaultMilestones when milestones is empty.
func NewMilestoneTracker(store MilestoneStore, milestones []int) *MilestoneTracker {
	if len(milestones) == 0 {
		milestones = DefaultMilestones
	}
	return &MilestoneTracker{Store: store, Milestones: milestones}
}

// Check returns the milestone and true the first time daysUntilEnd hits one.
// Later checks with the same count return false, including checks racing
// with the first one.
func (t *MilestoneTracker) Check(ctx context.Context, daysUntilEnd int, now time.Time) (int, bool, error) {
	if !IsMilestoneDay(daysUntilEnd, t.Milestones) {
		return 0, false, nil
	}

	inserted, err := t.Store.MarkMilestoneFired(ctx, daysUntilEnd, now)
	if err != nil {
		return 0, false, fmt.Errorf("mark milestone %d: %w", daysUntilEnd, err)
	}
	if !inserted {
		return 0, false, nil
	}
	return daysUntilEnd, true, nil
}
