package sqlite

import (
	"context"
	"fmt"
	"time"
)

// MarkMilestoneFired records the milestone and reports whether this call
// inserted it. A second mark keeps the first timestamp and returns false.
func (s *Store) MarkMilestoneFired(ctx context.Context, daysRemaining int, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO fired_milestones (days_remaining, fired_at) VALUES (?, ?)
		ON CONFLICT(days_remaining) DO NOTHING
	`, daysRemaining, at.UTC().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("failed to mark milestone: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to mark milestone: %w", err)
	}
	return n == 1, nil
}
