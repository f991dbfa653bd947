package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/palveluspolku/service-engine/profile"
)

// GetProfile returns the stored profile, or an empty one before the first
// save.
func (s *Store) GetProfile(ctx context.Context) (profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		p          profile.Profile
		start, end sql.NullString
		supplement int
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT start_date, end_date, garrison, applies_supplement, leave_allowance
		FROM profile WHERE id = 1
	`).Scan(&start, &end, &p.Garrison, &supplement, &p.LeaveAllowance)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.Profile{}, nil
	}
	if err != nil {
		return profile.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	if p.StartDate, err = parseOptionalDay(start); err != nil {
		return profile.Profile{}, err
	}
	if p.EndDate, err = parseOptionalDay(end); err != nil {
		return profile.Profile{}, err
	}
	p.AppliesSupplement = supplement == 1
	return p, nil
}

// SaveProfile replaces the profile.
func (s *Store) SaveProfile(ctx context.Context, p profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profile (id, start_date, end_date, garrison, applies_supplement, leave_allowance, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			garrison = excluded.garrison,
			applies_supplement = excluded.applies_supplement,
			leave_allowance = excluded.leave_allowance,
			updated_at = excluded.updated_at
	`,
		formatOptionalDay(p.StartDate), formatOptionalDay(p.EndDate), p.Garrison,
		boolInt(p.AppliesSupplement), p.LeaveAllowance, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
