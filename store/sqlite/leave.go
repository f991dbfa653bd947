package sqlite

import (
	"context"
	"fmt"

	"github.com/palveluspolku/service-engine/leave"
)

const tableLeave = "leave_days"

// ListLeaveDays returns days in date order.
func (s *Store) ListLeaveDays(ctx context.Context) ([]leave.Day, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, leave_date, leave_type, approved, notes
		FROM leave_days
		ORDER BY leave_date ASC, rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave days: %w", err)
	}
	defer rows.Close()

	var days []leave.Day
	for rows.Next() {
		var (
			d        leave.Day
			day      string
			approved int
		)
		if err := rows.Scan(&d.ID, &day, &d.Type, &approved, &d.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan leave day: %w", err)
		}
		if d.Date, err = parseDay(day); err != nil {
			return nil, err
		}
		d.Approved = approved == 1
		days = append(days, d)
	}
	return days, rows.Err()
}

// SaveLeaveDays stores a whole range atomically.
func (s *Store) SaveLeaveDays(ctx context.Context, days []leave.Day) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO leave_days (id, leave_date, leave_type, approved, notes)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			leave_date = excluded.leave_date,
			leave_type = excluded.leave_type,
			approved = excluded.approved,
			notes = excluded.notes
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare leave insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range days {
		if _, err := stmt.ExecContext(ctx, d.ID, formatDay(d.Date), string(d.Type), boolInt(d.Approved), d.Notes); err != nil {
			return fmt.Errorf("failed to save leave day %s: %w", d.Date, err)
		}
	}
	return tx.Commit()
}

// DeleteLeaveDay removes one day.
func (s *Store) DeleteLeaveDay(ctx context.Context, id string) error {
	return s.deleteByID(ctx, tableLeave, "leave day", id)
}
