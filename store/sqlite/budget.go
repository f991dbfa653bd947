package sqlite

import (
	"context"
	"fmt"

	"github.com/palveluspolku/service-engine/budget"
)

const tableBudget = "budget_entries"

// ListBudgetEntries returns entries oldest first.
func (s *Store) ListBudgetEntries(ctx context.Context) ([]budget.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, entry_date, amount, category, notes
		FROM budget_entries
		ORDER BY entry_date ASC, rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget entries: %w", err)
	}
	defer rows.Close()

	var entries []budget.Entry
	for rows.Next() {
		var (
			e           budget.Entry
			day, amount string
		)
		if err := rows.Scan(&e.ID, &day, &amount, &e.Category, &e.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan budget entry: %w", err)
		}
		if e.Date, err = parseDay(day); err != nil {
			return nil, err
		}
		if e.Amount, err = parseEUR(amount); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveBudgetEntry inserts or replaces an entry.
func (s *Store) SaveBudgetEntry(ctx context.Context, e budget.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budget_entries (id, entry_date, amount, category, notes)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			entry_date = excluded.entry_date,
			amount = excluded.amount,
			category = excluded.category,
			notes = excluded.notes
	`, e.ID, formatDay(e.Date), e.Amount.Value.String(), e.Category, e.Notes)
	if err != nil {
		return fmt.Errorf("failed to save budget entry: %w", err)
	}
	return nil
}

// DeleteBudgetEntry removes an entry.
func (s *Store) DeleteBudgetEntry(ctx context.Context, id string) error {
	return s.deleteByID(ctx, tableBudget, "budget entry", id)
}
