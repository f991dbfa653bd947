package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/palveluspolku/service-engine/checklist"
	"github.com/palveluspolku/service-engine/generic"
)

const (
	tableChecklist = "checklist_items"
	tableEquipment = "equipment"
)

// =============================================================================
// CHECKLIST STORE
// =============================================================================

// ListChecklistItems returns the items of kind in insertion order.
func (s *Store) ListChecklistItems(ctx context.Context, kind checklist.Kind) ([]checklist.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, title, category, done, custom, due_weeks_before
		FROM checklist_items
		WHERE kind = ?
		ORDER BY rowid ASC
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to query checklist: %w", err)
	}
	defer rows.Close()

	var items []checklist.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (checklist.Item, error) {
	var (
		it           checklist.Item
		done, custom int
		due          sql.NullInt64
	)
	if err := row.Scan(&it.ID, &it.Kind, &it.Title, &it.Category, &done, &custom, &due); err != nil {
		return it, fmt.Errorf("failed to scan checklist item: %w", err)
	}
	it.Done = done == 1
	it.Custom = custom == 1
	if due.Valid {
		w := int(due.Int64)
		it.DueWeeksBefore = &w
	}
	return it, nil
}

// SaveChecklistItems inserts or replaces items in one transaction.
func (s *Store) SaveChecklistItems(ctx context.Context, items []checklist.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertChecklistItems(ctx, tx, items); err != nil {
		return err
	}
	return tx.Commit()
}

// SeedChecklistItems inserts items only while kind has no rows.
func (s *Store) SeedChecklistItems(ctx context.Context, kind checklist.Kind, items []checklist.Item) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM checklist_items WHERE kind = ?`, string(kind)).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to count checklist: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	if err := insertChecklistItems(ctx, tx, items); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit checklist seed: %w", err)
	}
	return true, nil
}

func insertChecklistItems(ctx context.Context, tx *sql.Tx, items []checklist.Item) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO checklist_items (id, kind, title, category, done, custom, due_weeks_before)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			title = excluded.title,
			category = excluded.category,
			done = excluded.done,
			custom = excluded.custom,
			due_weeks_before = excluded.due_weeks_before
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare checklist insert: %w", err)
	}
	defer stmt.Close()

	for _, it := range items {
		var due sql.NullInt64
		if it.DueWeeksBefore != nil {
			due = sql.NullInt64{Int64: int64(*it.DueWeeksBefore), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, it.ID, string(it.Kind), it.Title, it.Category,
			boolInt(it.Done), boolInt(it.Custom), due); err != nil {
			return fmt.Errorf("failed to save checklist item: %w", err)
		}
	}
	return nil
}

// ToggleChecklistItem flips Done and returns the updated item.
func (s *Store) ToggleChecklistItem(ctx context.Context, id string) (checklist.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE checklist_items SET done = 1 - done WHERE id = ?`, id)
	if err != nil {
		return checklist.Item{}, fmt.Errorf("failed to toggle checklist item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return checklist.Item{}, &generic.NotFoundError{Kind: "checklist item", ID: id}
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, title, category, done, custom, due_weeks_before
		FROM checklist_items WHERE id = ?
	`, id)
	return scanItem(row)
}

// ResetChecklist unchecks every item of kind.
func (s *Store) ResetChecklist(ctx context.Context, kind checklist.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `UPDATE checklist_items SET done = 0 WHERE kind = ?`, string(kind)); err != nil {
		return fmt.Errorf("failed to reset checklist: %w", err)
	}
	return nil
}

// DeleteChecklistItem removes an item.
func (s *Store) DeleteChecklistItem(ctx context.Context, id string) error {
	return s.deleteByID(ctx, tableChecklist, "checklist item", id)
}

// =============================================================================
// EQUIPMENT STORE
// =============================================================================

// ListEquipment returns the inventory in insertion order.
func (s *Store) ListEquipment(ctx context.Context) ([]checklist.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, serial_number, issued, returned, issue_date, return_date, notes
		FROM equipment
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipment: %w", err)
	}
	defer rows.Close()

	var items []checklist.Equipment
	for rows.Next() {
		var (
			e                   checklist.Equipment
			issued, returned    int
			issueDay, returnDay sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.SerialNumber,
			&issued, &returned, &issueDay, &returnDay, &e.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		e.Issued = issued == 1
		e.Returned = returned == 1
		if e.IssueDate, err = parseOptionalDay(issueDay); err != nil {
			return nil, err
		}
		if e.ReturnDate, err = parseOptionalDay(returnDay); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// SaveEquipment inserts or replaces kit in one transaction.
func (s *Store) SaveEquipment(ctx context.Context, items []checklist.Equipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertEquipment(ctx, tx, items); err != nil {
		return err
	}
	return tx.Commit()
}

// SeedEquipment inserts items only while the inventory is empty.
func (s *Store) SeedEquipment(ctx context.Context, items []checklist.Equipment) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM equipment`).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to count equipment: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	if err := insertEquipment(ctx, tx, items); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit equipment seed: %w", err)
	}
	return true, nil
}

func insertEquipment(ctx context.Context, tx *sql.Tx, items []checklist.Equipment) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO equipment (id, name, category, serial_number, issued, returned, issue_date, return_date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			serial_number = excluded.serial_number,
			issued = excluded.issued,
			returned = excluded.returned,
			issue_date = excluded.issue_date,
			return_date = excluded.return_date,
			notes = excluded.notes
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare equipment insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range items {
		if _, err := stmt.ExecContext(ctx, e.ID, e.Name, e.Category, e.SerialNumber,
			boolInt(e.Issued), boolInt(e.Returned),
			formatOptionalDay(e.IssueDate), formatOptionalDay(e.ReturnDate), e.Notes); err != nil {
			return fmt.Errorf("failed to save equipment: %w", err)
		}
	}
	return nil
}

// DeleteEquipment removes an item of kit.
func (s *Store) DeleteEquipment(ctx context.Context, id string) error {
	return s.deleteByID(ctx, tableEquipment, "equipment", id)
}
