package sqlite

import (
	"context"
	"fmt"

	"github.com/palveluspolku/service-engine/fitness"
)

const tableCooper = "cooper_tests"

// ListCooperTests returns the most recent test first.
func (s *Store) ListCooperTests(ctx context.Context) ([]fitness.CooperTest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, test_date, distance_meters, notes
		FROM cooper_tests
		ORDER BY test_date DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cooper tests: %w", err)
	}
	defer rows.Close()

	var tests []fitness.CooperTest
	for rows.Next() {
		var (
			c   fitness.CooperTest
			day string
		)
		if err := rows.Scan(&c.ID, &day, &c.DistanceMeters, &c.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan cooper test: %w", err)
		}
		if c.Date, err = parseDay(day); err != nil {
			return nil, err
		}
		tests = append(tests, c)
	}
	return tests, rows.Err()
}

// SaveCooperTest inserts or replaces a test.
func (s *Store) SaveCooperTest(ctx context.Context, c fitness.CooperTest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cooper_tests (id, test_date, distance_meters, notes)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			test_date = excluded.test_date,
			distance_meters = excluded.distance_meters,
			notes = excluded.notes
	`, c.ID, formatDay(c.Date), c.DistanceMeters, c.Notes)
	if err != nil {
		return fmt.Errorf("failed to save cooper test: %w", err)
	}
	return nil
}

// DeleteCooperTest removes a test.
func (s *Store) DeleteCooperTest(ctx context.Context, id string) error {
	return s.deleteByID(ctx, tableCooper, "cooper test", id)
}
