/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Persists the profile and the user's logs (budget, leave, checklists,
  equipment, Cooper tests) plus the fired-milestone markers.

INTERFACES IMPLEMENTED:
  profile.Store:            Single-row profile
  budget.Store:             Expenses
  leave.Store:              Leave days
  checklist.Store:          Packing and preparation items
  checklist.EquipmentStore: Issued kit
  fitness.Store:            Cooper tests
  timeline.MilestoneStore:  One-time milestone markers

STORAGE FORMAT:
  Calendar days are TEXT in YYYY-MM-DD. Money is TEXT holding the full
  decimal, never a float. Booleans are INTEGER 0/1.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time, serialized by mu

MIGRATION:
  Versioned migrations live in migrations/ and are embedded into the
  binary. New() applies them with golang-migrate before returning.

USAGE:
  store, err := sqlite.New("./data/palvelus.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/palveluspolku/service-engine/generic"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (creating if needed) the database file and migrates it.
func New(dbPath string) (*Store, error) {
	dsn := dbPath + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"

	if err := RunMigrations(dsn); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// COLUMN HELPERS
// =============================================================================

func formatDay(tp generic.TimePoint) string {
	return tp.String()
}

func parseDay(s string) (generic.TimePoint, error) {
	return generic.ParseDate(s, time.UTC)
}

func formatOptionalDay(tp *generic.TimePoint) sql.NullString {
	if tp == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: tp.String(), Valid: true}
}

func parseOptionalDay(ns sql.NullString) (*generic.TimePoint, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	tp, err := parseDay(ns.String)
	if err != nil {
		return nil, err
	}
	return &tp, nil
}

func parseEUR(s string) (generic.Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return generic.Amount{}, fmt.Errorf("failed to parse amount %q: %w", s, err)
	}
	return generic.Amount{Value: d, Unit: generic.UnitEUR}, nil
}

// deleteByID removes one row, reporting NotFoundError when nothing matched.
// table is always a package constant.
func (s *Store) deleteByID(ctx context.Context, table, kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	if n == 0 {
		return &generic.NotFoundError{Kind: kind, ID: id}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
