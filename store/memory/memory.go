// Package memory provides an in-memory implementation of every store
// contract (for testing/dev).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/palveluspolku/service-engine/budget"
	"github.com/palveluspolku/service-engine/checklist"
	"github.com/palveluspolku/service-engine/fitness"
	"github.com/palveluspolku/service-engine/generic"
	"github.com/palveluspolku/service-engine/leave"
	"github.com/palveluspolku/service-engine/profile"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Store keeps rows in insertion order. Saves upsert by ID.
type Store struct {
	mu         sync.RWMutex
	profile    profile.Profile
	budget     []budget.Entry
	leave      []leave.Day
	checklists []checklist.Item
	equipment  []checklist.Equipment
	cooper     []fitness.CooperTest
	milestones map[int]time.Time
}

func New() *Store {
	return &Store{milestones: make(map[int]time.Time)}
}

// upsert replaces the row with the same ID or appends it.
func upsert[T any](rows []T, row T, id func(T) string) []T {
	for i := range rows {
		if id(rows[i]) == id(row) {
			rows[i] = row
			return rows
		}
	}
	return append(rows, row)
}

// remove drops the row with id, reporting whether it existed.
func remove[T any](rows []T, want string, id func(T) string) ([]T, bool) {
	for i := range rows {
		if id(rows[i]) == want {
			return append(rows[:i], rows[i+1:]...), true
		}
	}
	return rows, false
}

// =============================================================================
// PROFILE
// =============================================================================

func (s *Store) GetProfile(_ context.Context) (profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile, nil
}

func (s *Store) SaveProfile(_ context.Context, p profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	return nil
}

// =============================================================================
// BUDGET
// =============================================================================

func budgetID(e budget.Entry) string { return e.ID }

// ListBudgetEntries returns entries oldest first.
func (s *Store) ListBudgetEntries(_ context.Context) ([]budget.Entry, error) {
	s.mu.RLock()
	out := append([]budget.Entry(nil), s.budget...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *Store) SaveBudgetEntry(_ context.Context, e budget.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budget = upsert(s.budget, e, budgetID)
	return nil
}

func (s *Store) DeleteBudgetEntry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	if s.budget, ok = remove(s.budget, id, budgetID); !ok {
		return &generic.NotFoundError{Kind: "budget entry", ID: id}
	}
	return nil
}

// =============================================================================
// LEAVE
// =============================================================================

func leaveID(d leave.Day) string { return d.ID }

// ListLeaveDays returns days in date order.
func (s *Store) ListLeaveDays(_ context.Context) ([]leave.Day, error) {
	s.mu.RLock()
	out := append([]leave.Day(nil), s.leave...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// SaveLeaveDays stores all days under one lock.
func (s *Store) SaveLeaveDays(_ context.Context, days []leave.Day) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range days {
		s.leave = upsert(s.leave, d, leaveID)
	}
	return nil
}

func (s *Store) DeleteLeaveDay(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	if s.leave, ok = remove(s.leave, id, leaveID); !ok {
		return &generic.NotFoundError{Kind: "leave day", ID: id}
	}
	return nil
}

// =============================================================================
// CHECKLISTS
// =============================================================================

func itemID(i checklist.Item) string { return i.ID }

func (s *Store) ListChecklistItems(_ context.Context, kind checklist.Kind) ([]checklist.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []checklist.Item
	for _, it := range s.checklists {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *Store) SaveChecklistItems(_ context.Context, items []checklist.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		s.checklists = upsert(s.checklists, it, itemID)
	}
	return nil
}

func (s *Store) SeedChecklistItems(_ context.Context, kind checklist.Kind, items []checklist.Item) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.checklists {
		if it.Kind == kind {
			return false, nil
		}
	}
	for _, it := range items {
		s.checklists = upsert(s.checklists, it, itemID)
	}
	return true, nil
}

func (s *Store) ToggleChecklistItem(_ context.Context, id string) (checklist.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.checklists {
		if s.checklists[i].ID == id {
			s.checklists[i].Done = !s.checklists[i].Done
			return s.checklists[i], nil
		}
	}
	return checklist.Item{}, &generic.NotFoundError{Kind: "checklist item", ID: id}
}

// ResetChecklist unchecks every item of kind.
func (s *Store) ResetChecklist(_ context.Context, kind checklist.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.checklists {
		if s.checklists[i].Kind == kind {
			s.checklists[i].Done = false
		}
	}
	return nil
}

func (s *Store) DeleteChecklistItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	if s.checklists, ok = remove(s.checklists, id, itemID); !ok {
		return &generic.NotFoundError{Kind: "checklist item", ID: id}
	}
	return nil
}

// =============================================================================
// EQUIPMENT
// =============================================================================

func equipmentID(e checklist.Equipment) string { return e.ID }

func (s *Store) ListEquipment(_ context.Context) ([]checklist.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]checklist.Equipment(nil), s.equipment...), nil
}

func (s *Store) SaveEquipment(_ context.Context, items []checklist.Equipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range items {
		s.equipment = upsert(s.equipment, e, equipmentID)
	}
	return nil
}

func (s *Store) SeedEquipment(_ context.Context, items []checklist.Equipment) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.equipment) > 0 {
		return false, nil
	}
	s.equipment = append(s.equipment, items...)
	return true, nil
}

func (s *Store) DeleteEquipment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	if s.equipment, ok = remove(s.equipment, id, equipmentID); !ok {
		return &generic.NotFoundError{Kind: "equipment", ID: id}
	}
	return nil
}

// =============================================================================
// COOPER TESTS
// =============================================================================

func cooperID(c fitness.CooperTest) string { return c.ID }

// ListCooperTests returns the most recent test first.
func (s *Store) ListCooperTests(_ context.Context) ([]fitness.CooperTest, error) {
	s.mu.RLock()
	out := append([]fitness.CooperTest(nil), s.cooper...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *Store) SaveCooperTest(_ context.Context, c fitness.CooperTest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cooper = upsert(s.cooper, c, cooperID)
	return nil
}

func (s *Store) DeleteCooperTest(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	if s.cooper, ok = remove(s.cooper, id, cooperID); !ok {
		return &generic.NotFoundError{Kind: "cooper test", ID: id}
	}
	return nil
}

// =============================================================================
// MILESTONES
// =============================================================================

// MarkMilestoneFired keeps the first timestamp and reports whether this
// call set it.
func (s *Store) MarkMilestoneFired(_ context.Context, daysRemaining int, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.milestones[daysRemaining]; ok {
		return false, nil
	}
	s.milestones[daysRemaining] = at
	return true, nil
}
