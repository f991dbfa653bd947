/*
Package checklist models the pre-service checklists and the equipment
inventory.

PURPOSE:
  Packing and preparation lists share one item shape; they differ only
  in Kind and category order. Preparation items may carry a due time in
  weeks before the service starts. Equipment tracks issue and return.

SEE ALSO:
  - defaults.go: Seed items for a fresh install
  - timeline/timeline.go: WeeksUntilStart feeds IsDue
*/
package checklist

import (
	"context"
	"sort"
	"strings"

	"github.com/palveluspolku/service-engine/generic"
)

// Kind selects a checklist.
type Kind string

const (
	KindPacking     Kind = "packing"
	KindPreparation Kind = "preparation"
)

// ParseKind validates a kind from a URL or form.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindPacking, KindPreparation:
		return Kind(s), nil
	}
	return "", &generic.ValidationError{Field: "kind", Message: "unknown checklist " + s}
}

// Item is one checklist row.
type Item struct {
	ID             string
	Kind           Kind
	Title          string
	Category       string
	Done           bool
	Custom         bool
	DueWeeksBefore *int
}

// Validate checks a user-added item.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return &generic.ValidationError{Field: "title", Message: "must not be empty"}
	}
	if i.DueWeeksBefore != nil && *i.DueWeeksBefore < 0 {
		return &generic.ValidationError{Field: "due_weeks_before", Message: "must not be negative"}
	}
	return nil
}

// IsDue reports whether a preparation task should be done by now, i.e.
// the service is at most DueWeeksBefore weeks away.
func (i Item) IsDue(weeksUntilStart int) bool {
	return i.DueWeeksBefore != nil && *i.DueWeeksBefore > 0 && weeksUntilStart <= *i.DueWeeksBefore
}

// Store persists checklist items.
type Store interface {
	ListChecklistItems(ctx context.Context, kind Kind) ([]Item, error)
	SaveChecklistItems(ctx context.Context, items []Item) error
	// SeedChecklistItems saves items only while kind has no rows, and
	// reports whether it did. The emptiness check and the insert are atomic.
	SeedChecklistItems(ctx context.Context, kind Kind, items []Item) (bool, error)
	ToggleChecklistItem(ctx context.Context, id string) (Item, error)
	ResetChecklist(ctx context.Context, kind Kind) error
	DeleteChecklistItem(ctx context.Context, id string) error
}

// =============================================================================
// PROGRESS
// =============================================================================

// Progress is done over total for a list.
type Progress struct {
	Done  int
	Total int
}

// Fraction is Done/Total, or 0 for an empty list.
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total)
}

// ProgressOf counts completed items.
func ProgressOf(items []Item) Progress {
	p := Progress{Total: len(items)}
	for _, i := range items {
		if i.Done {
			p.Done++
		}
	}
	return p
}

// CategoryOrder is the display order of each kind. Categories not listed
// follow in alphabetical order.
var CategoryOrder = map[Kind][]string{
	KindPacking:     {"Pakollinen", "Lääkkeet", "Vaatteet", "Hygienia", "Hyödylliset", "Ajanviete", "Muut"},
	KindPreparation: {"Heti", "Fyysinen valmistautuminen", "Hallinnolliset asiat", "Taloudelliset", "Viimeinen viikko", "Henkilökohtaiset"},
}

// Section is a category heading with its items.
type Section struct {
	Category string
	Items    []Item
}

// Group buckets items by category in display order, skipping empty ones.
func Group(kind Kind, items []Item) []Section {
	buckets := make(map[string][]Item)
	present := make([]string, 0)
	for _, it := range items {
		if _, ok := buckets[it.Category]; !ok {
			present = append(present, it.Category)
		}
		buckets[it.Category] = append(buckets[it.Category], it)
	}

	var out []Section
	for _, c := range orderCategories(CategoryOrder[kind], present) {
		out = append(out, Section{Category: c, Items: buckets[c]})
	}
	return out
}

// orderCategories keeps the present categories, known ones first in order.
func orderCategories(order, present []string) []string {
	has := make(map[string]bool, len(present))
	for _, c := range present {
		has[c] = true
	}

	var out []string
	known := make(map[string]bool, len(order))
	for _, c := range order {
		known[c] = true
		if has[c] {
			out = append(out, c)
		}
	}

	var extra []string
	for _, c := range present {
		if !known[c] {
			extra = append(extra, c)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}
