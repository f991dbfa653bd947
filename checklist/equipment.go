package checklist

import (
	"context"
	"strings"

	"github.com/palveluspolku/service-engine/generic"
)

// EquipmentCategoryOrder is the inventory's display order.
var EquipmentCategoryOrder = []string{"Aseet", "Suojavarusteet", "Kantamukset", "Vaatteet", "Muu"}

// Equipment is an item of issued kit.
type Equipment struct {
	ID           string
	Name         string
	Category     string
	SerialNumber string
	Issued       bool
	Returned     bool
	IssueDate    *generic.TimePoint
	ReturnDate   *generic.TimePoint
	Notes        string
}

// Validate checks a user-added item.
func (e Equipment) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return &generic.ValidationError{Field: "name", Message: "must not be empty"}
	}
	if e.IssueDate != nil && e.ReturnDate != nil && e.ReturnDate.Before(*e.IssueDate) {
		return generic.ErrInvalidPeriod
	}
	return nil
}

// InHand is true for kit issued and not yet returned.
func (e Equipment) InHand() bool {
	return e.Issued && !e.Returned
}

// EquipmentStore persists the inventory.
type EquipmentStore interface {
	ListEquipment(ctx context.Context) ([]Equipment, error)
	SaveEquipment(ctx context.Context, items []Equipment) error
	// SeedEquipment saves items only while the inventory is empty.
	SeedEquipment(ctx context.Context, items []Equipment) (bool, error)
	DeleteEquipment(ctx context.Context, id string) error
}

// Inventory is the equipment header counts.
type Inventory struct {
	Total    int
	InHand   int
	Returned int
}

// CountInventory tallies the inventory.
func CountInventory(items []Equipment) Inventory {
	inv := Inventory{Total: len(items)}
	for _, e := range items {
		if e.InHand() {
			inv.InHand++
		}
		if e.Returned {
			inv.Returned++
		}
	}
	return inv
}

// EquipmentSection is a category heading with its kit.
type EquipmentSection struct {
	Category string
	Items    []Equipment
}

// GroupEquipment buckets kit by category in display order.
func GroupEquipment(items []Equipment) []EquipmentSection {
	buckets := make(map[string][]Equipment)
	var present []string
	for _, e := range items {
		if _, ok := buckets[e.Category]; !ok {
			present = append(present, e.Category)
		}
		buckets[e.Category] = append(buckets[e.Category], e)
	}

	var out []EquipmentSection
	for _, c := range orderCategories(EquipmentCategoryOrder, present) {
		out = append(out, EquipmentSection{Category: c, Items: buckets[c]})
	}
	return out
}
