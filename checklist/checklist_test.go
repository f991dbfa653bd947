package checklist_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palveluspolku/service-engine/checklist"
	"github.com/palveluspolku/service-engine/generic"
)

func ids(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func weeks(n int) *int { return &n }

func TestParseKind(t *testing.T) {
	k, err := checklist.ParseKind("packing")
	require.NoError(t, err)
	assert.Equal(t, checklist.KindPacking, k)

	_, err = checklist.ParseKind("groceries")
	assert.True(t, generic.IsClientError(err))
}

func TestItem_IsDue(t *testing.T) {
	tests := []struct {
		name  string
		due   *int
		weeks int
		want  bool
	}{
		{"no due date", nil, 0, false},
		{"zero weeks means no deadline", weeks(0), 0, false},
		{"far away", weeks(6), 10, false},
		{"exactly on the boundary", weeks(6), 6, true},
		{"past the boundary", weeks(6), 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := checklist.Item{Title: "x", DueWeeksBefore: tt.due}
			assert.Equal(t, tt.want, it.IsDue(tt.weeks))
		})
	}
}

func TestItem_Validate(t *testing.T) {
	assert.NoError(t, checklist.Item{Title: "Sukat"}.Validate())
	assert.True(t, generic.IsClientError(checklist.Item{Title: "   "}.Validate()))
	assert.True(t, generic.IsClientError(checklist.Item{Title: "x", DueWeeksBefore: weeks(-1)}.Validate()))
}

func TestDefaultItems(t *testing.T) {
	packing := checklist.DefaultItems(checklist.KindPacking, ids("p"))
	require.NotEmpty(t, packing)
	assert.Equal(t, "p-1", packing[0].ID)
	for _, it := range packing {
		assert.Equal(t, checklist.KindPacking, it.Kind)
		assert.Nil(t, it.DueWeeksBefore)
		assert.False(t, it.Custom)
	}

	prep := checklist.DefaultItems(checklist.KindPreparation, ids("q"))
	require.NotEmpty(t, prep)
	require.NotNil(t, prep[0].DueWeeksBefore)
	assert.Equal(t, 12, *prep[0].DueWeeksBefore)
	assert.Equal(t, "Heti", prep[0].Category)
}

func TestProgressOf(t *testing.T) {
	items := []checklist.Item{{Done: true}, {Done: false}, {Done: true}, {Done: false}}

	p := checklist.ProgressOf(items)
	assert.Equal(t, 2, p.Done)
	assert.Equal(t, 4, p.Total)
	assert.InDelta(t, 0.5, p.Fraction(), 1e-9)

	assert.Zero(t, checklist.ProgressOf(nil).Fraction())
}

func TestGroup_KnownOrderThenAlphabetical(t *testing.T) {
	items := []checklist.Item{
		{ID: "1", Category: "Vaatteet"},
		{ID: "2", Category: "Zzz"},
		{ID: "3", Category: "Pakollinen"},
		{ID: "4", Category: "Aaa"},
		{ID: "5", Category: "Vaatteet"},
	}

	sections := checklist.Group(checklist.KindPacking, items)

	require.Len(t, sections, 4)
	assert.Equal(t, "Pakollinen", sections[0].Category)
	assert.Equal(t, "Vaatteet", sections[1].Category)
	assert.Len(t, sections[1].Items, 2)
	assert.Equal(t, "Aaa", sections[2].Category)
	assert.Equal(t, "Zzz", sections[3].Category)
}

func TestEquipment_Inventory(t *testing.T) {
	kit := checklist.DefaultEquipment(ids("e"))
	require.NotEmpty(t, kit)

	kit[0].Issued = true
	kit[1].Issued = true
	kit[2].Issued = true
	kit[2].Returned = true

	inv := checklist.CountInventory(kit)
	assert.Equal(t, len(kit), inv.Total)
	assert.Equal(t, 2, inv.InHand)
	assert.Equal(t, 1, inv.Returned)

	sections := checklist.GroupEquipment(append(kit, checklist.Equipment{Name: "Lapio", Category: "Muu"}))
	assert.Equal(t, "Aseet", sections[0].Category)
	assert.Equal(t, "Muu", sections[len(sections)-1].Category)
}

func TestEquipment_Validate(t *testing.T) {
	issued := generic.NewTimePoint(2025, 3, 10)
	returned := generic.NewTimePoint(2025, 3, 1)

	assert.True(t, generic.IsClientError(checklist.Equipment{}.Validate()))
	assert.ErrorIs(t, checklist.Equipment{Name: "Kypärä", IssueDate: &issued, ReturnDate: &returned}.Validate(), generic.ErrInvalidPeriod)
}
