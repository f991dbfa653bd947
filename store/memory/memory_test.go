package memory_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palveluspolku/service-engine/budget"
	"github.com/palveluspolku/service-engine/checklist"
	"github.com/palveluspolku/service-engine/fitness"
	"github.com/palveluspolku/service-engine/generic"
	"github.com/palveluspolku/service-engine/leave"
	"github.com/palveluspolku/service-engine/store/memory"
)

func TestBudget_UpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	e := budget.Entry{ID: "a", Date: generic.NewTimePoint(2025, time.March, 2), Amount: generic.NewAmountFromString("3.20", generic.UnitEUR), Category: "Kioski"}
	require.NoError(t, s.SaveBudgetEntry(ctx, e))
	require.NoError(t, s.SaveBudgetEntry(ctx, budget.Entry{ID: "b", Date: generic.NewTimePoint(2025, time.March, 1), Amount: generic.NewAmountFromString("1", generic.UnitEUR), Category: "Muu"}))

	e.Notes = "kahvi"
	require.NoError(t, s.SaveBudgetEntry(ctx, e))

	got, err := s.ListBudgetEntries(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "kahvi", got[1].Notes)

	require.NoError(t, s.DeleteBudgetEntry(ctx, "a"))
	assert.True(t, generic.IsNotFound(s.DeleteBudgetEntry(ctx, "a")))
}

func TestChecklist_ToggleAndReset(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, s.SaveChecklistItems(ctx, []checklist.Item{
		{ID: "1", Kind: checklist.KindPacking, Title: "Sukat"},
		{ID: "2", Kind: checklist.KindPreparation, Title: "Juoksu"},
	}))

	it, err := s.ToggleChecklistItem(ctx, "1")
	require.NoError(t, err)
	assert.True(t, it.Done)
	_, err = s.ToggleChecklistItem(ctx, "2")
	require.NoError(t, err)

	require.NoError(t, s.ResetChecklist(ctx, checklist.KindPacking))

	packing, _ := s.ListChecklistItems(ctx, checklist.KindPacking)
	prep, _ := s.ListChecklistItems(ctx, checklist.KindPreparation)
	assert.False(t, packing[0].Done)
	assert.True(t, prep[0].Done, "reset is per kind")

	_, err = s.ToggleChecklistItem(ctx, "missing")
	assert.True(t, generic.IsNotFound(err))
}

func TestSeedDefaults_ConcurrentCallsSeedOnce(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	var seeded, kitSeeded atomic.Int32
	var wg sync.WaitGroup
	for g := 0; g < 20; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			n := 0
			newID := func() string {
				n++
				return fmt.Sprintf("g%d-%d", g, n)
			}
			ok, err := s.SeedChecklistItems(ctx, checklist.KindPacking, checklist.DefaultItems(checklist.KindPacking, newID))
			assert.NoError(t, err)
			if ok {
				seeded.Add(1)
			}
			ok, err = s.SeedEquipment(ctx, checklist.DefaultEquipment(newID))
			assert.NoError(t, err)
			if ok {
				kitSeeded.Add(1)
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, int32(1), seeded.Load())
	assert.Equal(t, int32(1), kitSeeded.Load())

	packing, _ := s.ListChecklistItems(ctx, checklist.KindPacking)
	assert.Len(t, packing, len(checklist.DefaultItems(checklist.KindPacking, func() string { return "x" })))
	kit, _ := s.ListEquipment(ctx)
	assert.Len(t, kit, len(checklist.DefaultEquipment(func() string { return "x" })))

	ok, err := s.SeedChecklistItems(ctx, checklist.KindPreparation, checklist.DefaultItems(checklist.KindPreparation, func() string { return "p" }))
	require.NoError(t, err)
	assert.True(t, ok, "seeding is per kind")
}

func TestLeaveAndCooper_Ordering(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, s.SaveLeaveDays(ctx, []leave.Day{
		{ID: "late", Date: generic.NewTimePoint(2025, time.May, 2)},
		{ID: "early", Date: generic.NewTimePoint(2025, time.May, 1)},
	}))
	days, _ := s.ListLeaveDays(ctx)
	assert.Equal(t, "early", days[0].ID)

	require.NoError(t, s.SaveCooperTest(ctx, fitness.CooperTest{ID: "old", Date: generic.NewTimePoint(2025, time.January, 1), DistanceMeters: 2200}))
	require.NoError(t, s.SaveCooperTest(ctx, fitness.CooperTest{ID: "new", Date: generic.NewTimePoint(2025, time.March, 1), DistanceMeters: 2500}))
	tests, _ := s.ListCooperTests(ctx)
	assert.Equal(t, "new", tests[0].ID)
}

func TestMilestones_ConcurrentMarks(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	var (
		wg       sync.WaitGroup
		inserted atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.MarkMilestoneFired(ctx, 50, time.Now())
			assert.NoError(t, err)
			if ok {
				inserted.Add(1)
			}
		}()
	}
	wg.Wait()

	// Exactly one mark wins
	assert.Equal(t, int32(1), inserted.Load())

	ok, err := s.MarkMilestoneFired(ctx, 150, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)
}
