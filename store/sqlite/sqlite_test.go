package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
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
	"github.com/palveluspolku/service-engine/profile"
	"github.com/palveluspolku/service-engine/store/sqlite"
	"github.com/palveluspolku/service-engine/timeline"
)

var (
	_ profile.Store            = (*sqlite.Store)(nil)
	_ budget.Store             = (*sqlite.Store)(nil)
	_ leave.Store              = (*sqlite.Store)(nil)
	_ checklist.Store          = (*sqlite.Store)(nil)
	_ checklist.EquipmentStore = (*sqlite.Store)(nil)
	_ fitness.Store            = (*sqlite.Store)(nil)
	_ timeline.MilestoneStore  = (*sqlite.Store)(nil)
)

func seq(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNew_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")

	first, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestProfile_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	empty, err := s.GetProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, empty.StartDate)

	start := generic.NewTimePoint(2025, time.January, 6)
	require.NoError(t, s.SaveProfile(ctx, profile.Profile{
		StartDate:         &start,
		Garrison:          "Parola",
		AppliesSupplement: true,
		LeaveAllowance:    12,
	}))

	got, err := s.GetProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, "2025-01-06", got.StartDate.String())
	assert.Nil(t, got.EndDate)
	assert.Equal(t, "Parola", got.Garrison)
	assert.True(t, got.AppliesSupplement)
	assert.Equal(t, 12, got.LeaveAllowance)
}

func TestBudget_KeepsDecimalPrecision(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.SaveBudgetEntry(ctx, budget.Entry{
		ID:       "a",
		Date:     generic.NewTimePoint(2025, time.March, 3),
		Amount:   generic.NewAmountFromString("0.105", generic.UnitEUR),
		Category: "Kioski",
	}))

	entries, err := s.ListBudgetEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "0.105", entries[0].Amount.Value.String())
	assert.Equal(t, generic.UnitEUR, entries[0].Amount.Unit)

	require.NoError(t, s.DeleteBudgetEntry(ctx, "a"))
	assert.True(t, generic.IsNotFound(s.DeleteBudgetEntry(ctx, "a")))
}

func TestLeave_SaveRange(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	req := leave.Request{Period: generic.Period{
		Start: generic.NewTimePoint(2025, time.May, 2),
		End:   generic.NewTimePoint(2025, time.May, 4),
	}, Approved: true}
	days, err := req.Expand(seq("leave"))
	require.NoError(t, err)
	require.NoError(t, s.SaveLeaveDays(ctx, days))

	got, err := s.ListLeaveDays(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "2025-05-02", got[0].Date.String())
	assert.Equal(t, leave.TypeRegular, got[0].Type)
	assert.True(t, got[2].Approved)
}

func TestChecklist_ToggleResetDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	items := checklist.DefaultItems(checklist.KindPreparation, seq("prep"))
	require.NoError(t, s.SaveChecklistItems(ctx, items))

	listed, err := s.ListChecklistItems(ctx, checklist.KindPreparation)
	require.NoError(t, err)
	require.Len(t, listed, len(items))
	assert.Equal(t, items[0].Title, listed[0].Title)
	require.NotNil(t, listed[0].DueWeeksBefore)

	toggled, err := s.ToggleChecklistItem(ctx, items[0].ID)
	require.NoError(t, err)
	assert.True(t, toggled.Done)

	require.NoError(t, s.ResetChecklist(ctx, checklist.KindPreparation))
	listed, _ = s.ListChecklistItems(ctx, checklist.KindPreparation)
	assert.Zero(t, checklist.ProgressOf(listed).Done)

	_, err = s.ToggleChecklistItem(ctx, "missing")
	assert.True(t, generic.IsNotFound(err))

	packing, _ := s.ListChecklistItems(ctx, checklist.KindPacking)
	assert.Empty(t, packing)
}

func TestSeedDefaults_OnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	items := checklist.DefaultItems(checklist.KindPacking, seq("pack"))
	ok, err := s.SeedChecklistItems(ctx, checklist.KindPacking, items)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.SeedChecklistItems(ctx, checklist.KindPacking, checklist.DefaultItems(checklist.KindPacking, seq("again")))
	require.NoError(t, err)
	assert.False(t, ok)

	listed, err := s.ListChecklistItems(ctx, checklist.KindPacking)
	require.NoError(t, err)
	assert.Len(t, listed, len(items))

	kit := checklist.DefaultEquipment(seq("kit"))
	ok, err = s.SeedEquipment(ctx, kit)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.SeedEquipment(ctx, checklist.DefaultEquipment(seq("kit2")))
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := s.ListEquipment(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, len(kit))
}

func TestEquipment_Dates(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	issued := generic.NewTimePoint(2025, time.January, 7)
	require.NoError(t, s.SaveEquipment(ctx, []checklist.Equipment{
		{ID: "e1", Name: "Kypärä", Category: "Suojavarusteet", Issued: true, IssueDate: &issued, SerialNumber: "K-123"},
	}))

	got, err := s.ListEquipment(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].IssueDate)
	assert.Equal(t, "2025-01-07", got[0].IssueDate.String())
	assert.Nil(t, got[0].ReturnDate)
	assert.True(t, got[0].InHand())
}

func TestCooperAndMilestones(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.SaveCooperTest(ctx, fitness.CooperTest{ID: "c1", Date: generic.NewTimePoint(2025, time.January, 10), DistanceMeters: 2300}))
	require.NoError(t, s.SaveCooperTest(ctx, fitness.CooperTest{ID: "c2", Date: generic.NewTimePoint(2025, time.March, 10), DistanceMeters: 2650}))

	tests, err := s.ListCooperTests(ctx)
	require.NoError(t, err)
	require.Len(t, tests, 2)
	assert.Equal(t, "c2", tests[0].ID)

	tracker := timeline.NewMilestoneTracker(s, nil)
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	m, fired, err := tracker.Check(ctx, 150, now)
	require.NoError(t, err)
	assert.True(t, fired)
	assert.Equal(t, 150, m)

	_, fired, err = tracker.Check(ctx, 150, now)
	require.NoError(t, err)
	assert.False(t, fired)
}

func TestMilestones_ConcurrentMarksInsertOnce(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	tracker := timeline.NewMilestoneTracker(s, nil)
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	var (
		wg    sync.WaitGroup
		fires atomic.Int32
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := tracker.Check(ctx, 50, now)
			assert.NoError(t, err)
			if ok {
				fires.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fires.Load())

	again, err := s.MarkMilestoneFired(ctx, 50, now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, again)
}
