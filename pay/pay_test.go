package pay_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palveluspolku/service-engine/generic"
	"github.com/palveluspolku/service-engine/pay"
	"github.com/palveluspolku/service-engine/timeline"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var (
	standard   = pay.Profile{}
	supplement = pay.Profile{AppliesSupplement: true}
)

func date(year int, month time.Month, day int) generic.TimePoint {
	return generic.NewTimePoint(year, month, day)
}

func eur(s string) generic.Amount {
	return generic.NewAmountFromString(s, generic.UnitEUR)
}

func assertEUR(t *testing.T, want string, got generic.Amount, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, eur(want).Equal(got), append([]any{"want %s, got %s", want, got.Value.String()}, msgAndArgs...)...)
}

func service2025() timeline.ServicePeriod {
	return timeline.NewServicePeriod(date(2025, time.January, 1), date(2025, time.July, 1))
}

// =============================================================================
// DAILY RATE
// =============================================================================

func TestDailyRate_TierTable(t *testing.T) {
	tests := []struct {
		days       int
		standard   string
		supplement string
	}{
		{-5, "6.10", "7.60"},
		{0, "6.10", "7.60"},
		{1, "6.10", "7.60"},
		{165, "6.10", "7.60"},
		{166, "10.15", "11.65"},
		{255, "10.15", "11.65"},
		{256, "14.15", "15.65"},
		{300, "14.15", "15.65"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("day %d", tt.days), func(t *testing.T) {
			assertEUR(t, tt.standard, pay.DailyRate(tt.days, standard))
			assertEUR(t, tt.supplement, pay.DailyRate(tt.days, supplement))
		})
	}
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, 1, pay.TierFor(0).Number)
	assert.Equal(t, 1, pay.TierFor(165).Number)
	assert.Equal(t, 2, pay.TierFor(166).Number)
	assert.Equal(t, 2, pay.TierFor(255).Number)
	assert.Equal(t, 3, pay.TierFor(256).Number)
	assert.Equal(t, 3, pay.TierFor(10000).Number)
}

// =============================================================================
// EARNINGS
// =============================================================================

func TestEarnedForDays_Scenarios(t *testing.T) {
	assertEUR(t, "0", pay.EarnedForDays(0, standard))
	assertEUR(t, "0", pay.EarnedForDays(-3, standard))
	assertEUR(t, "1006.50", pay.EarnedForDays(165, standard))
	assertEUR(t, "1254.00", pay.EarnedForDays(165, supplement))
	assertEUR(t, "1920.00", pay.EarnedForDays(255, standard))
	// 165*6.10 + 90*10.15 + 1*14.15
	assertEUR(t, "1934.15", pay.EarnedForDays(256, standard))
}

func TestEarnedForDays_ContinuousAtBoundaries(t *testing.T) {
	for _, p := range []pay.Profile{standard, supplement} {
		assert.True(t, pay.EarnedForDays(165, p).Equal(pay.DailyRate(165, p).MulInt(165)))
		assert.True(t, pay.EarnedForDays(166, p).Equal(pay.EarnedForDays(165, p).Add(pay.DailyRate(166, p))))
		assert.True(t, pay.EarnedForDays(256, p).Equal(pay.EarnedForDays(255, p).Add(pay.DailyRate(256, p))))

		want := pay.DailyRate(1, p).MulInt(165).Add(pay.DailyRate(166, p).MulInt(90))
		assert.True(t, pay.EarnedForDays(255, p).Equal(want))
	}
}

func TestEarnedForDays_Monotonic(t *testing.T) {
	for _, p := range []pay.Profile{standard, supplement} {
		prev := pay.EarnedForDays(0, p)
		for days := 1; days <= 400; days++ {
			got := pay.EarnedForDays(days, p)
			require.False(t, got.LessThan(prev), "total decreased at day %d", days)
			require.True(t, got.Sub(prev).Equal(pay.DailyRate(days, p)), "day %d not paid at its own rate", days)
			prev = got
		}
	}
}

func TestBreakdown(t *testing.T) {
	parts := pay.Breakdown(300, supplement)
	require.Len(t, parts, 3)

	assert.Equal(t, 165, parts[0].Days)
	assert.Equal(t, 90, parts[1].Days)
	assert.Equal(t, 45, parts[2].Days)
	assertEUR(t, "7.60", parts[0].Rate)
	assertEUR(t, "11.65", parts[1].Rate)
	assertEUR(t, "15.65", parts[2].Rate)

	sum := generic.Sum(generic.UnitEUR, parts[0].Amount, parts[1].Amount, parts[2].Amount)
	assert.True(t, sum.Equal(pay.EarnedForDays(300, supplement)))

	assert.Len(t, pay.Breakdown(100, standard), 1)
	assert.Empty(t, pay.Breakdown(0, standard))
}

func TestTotalEarned_FromPeriod(t *testing.T) {
	// GIVEN: 181-day service starting 2025-01-01, now = start + 165 days
	p := service2025()
	now := date(2025, time.January, 1).AddDays(165).Time.Add(14 * time.Hour)

	require.Equal(t, 165, timeline.DaysServed(p, now))
	assert.Equal(t, "1006.50", pay.TotalEarned(p, standard, now).Display())
	assert.Equal(t, "1254.00", pay.TotalEarned(p, supplement, now).Display())
}

func TestTotalEarned_BeforeStartOrUnset(t *testing.T) {
	before := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, pay.TotalEarned(service2025(), standard, before).IsZero())
	assert.True(t, pay.TotalEarned(timeline.ServicePeriod{}, supplement, before).IsZero())
}

func TestCurrentDailyRate(t *testing.T) {
	p := service2025()
	assertEUR(t, "6.10", pay.CurrentDailyRate(p, standard, date(2024, time.December, 1).Time))
	assertEUR(t, "11.65", pay.CurrentDailyRate(p, supplement, date(2025, time.January, 1).AddDays(200).Time))
}

func TestProjectedTotal(t *testing.T) {
	// 181 days: 165*6.10 + 16*10.15
	assertEUR(t, "1168.90", pay.ProjectedTotal(service2025(), standard))
	assert.True(t, pay.ProjectedTotal(timeline.ServicePeriod{}, standard).IsZero())
}

// =============================================================================
// NEXT PAYMENT
// =============================================================================

func TestNextPaymentDate(t *testing.T) {
	// 2025-01-03 is a Friday
	assert.Equal(t, "2025-01-03", pay.NextPaymentDate(time.Date(2025, 1, 3, 18, 0, 0, 0, time.UTC)).String())
	assert.Equal(t, "2025-01-10", pay.NextPaymentDate(time.Date(2025, 1, 4, 9, 0, 0, 0, time.UTC)).String())
	assert.Equal(t, "2025-01-03", pay.NextPaymentDate(time.Date(2024, 12, 30, 9, 0, 0, 0, time.UTC)).String())
}

func TestDaysSinceLastPayment(t *testing.T) {
	tests := []struct {
		day  int
		want int
	}{
		{1, 1},
		{15, 15},
		{16, 1},
		{31, 16},
	}
	for _, tt := range tests {
		now := time.Date(2025, time.January, tt.day, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, tt.want, pay.DaysSinceLastPayment(now), "day %d", tt.day)
	}
}

func TestNextPaymentEstimate(t *testing.T) {
	// GIVEN: 2025-06-20 (Friday), day 170 of service
	p := service2025()
	now := time.Date(2025, time.June, 20, 10, 0, 0, 0, time.UTC)
	require.Equal(t, 170, timeline.DaysServed(p, now))

	est := pay.NextPaymentEstimate(p, supplement, now)

	// THEN: Paid today; 5 days since the 15th at the tier-2 rate
	assert.Equal(t, "2025-06-20", est.Date.String())
	assert.Equal(t, 5, est.DaysSincePayment)
	assertEUR(t, "58.25", est.Amount)
}

// =============================================================================
// ACCRUAL SCHEDULE
// =============================================================================

func TestAccrual_SumsToTotalEarned(t *testing.T) {
	p := service2025()
	accrual := &pay.Accrual{Period: p, Profile: supplement}
	start := *p.StartDate

	events := accrual.GenerateAccruals(start, start.AddDays(300))
	require.Len(t, events, 300)
	assert.Equal(t, "2025-01-02", events[0].At.String())
	assert.Equal(t, "tier 1 allowance", events[0].Reason)
	assert.Equal(t, "tier 2 allowance", events[165].Reason)

	for _, days := range []int{0, 1, 165, 166, 255, 256, 300} {
		asOf := start.AddDays(days)
		got := generic.TotalAccrued(events, generic.UnitEUR, asOf)
		assert.True(t, got.Equal(pay.TotalEarned(p, supplement, asOf.Time)), "day %d", days)
	}
	assert.True(t, accrual.IsDeterministic())
}

func TestAccrual_WindowAndUnset(t *testing.T) {
	p := service2025()
	accrual := &pay.Accrual{Period: p, Profile: standard}

	window := accrual.GenerateAccruals(date(2025, time.June, 14), date(2025, time.June, 16))
	require.Len(t, window, 3)
	assertEUR(t, "6.10", window[0].Amount)  // day 164
	assertEUR(t, "10.15", window[2].Amount) // day 166

	assert.Empty(t, accrual.GenerateAccruals(date(2024, time.December, 1), date(2024, time.December, 31)))
	assert.Empty(t, (&pay.Accrual{}).GenerateAccruals(date(2025, time.January, 1), date(2025, time.February, 1)))
}
