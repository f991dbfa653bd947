package generic_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palveluspolku/service-engine/generic"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) generic.TimePoint {
	return generic.NewTimePoint(year, month, day)
}

func helsinki(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Helsinki")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}
	return loc
}

// =============================================================================
// DAY ARITHMETIC
// =============================================================================

func TestDayOf_IgnoresTimeOfDay(t *testing.T) {
	// GIVEN: 00:01 and 23:59 on the same local day
	early := time.Date(2025, time.March, 10, 0, 1, 0, 0, time.UTC)
	late := time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)

	// THEN: Both map to the same calendar day, zero days apart
	assert.True(t, generic.DayOf(early).Equal(generic.DayOf(late)))
	assert.Equal(t, 0, generic.DaysBetween(generic.DayOf(early), generic.DayOf(late)))
}

func TestDaysBetween_Signed(t *testing.T) {
	jan1 := date(2025, time.January, 1)
	jul1 := date(2025, time.July, 1)

	assert.Equal(t, 181, generic.DaysBetween(jan1, jul1))
	assert.Equal(t, -181, generic.DaysBetween(jul1, jan1))
	assert.Equal(t, 0, generic.DaysBetween(jan1, jan1))
}

func TestDaysBetween_AcrossDST(t *testing.T) {
	// GIVEN: Local midnights either side of the EU spring-forward switch
	loc := helsinki(t)
	before := generic.NewTimePointIn(2025, time.March, 29, loc)
	after := generic.NewTimePointIn(2025, time.March, 31, loc)

	// THEN: Still exactly two calendar days, not 1.958
	assert.Equal(t, 2, generic.DaysBetween(before, after))
}

func TestDaysBetween_UsesLocalDate(t *testing.T) {
	// 23:30 UTC on Mar 10 is already Mar 11 in Helsinki
	loc := helsinki(t)
	instant := time.Date(2025, time.March, 10, 23, 30, 0, 0, time.UTC).In(loc)
	start := generic.NewTimePointIn(2025, time.March, 10, loc)

	assert.Equal(t, 1, generic.DaysBetween(start, generic.DayOf(instant)))
}

func TestNextWeekday_InclusiveOfToday(t *testing.T) {
	friday := date(2025, time.January, 3)
	saturday := date(2025, time.January, 4)
	thursday := date(2025, time.January, 2)

	assert.True(t, generic.NextWeekday(friday, time.Friday).Equal(friday))
	assert.True(t, generic.NextWeekday(saturday, time.Friday).Equal(date(2025, time.January, 10)))
	assert.True(t, generic.NextWeekday(thursday, time.Friday).Equal(friday))
}

func TestStartOfMonth(t *testing.T) {
	assert.Equal(t, "2025-02-01", generic.StartOfMonth(date(2025, time.February, 17)).String())
}

func TestParseDate(t *testing.T) {
	tp, err := generic.ParseDate("2025-07-01", time.UTC)
	require.NoError(t, err)
	assert.True(t, tp.Equal(date(2025, time.July, 1)))

	_, err = generic.ParseDate("01.07.2025", time.UTC)
	require.Error(t, err)
	assert.True(t, generic.IsClientError(err))

	var verr *generic.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "date", verr.Field)
}
