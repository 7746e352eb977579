package overtime

import (
	"testing"
	"time"

	"github.com/kenocia/payroll-backend-go/internal/domain/overtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoc = mustLoadLocation("America/Tegucigalpa")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("failed to load test timezone: " + err.Error())
	}
	return loc
}

// allWeekdays gives the profile calendar lines on every day so the
// has-lines guard never interferes with the window logic under test.
func allWeekdays(from, to float64) map[int][]overtime.Window {
	days := make(map[int][]overtime.Window)
	for d := 0; d < 7; d++ {
		days[d] = []overtime.Window{{From: from, To: to}}
	}
	return days
}

func profile60Day() overtime.ScheduleProfile {
	return overtime.ScheduleProfile{
		WeeklyHours: 60,
		Nocturnal:   false,
		Days:        allWeekdays(6, 14),
	}
}

func profile60Night() overtime.ScheduleProfile {
	return overtime.ScheduleProfile{
		WeeklyHours: 60,
		Nocturnal:   true,
		Days:        allWeekdays(18, 30),
	}
}

func profile44Day() overtime.ScheduleProfile {
	return overtime.ScheduleProfile{
		WeeklyHours: 44,
		Nocturnal:   false,
		Days:        allWeekdays(7.5, 16.5),
	}
}

// at builds a local civil timestamp on the given 2025-06 day.
func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.June, day, hour, minute, 0, 0, testLoc)
}

func ptr(t time.Time) *time.Time { return &t }

func TestComputeBuckets_MissingBounds_AllZero(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testLoc)
	in := at(2, 7, 0)

	assert.True(t, calc.ComputeBuckets(nil, nil, profile60Day()).IsZero())
	assert.True(t, calc.ComputeBuckets(&in, nil, profile60Day()).IsZero())
	assert.True(t, calc.ComputeBuckets(nil, &in, profile60Day()).IsZero())
}

func TestComputeBuckets_ExitNotAfterEntry_AllZero(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testLoc)

	same := at(2, 12, 0)
	assert.True(t, calc.ComputeBuckets(&same, &same, profile60Day()).IsZero())

	earlier := at(2, 11, 0)
	assert.True(t, calc.ComputeBuckets(&same, &earlier, profile60Day()).IsZero())
}

func TestComputeBuckets_UnknownProfile_AllZero(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testLoc)

	prof := overtime.ScheduleProfile{WeeklyHours: 48, Days: allWeekdays(6, 14)}
	b := calc.ComputeBuckets(ptr(at(2, 6, 0)), ptr(at(2, 20, 0)), prof)
	assert.True(t, b.IsZero())
}

func TestComputeBuckets_NoCalendarLines_44h_AllZero(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testLoc)

	prof := profile44Day()
	prof.Days = map[int][]overtime.Window{} // no lines on any day
	b := calc.ComputeBuckets(ptr(at(2, 7, 30)), ptr(at(2, 23, 0)), prof)
	assert.True(t, b.IsZero())
}

func TestComputeBuckets_60Day_Saturday_WholeDurationHE25(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testLoc)

	// 2025-06-07 is a Saturday. No calendar lines on Saturday either: the
	// branch must still fire.
	prof := profile60Day()
	prof.Days = map[int][]overtime.Window{
		0: {{From: 6, To: 14}},
	}

	b := calc.ComputeBuckets(ptr(at(7, 6, 0)), ptr(at(7, 12, 30)), prof)
	assert.Equal(t, 6.5, b.HE25)
	assert.Zero(t, b.HE50)
	assert.Zero(t, b.HE75)
	assert.Zero(t, b.SaturdayAccrual)
}

func TestComputeBuckets_60Day_MondayToThursday(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testLoc)
	prof := profile60Day()

	// 2025-06-02 is a Monday.
	tests := []struct {
		name     string
		in, out  time.Time
		expected overtime.Buckets
	}{
		{
			name: "exit before overtime start",
			in:   at(2, 6, 0), out: at(2, 14, 0),
			expected: overtime.Buckets{},
		},
		{
			name: "early entry pins overtime start to 15:00",
			in:   at(2, 6, 0), out: at(2, 18, 0),
			expected: overtime.Buckets{HE25: 3},
		},
		{
			name: "late entry pushes overtime start to entry+8h",
			in:   at(2, 9, 0), out: at(2, 20, 0),
			expected: overtime.Buckets{HE25: 2, HE50: 1},
		},
		{
			name: "overnight exit spills into HE75",
			in:   at(2, 6, 0), out: at(3, 2, 0),
			expected: overtime.Buckets{HE25: 4, HE50: 5, HE75: 2},
		},
		{
			name: "exit past the HE75 window is capped at 05:00",
			in:   at(2, 6, 0), out: at(3, 6, 0),
			expected: overtime.Buckets{HE25: 4, HE50: 5, HE75: 5},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := calc.ComputeBuckets(&tt.in, &tt.out, prof)
			assert.Equal(t, tt.expected, b)
		})
	}
}

func TestComputeBuckets_60Day_Friday(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testLoc)
	prof := profile60Day()

	// 2025-06-06 is a Friday: ordinary until 14:00, HE25 until 18:00, then
	// HE50 until midnight.
	b := calc.ComputeBuckets(ptr(at(6, 6, 0)), ptr(at(6, 20, 0)), prof)
	assert.Equal(t, overtime.Buckets{HE25: 4, HE50: 2}, b)

	b = calc.ComputeBuckets(ptr(at(6, 6, 0)), ptr(at(7, 3, 0)), prof)
	assert.Equal(t, overtime.Buckets{HE25: 4, HE50: 6, HE75: 3}, b)
}

func TestComputeBuckets_60Night(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testLoc)
	prof := profile60Night()

	// 2025-06-02 18:00 entry. Exit at or before 01:00 pays nothing.
	b := calc.ComputeBuckets(ptr(at(2, 18, 0)), ptr(at(3, 1, 0)), prof)
	assert.True(t, b.IsZero())

	// Exit at 06:00 pays the full 01:00-06:00 band at 75%.
	b = calc.ComputeBuckets(ptr(at(2, 18, 0)), ptr(at(3, 6, 0)), prof)
	assert.Equal(t, overtime.Buckets{HE75: 5}, b)

	// Exit past 06:00 stays capped.
	b = calc.ComputeBuckets(ptr(at(2, 18, 0)), ptr(at(3, 7, 0)), prof)
	assert.Equal(t, overtime.Buckets{HE75: 5}, b)

	// Partial band.
	b = calc.ComputeBuckets(ptr(at(2, 18, 0)), ptr(at(3, 3, 30)), prof)
	assert.Equal(t, overtime.Buckets{HE75: 2.5}, b)
}

func TestComputeBuckets_44Day(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testLoc)
	prof := profile44Day()

	// 2025-06-03 is a Tuesday. Scheduled 07:30-16:30: an on-time exit
	// yields exactly the one-hour Saturday accrual.
	b := calc.ComputeBuckets(ptr(at(3, 7, 30)), ptr(at(3, 16, 30)), prof)
	assert.Equal(t, overtime.Buckets{SaturdayAccrual: 1}, b)

	// Late exit at 23:00 fills every band on the way.
	b = calc.ComputeBuckets(ptr(at(3, 7, 30)), ptr(at(3, 23, 0)), prof)
	assert.Equal(t, overtime.Buckets{
		SaturdayAccrual: 1,
		HE25:            2.5,
		HE50:            3,
		HE75:            1,
	}, b)

	// The accrual is capped at one hour no matter how long the day runs.
	b = calc.ComputeBuckets(ptr(at(3, 7, 30)), ptr(at(4, 6, 0)), prof)
	assert.Equal(t, 1.0, b.SaturdayAccrual)
	assert.Equal(t, 8.0, b.HE75)
}

func TestComputeBuckets_44Day_LateEntryNotBackfilled(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testLoc)
	prof := profile44Day()

	// Entry at 20:00 must start accruing at 20:00, not at the 19:00 band
	// anchor, and earlier bands pay nothing.
	b := calc.ComputeBuckets(ptr(at(3, 20, 0)), ptr(at(3, 23, 0)), prof)
	assert.Equal(t, overtime.Buckets{HE50: 2, HE75: 1}, b)
}

func TestComputeBuckets_Idempotent(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testLoc)
	prof := profile44Day()

	in := at(3, 7, 30)
	out := at(3, 21, 15)
	first := calc.ComputeBuckets(&in, &out, prof)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, calc.ComputeBuckets(&in, &out, prof))
	}
}

func TestComputeBuckets_RoundsToTwoDecimals(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testLoc)
	prof := profile60Day()

	// 2025-06-02 Monday, exit at 18:10:36 -> 3.176... HE25 hours.
	in := at(2, 6, 0)
	out := time.Date(2025, time.June, 2, 18, 10, 36, 0, testLoc)
	b := calc.ComputeBuckets(&in, &out, prof)
	assert.Equal(t, 3.18, b.HE25)
	assert.Equal(t, 3.18, b.Total())
}

func TestComputeBuckets_UTCInputsConvertedToLocalTime(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testLoc)
	prof := profile60Day()

	// Tegucigalpa is UTC-6 year round. 2025-06-02 12:00 UTC is 06:00 local
	// on the same Monday.
	in := time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)
	out := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC) // 18:00 local
	b := calc.ComputeBuckets(&in, &out, prof)
	require.Equal(t, overtime.Buckets{HE25: 3}, b)
}

func TestDetectProfile(t *testing.T) {
	t.Parallel()

	assert.Equal(t, overtime.Profile60Day, overtime.DetectProfile(60, false))
	assert.Equal(t, overtime.Profile60Night, overtime.DetectProfile(60, true))
	assert.Equal(t, overtime.Profile44Day, overtime.DetectProfile(44, false))
	assert.Equal(t, overtime.ProfileNone, overtime.DetectProfile(44, true))
	assert.Equal(t, overtime.ProfileNone, overtime.DetectProfile(40, false))
	assert.Equal(t, overtime.ProfileNone, overtime.DetectProfile(0, false))
}
