package payroll

import (
	"testing"
	"time"

	"github.com/kenocia/payroll-backend-go/internal/domain/attendance"
	"github.com/kenocia/payroll-backend-go/internal/domain/payroll"
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

func rec(day int, worked, he25, he50, he75 float64) attendance.Attendance {
	// 2025-06-02 is a Monday; day offsets walk through the week.
	return attendance.Attendance{
		CheckIn:     time.Date(2025, time.June, day, 7, 30, 0, 0, testLoc),
		WorkedHours: worked,
		HE25:        he25,
		HE50:        he50,
		HE75:        he75,
	}
}

func TestAggregateWorkedDays_WeekendRecordsExcluded(t *testing.T) {
	t.Parallel()

	records := []attendance.Attendance{
		rec(2, 8, 1, 0, 0), // Monday
		rec(6, 8, 2, 1, 0), // Friday
		rec(7, 6, 6, 0, 0), // Saturday: must not count
		rec(8, 4, 0, 0, 4), // Sunday: must not count
	}

	lines := aggregateWorkedDays(records, 8, testLoc)

	require.Len(t, lines, 3)
	assert.Equal(t, payroll.WorkedDayLine{Code: payroll.CodeWork100, Hours: 16, Days: 2}, lines[0])
	assert.Equal(t, payroll.WorkedDayLine{Code: payroll.CodeHE25, Hours: 3, Days: 0.375}, lines[1])
	assert.Equal(t, payroll.WorkedDayLine{Code: payroll.CodeHE50, Hours: 1, Days: 0.125}, lines[2])
}

func TestAggregateWorkedDays_ZeroCodesOmitted(t *testing.T) {
	t.Parallel()

	lines := aggregateWorkedDays([]attendance.Attendance{rec(2, 8, 0, 0, 0)}, 8, testLoc)

	require.Len(t, lines, 1)
	assert.Equal(t, payroll.CodeWork100, lines[0].Code)
}

func TestAggregateWorkedDays_DaysRoundedToFiveDecimals(t *testing.T) {
	t.Parallel()

	// 1 hour over a 9-hour day: 0.111111... rounds to 0.11111.
	lines := aggregateWorkedDays([]attendance.Attendance{rec(2, 0, 1, 0, 0)}, 9, testLoc)

	require.Len(t, lines, 1)
	assert.Equal(t, 0.11111, lines[0].Days)
}

func TestAggregateWorkedDays_NoHoursPerDayMeansZeroDays(t *testing.T) {
	t.Parallel()

	lines := aggregateWorkedDays([]attendance.Attendance{rec(2, 8, 0, 0, 0)}, 0, testLoc)

	require.Len(t, lines, 1)
	assert.Equal(t, 8.0, lines[0].Hours)
	assert.Zero(t, lines[0].Days)
}

func TestCapWorkedHours(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 69.5, capWorkedHours(69.5))
	assert.Equal(t, 70.0, capWorkedHours(70.0))
	assert.Equal(t, 70.0, capWorkedHours(84.25))
}
