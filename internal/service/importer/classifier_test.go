package importer

import (
	"testing"
	"time"

	"github.com/kenocia/payroll-backend-go/internal/domain/importer"
	"github.com/kenocia/payroll-backend-go/internal/domain/schedule"
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

func at(day, hour, minute, second int) time.Time {
	return time.Date(2025, time.June, day, hour, minute, second, 0, testLoc)
}

func daySchedule() *schedule.Schedule {
	s := &schedule.Schedule{ID: "day", Name: "Day 44h"}
	for d := 0; d < 5; d++ {
		s.Lines = append(s.Lines, schedule.ScheduleLine{
			DayOfWeek: d, HourFrom: 7.5, HourTo: 16.5,
		})
	}
	return s
}

func nightSchedule() *schedule.Schedule {
	s := &schedule.Schedule{ID: "night", Name: "Night 60h", Nocturnal: true}
	for d := 0; d < 6; d++ {
		s.Lines = append(s.Lines, schedule.ScheduleLine{
			DayOfWeek: d, HourFrom: 18, HourTo: 30,
		})
	}
	return s
}

func TestClassify_Diurnal_CompleteShift(t *testing.T) {
	t.Parallel()
	c := NewClassifier(testLoc)

	// 2025-06-02 is a Monday.
	marks := []time.Time{at(2, 7, 28, 0), at(2, 16, 35, 0)}
	shifts, failures := c.Classify("1001", marks, daySchedule())

	require.Empty(t, failures)
	require.Len(t, shifts, 1)
	assert.Equal(t, importer.ShiftComplete, shifts[0].Kind)
	assert.Equal(t, at(2, 7, 28, 0), *shifts[0].Entry)
	assert.Equal(t, at(2, 16, 35, 0), *shifts[0].Exit)
}

func TestClassify_Diurnal_MultipleDaysRoundTrip(t *testing.T) {
	t.Parallel()
	c := NewClassifier(testLoc)

	// Marks arrive unsorted; each day must come back as its own complete
	// shift.
	marks := []time.Time{
		at(3, 16, 40, 0),
		at(2, 7, 30, 0),
		at(3, 7, 25, 0),
		at(2, 16, 31, 0),
	}
	shifts, failures := c.Classify("1001", marks, daySchedule())

	require.Empty(t, failures)
	require.Len(t, shifts, 2)
	assert.Equal(t, at(2, 7, 30, 0), *shifts[0].Entry)
	assert.Equal(t, at(2, 16, 31, 0), *shifts[0].Exit)
	assert.Equal(t, at(3, 7, 25, 0), *shifts[1].Entry)
	assert.Equal(t, at(3, 16, 40, 0), *shifts[1].Exit)
}

func TestClassify_DedupeCollapsesDoublePunch(t *testing.T) {
	t.Parallel()
	c := NewClassifier(testLoc)

	// Two punches 5s apart collapse into one; 15s apart both survive,
	// and the later one still wins as the last exit.
	marks := []time.Time{
		at(2, 7, 30, 0),
		at(2, 7, 30, 5), // duplicate of the entry
		at(2, 16, 30, 0),
		at(2, 16, 30, 15), // distinct punch, becomes the exit
	}
	shifts, failures := c.Classify("1001", marks, daySchedule())

	require.Empty(t, failures)
	require.Len(t, shifts, 1)
	assert.Equal(t, at(2, 7, 30, 0), *shifts[0].Entry)
	assert.Equal(t, at(2, 16, 30, 15), *shifts[0].Exit)
}

func TestClassify_Nocturnal_ExitGroupsWithPreviousDay(t *testing.T) {
	t.Parallel()
	c := NewClassifier(testLoc)

	marks := []time.Time{
		at(2, 17, 55, 0), // Monday evening entry
		at(3, 6, 5, 0),   // Tuesday morning exit, belongs to Monday's shift
	}
	shifts, failures := c.Classify("2001", marks, nightSchedule())

	require.Empty(t, failures)
	require.Len(t, shifts, 1)
	assert.Equal(t, importer.ShiftComplete, shifts[0].Kind)
	assert.Equal(t, at(2, 17, 55, 0), *shifts[0].Entry)
	assert.Equal(t, at(3, 6, 5, 0), *shifts[0].Exit)
}

func TestResolveComplete_SameDateNightExitBumpedToNextDay(t *testing.T) {
	t.Parallel()
	c := NewClassifier(testLoc)

	// Clock anomaly: the exit carries the entry's own date instead of the
	// morning after. The midnight-cross correction moves it forward a day.
	entry := at(2, 18, 0, 0)
	exit := at(2, 6, 0, 0)
	shift := importer.ResolvedShift{Badge: "2001", Entry: &entry, Exit: &exit}

	c.resolveComplete(&shift, true)

	assert.Equal(t, importer.ShiftComplete, shift.Kind)
	require.NotNil(t, shift.Exit)
	assert.Equal(t, at(3, 6, 0, 0), *shift.Exit)
}

func TestClassify_Nocturnal_LateMorningMarkIsAnomalousExit(t *testing.T) {
	t.Parallel()
	c := NewClassifier(testLoc)

	marks := []time.Time{
		at(2, 18, 0, 0), // Monday entry
		at(3, 11, 30, 0), // strictly between 10:00 and 16:00: late exit of Monday
	}
	shifts, failures := c.Classify("2001", marks, nightSchedule())

	require.Empty(t, failures)
	require.Len(t, shifts, 1)
	assert.Equal(t, importer.ShiftComplete, shifts[0].Kind)
	assert.Equal(t, at(3, 11, 30, 0), *shifts[0].Exit)
}

func TestClassify_EntryOnly_ScheduleEntrySnapsForward(t *testing.T) {
	t.Parallel()
	c := NewClassifier(testLoc)

	// Early arrival: raw punch preserved, scheduled-equivalent entry at the
	// calendar start.
	shifts, failures := c.Classify("1001", []time.Time{at(2, 6, 50, 0)}, daySchedule())

	require.Empty(t, failures)
	require.Len(t, shifts, 1)
	assert.Equal(t, importer.ShiftEntryOnly, shifts[0].Kind)
	assert.Equal(t, at(2, 6, 50, 0), *shifts[0].Entry)
	require.NotNil(t, shifts[0].ScheduleEntry)
	assert.Equal(t, at(2, 7, 30, 0), *shifts[0].ScheduleEntry)
}

func TestClassify_EntryOnly_OnTimeArrivalKeepsRawOnly(t *testing.T) {
	t.Parallel()
	c := NewClassifier(testLoc)

	shifts, failures := c.Classify("1001", []time.Time{at(2, 7, 45, 0)}, daySchedule())

	require.Empty(t, failures)
	require.Len(t, shifts, 1)
	assert.Equal(t, importer.ShiftEntryOnly, shifts[0].Kind)
	assert.Nil(t, shifts[0].ScheduleEntry)
}

func TestClassify_ExitOnly_SynthesizesFromSchedule(t *testing.T) {
	t.Parallel()
	c := NewClassifier(testLoc)

	// A lone 16:35 punch on Monday: entry synthesized at the Monday 07:30
	// start, duration 9.08h sits inside the plausible band.
	shifts, failures := c.Classify("1001", []time.Time{at(2, 16, 35, 0)}, daySchedule())

	require.Empty(t, failures)
	require.Len(t, shifts, 1)
	assert.Equal(t, importer.ShiftExitOnly, shifts[0].Kind)
	assert.Nil(t, shifts[0].Entry)
	require.NotNil(t, shifts[0].ScheduleEntry)
	assert.Equal(t, at(2, 7, 30, 0), *shifts[0].ScheduleEntry)
}

func TestClassify_ExitOnly_NightShiftUsesPreviousDayStart(t *testing.T) {
	t.Parallel()
	c := NewClassifier(testLoc)

	// A lone 06:00 Tuesday punch on a night schedule groups to Monday and
	// must synthesize Monday's 18:00 start: exactly twelve hours, sitting on
	// the upper edge of the allowed band.
	shifts, failures := c.Classify("2001", []time.Time{at(3, 6, 0, 0)}, nightSchedule())

	require.Empty(t, failures)
	require.Len(t, shifts, 1)
	assert.Equal(t, importer.ShiftExitOnly, shifts[0].Kind)
	require.NotNil(t, shifts[0].ScheduleEntry)
	assert.Equal(t, at(2, 18, 0, 0), *shifts[0].ScheduleEntry)
}

func TestClassify_ExitOnly_NoPlausibleCandidateFails(t *testing.T) {
	t.Parallel()
	c := NewClassifier(testLoc)

	// A lone 10:30 exit can only be reached from the same day's 07:30
	// start, and three hours is under the band's floor.
	shifts, failures := c.Classify("1001", []time.Time{at(2, 10, 30, 0)}, daySchedule())

	assert.Empty(t, shifts)
	require.Len(t, failures, 1)
	assert.Equal(t, importer.StageSynthesis, failures[0].Stage)
	assert.Equal(t, "1001", failures[0].Badge)
}

func TestClassify_ExitOnly_SplitShiftPicksShortestDuration(t *testing.T) {
	t.Parallel()
	c := NewClassifier(testLoc)

	// Split Monday: 07:30-12:00 and 13:00-16:30. A lone 17:00 exit must
	// synthesize the 13:00 start (four hours), not the 07:30 one (nine and a
	// half).
	split := &schedule.Schedule{ID: "split", Name: "Split day"}
	split.Lines = append(split.Lines,
		schedule.ScheduleLine{DayOfWeek: 0, HourFrom: 7.5, HourTo: 12},
		schedule.ScheduleLine{DayOfWeek: 0, HourFrom: 13, HourTo: 16.5},
	)

	shifts, failures := c.Classify("1001", []time.Time{at(2, 17, 0, 0)}, split)

	require.Empty(t, failures)
	require.Len(t, shifts, 1)
	assert.Equal(t, importer.ShiftExitOnly, shifts[0].Kind)
	require.NotNil(t, shifts[0].ScheduleEntry)
	assert.Equal(t, at(2, 13, 0, 0), *shifts[0].ScheduleEntry)
}

func TestClassify_NoSchedule_FailsWholeEmployee(t *testing.T) {
	t.Parallel()
	c := NewClassifier(testLoc)

	// Without a calendar the nocturnal flag is unknowable, so even a clean
	// night pair must not be read under diurnal assumptions: the employee
	// fails as one unit and nothing is classified.
	marks := []time.Time{at(2, 18, 0, 0), at(3, 6, 0, 0)}
	shifts, failures := c.Classify("2001", marks, nil)

	assert.Empty(t, shifts)
	require.Len(t, failures, 1)
	assert.Equal(t, importer.StageResolution, failures[0].Stage)
	assert.Equal(t, importer.ErrNoSchedule.Error(), failures[0].Reason)
	assert.Equal(t, marks, failures[0].Marks)
}

func TestClassify_NoMarks_NoOutput(t *testing.T) {
	t.Parallel()
	c := NewClassifier(testLoc)

	shifts, failures := c.Classify("1001", nil, daySchedule())
	assert.Empty(t, shifts)
	assert.Empty(t, failures)
}
