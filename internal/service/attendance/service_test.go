package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenocia/payroll-backend-go/internal/domain/attendance"
	"github.com/kenocia/payroll-backend-go/internal/domain/overtime"
	"github.com/kenocia/payroll-backend-go/internal/domain/schedule"
)

var testLoc = mustLoadLocation("America/Tegucigalpa")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("failed to load test timezone: " + err.Error())
	}
	return loc
}

type stubAttendanceRepo struct {
	attendance.AttendanceRepository
	rec attendance.Attendance
}

func (s *stubAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return s.rec, nil
}

func (s *stubAttendanceRepo) Update(ctx context.Context, a *attendance.Attendance) error {
	s.rec = *a
	return nil
}

type stubScheduleService struct {
	schedule.ScheduleService
	prof overtime.ScheduleProfile
}

func (s *stubScheduleService) ProfileFor(ctx context.Context, employeeID string, asOf time.Time) (overtime.ScheduleProfile, error) {
	return s.prof, nil
}

func TestRecompute_BucketsReadRawCheckIn(t *testing.T) {
	t.Parallel()

	// Saturday under the 60h day contract pays the whole span as HE25,
	// measured from the raw 07:00 mark even though the scheduled-equivalent
	// entry sits at 08:00. Worked hours still prefer the scheduled entry.
	checkIn := time.Date(2025, time.June, 7, 7, 0, 0, 0, testLoc) // Saturday
	schedIn := checkIn.Add(time.Hour)
	checkOut := time.Date(2025, time.June, 7, 12, 0, 0, 0, testLoc)

	repo := &stubAttendanceRepo{rec: attendance.Attendance{
		ID:              "a1",
		EmployeeID:      "e1",
		CheckIn:         checkIn,
		CheckOut:        &checkOut,
		ScheduleCheckIn: &schedIn,
		PartialType:     attendance.PartialComplete,
	}}
	svc := NewAttendanceService(repo, nil, &stubScheduleService{
		prof: overtime.ScheduleProfile{WeeklyHours: 60},
	}, testLoc)

	resp, err := svc.Recompute(context.Background(), "a1")

	require.NoError(t, err)
	assert.Equal(t, 5.0, resp.HE25)
	assert.Equal(t, 4.0, resp.WorkedHours)
}

func TestRecompute_EarlyArrivalDifferenceIsNegative(t *testing.T) {
	t.Parallel()

	// Difference is real minus scheduled: clocking in an hour early reads
	// minus sixty minutes.
	checkIn := time.Date(2025, time.June, 2, 7, 0, 0, 0, testLoc)
	schedIn := checkIn.Add(time.Hour)

	repo := &stubAttendanceRepo{rec: attendance.Attendance{
		ID:              "a1",
		EmployeeID:      "e1",
		CheckIn:         checkIn,
		ScheduleCheckIn: &schedIn,
		PartialType:     attendance.PartialEntryOnly,
	}}
	svc := NewAttendanceService(repo, nil, &stubScheduleService{}, testLoc)

	resp, err := svc.Recompute(context.Background(), "a1")

	require.NoError(t, err)
	assert.Equal(t, -60.0, resp.CheckInDifferenceMinutes)
}
