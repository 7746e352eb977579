package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenocia/payroll-backend-go/internal/domain/employee"
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

type stubEmployeeRepo struct {
	employee.EmployeeRepository
	emp employee.Employee
}

func (s *stubEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return s.emp, nil
}

type stubScheduleRepo struct {
	schedule.ScheduleRepository
}

func (s *stubScheduleRepo) GetByID(ctx context.Context, id string) (schedule.Schedule, error) {
	return schedule.Schedule{ID: id}, nil
}

type stubChangeRepo struct {
	schedule.ScheduleChangeRepository
	changes []schedule.ScheduleChange
}

func (s *stubChangeRepo) ListByEmployee(ctx context.Context, employeeID string) ([]schedule.ScheduleChange, error) {
	return s.changes, nil
}

func TestChangeSchedule_RejectsDateInsideClosedRange(t *testing.T) {
	t.Parallel()

	// The timeline holds only a closed range; a backdated date_from landing
	// inside it must be refused, not appended as a second overlapping entry.
	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, testLoc)
	to := time.Date(2025, time.March, 1, 0, 0, 0, 0, testLoc)
	oldID := "sched-old"

	svc := NewScheduleService(
		nil,
		&stubScheduleRepo{},
		&stubChangeRepo{changes: []schedule.ScheduleChange{{
			EmployeeID: "e1",
			ScheduleID: oldID,
			DateFrom:   from,
			DateTo:     &to,
		}}},
		&stubEmployeeRepo{emp: employee.Employee{ID: "e1", ScheduleID: &oldID}},
		nil,
		testLoc,
	)

	dateFrom := "2025-02-01"
	req := &schedule.ChangeScheduleRequest{
		EmployeeID: "e1",
		ScheduleID: "sched-new",
		DateFrom:   &dateFrom,
	}

	_, err := svc.ChangeSchedule(context.Background(), req, "operator")

	require.Error(t, err)
	assert.ErrorIs(t, err, schedule.ErrOverlappingChange)
}

func TestChangeSchedule_RejectsDateBeforeTimelineStart(t *testing.T) {
	t.Parallel()

	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, testLoc)
	oldID := "sched-old"

	svc := NewScheduleService(
		nil,
		&stubScheduleRepo{},
		&stubChangeRepo{changes: []schedule.ScheduleChange{{
			EmployeeID: "e1",
			ScheduleID: oldID,
			DateFrom:   from,
		}}},
		&stubEmployeeRepo{emp: employee.Employee{ID: "e1", ScheduleID: &oldID}},
		nil,
		testLoc,
	)

	dateFrom := "2024-12-15"
	req := &schedule.ChangeScheduleRequest{
		EmployeeID: "e1",
		ScheduleID: "sched-new",
		DateFrom:   &dateFrom,
	}

	_, err := svc.ChangeSchedule(context.Background(), req, "operator")

	require.Error(t, err)
	assert.ErrorIs(t, err, schedule.ErrOverlappingChange)
}
