package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/kenocia/payroll-backend-go/internal/domain/attendance"
	"github.com/kenocia/payroll-backend-go/internal/domain/employee"
	"github.com/kenocia/payroll-backend-go/internal/domain/schedule"
	overtimesvc "github.com/kenocia/payroll-backend-go/internal/service/overtime"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	scheduleSvc    schedule.ScheduleService
	calculator     *overtimesvc.Calculator
	loc            *time.Location
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleSvc schedule.ScheduleService,
	loc *time.Location,
) *AttendanceServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		scheduleSvc:    scheduleSvc,
		calculator:     overtimesvc.NewCalculator(loc),
		loc:            loc,
	}
}

func (s *AttendanceServiceImpl) Create(ctx context.Context, req *attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("get employee: %w", err)
	}

	checkIn, err := time.Parse(time.RFC3339, req.CheckIn)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("parse check_in: %w", err)
	}

	rec := attendance.Attendance{
		EmployeeID:  req.EmployeeID,
		CheckIn:     checkIn,
		PartialType: attendance.PartialEntryOnly,
	}
	if req.CheckOut != nil {
		checkOut, err := time.Parse(time.RFC3339, *req.CheckOut)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("parse check_out: %w", err)
		}
		if !checkOut.After(checkIn) {
			return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeIn
		}
		rec.CheckOut = &checkOut
		rec.PartialType = attendance.PartialComplete
	}

	if err := s.compute(ctx, &rec); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := s.attendanceRepo.Create(ctx, &rec); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("create attendance: %w", err)
	}
	return s.toResponse(rec), nil
}

func (s *AttendanceServiceImpl) GetByID(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	rec, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return s.toResponse(rec), nil
}

func (s *AttendanceServiceImpl) Update(ctx context.Context, id string, req *attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.CheckIn != nil {
		checkIn, err := time.Parse(time.RFC3339, *req.CheckIn)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("parse check_in: %w", err)
		}
		rec.CheckIn = checkIn
	}
	if req.CheckOut != nil {
		checkOut, err := time.Parse(time.RFC3339, *req.CheckOut)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("parse check_out: %w", err)
		}
		rec.CheckOut = &checkOut
		rec.PartialType = attendance.PartialComplete
	}
	if rec.CheckOut != nil && !rec.CheckOut.After(rec.CheckIn) {
		return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeIn
	}

	if err := s.compute(ctx, &rec); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := s.attendanceRepo.Update(ctx, &rec); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("update attendance: %w", err)
	}
	return s.toResponse(rec), nil
}

func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.attendanceRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.attendanceRepo.Delete(ctx, id)
}

func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListAttendanceFilter) ([]attendance.AttendanceResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list attendance: %w", err)
	}
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, s.toResponse(rec))
	}
	return responses, total, nil
}

// Recompute re-derives the buckets from the stored marks and the employee's
// current profile. Running it twice changes nothing.
func (s *AttendanceServiceImpl) Recompute(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	rec, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := s.compute(ctx, &rec); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := s.attendanceRepo.Update(ctx, &rec); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("update attendance: %w", err)
	}
	return s.toResponse(rec), nil
}

// compute refreshes worked hours and the overtime buckets in place. A
// missing profile means zero buckets, never an error.
func (s *AttendanceServiceImpl) compute(ctx context.Context, rec *attendance.Attendance) error {
	rec.WorkedHours = 0
	rec.HE25, rec.HE50, rec.HE75, rec.SaturdayAccrual = 0, 0, 0, 0
	rec.CheckInDifferenceMinutes = 0
	if rec.ScheduleCheckIn != nil {
		rec.CheckInDifferenceMinutes = rec.CheckIn.Sub(*rec.ScheduleCheckIn).Minutes()
	}
	if rec.CheckOut == nil {
		return nil
	}

	// Worked hours prefer the scheduled-equivalent entry; the buckets always
	// read the raw check-in.
	rec.WorkedHours = rec.CheckOut.Sub(rec.EffectiveCheckIn()).Hours()

	prof, err := s.scheduleSvc.ProfileFor(ctx, rec.EmployeeID, rec.CheckIn)
	if err != nil {
		return fmt.Errorf("resolve profile: %w", err)
	}
	buckets := s.calculator.ComputeBuckets(&rec.CheckIn, rec.CheckOut, prof)
	rec.HE25 = buckets.HE25
	rec.HE50 = buckets.HE50
	rec.HE75 = buckets.HE75
	rec.SaturdayAccrual = buckets.SaturdayAccrual
	return nil
}

func (s *AttendanceServiceImpl) toResponse(rec attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:                       rec.ID,
		EmployeeID:               rec.EmployeeID,
		CheckIn:                  rec.CheckIn.In(s.loc).Format(time.RFC3339),
		PartialType:              string(rec.PartialType),
		WorkedHours:              rec.WorkedHours,
		CheckInDifferenceMinutes: rec.CheckInDifferenceMinutes,
		HE25:                     rec.HE25,
		HE50:                     rec.HE50,
		HE75:                     rec.HE75,
		SaturdayAccrual:          rec.SaturdayAccrual,
	}
	if rec.CheckOut != nil {
		out := rec.CheckOut.In(s.loc).Format(time.RFC3339)
		resp.CheckOut = &out
	}
	if rec.ScheduleCheckIn != nil {
		sci := rec.ScheduleCheckIn.In(s.loc).Format(time.RFC3339)
		resp.ScheduleCheckIn = &sci
	}
	return resp
}
