package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kenocia/payroll-backend-go/internal/domain/employee"
	"github.com/kenocia/payroll-backend-go/internal/domain/overtime"
	"github.com/kenocia/payroll-backend-go/internal/domain/schedule"
	"github.com/kenocia/payroll-backend-go/internal/pkg/database"
	"github.com/kenocia/payroll-backend-go/internal/repository/postgresql"
)

type ScheduleServiceImpl struct {
	db           *database.DB
	scheduleRepo schedule.ScheduleRepository
	changeRepo   schedule.ScheduleChangeRepository
	employeeRepo employee.EmployeeRepository
	contractRepo employee.ContractRepository
	loc          *time.Location
}

func NewScheduleService(
	db *database.DB,
	scheduleRepo schedule.ScheduleRepository,
	changeRepo schedule.ScheduleChangeRepository,
	employeeRepo employee.EmployeeRepository,
	contractRepo employee.ContractRepository,
	loc *time.Location,
) *ScheduleServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &ScheduleServiceImpl{
		db:           db,
		scheduleRepo: scheduleRepo,
		changeRepo:   changeRepo,
		employeeRepo: employeeRepo,
		contractRepo: contractRepo,
		loc:          loc,
	}
}

func (s *ScheduleServiceImpl) CreateSchedule(ctx context.Context, req *schedule.CreateScheduleRequest) (schedule.Schedule, error) {
	if err := req.Validate(); err != nil {
		return schedule.Schedule{}, err
	}

	sched := schedule.Schedule{
		Name:      req.Name,
		Nocturnal: req.Nocturnal,
	}
	for _, line := range req.Lines {
		sched.Lines = append(sched.Lines, schedule.ScheduleLine{
			DayOfWeek: line.DayOfWeek,
			HourFrom:  line.HourFrom,
			HourTo:    line.HourTo,
		})
	}

	if err := s.scheduleRepo.Create(ctx, &sched); err != nil {
		return schedule.Schedule{}, fmt.Errorf("create schedule: %w", err)
	}
	return sched, nil
}

func (s *ScheduleServiceImpl) ListSchedules(ctx context.Context) ([]schedule.Schedule, error) {
	schedules, err := s.scheduleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}

// ChangeSchedule appends the timeline entry, closes the previous open one
// and propagates the new schedule onto the employee record and the open
// contract. Everything happens in one transaction so the timeline and the
// employee never disagree.
func (s *ScheduleServiceImpl) ChangeSchedule(ctx context.Context, req *schedule.ChangeScheduleRequest, changedBy string) (schedule.ScheduleChangeResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleChangeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return schedule.ScheduleChangeResponse{}, fmt.Errorf("get employee: %w", err)
	}
	if _, err := s.scheduleRepo.GetByID(ctx, req.ScheduleID); err != nil {
		return schedule.ScheduleChangeResponse{}, fmt.Errorf("get schedule: %w", err)
	}
	if emp.ScheduleID != nil && *emp.ScheduleID == req.ScheduleID {
		return schedule.ScheduleChangeResponse{}, schedule.ErrSameSchedule
	}

	dateFrom, err := schedule.ParseDateFrom(req.DateFrom, time.Now().In(s.loc))
	if err != nil {
		return schedule.ScheduleChangeResponse{}, fmt.Errorf("parse date_from: %w", err)
	}

	// The new range is open-ended, so it must start at or after every prior
	// range: never before a prior start, never inside a closed range.
	prior, err := s.changeRepo.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return schedule.ScheduleChangeResponse{}, fmt.Errorf("list changes: %w", err)
	}
	for _, existing := range prior {
		if dateFrom.Before(existing.DateFrom) {
			return schedule.ScheduleChangeResponse{}, schedule.ErrOverlappingChange
		}
		if existing.DateTo != nil && dateFrom.Before(*existing.DateTo) {
			return schedule.ScheduleChangeResponse{}, schedule.ErrOverlappingChange
		}
	}

	change := schedule.ScheduleChange{
		EmployeeID:         emp.ID,
		ScheduleID:         req.ScheduleID,
		PreviousScheduleID: emp.ScheduleID,
		DateFrom:           dateFrom,
		Reason:             req.Reason,
		ChangedBy:          changedBy,
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.changeRepo.CloseCurrent(txCtx, emp.ID, dateFrom); err != nil {
			return fmt.Errorf("close current change: %w", err)
		}
		if err := s.changeRepo.Create(txCtx, &change); err != nil {
			return fmt.Errorf("create change: %w", err)
		}
		if err := s.employeeRepo.UpdateSchedule(txCtx, emp.ID, req.ScheduleID); err != nil {
			return fmt.Errorf("update employee schedule: %w", err)
		}
		if err := s.contractRepo.UpdateScheduleForOpen(txCtx, emp.ID, req.ScheduleID); err != nil {
			return fmt.Errorf("update open contract schedule: %w", err)
		}
		return nil
	})
	if err != nil {
		return schedule.ScheduleChangeResponse{}, err
	}

	return schedule.ToScheduleChangeResponse(change), nil
}

// BulkChange applies the change to each employee in turn. One employee
// failing is recorded and never blocks the rest.
func (s *ScheduleServiceImpl) BulkChange(ctx context.Context, req *schedule.BulkChangeScheduleRequest, changedBy string) (schedule.BulkChangeResult, error) {
	if err := req.Validate(); err != nil {
		return schedule.BulkChangeResult{}, err
	}

	employeeIDs := req.EmployeeIDs
	if len(employeeIDs) == 0 {
		employees, err := s.employeeRepo.ListBySchedule(ctx, *req.FromScheduleID)
		if err != nil {
			return schedule.BulkChangeResult{}, fmt.Errorf("list employees by schedule: %w", err)
		}
		for _, emp := range employees {
			employeeIDs = append(employeeIDs, emp.ID)
		}
	}

	var result schedule.BulkChangeResult
	for _, employeeID := range employeeIDs {
		single := schedule.ChangeScheduleRequest{
			EmployeeID: employeeID,
			ScheduleID: req.ScheduleID,
			DateFrom:   req.DateFrom,
			Reason:     req.Reason,
		}
		resp, err := s.ChangeSchedule(ctx, &single, changedBy)
		if err != nil {
			result.Errors = append(result.Errors, schedule.BulkChangeError{
				EmployeeID: employeeID,
				Message:    err.Error(),
			})
			continue
		}
		result.Changed = append(result.Changed, resp)
	}
	return result, nil
}

// ScheduleAsOf answers from the timeline alone; "current" is just the query
// with today's date.
func (s *ScheduleServiceImpl) ScheduleAsOf(ctx context.Context, employeeID string, date time.Time) (schedule.Schedule, error) {
	change, err := s.changeRepo.GetAsOf(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleChangeNotFound) {
			return schedule.Schedule{}, schedule.ErrNoScheduleAsOf
		}
		return schedule.Schedule{}, fmt.Errorf("get change as of: %w", err)
	}
	sched, err := s.scheduleRepo.GetByID(ctx, change.ScheduleID)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("get schedule: %w", err)
	}
	return sched, nil
}

func (s *ScheduleServiceImpl) Timeline(ctx context.Context, employeeID string) ([]schedule.ScheduleChangeResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	changes, err := s.changeRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list changes: %w", err)
	}
	responses := make([]schedule.ScheduleChangeResponse, 0, len(changes))
	for _, c := range changes {
		responses = append(responses, schedule.ToScheduleChangeResponse(c))
	}
	return responses, nil
}

// ProfileFor resolves the overtime profile as of a date: the timeline entry
// in force then wins, falling back to the contract's schedule and then the
// employee's. The workload comes from the open contract. An employee without
// schedule or contract gets an empty profile, which the calculator turns
// into zero buckets.
func (s *ScheduleServiceImpl) ProfileFor(ctx context.Context, employeeID string, asOf time.Time) (overtime.ScheduleProfile, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return overtime.ScheduleProfile{}, fmt.Errorf("get employee: %w", err)
	}

	var weeklyHours float64
	scheduleID := emp.ScheduleID
	contract, err := s.contractRepo.GetOpenByEmployee(ctx, employeeID)
	if err == nil {
		weeklyHours = contract.WeeklyHours
		if contract.ScheduleID != nil {
			scheduleID = contract.ScheduleID
		}
	} else if !errors.Is(err, employee.ErrContractNotFound) {
		return overtime.ScheduleProfile{}, fmt.Errorf("get open contract: %w", err)
	}

	change, err := s.changeRepo.GetAsOf(ctx, employeeID, asOf)
	if err == nil {
		scheduleID = &change.ScheduleID
	} else if !errors.Is(err, schedule.ErrScheduleChangeNotFound) {
		return overtime.ScheduleProfile{}, fmt.Errorf("get change as of: %w", err)
	}

	if scheduleID == nil {
		return overtime.ScheduleProfile{}, nil
	}
	sched, err := s.scheduleRepo.GetByID(ctx, *scheduleID)
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			return overtime.ScheduleProfile{}, nil
		}
		return overtime.ScheduleProfile{}, fmt.Errorf("get schedule: %w", err)
	}
	return sched.Profile(weeklyHours), nil
}
