package schedule

import (
	"context"
	"time"

	"github.com/kenocia/payroll-backend-go/internal/domain/overtime"
)

type ScheduleService interface {
	CreateSchedule(ctx context.Context, req *CreateScheduleRequest) (Schedule, error)
	ListSchedules(ctx context.Context) ([]Schedule, error)
	// ChangeSchedule appends a timeline entry, closes the previous open one
	// and propagates the new schedule onto the employee and their open
	// contract, all in one transaction.
	ChangeSchedule(ctx context.Context, req *ChangeScheduleRequest, changedBy string) (ScheduleChangeResponse, error)
	// BulkChange applies ChangeSchedule to each employee, isolating
	// per-employee failures.
	BulkChange(ctx context.Context, req *BulkChangeScheduleRequest, changedBy string) (BulkChangeResult, error)
	// ScheduleAsOf answers which schedule governed the employee on a date.
	ScheduleAsOf(ctx context.Context, employeeID string, date time.Time) (Schedule, error)
	Timeline(ctx context.Context, employeeID string) ([]ScheduleChangeResponse, error)
	// ProfileFor resolves the employee's overtime profile as of a date:
	// calendar from the schedule in force then, workload from the open
	// contract.
	ProfileFor(ctx context.Context, employeeID string, asOf time.Time) (overtime.ScheduleProfile, error)
}
