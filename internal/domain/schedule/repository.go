package schedule

import (
	"context"
	"time"
)

type ScheduleRepository interface {
	Create(ctx context.Context, s *Schedule) error
	GetByID(ctx context.Context, id string) (Schedule, error)
	List(ctx context.Context) ([]Schedule, error)
}

type ScheduleChangeRepository interface {
	Create(ctx context.Context, c *ScheduleChange) error
	// CloseCurrent sets DateTo on the employee's open record, if any.
	CloseCurrent(ctx context.Context, employeeID string, dateTo time.Time) error
	GetAsOf(ctx context.Context, employeeID string, date time.Time) (ScheduleChange, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]ScheduleChange, error)
}
