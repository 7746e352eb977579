package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByBadge(ctx context.Context, badge string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	ListBySchedule(ctx context.Context, scheduleID string) ([]Employee, error)
	UpdateSchedule(ctx context.Context, employeeID, scheduleID string) error
}

type ContractRepository interface {
	GetOpenByEmployee(ctx context.Context, employeeID string) (Contract, error)
	UpdateScheduleForOpen(ctx context.Context, employeeID, scheduleID string) error
}
