package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, a *Attendance) error
	GetByID(ctx context.Context, id string) (Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListAttendanceFilter) ([]Attendance, int64, error)
	// GetCompleteByEmployeeAndDay finds a complete record whose check in
	// falls within [dayStart, dayEnd), used to skip duplicate imports.
	GetCompleteByEmployeeAndDay(ctx context.Context, employeeID string, dayStart, dayEnd time.Time) (Attendance, error)
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]Attendance, error)
}
