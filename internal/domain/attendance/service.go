package attendance

import "context"

type AttendanceService interface {
	Create(ctx context.Context, req *CreateAttendanceRequest) (AttendanceResponse, error)
	GetByID(ctx context.Context, id string) (AttendanceResponse, error)
	Update(ctx context.Context, id string, req *UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListAttendanceFilter) ([]AttendanceResponse, int64, error)
	// Recompute re-runs the overtime bucketing for one record against the
	// employee's current profile. Computing twice never changes the result.
	Recompute(ctx context.Context, id string) (AttendanceResponse, error)
}
