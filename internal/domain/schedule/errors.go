package schedule

import "errors"

var (
	ErrScheduleNotFound       = errors.New("schedule not found")
	ErrScheduleChangeNotFound = errors.New("schedule change not found")
	ErrNoScheduleAsOf         = errors.New("no schedule in force at the requested date")
	ErrSameSchedule           = errors.New("employee is already on the requested schedule")
	ErrOverlappingChange      = errors.New("schedule change overlaps an existing record")
)
