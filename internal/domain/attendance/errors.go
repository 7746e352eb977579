package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance not found")
	ErrCheckOutBeforeIn   = errors.New("check out cannot precede check in")
)
