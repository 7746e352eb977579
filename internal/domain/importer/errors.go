package importer

import "errors"

var (
	ErrEmptyWorkbook       = errors.New("workbook has no attendance rows")
	ErrNoClassifiableMarks = errors.New("no classifiable marks for employee")
	ErrNoSchedule          = errors.New("employee has no schedule to synthesize from")
	ErrSynthesisFailed     = errors.New("no schedule candidate yields a plausible shift")
	ErrEmployeeNotFound    = errors.New("badge does not match any employee")
	ErrUnreadableTimestamp = errors.New("cell does not contain a readable timestamp")
)
