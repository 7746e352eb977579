package payroll

import "errors"

var (
	ErrBatchNotFound   = errors.New("payslip batch not found")
	ErrPayslipNotFound = errors.New("payslip not found")
	ErrInputNotFound   = errors.New("payslip has no input with that code")
	ErrEmptyPeriod     = errors.New("period contains no attendance")
)
