package response

import (
	"errors"
	"net/http"

	"github.com/kenocia/payroll-backend-go/internal/domain/attendance"
	"github.com/kenocia/payroll-backend-go/internal/domain/employee"
	"github.com/kenocia/payroll-backend-go/internal/domain/importer"
	"github.com/kenocia/payroll-backend-go/internal/domain/payroll"
	"github.com/kenocia/payroll-backend-go/internal/domain/schedule"
	"github.com/kenocia/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrBadgeNotFound):
		NotFound(w, "No employee matches the badge")
	case errors.Is(err, employee.ErrContractNotFound):
		NotFound(w, "Employee has no open contract")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule not found")
	case errors.Is(err, schedule.ErrScheduleChangeNotFound):
		NotFound(w, "Schedule change not found")
	case errors.Is(err, schedule.ErrNoScheduleAsOf):
		NotFound(w, "No schedule in force at the requested date")
	case errors.Is(err, schedule.ErrSameSchedule):
		Conflict(w, "Employee is already on the requested schedule")
	case errors.Is(err, schedule.ErrOverlappingChange):
		Conflict(w, "Schedule change overlaps an existing record")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance not found")
	case errors.Is(err, attendance.ErrCheckOutBeforeIn):
		BadRequest(w, "Check out cannot precede check in", nil)

	// Import domain errors
	case errors.Is(err, importer.ErrEmptyWorkbook):
		BadRequest(w, "Workbook has no attendance rows", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrBatchNotFound):
		NotFound(w, "Payslip batch not found")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrEmptyPeriod):
		BadRequest(w, "Period contains no attendance", nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
