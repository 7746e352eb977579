package attendance

import (
	"github.com/kenocia/payroll-backend-go/internal/pkg/validator"
)

type CreateAttendanceRequest struct {
	EmployeeID string  `json:"employee_id"`
	CheckIn    string  `json:"check_in"`            // RFC3339
	CheckOut   *string `json:"check_out,omitempty"` // RFC3339
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.CheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in is required",
		})
	} else if _, valid := validator.IsValidDateTime(r.CheckIn); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in must be an RFC3339 timestamp",
		})
	}
	if r.CheckOut != nil {
		if _, valid := validator.IsValidDateTime(*r.CheckOut); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateAttendanceRequest struct {
	CheckIn  *string `json:"check_in,omitempty"`
	CheckOut *string `json:"check_out,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CheckIn == nil && r.CheckOut == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "at least one of check_in or check_out must be provided",
		})
	}
	if r.CheckIn != nil {
		if _, valid := validator.IsValidDateTime(*r.CheckIn); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be an RFC3339 timestamp",
			})
		}
	}
	if r.CheckOut != nil {
		if _, valid := validator.IsValidDateTime(*r.CheckOut); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	CheckIn         string  `json:"check_in"`
	CheckOut        *string `json:"check_out,omitempty"`
	ScheduleCheckIn *string `json:"schedule_check_in,omitempty"`
	PartialType     string  `json:"partial_type"`

	WorkedHours              float64 `json:"worked_hours"`
	CheckInDifferenceMinutes float64 `json:"check_in_difference_minutes"`

	HE25            float64 `json:"he25"`
	HE50            float64 `json:"he50"`
	HE75            float64 `json:"he75"`
	SaturdayAccrual float64 `json:"saturday_accrual"`
}

type ListAttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	DateFrom   *string `json:"date_from,omitempty"` // YYYY-MM-DD
	DateTo     *string `json:"date_to,omitempty"`   // YYYY-MM-DD

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ListAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.DateFrom != nil {
		if _, valid := validator.IsValidDate(*f.DateFrom); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date_from",
				Message: "date_from must be a valid date in YYYY-MM-DD format",
			})
		}
	}
	if f.DateTo != nil {
		if _, valid := validator.IsValidDate(*f.DateTo); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date_to",
				Message: "date_to must be a valid date in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
