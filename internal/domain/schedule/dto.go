package schedule

import (
	"strconv"
	"time"

	"github.com/kenocia/payroll-backend-go/internal/pkg/validator"
)

type ScheduleLineInput struct {
	DayOfWeek int     `json:"day_of_week"` // 0=Monday .. 6=Sunday
	HourFrom  float64 `json:"hour_from"`
	HourTo    float64 `json:"hour_to"`
}

type CreateScheduleRequest struct {
	Name      string              `json:"name"`
	Nocturnal bool                `json:"nocturnal"`
	Lines     []ScheduleLineInput `json:"lines"`
}

func (r *CreateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	for i, line := range r.Lines {
		field := func(name string) string {
			return "lines[" + strconv.Itoa(i) + "]." + name
		}
		if !validator.IsValidWeekday(line.DayOfWeek) {
			errs = append(errs, validator.ValidationError{
				Field:   field("day_of_week"),
				Message: "day_of_week must be between 0 (Monday) and 6 (Sunday)",
			})
		}
		if !validator.IsValidHourFloat(line.HourFrom) || !validator.IsValidHourFloat(line.HourTo) || line.HourFrom >= line.HourTo {
			errs = append(errs, validator.ValidationError{
				Field:   field("hour_from"),
				Message: "line hours must satisfy 0 <= hour_from < hour_to <= 30",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ChangeScheduleRequest struct {
	EmployeeID string  `json:"employee_id"`
	ScheduleID string  `json:"schedule_id"`
	DateFrom   *string `json:"date_from"` // YYYY-MM-DD, defaults to today
	Reason     string  `json:"reason"`
}

func (r *ChangeScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.ScheduleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "schedule_id",
			Message: "schedule_id is required",
		})
	}
	if r.DateFrom != nil {
		if _, valid := validator.IsValidDate(*r.DateFrom); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date_from",
				Message: "date_from must be a valid date in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkChangeScheduleRequest struct {
	EmployeeIDs []string `json:"employee_ids"`
	// FromScheduleID selects every employee currently on that schedule when
	// employee_ids is empty.
	FromScheduleID *string `json:"from_schedule_id,omitempty"`
	ScheduleID     string  `json:"schedule_id"`
	DateFrom       *string `json:"date_from"`
	Reason         string  `json:"reason"`
}

func (r *BulkChangeScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 && (r.FromScheduleID == nil || validator.IsEmpty(*r.FromScheduleID)) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: "provide employee_ids or from_schedule_id",
		})
	}
	if validator.IsEmpty(r.ScheduleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "schedule_id",
			Message: "schedule_id is required",
		})
	}
	if r.DateFrom != nil {
		if _, valid := validator.IsValidDate(*r.DateFrom); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date_from",
				Message: "date_from must be a valid date in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ScheduleChangeResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	ScheduleID         string  `json:"schedule_id"`
	PreviousScheduleID *string `json:"previous_schedule_id,omitempty"`
	DateFrom           string  `json:"date_from"`
	DateTo             *string `json:"date_to,omitempty"`
	Reason             string  `json:"reason,omitempty"`
	ChangedBy          string  `json:"changed_by"`
}

func ToScheduleChangeResponse(c ScheduleChange) ScheduleChangeResponse {
	resp := ScheduleChangeResponse{
		ID:                 c.ID,
		EmployeeID:         c.EmployeeID,
		ScheduleID:         c.ScheduleID,
		PreviousScheduleID: c.PreviousScheduleID,
		DateFrom:           c.DateFrom.Format("2006-01-02"),
		Reason:             c.Reason,
		ChangedBy:          c.ChangedBy,
	}
	if c.DateTo != nil {
		to := c.DateTo.Format("2006-01-02")
		resp.DateTo = &to
	}
	return resp
}

// BulkChangeResult reports per-employee outcomes: one employee failing must
// not block the rest of the batch.
type BulkChangeResult struct {
	Changed []ScheduleChangeResponse `json:"changed"`
	Errors  []BulkChangeError        `json:"errors,omitempty"`
}

type BulkChangeError struct {
	EmployeeID string `json:"employee_id"`
	Message    string `json:"message"`
}

func ParseDateFrom(raw *string, fallback time.Time) (time.Time, error) {
	if raw == nil || *raw == "" {
		y, m, d := fallback.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, fallback.Location()), nil
	}
	return time.ParseInLocation("2006-01-02", *raw, fallback.Location())
}
