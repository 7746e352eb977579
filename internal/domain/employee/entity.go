package employee

import "time"

// Employee is a payroll-relevant subset of the personnel record. Badge is the
// numeric code punched at the attendance clock and is unique per company.
type Employee struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Badge              string     `json:"badge"`
	IdentificationID   *string    `json:"identification_id,omitempty"`
	Department         *string    `json:"department,omitempty"`
	ScheduleID         *string    `json:"schedule_id,omitempty"`
	LastScheduleChange *time.Time `json:"last_schedule_change,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type ContractState string

const (
	ContractStateOpen  ContractState = "open"
	ContractStateClose ContractState = "close"
)

// Contract carries the weekly workload that selects the overtime profile. An
// employee has at most one open contract at a time.
type Contract struct {
	ID          string        `json:"id"`
	EmployeeID  string        `json:"employee_id"`
	ScheduleID  *string       `json:"schedule_id,omitempty"`
	WeeklyHours float64       `json:"weekly_hours"`
	Wage        float64       `json:"wage"`
	State       ContractState `json:"state"`
	DateStart   time.Time     `json:"date_start"`
	DateEnd     *time.Time    `json:"date_end,omitempty"`
}
