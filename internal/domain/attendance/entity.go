package attendance

import "time"

type PartialType string

const (
	// PartialComplete has both a real entry and a real exit mark.
	PartialComplete PartialType = "complete"
	// PartialEntryOnly has a real entry; the exit is absent.
	PartialEntryOnly PartialType = "entry_only"
	// PartialExitOnly has a real exit; the entry was synthesized from the
	// schedule.
	PartialExitOnly PartialType = "exit_only"
)

// Attendance is one worked interval. CheckIn always preserves the raw clock
// mark and is the entry the overtime computation reads; ScheduleCheckIn is
// the scheduled-equivalent entry worked hours prefer when the employee
// clocked in before their shift.
type Attendance struct {
	ID              string      `json:"id"`
	EmployeeID      string      `json:"employee_id"`
	CheckIn         time.Time   `json:"check_in"`
	CheckOut        *time.Time  `json:"check_out,omitempty"`
	ScheduleCheckIn *time.Time  `json:"schedule_check_in,omitempty"`
	PartialType     PartialType `json:"partial_type"`

	WorkedHours              float64 `json:"worked_hours"`
	CheckInDifferenceMinutes float64 `json:"check_in_difference_minutes"`

	HE25            float64 `json:"he25"`
	HE50            float64 `json:"he50"`
	HE75            float64 `json:"he75"`
	SaturdayAccrual float64 `json:"saturday_accrual"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveCheckIn is the entry reference worked hours are measured from.
func (a Attendance) EffectiveCheckIn() time.Time {
	if a.ScheduleCheckIn != nil {
		return *a.ScheduleCheckIn
	}
	return a.CheckIn
}
