package schedule

import (
	"sort"
	"time"

	"github.com/kenocia/payroll-backend-go/internal/domain/overtime"
)

// Schedule is a working-time calendar. Nocturnal marks shifts that cross
// midnight; the flag drives both overtime bucketing and mark classification.
type Schedule struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Nocturnal bool           `json:"nocturnal"`
	Lines     []ScheduleLine `json:"lines,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ScheduleLine is one attendance span. DayOfWeek uses 0=Monday..6=Sunday and
// hours are float hours from midnight; HourTo past 24 lands on the next day.
type ScheduleLine struct {
	ID         string  `json:"id"`
	ScheduleID string  `json:"schedule_id"`
	DayOfWeek  int     `json:"day_of_week"`
	HourFrom   float64 `json:"hour_from"`
	HourTo     float64 `json:"hour_to"`
}

// ScheduleChange is one entry of an employee's schedule timeline. DateTo nil
// means the assignment is still in force; at most one open entry may exist
// per employee.
type ScheduleChange struct {
	ID                 string     `json:"id"`
	EmployeeID         string     `json:"employee_id"`
	ScheduleID         string     `json:"schedule_id"`
	PreviousScheduleID *string    `json:"previous_schedule_id,omitempty"`
	DateFrom           time.Time  `json:"date_from"`
	DateTo             *time.Time `json:"date_to,omitempty"`
	Reason             string     `json:"reason,omitempty"`
	ChangedBy          string     `json:"changed_by"`
	CreatedAt          time.Time  `json:"created_at"`
}

// Profile projects the schedule's calendar into the shape the overtime
// calculator consumes. The weekly workload comes from the contract, not the
// calendar, so the caller supplies it.
func (s Schedule) Profile(weeklyHours float64) overtime.ScheduleProfile {
	days := make(map[int][]overtime.Window, 7)
	for _, line := range s.Lines {
		days[line.DayOfWeek] = append(days[line.DayOfWeek], overtime.Window{
			From: line.HourFrom,
			To:   line.HourTo,
		})
	}
	return overtime.ScheduleProfile{
		WeeklyHours: weeklyHours,
		Nocturnal:   s.Nocturnal,
		Days:        days,
	}
}

// HoursPerDay derives the ordinary daily workload from the calendar: total
// scheduled hours divided by the number of days carrying lines.
func (s Schedule) HoursPerDay() float64 {
	daysSeen := make(map[int]bool)
	var total float64
	for _, line := range s.Lines {
		total += line.HourTo - line.HourFrom
		daysSeen[line.DayOfWeek] = true
	}
	if len(daysSeen) == 0 {
		return 0
	}
	return total / float64(len(daysSeen))
}

// StartHoursOn returns every line start for the weekday in ascending order.
// A split-shift day contributes one start per line.
func (s Schedule) StartHoursOn(weekday int) []float64 {
	var starts []float64
	for _, line := range s.Lines {
		if line.DayOfWeek == weekday {
			starts = append(starts, line.HourFrom)
		}
	}
	sort.Float64s(starts)
	return starts
}

// StartHourOn returns the earliest line start for the weekday, used to derive
// the scheduled-equivalent check-in.
func (s Schedule) StartHourOn(weekday int) (float64, bool) {
	found := false
	var earliest float64
	for _, line := range s.Lines {
		if line.DayOfWeek != weekday {
			continue
		}
		if !found || line.HourFrom < earliest {
			earliest = line.HourFrom
			found = true
		}
	}
	return earliest, found
}
