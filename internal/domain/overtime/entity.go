package overtime

// Buckets holds the overtime hours computed for one attendance interval,
// split by premium band. Values are hours rounded to 2 decimal places.
type Buckets struct {
	HE25            float64
	HE50            float64
	HE75            float64
	SaturdayAccrual float64
}

// Total returns the paid overtime hours. The Saturday accrual is banked
// toward the Saturday half-day, not paid as a premium, so it is excluded.
func (b Buckets) Total() float64 {
	return b.HE25 + b.HE50 + b.HE75
}

// IsZero reports whether no window produced any hours.
func (b Buckets) IsZero() bool {
	return b.HE25 == 0 && b.HE50 == 0 && b.HE75 == 0 && b.SaturdayAccrual == 0
}

// Window is a scheduled block within one day, in float hours from midnight
// (7.5 = 07:30). From is inclusive, To exclusive.
type Window struct {
	From float64
	To   float64
}

// ScheduleProfile is a snapshot of the work rules in force for one employee
// on the day being computed: the contract's weekly-hours figure, the
// calendar's nocturnal flag and the calendar lines keyed by weekday
// (0=Monday .. 6=Sunday). It is assembled by the schedule service and is
// never cached across computations.
type ScheduleProfile struct {
	WeeklyHours float64
	Nocturnal   bool
	Days        map[int][]Window
}

// HasLines reports whether the calendar defines any block for the weekday.
func (p ScheduleProfile) HasLines(weekday int) bool {
	return len(p.Days[weekday]) > 0
}

// StartHour returns the first scheduled block's start for the weekday.
func (p ScheduleProfile) StartHour(weekday int) (float64, bool) {
	lines := p.Days[weekday]
	if len(lines) == 0 {
		return 0, false
	}
	return lines[0].From, true
}

// Profile identifies one of the union contracts with a distinct overtime
// structure. The set is closed: the three contracts below are the only ones
// with overtime rules; anything else owes no overtime.
type Profile int

const (
	ProfileNone Profile = iota
	Profile44Day
	Profile60Day
	Profile60Night
)

func (p Profile) String() string {
	switch p {
	case Profile44Day:
		return "44h-day"
	case Profile60Day:
		return "60h-day"
	case Profile60Night:
		return "60h-night"
	default:
		return "none"
	}
}

// DetectProfile maps the contract's weekly-hours figure and the calendar's
// nocturnal flag onto the closed profile set.
func DetectProfile(weeklyHours float64, nocturnal bool) Profile {
	switch {
	case weeklyHours == 60 && !nocturnal:
		return Profile60Day
	case weeklyHours == 60 && nocturnal:
		return Profile60Night
	case weeklyHours == 44 && !nocturnal:
		return Profile44Day
	default:
		return ProfileNone
	}
}
