package overtime

import (
	"math"
	"time"

	"github.com/kenocia/payroll-backend-go/internal/domain/overtime"
)

// The window boundaries below are contractual constants negotiated per union
// contract, not values derived from calendar data. Hours are float hours from
// the midnight of the check-in's civil day; values past 24 land on the next
// day.
const (
	// 60h day shift, Monday-Thursday
	weekdayOvertimeFloor = 15.0 // overtime never starts before 15:00
	weekdayHE25End       = 19.0
	weekdayHE50End       = 24.0
	weekdayHE75End       = 29.0 // 05:00 next day

	// 60h day shift, Friday (06:00-14:00 ordinary)
	fridayOrdinaryEnd = 14.0
	fridayHE25End     = 18.0

	// 60h night shift (18:00-06:00, crossing midnight)
	nightOrdinaryEnd = 25.0 // 01:00 next day
	nightHE75End     = 30.0 // 06:00 next day

	// 44h day shift (07:30-16:30 scheduled)
	ordinaryEnd44        = 15.5
	saturdayAccrualEnd44 = 16.5
	he25End44            = 19.0
	he50End44            = 22.0
	he75End44            = 30.0 // 06:00 next day

	// Ordinary workload per day before overtime can start (60h day shift).
	ordinaryShiftHours = 8
)

type bucketKind int

const (
	bucketHE25 bucketKind = iota
	bucketHE50
	bucketHE75
	bucketSaturdayAccrual
)

// window is one overtime band: [From, To) in float hours from the base day's
// midnight, feeding one bucket.
type window struct {
	from   float64
	to     float64
	bucket bucketKind
}

var (
	weekday60Windows = []window{
		{weekdayOvertimeFloor, weekdayHE25End, bucketHE25},
		{weekdayHE25End, weekdayHE50End, bucketHE50},
		{weekdayHE50End, weekdayHE75End, bucketHE75},
	}
	friday60Windows = []window{
		{fridayOrdinaryEnd, fridayHE25End, bucketHE25},
		{fridayHE25End, weekdayHE50End, bucketHE50},
		{weekdayHE50End, weekdayHE75End, bucketHE75},
	}
	night60Windows = []window{
		{nightOrdinaryEnd, nightHE75End, bucketHE75},
	}
	day44Windows = []window{
		{ordinaryEnd44, saturdayAccrualEnd44, bucketSaturdayAccrual},
		{saturdayAccrualEnd44, he25End44, bucketHE25},
		{he25End44, he50End44, bucketHE50},
		{he50End44, he75End44, bucketHE75},
	}
)

// Calculator partitions the overtime portion of an attendance interval into
// premium buckets. It is stateless apart from the civil timezone; computing
// the same interval twice always yields the same buckets.
type Calculator struct {
	loc *time.Location
}

func NewCalculator(loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	return &Calculator{loc: loc}
}

// ComputeBuckets returns the overtime buckets for one interval under the
// given profile. Missing bounds, an unresolvable profile and a day without
// calendar lines all yield zero buckets: no rules defined means no overtime
// owed, never an error.
func (c *Calculator) ComputeBuckets(checkIn, checkOut *time.Time, prof overtime.ScheduleProfile) overtime.Buckets {
	var b overtime.Buckets
	if checkIn == nil || checkOut == nil {
		return b
	}

	in := checkIn.In(c.loc)
	out := checkOut.In(c.loc)
	if !out.After(in) {
		return b
	}

	day := weekdayIndex(in)
	profile := overtime.DetectProfile(prof.WeeklyHours, prof.Nocturnal)

	// The 60h day contract treats Saturday as overtime by policy, so that
	// branch runs even when the calendar defines no Saturday lines.
	saturday60Day := profile == overtime.Profile60Day && day == 5
	if !prof.HasLines(day) && !saturday60Day {
		return b
	}

	switch profile {
	case overtime.Profile60Day:
		b = c.buckets60Day(in, out, day)
	case overtime.Profile60Night:
		b = c.buckets60Night(in, out)
	case overtime.Profile44Day:
		b = c.buckets44Day(in, out)
	default:
		return b
	}

	b.HE25 = round2(b.HE25)
	b.HE50 = round2(b.HE50)
	b.HE75 = round2(b.HE75)
	b.SaturdayAccrual = round2(b.SaturdayAccrual)
	return b
}

func (c *Calculator) buckets60Day(in, out time.Time, day int) overtime.Buckets {
	switch day {
	case 5: // Saturday: the whole worked span is HE25, no ordinary carve-out
		var b overtime.Buckets
		b.HE25 = out.Sub(in).Hours()
		return b
	case 4: // Friday: 06:00-14:00 ordinary, then fixed bands
		ref := laterOf(in, c.timeAt(in, fridayOrdinaryEnd))
		return c.accumulate(ref, out, in, friday60Windows)
	default: // Monday-Thursday: overtime starts after 8h worked, 15:00 at the earliest
		ref := in.Add(ordinaryShiftHours * time.Hour)
		if floor := c.timeAt(in, weekdayOvertimeFloor); floor.After(ref) {
			ref = floor
		}
		if !out.After(ref) {
			return overtime.Buckets{}
		}
		return c.accumulate(ref, out, in, weekday60Windows)
	}
}

func (c *Calculator) buckets60Night(in, out time.Time) overtime.Buckets {
	// 18:00-01:00 is ordinary time; only 01:00-06:00 pays, all at 75%.
	ref := laterOf(in, c.timeAt(in, nightOrdinaryEnd))
	return c.accumulate(ref, out, in, night60Windows)
}

func (c *Calculator) buckets44Day(in, out time.Time) overtime.Buckets {
	ref := laterOf(in, c.timeAt(in, ordinaryEnd44))
	return c.accumulate(ref, out, in, day44Windows)
}

// accumulate walks the profile's windows in chronological order. Each window
// contributes min(exit, winEnd) - max(entryRef, winStart) when the exit lies
// past the window's start; a late exit can span several windows, each
// contributing its own slice.
func (c *Calculator) accumulate(entryRef, exit, base time.Time, windows []window) overtime.Buckets {
	var b overtime.Buckets
	for _, w := range windows {
		winStart := c.timeAt(base, w.from)
		winEnd := c.timeAt(base, w.to)
		if !exit.After(winStart) {
			continue
		}

		start := entryRef
		if winStart.After(start) {
			start = winStart
		}
		end := exit
		if winEnd.Before(end) {
			end = winEnd
		}
		if !end.After(start) {
			continue
		}

		hours := end.Sub(start).Hours()
		switch w.bucket {
		case bucketHE25:
			b.HE25 += hours
		case bucketHE50:
			b.HE50 += hours
		case bucketHE75:
			b.HE75 += hours
		case bucketSaturdayAccrual:
			b.SaturdayAccrual += hours
		}
	}
	return b
}

// timeAt resolves a float-hour offset against the midnight of t's civil day.
// Offsets of 24 and above roll into the following day.
func (c *Calculator) timeAt(t time.Time, hours float64) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
	minutes := int(math.Round(hours * 60))
	return midnight.Add(time.Duration(minutes) * time.Minute)
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// weekdayIndex maps Go's Sunday-first weekday onto the 0=Monday..6=Sunday
// convention the calendar lines use.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
