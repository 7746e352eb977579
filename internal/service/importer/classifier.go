package importer

import (
	"sort"
	"time"

	"github.com/kenocia/payroll-backend-go/internal/domain/importer"
	"github.com/kenocia/payroll-backend-go/internal/domain/schedule"
)

// Heuristic boundaries for reading intent out of raw clock punches. The clock
// records timestamps only; whether a punch opens or closes a shift is decided
// from its position in the day.
const (
	// Punches closer together than this are the same physical punch
	// registered twice.
	dedupeWindow = 10 * time.Second

	// Night shift: punches from 16:00 open the day's shift, punches up to
	// 10:00 close the previous day's shift. A punch strictly between the two
	// is a late exit of the previous day.
	nocturnalEntryHour = 16.0
	nocturnalCloseHour = 10.0

	// A night exit after 07:00 is anomalous but still counts as an exit.
	nocturnalCleanExitHour = 7.0

	// Day shift: punches up to 10:00 are entries, later punches are exits.
	diurnalEntryHour = 10.0

	// A synthesized shift must last between minShiftHours and maxShiftHours,
	// both inclusive, to be believable. A full 12h night shift sits exactly
	// on the upper edge.
	minShiftHours = 4.0
	maxShiftHours = 12.0
)

// Classifier turns one employee's raw punches into resolved shifts. It is
// pure: no I/O, same input always yields the same output.
type Classifier struct {
	loc *time.Location
}

func NewClassifier(loc *time.Location) *Classifier {
	if loc == nil {
		loc = time.UTC
	}
	return &Classifier{loc: loc}
}

type markKind int

const (
	markEntry markKind = iota
	markExit
)

type classifiedMark struct {
	at        time.Time
	kind      markKind
	anomalous bool
}

// Classify runs the pipeline for one employee: dedupe, group into per-day
// shifts, classify each punch, resolve, and synthesize missing sides from
// the schedule. Failures are reported per shift; they never abort the rest
// of the employee's days. Without a schedule the nocturnal flag is unknowable
// and no punch can be read, so the whole employee fails as one unit.
func (c *Classifier) Classify(badge string, marks []time.Time, sched *schedule.Schedule) ([]importer.ResolvedShift, []importer.ShiftFailure) {
	if len(marks) == 0 {
		return nil, nil
	}
	if sched == nil {
		return nil, []importer.ShiftFailure{{
			Badge:  badge,
			Stage:  importer.StageResolution,
			Reason: importer.ErrNoSchedule.Error(),
			Marks:  marks,
		}}
	}
	nocturnal := sched.Nocturnal

	local := make([]time.Time, 0, len(marks))
	for _, m := range marks {
		local = append(local, m.In(c.loc))
	}
	sort.Slice(local, func(i, j int) bool { return local[i].Before(local[j]) })
	local = dedupe(local)

	groups := c.group(local, nocturnal)

	days := make([]time.Time, 0, len(groups))
	for day := range groups {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var shifts []importer.ResolvedShift
	var failures []importer.ShiftFailure
	for _, day := range days {
		group := groups[day]
		shift, err := c.resolveDay(badge, day, group, nocturnal, sched)
		if err != nil {
			failures = append(failures, *err)
			continue
		}
		shifts = append(shifts, shift)
	}
	return shifts, failures
}

// dedupe collapses punches within dedupeWindow of the last kept punch. The
// input must be sorted.
func dedupe(marks []time.Time) []time.Time {
	if len(marks) == 0 {
		return marks
	}
	kept := marks[:1]
	for _, m := range marks[1:] {
		if m.Sub(kept[len(kept)-1]) <= dedupeWindow {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

// group assigns each punch to the civil day whose shift it belongs to. Night
// punches before nocturnalCloseHour, and the ambiguous late-morning ones,
// belong to the previous day's shift.
func (c *Classifier) group(marks []time.Time, nocturnal bool) map[time.Time][]time.Time {
	groups := make(map[time.Time][]time.Time)
	for _, m := range marks {
		day := midnightOf(m)
		if nocturnal && hourOf(m) < nocturnalEntryHour {
			day = day.AddDate(0, 0, -1)
		}
		groups[day] = append(groups[day], m)
	}
	return groups
}

func (c *Classifier) resolveDay(badge string, day time.Time, group []time.Time, nocturnal bool, sched *schedule.Schedule) (importer.ResolvedShift, *importer.ShiftFailure) {
	var entries, exits []classifiedMark
	for _, m := range group {
		cm := classify(m, nocturnal)
		if cm.kind == markEntry {
			entries = append(entries, cm)
		} else {
			exits = append(exits, cm)
		}
	}

	if len(entries) == 0 && len(exits) == 0 {
		return importer.ResolvedShift{}, c.failure(badge, day, importer.StageClassification, importer.ErrNoClassifiableMarks.Error(), group)
	}

	shift := importer.ResolvedShift{Badge: badge}
	if len(entries) > 0 {
		first := entries[0].at
		shift.Entry = &first
	}
	if len(exits) > 0 {
		last := exits[len(exits)-1].at
		shift.Exit = &last
	}

	switch {
	case shift.Entry != nil && shift.Exit != nil:
		c.resolveComplete(&shift, nocturnal)
	case shift.Entry != nil:
		c.synthesizeExitSide(&shift, sched)
	default:
		if err := c.synthesizeEntry(&shift, day, sched); err != nil {
			return importer.ResolvedShift{}, c.failure(badge, day, importer.StageSynthesis, err.Error(), group)
		}
	}
	return shift, nil
}

func classify(m time.Time, nocturnal bool) classifiedMark {
	h := hourOf(m)
	if nocturnal {
		switch {
		case h >= nocturnalEntryHour:
			return classifiedMark{at: m, kind: markEntry}
		case h <= nocturnalCleanExitHour:
			return classifiedMark{at: m, kind: markExit}
		default:
			return classifiedMark{at: m, kind: markExit, anomalous: true}
		}
	}
	if h <= diurnalEntryHour {
		return classifiedMark{at: m, kind: markEntry}
	}
	return classifiedMark{at: m, kind: markExit}
}

// resolveComplete fixes the one known clock artifact: a night exit stamped on
// the entry's own date instead of the morning after.
func (c *Classifier) resolveComplete(shift *importer.ResolvedShift, nocturnal bool) {
	shift.Kind = importer.ShiftComplete
	if !nocturnal {
		return
	}
	if sameDay(*shift.Entry, *shift.Exit) &&
		hourOf(*shift.Entry) >= nocturnalEntryHour &&
		hourOf(*shift.Exit) <= nocturnalCloseHour {
		bumped := shift.Exit.AddDate(0, 0, 1)
		shift.Exit = &bumped
	}
}

// synthesizeExitSide handles an entry-only shift: the raw punch stays, but
// when the employee clocked in before the scheduled start the
// scheduled-equivalent entry snaps forward to it.
func (c *Classifier) synthesizeExitSide(shift *importer.ResolvedShift, sched *schedule.Schedule) {
	shift.Kind = importer.ShiftEntryOnly
	entry := *shift.Entry
	day := midnightOf(entry)
	// A nocturnal punch before noon belongs to the shift that started the
	// evening before, so the comparison uses the previous day's calendar.
	if sched.Nocturnal && hourOf(entry) < 12 {
		day = day.AddDate(0, 0, -1)
	}
	startHour, ok := sched.StartHourOn(weekdayIndex(day))
	if !ok {
		return
	}
	scheduled := timeAtHour(day, startHour)
	if entry.Before(scheduled) {
		shift.ScheduleEntry = &scheduled
	}
}

// synthesizeEntry handles an exit-only shift: try every line start on the
// exit's own day and the adjacent days, keep candidates whose implied
// duration is plausible, and pick the shortest. No candidate is a hard
// failure for the day.
func (c *Classifier) synthesizeEntry(shift *importer.ResolvedShift, day time.Time, sched *schedule.Schedule) error {
	shift.Kind = importer.ShiftExitOnly

	exit := *shift.Exit
	var best *time.Time
	for _, offset := range []int{0, -1, 1} {
		candidateDay := midnightOf(exit).AddDate(0, 0, offset)
		for _, startHour := range sched.StartHoursOn(weekdayIndex(candidateDay)) {
			candidate := timeAtHour(candidateDay, startHour)
			dur := exit.Sub(candidate).Hours()
			if dur < minShiftHours || dur > maxShiftHours {
				continue
			}
			// The latest surviving candidate implies the shortest shift.
			if best == nil || candidate.After(*best) {
				c := candidate
				best = &c
			}
		}
	}
	if best == nil {
		return importer.ErrSynthesisFailed
	}
	shift.ScheduleEntry = best
	return nil
}

func (c *Classifier) failure(badge string, day time.Time, stage, reason string, marks []time.Time) *importer.ShiftFailure {
	return &importer.ShiftFailure{
		Badge:  badge,
		Date:   day.Format("2006-01-02"),
		Stage:  stage,
		Reason: reason,
		Marks:  marks,
	}
}

func hourOf(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

func midnightOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func timeAtHour(midnight time.Time, hours float64) time.Time {
	return midnight.Add(time.Duration(int(hours*60)) * time.Minute)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
