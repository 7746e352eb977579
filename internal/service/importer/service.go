package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kenocia/payroll-backend-go/internal/domain/attendance"
	"github.com/kenocia/payroll-backend-go/internal/domain/employee"
	"github.com/kenocia/payroll-backend-go/internal/domain/importer"
	"github.com/kenocia/payroll-backend-go/internal/domain/schedule"
	"github.com/kenocia/payroll-backend-go/internal/pkg/validator"
	overtimesvc "github.com/kenocia/payroll-backend-go/internal/service/overtime"
)

// Clock export layout: timestamps in column A, badge numbers in column G,
// first row is the header.
const (
	timestampColumn = 0
	badgeColumn     = 6
)

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"1/2/06 15:04",
	time.RFC3339,
}

type ImportServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	contractRepo   employee.ContractRepository
	scheduleRepo   schedule.ScheduleRepository
	attendanceRepo attendance.AttendanceRepository
	classifier     *Classifier
	calculator     *overtimesvc.Calculator
	loc            *time.Location
}

func NewImportService(
	employeeRepo employee.EmployeeRepository,
	contractRepo employee.ContractRepository,
	scheduleRepo schedule.ScheduleRepository,
	attendanceRepo attendance.AttendanceRepository,
	loc *time.Location,
) *ImportServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &ImportServiceImpl{
		employeeRepo:   employeeRepo,
		contractRepo:   contractRepo,
		scheduleRepo:   scheduleRepo,
		attendanceRepo: attendanceRepo,
		classifier:     NewClassifier(loc),
		calculator:     overtimesvc.NewCalculator(loc),
		loc:            loc,
	}
}

func (s *ImportServiceImpl) ImportWorkbook(ctx context.Context, r io.Reader) (importer.BatchSummary, error) {
	var summary importer.BatchSummary

	marks, parseFailures, err := s.parseWorkbook(r)
	if err != nil {
		return summary, err
	}
	summary.Failures = append(summary.Failures, parseFailures...)
	summary.Failed += len(parseFailures)

	if len(marks) == 0 && len(parseFailures) == 0 {
		return summary, importer.ErrEmptyWorkbook
	}

	marksByBadge := make(map[string][]time.Time)
	for _, mark := range marks {
		marksByBadge[mark.Badge] = append(marksByBadge[mark.Badge], mark.At)
	}

	badges := make([]string, 0, len(marksByBadge))
	for badge := range marksByBadge {
		badges = append(badges, badge)
	}
	sort.Strings(badges)

	for _, badge := range badges {
		s.importEmployee(ctx, badge, marksByBadge[badge], &summary)
	}
	return summary, nil
}

// parseWorkbook reads the first sheet into raw marks. Unreadable rows become
// failures, never a batch abort.
func (s *ImportServiceImpl) parseWorkbook(r io.Reader) ([]importer.Mark, []importer.ShiftFailure, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, importer.ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var marks []importer.Mark
	var failures []importer.ShiftFailure
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) <= badgeColumn {
			continue // trailing blank rows
		}
		badge := strings.TrimSpace(row[badgeColumn])
		raw := strings.TrimSpace(row[timestampColumn])
		if badge == "" && raw == "" {
			continue
		}
		if !validator.IsValidBadge(badge) {
			failures = append(failures, importer.ShiftFailure{
				Badge:  badge,
				Stage:  importer.StageGrouping,
				Reason: fmt.Sprintf("row %d: badge %q is not a valid badge number", i+1, badge),
			})
			continue
		}

		at, err := s.parseTimestamp(raw)
		if err != nil {
			failures = append(failures, importer.ShiftFailure{
				Badge:  badge,
				Stage:  importer.StageGrouping,
				Reason: fmt.Sprintf("row %d: %v", i+1, err),
			})
			continue
		}
		marks = append(marks, importer.Mark{Badge: badge, At: at})
	}
	return marks, failures, nil
}

func (s *ImportServiceImpl) parseTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, importer.ErrUnreadableTimestamp
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, s.loc); err == nil {
			return t, nil
		}
	}
	// Numeric cells survive GetRows as the raw excel serial.
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, s.loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", importer.ErrUnreadableTimestamp, raw)
}

func (s *ImportServiceImpl) importEmployee(ctx context.Context, badge string, marks []time.Time, summary *importer.BatchSummary) {
	emp, err := s.employeeRepo.GetByBadge(ctx, badge)
	if err != nil {
		reason := importer.ErrEmployeeNotFound.Error()
		if !errors.Is(err, employee.ErrBadgeNotFound) {
			reason = err.Error()
		}
		summary.Failed++
		summary.Failures = append(summary.Failures, importer.ShiftFailure{
			Badge: badge, Stage: importer.StageResolution, Reason: reason, Marks: marks,
		})
		return
	}

	sched, err := s.scheduleFor(ctx, emp)
	if err != nil {
		summary.Failed++
		summary.Failures = append(summary.Failures, importer.ShiftFailure{
			Badge: badge, Stage: importer.StageResolution, Reason: err.Error(), Marks: marks,
		})
		return
	}

	shifts, failures := s.classifier.Classify(badge, marks, sched)

	// A failed shift on a day that already carries a complete attendance is
	// a skip, not an error: the duplicate takes precedence over synthesis.
	for _, failure := range failures {
		if failure.Date != "" && s.hasCompleteAttendance(ctx, emp.ID, failure.Date) {
			summary.Skipped++
			continue
		}
		summary.Failed++
		summary.Failures = append(summary.Failures, failure)
	}

	for _, shift := range shifts {
		day := shiftDay(shift)
		if s.hasCompleteAttendance(ctx, emp.ID, day.Format("2006-01-02")) {
			summary.Skipped++
			continue
		}
		if err := s.persistShift(ctx, emp, sched, shift); err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, importer.ShiftFailure{
				Badge:  badge,
				Date:   day.Format("2006-01-02"),
				Stage:  importer.StagePersistence,
				Reason: err.Error(),
			})
			continue
		}
		summary.Imported++
	}
}

// scheduleFor resolves the employee's current schedule, lines included. Nil
// means the employee has none; the classifier reports that as a whole-employee
// failure.
func (s *ImportServiceImpl) scheduleFor(ctx context.Context, emp employee.Employee) (*schedule.Schedule, error) {
	if emp.ScheduleID == nil {
		return nil, nil
	}
	sched, err := s.scheduleRepo.GetByID(ctx, *emp.ScheduleID)
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve schedule: %w", err)
	}
	return &sched, nil
}

func (s *ImportServiceImpl) hasCompleteAttendance(ctx context.Context, employeeID, day string) bool {
	start, err := time.ParseInLocation("2006-01-02", day, s.loc)
	if err != nil {
		return false
	}
	_, err = s.attendanceRepo.GetCompleteByEmployeeAndDay(ctx, employeeID, start, start.AddDate(0, 0, 1))
	return err == nil
}

func (s *ImportServiceImpl) persistShift(ctx context.Context, emp employee.Employee, sched *schedule.Schedule, shift importer.ResolvedShift) error {
	rec := attendance.Attendance{
		EmployeeID: emp.ID,
		CheckOut:   shift.Exit,
	}

	switch shift.Kind {
	case importer.ShiftComplete:
		rec.PartialType = attendance.PartialComplete
		rec.CheckIn = *shift.Entry
	case importer.ShiftEntryOnly:
		rec.PartialType = attendance.PartialEntryOnly
		rec.CheckIn = *shift.Entry
		rec.ScheduleCheckIn = shift.ScheduleEntry
	case importer.ShiftExitOnly:
		rec.PartialType = attendance.PartialExitOnly
		rec.CheckIn = *shift.ScheduleEntry
		rec.ScheduleCheckIn = shift.ScheduleEntry
	}

	if rec.ScheduleCheckIn != nil {
		rec.CheckInDifferenceMinutes = rec.CheckIn.Sub(*rec.ScheduleCheckIn).Minutes()
	}
	if rec.CheckOut != nil {
		// Worked hours prefer the scheduled-equivalent entry; the buckets
		// always read the raw check-in.
		rec.WorkedHours = rec.CheckOut.Sub(rec.EffectiveCheckIn()).Hours()
		prof := sched.Profile(s.contractWeeklyHours(ctx, emp.ID))
		buckets := s.calculator.ComputeBuckets(&rec.CheckIn, rec.CheckOut, prof)
		rec.HE25 = buckets.HE25
		rec.HE50 = buckets.HE50
		rec.HE75 = buckets.HE75
		rec.SaturdayAccrual = buckets.SaturdayAccrual
	}

	if err := s.attendanceRepo.Create(ctx, &rec); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

// contractWeeklyHours reads the workload off the open contract. No contract
// means no profile, which downstream turns into zero buckets.
func (s *ImportServiceImpl) contractWeeklyHours(ctx context.Context, employeeID string) float64 {
	contract, err := s.contractRepo.GetOpenByEmployee(ctx, employeeID)
	if err != nil {
		return 0
	}
	return contract.WeeklyHours
}

func shiftDay(shift importer.ResolvedShift) time.Time {
	var ref time.Time
	switch {
	case shift.Entry != nil:
		ref = *shift.Entry
	case shift.ScheduleEntry != nil:
		ref = *shift.ScheduleEntry
	case shift.Exit != nil:
		ref = *shift.Exit
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
}
