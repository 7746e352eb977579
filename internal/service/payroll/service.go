package payroll

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/kenocia/payroll-backend-go/internal/domain/attendance"
	"github.com/kenocia/payroll-backend-go/internal/domain/employee"
	"github.com/kenocia/payroll-backend-go/internal/domain/payroll"
	"github.com/kenocia/payroll-backend-go/internal/domain/schedule"
)

const (
	// Reported worked hours are clamped per employee and period.
	reportWorkedHoursCap = 70.0

	// Income salary rules carry this code prefix and sort ahead of
	// deductions on the payroll sheet.
	incomeRulePrefix = "ING"
	baseSalaryRule   = "ING001"

	// Daily wage convention: monthly wage over a commercial 30-day month.
	daysPerMonth = 30

	fallbackHoursPerDay = 8.0
)

type PayrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	contractRepo   employee.ContractRepository
	scheduleRepo   schedule.ScheduleRepository
	loc            *time.Location
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	contractRepo employee.ContractRepository,
	scheduleRepo schedule.ScheduleRepository,
	loc *time.Location,
) *PayrollServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		contractRepo:   contractRepo,
		scheduleRepo:   scheduleRepo,
		loc:            loc,
	}
}

func (s *PayrollServiceImpl) ListBatches(ctx context.Context) ([]payroll.PayslipBatch, error) {
	batches, err := s.payrollRepo.ListBatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	return batches, nil
}

// WorkedDayLines aggregates the employee's Monday-Friday attendance over the
// period. Weekend records feed their own salary rules, never these lines.
func (s *PayrollServiceImpl) WorkedDayLines(ctx context.Context, employeeID string, from, to time.Time) ([]payroll.WorkedDayLine, error) {
	records, err := s.attendanceRepo.ListByEmployeeRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	return aggregateWorkedDays(records, s.hoursPerDayFor(ctx, employeeID), s.loc), nil
}

// aggregateWorkedDays sums Monday-Friday attendance into one line per code.
// Codes with no hours produce no line.
func aggregateWorkedDays(records []attendance.Attendance, hoursPerDay float64, loc *time.Location) []payroll.WorkedDayLine {
	var work100, he25, he50, he75 float64
	for _, rec := range records {
		weekday := weekdayIndex(rec.CheckIn.In(loc))
		if weekday > 4 { // Saturday, Sunday
			continue
		}
		work100 += rec.WorkedHours
		he25 += rec.HE25
		he50 += rec.HE50
		he75 += rec.HE75
	}

	var lines []payroll.WorkedDayLine
	for _, entry := range []struct {
		code  string
		hours float64
	}{
		{payroll.CodeWork100, work100},
		{payroll.CodeHE25, he25},
		{payroll.CodeHE50, he50},
		{payroll.CodeHE75, he75},
	} {
		if entry.hours <= 0 {
			continue
		}
		var days float64
		if hoursPerDay > 0 {
			days = round5(entry.hours / hoursPerDay)
		}
		lines = append(lines, payroll.WorkedDayLine{
			Code:  entry.code,
			Hours: entry.hours,
			Days:  days,
		})
	}
	return lines
}

// hoursPerDayFor reads the daily workload off the employee's calendar,
// falling back to the statutory eight hours when no calendar is assigned.
func (s *PayrollServiceImpl) hoursPerDayFor(ctx context.Context, employeeID string) float64 {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil || emp.ScheduleID == nil {
		return fallbackHoursPerDay
	}
	sched, err := s.scheduleRepo.GetByID(ctx, *emp.ScheduleID)
	if err != nil {
		return fallbackHoursPerDay
	}
	if hpd := sched.HoursPerDay(); hpd > 0 {
		return hpd
	}
	return fallbackHoursPerDay
}

// AttendanceReport renders one block per employee with their marks for the
// period and a capped worked-hours total.
func (s *PayrollServiceImpl) AttendanceReport(ctx context.Context, from, to time.Time) ([]byte, error) {
	records, err := s.attendanceRepo.ListByRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	if len(records) == 0 {
		return nil, payroll.ErrEmptyPeriod
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	byID := make(map[string]employee.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}

	type block struct {
		emp     employee.Employee
		records []attendance.Attendance
		total   float64
	}
	blocks := make(map[string]*block)
	for _, rec := range records {
		b, ok := blocks[rec.EmployeeID]
		if !ok {
			emp, ok := byID[rec.EmployeeID]
			if !ok {
				return nil, fmt.Errorf("get employee %s: %w", rec.EmployeeID, employee.ErrEmployeeNotFound)
			}
			b = &block{emp: emp}
			blocks[rec.EmployeeID] = b
		}
		b.records = append(b.records, rec)
		b.total += rec.WorkedHours
	}

	ordered := make([]*block, 0, len(blocks))
	for _, b := range blocks {
		b.total = capWorkedHours(b.total)
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].emp.Name < ordered[j].emp.Name })

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Reporte de Asistencias"
	f.SetSheetName(f.GetSheetName(0), sheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E2F3"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	employeeStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F2F2F2"}},
	})
	totalStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFEB9C"}},
	})

	f.SetColWidth(sheet, "A", "B", 20)
	f.SetColWidth(sheet, "C", "C", 15)

	f.MergeCell(sheet, "A1", "C1")
	f.SetCellValue(sheet, "A1", "REPORTE DE ASISTENCIAS")
	f.SetCellStyle(sheet, "A1", "C1", titleStyle)
	f.MergeCell(sheet, "A2", "C2")
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Del %s al %s", from.Format("02/01/2006"), to.Format("02/01/2006")))
	f.SetCellStyle(sheet, "A2", "C2", titleStyle)

	row := 4
	for _, b := range ordered {
		ident := "Sin ID"
		if b.emp.IdentificationID != nil {
			ident = *b.emp.IdentificationID
		}
		dept := "Sin Departamento"
		if b.emp.Department != nil {
			dept = *b.emp.Department
		}
		f.MergeCell(sheet, cell(0, row), cell(2, row))
		f.SetCellValue(sheet, cell(0, row), fmt.Sprintf("EMPLEADO: %s - %s | DEPTO: %s", b.emp.Name, ident, dept))
		f.SetCellStyle(sheet, cell(0, row), cell(2, row), employeeStyle)
		row++

		for col, header := range []string{"Entrada", "Salida", "Horas Trabajadas"} {
			f.SetCellValue(sheet, cell(col, row), header)
			f.SetCellStyle(sheet, cell(col, row), cell(col, row), headerStyle)
		}
		row++

		for _, rec := range b.records {
			f.SetCellValue(sheet, cell(0, row), rec.CheckIn.In(s.loc).Format("02/01/2006 15:04"))
			out := "Sin salida"
			if rec.CheckOut != nil {
				out = rec.CheckOut.In(s.loc).Format("02/01/2006 15:04")
			}
			f.SetCellValue(sheet, cell(1, row), out)
			f.SetCellValue(sheet, cell(2, row), round2(rec.WorkedHours))
			row++
		}

		f.SetCellValue(sheet, cell(0, row), "TOTALES:")
		f.SetCellValue(sheet, cell(2, row), round2(b.total))
		f.SetCellStyle(sheet, cell(0, row), cell(2, row), totalStyle)
		row += 3
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// PayrollSheet renders a batch as the payroll ledger: static employee
// columns, then one column per salary rule, income rules first.
func (s *PayrollServiceImpl) PayrollSheet(ctx context.Context, batchID string) ([]byte, error) {
	batch, err := s.payrollRepo.GetBatchByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	payslips, err := s.payrollRepo.ListPayslipsByBatch(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("list payslips: %w", err)
	}

	incomeRules, deductionRules := collectRules(payslips)
	orderedRules := append(append([]ruleHeader{}, incomeRules...), deductionRules...)

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Planilla"
	f.SetSheetName(f.GetSheetName(0), sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	boldCenterStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	currencyStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(`"L." #,##0.00`)})

	f.MergeCell(sheet, "A1", "Q1")
	f.SetCellValue(sheet, "A1", batch.Name)
	f.SetCellStyle(sheet, "A1", "Q1", boldCenterStyle)
	f.MergeCell(sheet, "G3", "L3")
	f.SetCellValue(sheet, "G3", fmt.Sprintf("Del %s al %s", batch.DateFrom.Format("02/01/2006"), batch.DateTo.Format("02/01/2006")))
	f.SetCellStyle(sheet, "G3", "L3", boldCenterStyle)

	staticHeaderRow := 5
	for col, header := range []string{"No.", "Nombre del empleado", "Departamento", "Sueldo Mensual", "Sueldo Ordinario", "Sueldo Diario"} {
		f.SetCellValue(sheet, cell(col, staticHeaderRow), header)
		f.SetCellStyle(sheet, cell(col, staticHeaderRow), cell(col, staticHeaderRow), boldStyle)
	}

	ruleColStart := 6
	groupRow := staticHeaderRow + 1
	if len(incomeRules) > 0 {
		f.MergeCell(sheet, cell(ruleColStart, groupRow), cell(ruleColStart+len(incomeRules)-1, groupRow))
		f.SetCellValue(sheet, cell(ruleColStart, groupRow), "INGRESOS")
		f.SetCellStyle(sheet, cell(ruleColStart, groupRow), cell(ruleColStart, groupRow), boldCenterStyle)
	}
	if len(deductionRules) > 0 {
		start := ruleColStart + len(incomeRules)
		f.MergeCell(sheet, cell(start, groupRow), cell(start+len(deductionRules)-1, groupRow))
		f.SetCellValue(sheet, cell(start, groupRow), "DEDUCCIONES")
		f.SetCellStyle(sheet, cell(start, groupRow), cell(start, groupRow), boldCenterStyle)
	}

	ruleNamesRow := staticHeaderRow + 2
	for idx, rule := range orderedRules {
		f.SetCellValue(sheet, cell(ruleColStart+idx, ruleNamesRow), rule.name)
		f.SetCellStyle(sheet, cell(ruleColStart+idx, ruleNamesRow), cell(ruleColStart+idx, ruleNamesRow), boldStyle)
	}

	row := staticHeaderRow + 3
	for i, slip := range payslips {
		emp, err := s.employeeRepo.GetByID(ctx, slip.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("get employee %s: %w", slip.EmployeeID, err)
		}

		var monthlyWage decimal.Decimal
		if contract, err := s.contractRepo.GetOpenByEmployee(ctx, slip.EmployeeID); err == nil {
			monthlyWage = decimal.NewFromFloat(contract.Wage)
		}
		baseSalary := monthlyWage
		if line, ok := findLine(slip, baseSalaryRule); ok {
			baseSalary = line.Amount
		}
		dailyWage := decimal.Zero
		if !monthlyWage.IsZero() {
			dailyWage = monthlyWage.Div(decimal.NewFromInt(daysPerMonth)).Round(2)
		}

		dept := ""
		if emp.Department != nil {
			dept = *emp.Department
		}
		f.SetCellValue(sheet, cell(0, row), i+1)
		f.SetCellValue(sheet, cell(1, row), emp.Name)
		f.SetCellValue(sheet, cell(2, row), dept)
		setCurrency(f, sheet, cell(3, row), monthlyWage, currencyStyle)
		setCurrency(f, sheet, cell(4, row), baseSalary, currencyStyle)
		setCurrency(f, sheet, cell(5, row), dailyWage, currencyStyle)

		for idx, rule := range orderedRules {
			amount := decimal.Zero
			if line, ok := findLine(slip, rule.code); ok {
				amount = line.Amount
			}
			setCurrency(f, sheet, cell(ruleColStart+idx, row), amount, currencyStyle)
		}
		row++
	}

	signatureRow := row + 1
	f.SetCellValue(sheet, cell(ruleColStart, signatureRow), "Revisada por:")
	f.SetCellStyle(sheet, cell(ruleColStart, signatureRow), cell(ruleColStart, signatureRow), boldStyle)
	f.SetCellValue(sheet, cell(ruleColStart+2, signatureRow), "Autorizada por:")
	f.SetCellStyle(sheet, cell(ruleColStart+2, signatureRow), cell(ruleColStart+2, signatureRow), boldStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportPayslipInputs applies a default_code/code/amount workbook onto a
// batch. Rows fail individually; one bad row never rolls back the rest.
func (s *PayrollServiceImpl) ImportPayslipInputs(ctx context.Context, batchID string, r io.Reader) (payroll.InputImportSummary, error) {
	var summary payroll.InputImportSummary

	if _, err := s.payrollRepo.GetBatchByID(ctx, batchID); err != nil {
		return summary, err
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return summary, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return summary, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return summary, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return summary, errors.New("workbook is empty")
	}

	cols := map[string]int{}
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"default_code", "code", "amount"} {
		if _, ok := cols[required]; !ok {
			return summary, fmt.Errorf("workbook must contain the columns default_code, code and amount; missing %q", required)
		}
	}

	for i, row := range rows[1:] {
		rowNum := i + 2
		badge := cellAt(row, cols["default_code"])
		code := cellAt(row, cols["code"])
		rawAmount := cellAt(row, cols["amount"])
		if badge == "" && code == "" && rawAmount == "" {
			continue
		}

		amount, err := decimal.NewFromString(rawAmount)
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: amount %q is not a number", rowNum, rawAmount))
			continue
		}

		emp, err := s.employeeRepo.GetByBadge(ctx, badge)
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: employee with code %s not found", rowNum, badge))
			continue
		}
		slip, err := s.payrollRepo.GetPayslipByEmployee(ctx, batchID, emp.ID)
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: no payslip for employee %s in batch", rowNum, emp.Name))
			continue
		}
		if err := s.payrollRepo.UpdateInputAmount(ctx, slip.ID, code, amount); err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		summary.Applied++
	}
	return summary, nil
}

// capWorkedHours clamps a period total to the reportable maximum.
func capWorkedHours(total float64) float64 {
	if total > reportWorkedHoursCap {
		return reportWorkedHoursCap
	}
	return total
}

type ruleHeader struct {
	code string
	name string
}

// collectRules gathers every rule code used in the batch and splits income
// from deductions by the ING prefix.
func collectRules(payslips []payroll.Payslip) (income, deductions []ruleHeader) {
	seen := make(map[string]bool)
	for _, slip := range payslips {
		for _, line := range slip.Lines {
			if seen[line.Code] {
				continue
			}
			seen[line.Code] = true
			header := ruleHeader{code: line.Code, name: line.Name}
			if strings.HasPrefix(line.Code, incomeRulePrefix) {
				income = append(income, header)
			} else {
				deductions = append(deductions, header)
			}
		}
	}
	sort.Slice(income, func(i, j int) bool { return income[i].code < income[j].code })
	sort.Slice(deductions, func(i, j int) bool { return deductions[i].code < deductions[j].code })
	return income, deductions
}

func findLine(slip payroll.Payslip, code string) (payroll.PayslipLine, bool) {
	for _, line := range slip.Lines {
		if line.Code == code {
			return line, true
		}
	}
	return payroll.PayslipLine{}, false
}

func setCurrency(f *excelize.File, sheet, cellRef string, amount decimal.Decimal, style int) {
	f.SetCellValue(sheet, cellRef, amount.InexactFloat64())
	f.SetCellStyle(sheet, cellRef, cellRef, style)
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// cell converts a zero-based column and one-based row to an A1 reference.
func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}

func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round5(v float64) float64 {
	return math.Round(v*100000) / 100000
}

func strPtr(s string) *string { return &s }
