package payroll

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

type PayrollRepository interface {
	GetBatchByID(ctx context.Context, id string) (PayslipBatch, error)
	ListBatches(ctx context.Context) ([]PayslipBatch, error)
	// ListPayslipsByBatch loads payslips with their lines and inputs.
	ListPayslipsByBatch(ctx context.Context, batchID string) ([]Payslip, error)
	GetPayslipByEmployee(ctx context.Context, batchID, employeeID string) (Payslip, error)
	UpdateInputAmount(ctx context.Context, payslipID, code string, amount decimal.Decimal) error
}

type PayrollService interface {
	ListBatches(ctx context.Context) ([]PayslipBatch, error)
	// WorkedDayLines aggregates an employee's Monday-Friday attendance over
	// the period into WORK100/HE25/HE50/HE75 lines.
	WorkedDayLines(ctx context.Context, employeeID string, from, to time.Time) ([]WorkedDayLine, error)
	// AttendanceReport renders the per-employee overtime totals for the
	// period as an xlsx workbook.
	AttendanceReport(ctx context.Context, from, to time.Time) ([]byte, error)
	// PayrollSheet renders a batch's payslips as an xlsx workbook, income
	// rules first.
	PayrollSheet(ctx context.Context, batchID string) ([]byte, error)
	// ImportPayslipInputs applies a default_code/code/amount workbook onto a
	// batch's payslip inputs.
	ImportPayslipInputs(ctx context.Context, batchID string, r io.Reader) (InputImportSummary, error)
}

type InputImportSummary struct {
	Applied int      `json:"applied"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}
