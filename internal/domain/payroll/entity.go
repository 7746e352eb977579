package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Worked-day line codes. WORK100 covers ordinary attendance; the HE codes
// mirror the overtime buckets.
const (
	CodeWork100 = "WORK100"
	CodeHE25    = "HE25"
	CodeHE50    = "HE50"
	CodeHE75    = "HE75"
)

// WorkedDayLine is one aggregated payslip input: total hours for a code over
// the period, expressed also as days of the employee's ordinary workload.
type WorkedDayLine struct {
	Code  string  `json:"code"`
	Hours float64 `json:"hours"`
	Days  float64 `json:"days"`
}

type PayslipBatch struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	DateFrom  time.Time `json:"date_from"`
	DateTo    time.Time `json:"date_to"`
	CreatedAt time.Time `json:"created_at"`
}

type Payslip struct {
	ID         string          `json:"id"`
	BatchID    string          `json:"batch_id"`
	EmployeeID string          `json:"employee_id"`
	DateFrom   time.Time       `json:"date_from"`
	DateTo     time.Time       `json:"date_to"`
	Lines      []PayslipLine   `json:"lines,omitempty"`
	Inputs     []PayslipInput  `json:"inputs,omitempty"`
	Net        decimal.Decimal `json:"net"`
}

// PayslipLine is a computed rule result. Income rules carry the ING prefix in
// their code and sort ahead of deductions on the payroll sheet.
type PayslipLine struct {
	ID       string          `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Sequence int             `json:"sequence"`
	Amount   decimal.Decimal `json:"amount"`
}

// PayslipInput is an externally supplied amount keyed by the input's code
// within the payslip's structure.
type PayslipInput struct {
	ID     string          `json:"id"`
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}
