package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kenocia/payroll-backend-go/internal/domain/payroll"
	"github.com/kenocia/payroll-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

// GetBatchByID implements payroll.PayrollRepository.
func (p *payrollRepository) GetBatchByID(ctx context.Context, id string) (payroll.PayslipBatch, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, name, date_from, date_to, created_at
		FROM payslip_batches
		WHERE id = $1
	`
	var batch payroll.PayslipBatch
	err := q.QueryRow(ctx, query, id).
		Scan(&batch.ID, &batch.Name, &batch.DateFrom, &batch.DateTo, &batch.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayslipBatch{}, payroll.ErrBatchNotFound
		}
		return payroll.PayslipBatch{}, fmt.Errorf("failed to get payslip batch: %w", err)
	}
	return batch, nil
}

// ListBatches implements payroll.PayrollRepository.
func (p *payrollRepository) ListBatches(ctx context.Context) ([]payroll.PayslipBatch, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, name, date_from, date_to, created_at
		FROM payslip_batches
		ORDER BY date_from DESC
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslip batches: %w", err)
	}
	defer rows.Close()

	var batches []payroll.PayslipBatch
	for rows.Next() {
		var batch payroll.PayslipBatch
		if err := rows.Scan(&batch.ID, &batch.Name, &batch.DateFrom, &batch.DateTo, &batch.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payslip batch: %w", err)
		}
		batches = append(batches, batch)
	}
	return batches, rows.Err()
}

// ListPayslipsByBatch implements payroll.PayrollRepository.
func (p *payrollRepository) ListPayslipsByBatch(ctx context.Context, batchID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, batch_id, employee_id, date_from, date_to, net
		FROM payslips
		WHERE batch_id = $1
		ORDER BY employee_id
	`
	rows, err := q.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		var slip payroll.Payslip
		if err := rows.Scan(&slip.ID, &slip.BatchID, &slip.EmployeeID, &slip.DateFrom, &slip.DateTo, &slip.Net); err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, slip)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range payslips {
		if err := p.loadDetails(ctx, &payslips[i]); err != nil {
			return nil, err
		}
	}
	return payslips, nil
}

// GetPayslipByEmployee implements payroll.PayrollRepository.
func (p *payrollRepository) GetPayslipByEmployee(ctx context.Context, batchID, employeeID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, batch_id, employee_id, date_from, date_to, net
		FROM payslips
		WHERE batch_id = $1 AND employee_id = $2
		LIMIT 1
	`
	var slip payroll.Payslip
	err := q.QueryRow(ctx, query, batchID, employeeID).
		Scan(&slip.ID, &slip.BatchID, &slip.EmployeeID, &slip.DateFrom, &slip.DateTo, &slip.Net)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	if err := p.loadDetails(ctx, &slip); err != nil {
		return payroll.Payslip{}, err
	}
	return slip, nil
}

// UpdateInputAmount implements payroll.PayrollRepository.
func (p *payrollRepository) UpdateInputAmount(ctx context.Context, payslipID, code string, amount decimal.Decimal) error {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payslip_inputs
		SET amount = $3
		WHERE payslip_id = $1 AND code = $2
	`
	tag, err := q.Exec(ctx, query, payslipID, code, amount)
	if err != nil {
		return fmt.Errorf("failed to update payslip input: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrInputNotFound
	}
	return nil
}

func (p *payrollRepository) loadDetails(ctx context.Context, slip *payroll.Payslip) error {
	q := GetQuerier(ctx, p.db)

	lineQuery := `
		SELECT id, code, name, sequence, amount
		FROM payslip_lines
		WHERE payslip_id = $1
		ORDER BY sequence, code
	`
	rows, err := q.Query(ctx, lineQuery, slip.ID)
	if err != nil {
		return fmt.Errorf("failed to list payslip lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line payroll.PayslipLine
		if err := rows.Scan(&line.ID, &line.Code, &line.Name, &line.Sequence, &line.Amount); err != nil {
			return fmt.Errorf("failed to scan payslip line: %w", err)
		}
		slip.Lines = append(slip.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	inputQuery := `
		SELECT id, code, amount
		FROM payslip_inputs
		WHERE payslip_id = $1
		ORDER BY code
	`
	inputRows, err := q.Query(ctx, inputQuery, slip.ID)
	if err != nil {
		return fmt.Errorf("failed to list payslip inputs: %w", err)
	}
	defer inputRows.Close()

	for inputRows.Next() {
		var input payroll.PayslipInput
		if err := inputRows.Scan(&input.ID, &input.Code, &input.Amount); err != nil {
			return fmt.Errorf("failed to scan payslip input: %w", err)
		}
		slip.Inputs = append(slip.Inputs, input)
	}
	return inputRows.Err()
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}
