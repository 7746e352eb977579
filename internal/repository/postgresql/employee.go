package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kenocia/payroll-backend-go/internal/domain/employee"
	"github.com/kenocia/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

const employeeColumns = `
	id, name, badge, identification_id, department, schedule_id, last_schedule_change,
	created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Badge, &emp.IdentificationID, &emp.Department,
		&emp.ScheduleID, &emp.LastScheduleChange,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// GetByBadge implements employee.EmployeeRepository.
func (e *employeeRepository) GetByBadge(ctx context.Context, badge string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE badge = $1`
	emp, err := scanEmployee(q.QueryRow(ctx, query, badge))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrBadgeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by badge: %w", err)
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY name`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// ListBySchedule implements employee.EmployeeRepository.
func (e *employeeRepository) ListBySchedule(ctx context.Context, scheduleID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE schedule_id = $1 ORDER BY name`
	rows, err := q.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by schedule: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// UpdateSchedule implements employee.EmployeeRepository.
func (e *employeeRepository) UpdateSchedule(ctx context.Context, employeeID, scheduleID string) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET schedule_id = $2, last_schedule_change = NOW(), updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, employeeID, scheduleID)
	if err != nil {
		return fmt.Errorf("failed to update employee schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

type contractRepository struct {
	db *database.DB
}

// GetOpenByEmployee implements employee.ContractRepository.
func (c *contractRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (employee.Contract, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, employee_id, schedule_id, weekly_hours, wage, state, date_start, date_end
		FROM contracts
		WHERE employee_id = $1 AND state = $2
		ORDER BY date_start DESC
		LIMIT 1
	`
	var con employee.Contract
	err := q.QueryRow(ctx, query, employeeID, employee.ContractStateOpen).Scan(
		&con.ID, &con.EmployeeID, &con.ScheduleID, &con.WeeklyHours, &con.Wage,
		&con.State, &con.DateStart, &con.DateEnd,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Contract{}, employee.ErrContractNotFound
		}
		return employee.Contract{}, fmt.Errorf("failed to get open contract: %w", err)
	}
	return con, nil
}

// UpdateScheduleForOpen implements employee.ContractRepository.
func (c *contractRepository) UpdateScheduleForOpen(ctx context.Context, employeeID, scheduleID string) error {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE contracts
		SET schedule_id = $2
		WHERE employee_id = $1 AND state = $3
	`
	// An employee without an open contract is fine here; the timeline entry
	// still stands on its own.
	if _, err := q.Exec(ctx, query, employeeID, scheduleID, employee.ContractStateOpen); err != nil {
		return fmt.Errorf("failed to update contract schedule: %w", err)
	}
	return nil
}

func NewContractRepository(db *database.DB) employee.ContractRepository {
	return &contractRepository{db: db}
}
