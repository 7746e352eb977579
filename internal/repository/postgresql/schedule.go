package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kenocia/payroll-backend-go/internal/domain/schedule"
	"github.com/kenocia/payroll-backend-go/internal/pkg/database"
)

type scheduleRepository struct {
	db *database.DB
}

// Create implements schedule.ScheduleRepository.
func (s *scheduleRepository) Create(ctx context.Context, sched *schedule.Schedule) error {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO schedules (name, nocturnal)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, sched.Name, sched.Nocturnal).
		Scan(&sched.ID, &sched.CreatedAt, &sched.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}

	for i := range sched.Lines {
		line := &sched.Lines[i]
		line.ScheduleID = sched.ID
		lineQuery := `
			INSERT INTO schedule_lines (schedule_id, day_of_week, hour_from, hour_to)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		err := q.QueryRow(ctx, lineQuery, line.ScheduleID, line.DayOfWeek, line.HourFrom, line.HourTo).
			Scan(&line.ID)
		if err != nil {
			return fmt.Errorf("failed to create schedule line: %w", err)
		}
	}
	return nil
}

// GetByID implements schedule.ScheduleRepository.
func (s *scheduleRepository) GetByID(ctx context.Context, id string) (schedule.Schedule, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, name, nocturnal, created_at, updated_at
		FROM schedules
		WHERE id = $1
	`
	var sched schedule.Schedule
	err := q.QueryRow(ctx, query, id).
		Scan(&sched.ID, &sched.Name, &sched.Nocturnal, &sched.CreatedAt, &sched.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	lines, err := s.linesFor(ctx, id)
	if err != nil {
		return schedule.Schedule{}, err
	}
	sched.Lines = lines
	return sched, nil
}

// List implements schedule.ScheduleRepository.
func (s *scheduleRepository) List(ctx context.Context) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, name, nocturnal, created_at, updated_at
		FROM schedules
		ORDER BY name
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		var sched schedule.Schedule
		if err := rows.Scan(&sched.ID, &sched.Name, &sched.Nocturnal, &sched.CreatedAt, &sched.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, sched)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range schedules {
		lines, err := s.linesFor(ctx, schedules[i].ID)
		if err != nil {
			return nil, err
		}
		schedules[i].Lines = lines
	}
	return schedules, nil
}

func (s *scheduleRepository) linesFor(ctx context.Context, scheduleID string) ([]schedule.ScheduleLine, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, schedule_id, day_of_week, hour_from, hour_to
		FROM schedule_lines
		WHERE schedule_id = $1
		ORDER BY day_of_week, hour_from
	`
	rows, err := q.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule lines: %w", err)
	}
	defer rows.Close()

	var lines []schedule.ScheduleLine
	for rows.Next() {
		var line schedule.ScheduleLine
		if err := rows.Scan(&line.ID, &line.ScheduleID, &line.DayOfWeek, &line.HourFrom, &line.HourTo); err != nil {
			return nil, fmt.Errorf("failed to scan schedule line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}

type scheduleChangeRepository struct {
	db *database.DB
}

const scheduleChangeColumns = `
	id, employee_id, schedule_id, previous_schedule_id, date_from, date_to,
	reason, changed_by, created_at
`

func scanScheduleChange(row pgx.Row) (schedule.ScheduleChange, error) {
	var c schedule.ScheduleChange
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.ScheduleID, &c.PreviousScheduleID, &c.DateFrom, &c.DateTo,
		&c.Reason, &c.ChangedBy, &c.CreatedAt,
	)
	return c, err
}

// Create implements schedule.ScheduleChangeRepository.
func (s *scheduleChangeRepository) Create(ctx context.Context, change *schedule.ScheduleChange) error {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO schedule_changes (
			employee_id, schedule_id, previous_schedule_id, date_from, date_to, reason, changed_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := q.QueryRow(ctx, query,
		change.EmployeeID,
		change.ScheduleID,
		change.PreviousScheduleID,
		change.DateFrom,
		change.DateTo,
		change.Reason,
		change.ChangedBy,
	).Scan(&change.ID, &change.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create schedule change: %w", err)
	}
	return nil
}

// CloseCurrent implements schedule.ScheduleChangeRepository.
func (s *scheduleChangeRepository) CloseCurrent(ctx context.Context, employeeID string, dateTo time.Time) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE schedule_changes
		SET date_to = $2
		WHERE employee_id = $1 AND date_to IS NULL
	`
	// No open record is not an error: the first change of an employee has
	// nothing to close.
	if _, err := q.Exec(ctx, query, employeeID, dateTo); err != nil {
		return fmt.Errorf("failed to close current schedule change: %w", err)
	}
	return nil
}

// GetAsOf implements schedule.ScheduleChangeRepository.
func (s *scheduleChangeRepository) GetAsOf(ctx context.Context, employeeID string, date time.Time) (schedule.ScheduleChange, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ` + scheduleChangeColumns + `
		FROM schedule_changes
		WHERE employee_id = $1
		  AND date_from <= $2
		  AND (date_to IS NULL OR date_to > $2)
		ORDER BY date_from DESC
		LIMIT 1
	`
	change, err := scanScheduleChange(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.ScheduleChange{}, schedule.ErrScheduleChangeNotFound
		}
		return schedule.ScheduleChange{}, fmt.Errorf("failed to get schedule change as of date: %w", err)
	}
	return change, nil
}

// ListByEmployee implements schedule.ScheduleChangeRepository.
func (s *scheduleChangeRepository) ListByEmployee(ctx context.Context, employeeID string) ([]schedule.ScheduleChange, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ` + scheduleChangeColumns + `
		FROM schedule_changes
		WHERE employee_id = $1
		ORDER BY date_from DESC
	`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule changes: %w", err)
	}
	defer rows.Close()

	var changes []schedule.ScheduleChange
	for rows.Next() {
		change, err := scanScheduleChange(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule change: %w", err)
		}
		changes = append(changes, change)
	}
	return changes, rows.Err()
}

func NewScheduleChangeRepository(db *database.DB) schedule.ScheduleChangeRepository {
	return &scheduleChangeRepository{db: db}
}
