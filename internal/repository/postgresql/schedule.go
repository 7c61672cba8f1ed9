package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/andeanwork/attendance-backend-go/internal/domain/schedule"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type weeklyScheduleRepositoryImpl struct {
	db *database.DB
}

func NewWeeklyScheduleRepository(db *database.DB) schedule.WeeklyScheduleRepository {
	return &weeklyScheduleRepositoryImpl{db: db}
}

// Time-of-day and date columns come back as text so the rows carry the
// same civil literals the services compare against.
const weeklyScheduleColumns = `
	id, employee_id, weekday,
	to_char(start_time, 'HH24:MI:SS'), to_char(end_time, 'HH24:MI:SS'),
	to_char(second_start_time, 'HH24:MI:SS'), to_char(second_end_time, 'HH24:MI:SS'),
	is_rest_day, tolerance_minutes,
	to_char(valid_from, 'YYYY-MM-DD'), to_char(valid_until, 'YYYY-MM-DD'),
	created_at
`

func scanWeeklySchedule(row pgx.Row) (schedule.WeeklySchedule, error) {
	var ws schedule.WeeklySchedule
	err := row.Scan(
		&ws.ID, &ws.EmployeeID, &ws.Weekday,
		&ws.StartTime, &ws.EndTime, &ws.SecondStartTime, &ws.SecondEndTime,
		&ws.IsRestDay, &ws.ToleranceMinutes,
		&ws.ValidFrom, &ws.ValidUntil, &ws.CreatedAt,
	)
	return ws, err
}

// GetForDay implements schedule.WeeklyScheduleRepository.
func (r *weeklyScheduleRepositoryImpl) GetForDay(ctx context.Context, employeeID string, weekday int, date string) (*schedule.WeeklySchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + weeklyScheduleColumns + `
		FROM weekly_schedules
		WHERE employee_id = $1
			AND weekday = $2
			AND valid_from <= $3::date
			AND (valid_until IS NULL OR valid_until >= $3::date)
		ORDER BY created_at DESC
		LIMIT 1
	`

	ws, err := scanWeeklySchedule(q.QueryRow(ctx, query, employeeID, weekday, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get schedule for weekday %d: %w", weekday, err)
	}

	return &ws, nil
}

// GetEffective implements schedule.WeeklyScheduleRepository.
func (r *weeklyScheduleRepositoryImpl) GetEffective(ctx context.Context, employeeID string, date string) ([]schedule.WeeklySchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT ON (weekday) ` + weeklyScheduleColumns + `
		FROM weekly_schedules
		WHERE employee_id = $1
			AND valid_from <= $2::date
			AND (valid_until IS NULL OR valid_until >= $2::date)
		ORDER BY weekday, created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get effective schedule: %w", err)
	}
	defer rows.Close()

	var week []schedule.WeeklySchedule
	for rows.Next() {
		ws, err := scanWeeklySchedule(rows)
		if err != nil {
			return nil, err
		}
		week = append(week, ws)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return week, nil
}

// History implements schedule.WeeklyScheduleRepository.
func (r *weeklyScheduleRepositoryImpl) History(ctx context.Context, employeeID string) ([]schedule.WeeklySchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + weeklyScheduleColumns + `
		FROM weekly_schedules
		WHERE employee_id = $1
		ORDER BY valid_from DESC, weekday
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule history: %w", err)
	}
	defer rows.Close()

	var history []schedule.WeeklySchedule
	for rows.Next() {
		ws, err := scanWeeklySchedule(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, ws)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}

// CloseOpenValidity implements schedule.WeeklyScheduleRepository. Rows
// that would end before they start are removed instead of closed.
func (r *weeklyScheduleRepositoryImpl) CloseOpenValidity(ctx context.Context, employeeID string, endDate string) error {
	q := GetQuerier(ctx, r.db)

	deleteQuery := `
		DELETE FROM weekly_schedules
		WHERE employee_id = $1 AND valid_until IS NULL AND valid_from >= $2::date
	`
	if _, err := q.Exec(ctx, deleteQuery, employeeID, endDate); err != nil {
		return fmt.Errorf("failed to remove superseded schedule rows: %w", err)
	}

	closeQuery := `
		UPDATE weekly_schedules
		SET valid_until = $2::date - 1
		WHERE employee_id = $1 AND valid_until IS NULL
	`
	if _, err := q.Exec(ctx, closeQuery, employeeID, endDate); err != nil {
		return fmt.Errorf("failed to close schedule validity: %w", err)
	}

	return nil
}

// CreateDay implements schedule.WeeklyScheduleRepository.
func (r *weeklyScheduleRepositoryImpl) CreateDay(ctx context.Context, day schedule.WeeklySchedule) (schedule.WeeklySchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO weekly_schedules (
			id, employee_id, weekday, start_time, end_time,
			second_start_time, second_end_time, is_rest_day,
			tolerance_minutes, valid_from, valid_until
		) VALUES (
			$1, $2, $3, $4::time, $5::time,
			$6::time, $7::time, $8,
			$9, $10::date, $11::date
		)
		RETURNING ` + weeklyScheduleColumns + `
	`

	created, err := scanWeeklySchedule(q.QueryRow(ctx, query,
		uuid.NewString(), day.EmployeeID, day.Weekday, day.StartTime, day.EndTime,
		day.SecondStartTime, day.SecondEndTime, day.IsRestDay,
		day.ToleranceMinutes, day.ValidFrom, day.ValidUntil,
	))
	if err != nil {
		return schedule.WeeklySchedule{}, fmt.Errorf("failed to create schedule row: %w", err)
	}

	return created, nil
}

type scheduleExceptionRepositoryImpl struct {
	db *database.DB
}

func NewScheduleExceptionRepository(db *database.DB) schedule.ScheduleExceptionRepository {
	return &scheduleExceptionRepositoryImpl{db: db}
}

const exceptionColumns = `
	id, employee_id, to_char(date, 'YYYY-MM-DD'), type, is_workable,
	to_char(start_time, 'HH24:MI:SS'), to_char(end_time, 'HH24:MI:SS'),
	note, created_at
`

func scanException(row pgx.Row) (schedule.ScheduleException, error) {
	var exc schedule.ScheduleException
	err := row.Scan(
		&exc.ID, &exc.EmployeeID, &exc.Date, &exc.Type, &exc.IsWorkable,
		&exc.StartTime, &exc.EndTime, &exc.Note, &exc.CreatedAt,
	)
	return exc, err
}

// GetByDate implements schedule.ScheduleExceptionRepository.
func (r *scheduleExceptionRepositoryImpl) GetByDate(ctx context.Context, employeeID string, date string) (*schedule.ScheduleException, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + exceptionColumns + `
		FROM schedule_exceptions
		WHERE employee_id = $1 AND date = $2::date
	`

	exc, err := scanException(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get exception for %s: %w", date, err)
	}

	return &exc, nil
}

// Create implements schedule.ScheduleExceptionRepository.
func (r *scheduleExceptionRepositoryImpl) Create(ctx context.Context, exc schedule.ScheduleException) (schedule.ScheduleException, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schedule_exceptions (
			id, employee_id, date, type, is_workable, start_time, end_time, note
		) VALUES ($1, $2, $3::date, $4, $5, $6::time, $7::time, $8)
		RETURNING ` + exceptionColumns + `
	`

	created, err := scanException(q.QueryRow(ctx, query,
		uuid.NewString(), exc.EmployeeID, exc.Date, exc.Type, exc.IsWorkable,
		exc.StartTime, exc.EndTime, exc.Note,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return schedule.ScheduleException{}, schedule.ErrExceptionExists
		}
		return schedule.ScheduleException{}, fmt.Errorf("failed to create exception: %w", err)
	}

	return created, nil
}

// Delete implements schedule.ScheduleExceptionRepository.
func (r *scheduleExceptionRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM schedule_exceptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete exception: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrExceptionNotFound
	}

	return nil
}

// List implements schedule.ScheduleExceptionRepository.
func (r *scheduleExceptionRepositoryImpl) List(ctx context.Context, employeeID string, from, to string) ([]schedule.ScheduleException, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + exceptionColumns + `
		FROM schedule_exceptions
		WHERE employee_id = $1
	`
	args := []interface{}{employeeID}

	if from != "" {
		args = append(args, from)
		query += fmt.Sprintf(" AND date >= $%d::date", len(args))
	}
	if to != "" {
		args = append(args, to)
		query += fmt.Sprintf(" AND date <= $%d::date", len(args))
	}
	query += " ORDER BY date"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list exceptions: %w", err)
	}
	defer rows.Close()

	var exceptions []schedule.ScheduleException
	for rows.Next() {
		exc, err := scanException(rows)
		if err != nil {
			return nil, err
		}
		exceptions = append(exceptions, exc)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return exceptions, nil
}
