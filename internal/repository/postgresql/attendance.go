package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/andeanwork/attendance-backend-go/internal/domain/attendance"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
	// IANA timezone the civil-day boundaries are computed in.
	timezone string
}

func NewAttendanceRepository(db *database.DB, timezone string) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db, timezone: timezone}
}

const recordColumns = `
	r.id, r.employee_id, r.recorded_at, r.direction, r.event, r.method,
	r.latitude, r.longitude, r.evidence_url, r.device_id, r.note,
	r.work_point_id, r.geo_mode, r.distance_m, r.validation_state,
	r.late_minutes, r.created_at
`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.RecordedAt, &rec.Direction, &rec.Event,
		&rec.Method, &rec.Latitude, &rec.Longitude, &rec.EvidenceURL,
		&rec.DeviceID, &rec.Note, &rec.WorkPointID, &rec.GeoMode,
		&rec.DistanceM, &rec.ValidationState, &rec.LateMinutes, &rec.CreatedAt,
	)
	return rec, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records AS r (
			id, employee_id, recorded_at, direction, event, method,
			latitude, longitude, evidence_url, device_id, note,
			work_point_id, geo_mode, distance_m, validation_state, late_minutes
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16
		)
		RETURNING ` + recordColumns + `
	`

	created, err := scanRecord(q.QueryRow(ctx, query,
		uuid.NewString(), record.EmployeeID, record.RecordedAt, record.Direction,
		record.Event, record.Method, record.Latitude, record.Longitude,
		record.EvidenceURL, record.DeviceID, record.Note, record.WorkPointID,
		record.GeoMode, record.DistanceM, record.ValidationState, record.LateMinutes,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Record{}, attendance.ErrDuplicateRecord
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return created, nil
}

// LastEventOfDay implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) LastEventOfDay(ctx context.Context, employeeID string, date string) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records r
		WHERE r.employee_id = $1
			AND r.validation_state <> $2
			AND (r.recorded_at AT TIME ZONE $3)::date = $4::date
		ORDER BY r.recorded_at DESC
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, attendance.StateRejected, a.timezone, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last event of day: %w", err)
	}

	return &rec, nil
}

// HasOpenPriorShift implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) HasOpenPriorShift(ctx context.Context, employeeID string, date string, lookbackDays int) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		WITH days AS (
			SELECT (r.recorded_at AT TIME ZONE $3)::date AS day,
				BOOL_OR(r.event = $5) AS has_in,
				BOOL_OR(r.event = $6) AS has_out
			FROM attendance_records r
			WHERE r.employee_id = $1
				AND r.validation_state <> $2
				AND (r.recorded_at AT TIME ZONE $3)::date < $4::date
				AND (r.recorded_at AT TIME ZONE $3)::date >= $4::date - $7::int
			GROUP BY 1
		)
		SELECT EXISTS (SELECT 1 FROM days WHERE has_in AND NOT has_out)
	`

	var open bool
	err := q.QueryRow(ctx, query,
		employeeID, attendance.StateRejected, a.timezone, date,
		attendance.EventShiftIn, attendance.EventShiftOut, lookbackDays,
	).Scan(&open)
	if err != nil {
		return false, fmt.Errorf("failed to check open prior shifts: %w", err)
	}

	return open, nil
}

// OldestOpenDay implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) OldestOpenDay(ctx context.Context, employeeID string, date string) (*string, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT to_char((r.recorded_at AT TIME ZONE $3)::date, 'YYYY-MM-DD') AS day
		FROM attendance_records r
		WHERE r.employee_id = $1
			AND r.validation_state <> $2
			AND (r.recorded_at AT TIME ZONE $3)::date < $4::date
		GROUP BY 1
		HAVING BOOL_OR(r.event = $5) AND NOT BOOL_OR(r.event = $6)
		ORDER BY 1
		LIMIT 1
	`

	var day string
	err := q.QueryRow(ctx, query,
		employeeID, attendance.StateRejected, a.timezone, date,
		attendance.EventShiftIn, attendance.EventShiftOut,
	).Scan(&day)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find oldest open day: %w", err)
	}

	return &day, nil
}

// OldestOpenDays implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) OldestOpenDays(ctx context.Context, employeeIDs []string, date string) ([]attendance.OpenDay, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT employee_id, MIN(day)
		FROM (
			SELECT r.employee_id,
				to_char((r.recorded_at AT TIME ZONE $2)::date, 'YYYY-MM-DD') AS day
			FROM attendance_records r
			WHERE r.employee_id = ANY($1)
				AND r.validation_state <> $3
				AND (r.recorded_at AT TIME ZONE $2)::date < $4::date
			GROUP BY r.employee_id, 2
			HAVING BOOL_OR(r.event = $5) AND NOT BOOL_OR(r.event = $6)
		) open_days
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query,
		employeeIDs, a.timezone, attendance.StateRejected, date,
		attendance.EventShiftIn, attendance.EventShiftOut,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find oldest open days: %w", err)
	}
	defer rows.Close()

	byEmployee := make(map[string]string)
	for rows.Next() {
		var employeeID, day string
		if err := rows.Scan(&employeeID, &day); err != nil {
			return nil, err
		}
		byEmployee[employeeID] = day
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	days := make([]attendance.OpenDay, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		open := attendance.OpenDay{EmployeeID: id}
		if day, ok := byEmployee[id]; ok {
			open.Date = &day
		}
		days = append(days, open)
	}

	return days, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	where := ` WHERE 1=1`
	var args []interface{}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND r.employee_id = $%d", len(args))
	}
	if filter.From != "" {
		args = append(args, a.timezone, filter.From)
		where += fmt.Sprintf(" AND (r.recorded_at AT TIME ZONE $%d)::date >= $%d::date", len(args)-1, len(args))
	}
	if filter.To != "" {
		args = append(args, a.timezone, filter.To)
		where += fmt.Sprintf(" AND (r.recorded_at AT TIME ZONE $%d)::date <= $%d::date", len(args)-1, len(args))
	}
	if filter.State != "" {
		args = append(args, filter.State)
		where += fmt.Sprintf(" AND r.validation_state = $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance_records r` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `
		SELECT ` + recordColumns + `,
			e.first_name || COALESCE(' ' || e.paternal_surname, '') || COALESCE(' ' || e.maternal_surname, ''),
			e.document_number
		FROM attendance_records r
		JOIN employees e ON e.id = r.employee_id
	` + where + fmt.Sprintf(`
		ORDER BY r.recorded_at DESC
		LIMIT $%d OFFSET $%d
	`, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.RecordedAt, &rec.Direction, &rec.Event,
			&rec.Method, &rec.Latitude, &rec.Longitude, &rec.EvidenceURL,
			&rec.DeviceID, &rec.Note, &rec.WorkPointID, &rec.GeoMode,
			&rec.DistanceM, &rec.ValidationState, &rec.LateMinutes, &rec.CreatedAt,
			&rec.EmployeeName, &rec.DocumentNumber,
		)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// Timeline implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) Timeline(ctx context.Context, employeeID string, date string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records r
		WHERE r.employee_id = $1
			AND (r.recorded_at AT TIME ZONE $2)::date = $3::date
		ORDER BY r.recorded_at
	`

	rows, err := q.Query(ctx, query, employeeID, a.timezone, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get timeline: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// SetValidationState implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) SetValidationState(ctx context.Context, id string, state attendance.ValidationState) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records AS r
		SET validation_state = $2
		WHERE r.id = $1
		RETURNING ` + recordColumns + `
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, id, state))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to set validation state: %w", err)
	}

	return rec, nil
}
