package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andeanwork/attendance-backend-go/internal/domain/workpoint"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type workPointRepositoryImpl struct {
	db *database.DB
}

func NewWorkPointRepository(db *database.DB) workpoint.WorkPointRepository {
	return &workPointRepositoryImpl{db: db}
}

const workPointColumns = `id, name, latitude, longitude, radius_m, active, site_id, created_at`

func scanWorkPoint(row pgx.Row) (workpoint.WorkPoint, error) {
	var wp workpoint.WorkPoint
	err := row.Scan(
		&wp.ID, &wp.Name, &wp.Latitude, &wp.Longitude,
		&wp.RadiusM, &wp.Active, &wp.SiteID, &wp.CreatedAt,
	)
	return wp, err
}

// Create implements workpoint.WorkPointRepository.
func (r *workPointRepositoryImpl) Create(ctx context.Context, point workpoint.WorkPoint) (workpoint.WorkPoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_points (id, name, latitude, longitude, radius_m, active, site_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + workPointColumns + `
	`

	created, err := scanWorkPoint(q.QueryRow(ctx, query,
		uuid.NewString(), point.Name, point.Latitude, point.Longitude,
		point.RadiusM, point.Active, point.SiteID,
	))
	if err != nil {
		return workpoint.WorkPoint{}, fmt.Errorf("failed to create work point: %w", err)
	}

	return created, nil
}

// GetByID implements workpoint.WorkPointRepository.
func (r *workPointRepositoryImpl) GetByID(ctx context.Context, id string) (workpoint.WorkPoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workPointColumns + ` FROM work_points WHERE id = $1`

	wp, err := scanWorkPoint(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workpoint.WorkPoint{}, workpoint.ErrWorkPointNotFound
		}
		return workpoint.WorkPoint{}, fmt.Errorf("failed to get work point with id %s: %w", id, err)
	}

	return wp, nil
}

// List implements workpoint.WorkPointRepository.
func (r *workPointRepositoryImpl) List(ctx context.Context, siteID string) ([]workpoint.WorkPoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workPointColumns + ` FROM work_points`
	args := []interface{}{}
	if siteID != "" {
		args = append(args, siteID)
		query += ` WHERE site_id = $1`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list work points: %w", err)
	}
	defer rows.Close()

	var points []workpoint.WorkPoint
	for rows.Next() {
		wp, err := scanWorkPoint(rows)
		if err != nil {
			return nil, err
		}
		points = append(points, wp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}

// Update implements workpoint.WorkPointRepository.
func (r *workPointRepositoryImpl) Update(ctx context.Context, id string, req workpoint.UpdateWorkPointRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_points
		SET name = COALESCE($2, name),
			latitude = COALESCE($3, latitude),
			longitude = COALESCE($4, longitude),
			radius_m = COALESCE($5, radius_m),
			active = COALESCE($6, active),
			site_id = COALESCE($7, site_id)
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, req.Name, req.Latitude, req.Longitude, req.RadiusM, req.Active, req.SiteID)
	if err != nil {
		return fmt.Errorf("failed to update work point: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workpoint.ErrWorkPointNotFound
	}

	return nil
}

// Delete implements workpoint.WorkPointRepository.
func (r *workPointRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM work_points WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete work point: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workpoint.ErrWorkPointNotFound
	}

	return nil
}

type assignmentRepositoryImpl struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) workpoint.AssignmentRepository {
	return &assignmentRepositoryImpl{db: db}
}

const assignmentColumns = `id, work_point_id, employee_id, valid_from, valid_until, supervisor_id, state, created_at`

func scanAssignment(row pgx.Row) (workpoint.Assignment, error) {
	var a workpoint.Assignment
	err := row.Scan(
		&a.ID, &a.WorkPointID, &a.EmployeeID, &a.ValidFrom, &a.ValidUntil,
		&a.SupervisorID, &a.State, &a.CreatedAt,
	)
	return a, err
}

// Create implements workpoint.AssignmentRepository.
func (r *assignmentRepositoryImpl) Create(ctx context.Context, assignment workpoint.Assignment) (workpoint.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_point_assignments (
			id, work_point_id, employee_id, valid_from, valid_until, supervisor_id, state
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + assignmentColumns + `
	`

	created, err := scanAssignment(q.QueryRow(ctx, query,
		uuid.NewString(), assignment.WorkPointID, assignment.EmployeeID,
		assignment.ValidFrom, assignment.ValidUntil, assignment.SupervisorID,
		workpoint.AssignmentActive,
	))
	if err != nil {
		return workpoint.Assignment{}, fmt.Errorf("failed to create assignment: %w", err)
	}

	return created, nil
}

// HasOverlap implements workpoint.AssignmentRepository.
func (r *assignmentRepositoryImpl) HasOverlap(ctx context.Context, employeeID string, from, until time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM work_point_assignments
			WHERE employee_id = $1
				AND state = $2
				AND valid_from <= $4
				AND valid_until >= $3
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, workpoint.AssignmentActive, from, until).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check assignment overlap: %w", err)
	}

	return exists, nil
}

// GetActiveAt implements workpoint.AssignmentRepository.
func (r *assignmentRepositoryImpl) GetActiveAt(ctx context.Context, employeeID string, at time.Time) (*workpoint.ActiveAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.work_point_id, p.name, p.latitude, p.longitude, p.radius_m,
			a.valid_from, a.valid_until
		FROM work_point_assignments a
		JOIN work_points p ON p.id = a.work_point_id
		WHERE a.employee_id = $1
			AND a.state = $2
			AND a.valid_from <= $3
			AND a.valid_until >= $3
			AND p.active
		ORDER BY a.created_at DESC
		LIMIT 1
	`

	var aa workpoint.ActiveAssignment
	err := q.QueryRow(ctx, query, employeeID, workpoint.AssignmentActive, at).Scan(
		&aa.AssignmentID, &aa.WorkPointID, &aa.Name, &aa.Latitude, &aa.Longitude,
		&aa.RadiusM, &aa.ValidFrom, &aa.ValidUntil,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active assignment: %w", err)
	}

	return &aa, nil
}

// ListActive implements workpoint.AssignmentRepository.
func (r *assignmentRepositoryImpl) ListActive(ctx context.Context, employeeID string) ([]workpoint.ActiveAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.work_point_id, p.name, p.latitude, p.longitude, p.radius_m,
			a.valid_from, a.valid_until
		FROM work_point_assignments a
		JOIN work_points p ON p.id = a.work_point_id
		WHERE a.employee_id = $1 AND a.state = $2
		ORDER BY a.valid_from
	`

	rows, err := q.Query(ctx, query, employeeID, workpoint.AssignmentActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active assignments: %w", err)
	}
	defer rows.Close()

	var assignments []workpoint.ActiveAssignment
	for rows.Next() {
		var aa workpoint.ActiveAssignment
		err := rows.Scan(
			&aa.AssignmentID, &aa.WorkPointID, &aa.Name, &aa.Latitude, &aa.Longitude,
			&aa.RadiusM, &aa.ValidFrom, &aa.ValidUntil,
		)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, aa)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// SetState implements workpoint.AssignmentRepository.
func (r *assignmentRepositoryImpl) SetState(ctx context.Context, id string, state workpoint.AssignmentState) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE work_point_assignments SET state = $2 WHERE id = $1`, id, state)
	if err != nil {
		return fmt.Errorf("failed to set assignment state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workpoint.ErrAssignmentNotFound
	}

	return nil
}

// Delete implements workpoint.AssignmentRepository.
func (r *assignmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM work_point_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workpoint.ErrAssignmentNotFound
	}

	return nil
}
