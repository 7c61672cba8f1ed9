package workpoint

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/andeanwork/attendance-backend-go/internal/domain/workpoint"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/calendar"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/geo"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/validator"
)

const defaultRadiusM = 120

type WorkPointServiceImpl struct {
	workpoint.WorkPointRepository
	workpoint.AssignmentRepository
	cal *calendar.Calendar
}

func NewWorkPointService(
	pointRepo workpoint.WorkPointRepository,
	assignmentRepo workpoint.AssignmentRepository,
	cal *calendar.Calendar,
) workpoint.WorkPointService {
	return &WorkPointServiceImpl{
		WorkPointRepository:  pointRepo,
		AssignmentRepository: assignmentRepo,
		cal:                  cal,
	}
}

// CreateWorkPoint implements workpoint.WorkPointService.
func (s *WorkPointServiceImpl) CreateWorkPoint(ctx context.Context, req workpoint.CreateWorkPointRequest) (workpoint.WorkPoint, error) {
	if err := req.Validate(); err != nil {
		return workpoint.WorkPoint{}, err
	}

	point := workpoint.WorkPoint{
		Name:      req.Name,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		RadiusM:   defaultRadiusM,
		Active:    true,
		SiteID:    req.SiteID,
	}
	if req.RadiusM != nil {
		point.RadiusM = *req.RadiusM
	}
	if req.Active != nil {
		point.Active = *req.Active
	}

	created, err := s.WorkPointRepository.Create(ctx, point)
	if err != nil {
		return workpoint.WorkPoint{}, fmt.Errorf("failed to create work point: %w", err)
	}
	return created, nil
}

// GetWorkPoint implements workpoint.WorkPointService.
func (s *WorkPointServiceImpl) GetWorkPoint(ctx context.Context, id string) (workpoint.WorkPoint, error) {
	point, err := s.WorkPointRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, workpoint.ErrWorkPointNotFound) {
			return workpoint.WorkPoint{}, workpoint.ErrWorkPointNotFound
		}
		return workpoint.WorkPoint{}, fmt.Errorf("failed to get work point: %w", err)
	}
	return point, nil
}

// ListWorkPoints implements workpoint.WorkPointService.
func (s *WorkPointServiceImpl) ListWorkPoints(ctx context.Context, siteID string) ([]workpoint.WorkPoint, error) {
	points, err := s.WorkPointRepository.List(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work points: %w", err)
	}
	return points, nil
}

// UpdateWorkPoint implements workpoint.WorkPointService.
func (s *WorkPointServiceImpl) UpdateWorkPoint(ctx context.Context, id string, req workpoint.UpdateWorkPointRequest) (workpoint.WorkPoint, error) {
	if err := req.Validate(); err != nil {
		return workpoint.WorkPoint{}, err
	}

	if err := s.WorkPointRepository.Update(ctx, id, req); err != nil {
		if errors.Is(err, workpoint.ErrWorkPointNotFound) {
			return workpoint.WorkPoint{}, workpoint.ErrWorkPointNotFound
		}
		return workpoint.WorkPoint{}, fmt.Errorf("failed to update work point: %w", err)
	}
	return s.GetWorkPoint(ctx, id)
}

// DeleteWorkPoint implements workpoint.WorkPointService.
func (s *WorkPointServiceImpl) DeleteWorkPoint(ctx context.Context, id string) error {
	if err := s.WorkPointRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, workpoint.ErrWorkPointNotFound) {
			return workpoint.ErrWorkPointNotFound
		}
		return fmt.Errorf("failed to delete work point: %w", err)
	}
	return nil
}

// Assign implements workpoint.WorkPointService.
func (s *WorkPointServiceImpl) Assign(ctx context.Context, req workpoint.AssignRequest) (workpoint.Assignment, error) {
	if err := req.Validate(); err != nil {
		return workpoint.Assignment{}, err
	}

	point, err := s.GetWorkPoint(ctx, req.WorkPointID)
	if err != nil {
		return workpoint.Assignment{}, err
	}
	if !point.Active {
		return workpoint.Assignment{}, workpoint.ErrWorkPointInactive
	}

	loc := s.cal.Location()
	from, err := time.ParseInLocation("2006-01-02", req.ValidFrom, loc)
	if err != nil {
		return workpoint.Assignment{}, calendar.ErrInvalidDate
	}
	until, err := time.ParseInLocation("2006-01-02", req.ValidUntil, loc)
	if err != nil {
		return workpoint.Assignment{}, calendar.ErrInvalidDate
	}
	// the window covers the whole closing day
	until = until.Add(24*time.Hour - time.Second)

	overlap, err := s.AssignmentRepository.HasOverlap(ctx, req.EmployeeID, from, until)
	if err != nil {
		return workpoint.Assignment{}, fmt.Errorf("failed to check assignment overlap: %w", err)
	}
	if overlap {
		return workpoint.Assignment{}, workpoint.ErrOverlappingAssignment
	}

	assignment := workpoint.Assignment{
		WorkPointID:  req.WorkPointID,
		EmployeeID:   req.EmployeeID,
		ValidFrom:    from,
		ValidUntil:   until,
		SupervisorID: req.SupervisorID,
		State:        workpoint.AssignmentActive,
	}
	created, err := s.AssignmentRepository.Create(ctx, assignment)
	if err != nil {
		return workpoint.Assignment{}, fmt.Errorf("failed to create assignment: %w", err)
	}
	return created, nil
}

// RemoveAssignment implements workpoint.WorkPointService.
func (s *WorkPointServiceImpl) RemoveAssignment(ctx context.Context, id string) error {
	if err := s.AssignmentRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, workpoint.ErrAssignmentNotFound) {
			return workpoint.ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to remove assignment: %w", err)
	}
	return nil
}

// SetAssignmentState implements workpoint.WorkPointService.
func (s *WorkPointServiceImpl) SetAssignmentState(ctx context.Context, id string, state string) error {
	if !validator.IsInSlice(state, workpoint.AssignmentStateValues) {
		return workpoint.ErrInvalidAssignmentState
	}
	if err := s.AssignmentRepository.SetState(ctx, id, workpoint.AssignmentState(state)); err != nil {
		if errors.Is(err, workpoint.ErrAssignmentNotFound) {
			return workpoint.ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to set assignment state: %w", err)
	}
	return nil
}

// ActiveAssignments implements workpoint.WorkPointService.
func (s *WorkPointServiceImpl) ActiveAssignments(ctx context.Context, employeeID string) ([]workpoint.ActiveAssignment, error) {
	assignments, err := s.AssignmentRepository.ListActive(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active assignments: %w", err)
	}
	return assignments, nil
}

// ValidateGeo implements workpoint.WorkPointService. Missing GPS and a
// missing assignment both yield the no-GPS result: unvalidated but
// auditable, never an error.
func (s *WorkPointServiceImpl) ValidateGeo(ctx context.Context, employeeID string, lat, lng *float64) (workpoint.GeoResult, error) {
	noGPS := workpoint.GeoResult{OK: false, Mode: workpoint.GeoModeNoGPS}

	if lat == nil || lng == nil {
		return noGPS, nil
	}

	assignment, err := s.AssignmentRepository.GetActiveAt(ctx, employeeID, s.cal.Now())
	if err != nil {
		return workpoint.GeoResult{}, fmt.Errorf("failed to get active assignment: %w", err)
	}
	if assignment == nil {
		return noGPS, nil
	}

	distance := math.Round(geo.HaversineDistance(*lat, *lng, assignment.Latitude, assignment.Longitude))
	radius := assignment.RadiusM

	return workpoint.GeoResult{
		OK:          distance <= float64(radius),
		Mode:        workpoint.GeoModePoint,
		WorkPointID: &assignment.WorkPointID,
		DistanceM:   &distance,
		RadiusM:     &radius,
	}, nil
}
