package workpoint

import "context"

type WorkPointService interface {
	CreateWorkPoint(ctx context.Context, req CreateWorkPointRequest) (WorkPoint, error)
	GetWorkPoint(ctx context.Context, id string) (WorkPoint, error)
	ListWorkPoints(ctx context.Context, siteID string) ([]WorkPoint, error)
	UpdateWorkPoint(ctx context.Context, id string, req UpdateWorkPointRequest) (WorkPoint, error)
	DeleteWorkPoint(ctx context.Context, id string) error

	Assign(ctx context.Context, req AssignRequest) (Assignment, error)
	RemoveAssignment(ctx context.Context, id string) error
	SetAssignmentState(ctx context.Context, id string, state string) error
	ActiveAssignments(ctx context.Context, employeeID string) ([]ActiveAssignment, error)

	// ValidateGeo checks supplied coordinates against the employee's
	// effective work point. Missing coordinates or a missing assignment
	// produce a no-GPS result, not an error.
	ValidateGeo(ctx context.Context, employeeID string, lat, lng *float64) (GeoResult, error)
}
