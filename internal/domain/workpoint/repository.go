package workpoint

import (
	"context"
	"time"
)

type WorkPointRepository interface {
	Create(ctx context.Context, point WorkPoint) (WorkPoint, error)
	GetByID(ctx context.Context, id string) (WorkPoint, error)
	List(ctx context.Context, siteID string) ([]WorkPoint, error)
	Update(ctx context.Context, id string, req UpdateWorkPointRequest) error
	Delete(ctx context.Context, id string) error
}

type AssignmentRepository interface {
	Create(ctx context.Context, assignment Assignment) (Assignment, error)

	// HasOverlap reports whether the employee already has an ACTIVE
	// assignment overlapping [from, until].
	HasOverlap(ctx context.Context, employeeID string, from, until time.Time) (bool, error)

	// GetActiveAt returns the first ACTIVE assignment whose window
	// contains the instant, joined with its work point. Nil when the
	// employee has none.
	GetActiveAt(ctx context.Context, employeeID string, at time.Time) (*ActiveAssignment, error)

	ListActive(ctx context.Context, employeeID string) ([]ActiveAssignment, error)
	SetState(ctx context.Context, id string, state AssignmentState) error
	Delete(ctx context.Context, id string) error
}
