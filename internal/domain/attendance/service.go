package attendance

import "context"

// AttendanceService is the attendance event engine plus its admin
// surface.
type AttendanceService interface {
	// Mark processes a check-in attempt with a declared direction.
	Mark(ctx context.Context, req MarkRequest) (MarkResponse, error)

	// MarkUnattended processes a kiosk attempt: no declared direction,
	// no coordinates; the engine infers the event.
	MarkUnattended(ctx context.Context, req UnattendedMarkRequest) (MarkResponse, error)

	// CreateManual records an administrative entry at an explicit civil
	// date and time, bypassing sequencing.
	CreateManual(ctx context.Context, req ManualEntryRequest) (Record, error)

	List(ctx context.Context, filter ListFilter) ([]Record, int64, error)

	Timeline(ctx context.Context, employeeID string, date string) (TimelineResponse, error)

	Approve(ctx context.Context, id string) (Record, error)
	Reject(ctx context.Context, id string) (Record, error)

	// OldestOpenDay supports resolving the prior-day block.
	OldestOpenDay(ctx context.Context, employeeID string) (OpenDay, error)
	OldestOpenDays(ctx context.Context, employeeIDs []string) ([]OpenDay, error)
}
