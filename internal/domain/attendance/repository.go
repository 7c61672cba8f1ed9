package attendance

import "context"

// AttendanceRepository persists and reads attendance facts. Civil-day
// boundaries are computed in the fixed organizational timezone.
type AttendanceRepository interface {
	// Create inserts a record. A uniqueness violation on (employee,
	// recorded_at, event) surfaces as ErrDuplicateRecord.
	Create(ctx context.Context, record Record) (Record, error)

	// LastEventOfDay returns the latest record of the civil day, nil
	// when the employee has not marked yet.
	LastEventOfDay(ctx context.Context, employeeID string, date string) (*Record, error)

	// HasOpenPriorShift reports whether, within the last lookbackDays
	// civil days strictly before date, any day has a shift start
	// without a shift end.
	HasOpenPriorShift(ctx context.Context, employeeID string, date string, lookbackDays int) (bool, error)

	// OldestOpenDay returns the oldest civil day before date left open,
	// nil when none.
	OldestOpenDay(ctx context.Context, employeeID string, date string) (*string, error)

	// OldestOpenDays is the batch form of OldestOpenDay.
	OldestOpenDays(ctx context.Context, employeeIDs []string, date string) ([]OpenDay, error)

	List(ctx context.Context, filter ListFilter) ([]Record, int64, error)

	Timeline(ctx context.Context, employeeID string, date string) ([]Record, error)

	// SetValidationState moves a record through the reviewing workflow.
	SetValidationState(ctx context.Context, id string, state ValidationState) (Record, error)
}
