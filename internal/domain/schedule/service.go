package schedule

import "context"

type ScheduleService interface {
	// ResolveDay returns both the applicable weekly-schedule row and
	// the date-specific exception for (employee, date), unmerged. An
	// empty date means today.
	ResolveDay(ctx context.Context, employeeID string, date string) (DayResolution, error)

	// SetWeek replaces the employee's schedule going forward: closes
	// the open validity window and inserts the 7 submitted day rows.
	SetWeek(ctx context.Context, employeeID string, req SetWeekRequest) error

	// CloseValidity ends the currently open validity window.
	CloseValidity(ctx context.Context, employeeID string, endDate string) error

	// GetEffective returns the week in force on a date.
	GetEffective(ctx context.Context, employeeID string, date string) ([]WeeklySchedule, error)

	// History returns every schedule row ever recorded.
	History(ctx context.Context, employeeID string) ([]WeeklySchedule, error)

	AddException(ctx context.Context, employeeID string, req AddExceptionRequest) (ScheduleException, error)
	DeleteException(ctx context.Context, id string) error
	GetExceptionByDate(ctx context.Context, employeeID string, date string) (*ScheduleException, error)
	ListExceptions(ctx context.Context, employeeID string, from, to string) ([]ScheduleException, error)
}
