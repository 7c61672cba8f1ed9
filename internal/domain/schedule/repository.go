package schedule

import "context"

type WeeklyScheduleRepository interface {
	// GetForDay returns the schedule row for (employee, weekday) whose
	// validity window contains date, preferring the most recently
	// created row if more than one matches. Nil when none applies.
	GetForDay(ctx context.Context, employeeID string, weekday int, date string) (*WeeklySchedule, error)

	// GetEffective returns every weekday row whose validity window
	// contains date, ordered by weekday.
	GetEffective(ctx context.Context, employeeID string, date string) ([]WeeklySchedule, error)

	// History returns all schedule rows ever recorded for the employee.
	History(ctx context.Context, employeeID string) ([]WeeklySchedule, error)

	// CloseOpenValidity sets the validity end on any open-ended rows.
	// Called before inserting a new week so at most one open row exists
	// per (employee, weekday).
	CloseOpenValidity(ctx context.Context, employeeID string, endDate string) error

	// CreateDay inserts one weekday row.
	CreateDay(ctx context.Context, day WeeklySchedule) (WeeklySchedule, error)
}

type ScheduleExceptionRepository interface {
	// GetByDate returns the exception for (employee, exact date), nil
	// when none exists.
	GetByDate(ctx context.Context, employeeID string, date string) (*ScheduleException, error)

	Create(ctx context.Context, exc ScheduleException) (ScheduleException, error)

	Delete(ctx context.Context, id string) error

	// List returns exceptions in [from, to]; with only from, the most
	// recent ones; with neither, upcoming ones starting today.
	List(ctx context.Context, employeeID string, from, to string) ([]ScheduleException, error)
}
