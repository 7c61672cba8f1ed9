package schedule

import "errors"

var (
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrExceptionNotFound = errors.New("schedule exception not found")
	ErrExceptionExists   = errors.New("an exception already exists for this date")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)
