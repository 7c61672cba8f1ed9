package calendar

import "errors"

var (
	ErrInvalidDate      = errors.New("invalid date, use YYYY-MM-DD")
	ErrInvalidTimeOfDay = errors.New("invalid time, use HH:MM or HH:MM:SS")
)
