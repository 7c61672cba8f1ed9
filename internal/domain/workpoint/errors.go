package workpoint

import "errors"

var (
	ErrWorkPointNotFound      = errors.New("work point not found")
	ErrWorkPointInactive      = errors.New("work point is inactive")
	ErrAssignmentNotFound     = errors.New("work point assignment not found")
	ErrOverlappingAssignment  = errors.New("employee already has an assignment in this range")
	ErrInvalidAssignmentState = errors.New("invalid assignment state")
)
