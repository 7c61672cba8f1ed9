package attendance

import "errors"

// Attendance domain errors
var (
	// Marking rejections
	ErrOpenPriorShift  = errors.New("a prior day's shift is still open, contact HR")
	ErrNoWorkableShift = errors.New("no workable shift today, contact HR")
	ErrDuplicateRecord = errors.New("a record for this employee, time and event already exists")
	ErrEmptyIdentifier = errors.New("identifier is empty")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)

// SequenceError means the current recorded state admits no valid next
// transition for the given input. The message names the expected
// action so the kiosk can show it.
type SequenceError struct {
	Message string
}

func (e *SequenceError) Error() string {
	return e.Message
}
