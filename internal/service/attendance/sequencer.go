package attendance

import (
	"fmt"

	"github.com/andeanwork/attendance-backend-go/internal/domain/attendance"
)

// expectedAction maps the event the sequence expects next to the
// message the kiosk shows when the declared direction contradicts it.
var expectedAction = map[attendance.EventKind]string{
	attendance.EventShiftIn:  "expected IN to start the shift",
	attendance.EventBreakOut: "expected OUT to leave for break",
	attendance.EventBreakIn:  "expected IN to return from break",
	attendance.EventShiftOut: "expected OUT to close the shift",
}

// nextExpected returns the only event the day's sequence admits after
// last. A closed shift admits nothing: no reopening on the same civil
// day.
func nextExpected(last *attendance.EventKind, hasBreak bool) (attendance.EventKind, error) {
	if last == nil {
		return attendance.EventShiftIn, nil
	}
	switch *last {
	case attendance.EventShiftIn:
		if hasBreak {
			return attendance.EventBreakOut, nil
		}
		return attendance.EventShiftOut, nil
	case attendance.EventBreakOut:
		return attendance.EventBreakIn, nil
	case attendance.EventBreakIn:
		return attendance.EventShiftOut, nil
	case attendance.EventShiftOut:
		return "", &attendance.SequenceError{Message: "shift already closed for today"}
	}
	return "", &attendance.SequenceError{Message: fmt.Sprintf("unknown last event %q", *last)}
}

// resolveExplicit picks the next event when the caller declared a
// direction. The declaration must agree with the direction of the
// expected event; it never reorders the sequence.
func resolveExplicit(last *attendance.EventKind, hasBreak bool, declared attendance.Direction) (attendance.EventKind, error) {
	expected, err := nextExpected(last, hasBreak)
	if err != nil {
		return "", err
	}
	if attendance.DirectionFor(expected) != declared {
		return "", &attendance.SequenceError{Message: expectedAction[expected]}
	}
	return expected, nil
}

// resolveInferred picks the next event for an unattended marking. The
// single ambiguous state is (shift open, break configured): an OUT
// well before the first segment ends is a departure with permission,
// closing the shift, rather than a break exit. firstEndMinutes is the
// first segment's end as minutes of day; nil leaves the expected
// event untouched.
func resolveInferred(last *attendance.EventKind, hasBreak bool, minutesNow int, firstEndMinutes *int, permissionThreshold int) (attendance.EventKind, error) {
	expected, err := nextExpected(last, hasBreak)
	if err != nil {
		return "", err
	}
	if expected == attendance.EventBreakOut && firstEndMinutes != nil &&
		minutesNow < *firstEndMinutes-permissionThreshold {
		return attendance.EventShiftOut, nil
	}
	return expected, nil
}
