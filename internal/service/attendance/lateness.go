package attendance

import (
	"github.com/andeanwork/attendance-backend-go/internal/domain/attendance"
	"github.com/andeanwork/attendance-backend-go/internal/domain/schedule"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/calendar"
)

const defaultToleranceMinutes = 15

// computeLateness returns accrued late minutes for an event, or nil
// when the event does not accrue lateness, the day has no schedule, or
// the schedule carries no usable start time.
//
// Shift entry discounts the tolerance window entirely: inside it the
// lateness is zero, beyond it only the excess counts. Break return has
// no tolerance.
func computeLateness(event attendance.EventKind, ws *schedule.WeeklySchedule, minutesNow int) *int {
	if ws == nil || ws.IsRestDay {
		return nil
	}

	switch event {
	case attendance.EventShiftIn:
		start, err := calendar.ParseTimeToMinutes(ws.StartTime)
		if err != nil || start == nil {
			return nil
		}
		tolerance := ws.ToleranceMinutes
		if tolerance <= 0 {
			tolerance = defaultToleranceMinutes
		}
		late := 0
		if diff := minutesNow - *start; diff > tolerance {
			late = diff - tolerance
		}
		return &late

	case attendance.EventBreakIn:
		start, err := calendar.ParseTimeToMinutes(ws.SecondStartTime)
		if err != nil || start == nil {
			return nil
		}
		late := minutesNow - *start
		if late < 0 {
			late = 0
		}
		return &late
	}

	return nil
}
