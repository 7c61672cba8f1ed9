package schedule

import "time"

// WeeklySchedule is one scheduled weekday inside a validity window.
// Times are civil time-of-day literals ("HH:MM:SS"); dates are civil
// dates ("YYYY-MM-DD") in the organizational timezone.
type WeeklySchedule struct {
	ID               string
	EmployeeID       string
	Weekday          int // 1=Monday ... 7=Sunday
	StartTime        *string
	EndTime          *string
	SecondStartTime  *string
	SecondEndTime    *string
	IsRestDay        bool
	ToleranceMinutes int
	ValidFrom        string
	ValidUntil       *string // nil = open-ended
	CreatedAt        time.Time
}

// HasBreak reports whether the day includes a break: only a complete
// secondary segment implies one, a single-sided segment never does.
func (s *WeeklySchedule) HasBreak() bool {
	if s == nil {
		return false
	}
	return s.SecondStartTime != nil && *s.SecondStartTime != "" &&
		s.SecondEndTime != nil && *s.SecondEndTime != ""
}

// ScheduleException overrides the weekly schedule on one exact date.
type ScheduleException struct {
	ID         string
	EmployeeID string
	Date       string
	Type       string
	IsWorkable bool
	StartTime  *string
	EndTime    *string
	Note       *string
	CreatedAt  time.Time
}

// DayStatus is the resolved workability of one civil day, decided once
// per request so the precedence between exception, rest day and weekly
// schedule stays in a single place.
type DayStatus int

const (
	DayStatusWorkable DayStatus = iota
	DayStatusRestDay
	DayStatusExceptionBlocked
)

// ResolveDayStatus applies the precedence rules: a non-workable
// exception blocks the day no matter what the weekly schedule says; a
// rest-day schedule makes it a rest day; everything else, including a
// day with no schedule row at all, is workable.
func ResolveDayStatus(ws *WeeklySchedule, exc *ScheduleException) DayStatus {
	if exc != nil && !exc.IsWorkable {
		return DayStatusExceptionBlocked
	}
	if ws != nil && ws.IsRestDay {
		return DayStatusRestDay
	}
	return DayStatusWorkable
}
