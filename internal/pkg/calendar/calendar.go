package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	civilDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeOfDayRegex = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
)

// Calendar resolves "now" and civil dates in one fixed organizational
// timezone, regardless of the host process timezone. All attendance
// decisions read time through it so tests can pin the clock.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

func New(timezone string) (*Calendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Calendar{loc: loc, now: time.Now}, nil
}

// NewWithClock builds a Calendar with an injected clock. Used by tests.
func NewWithClock(timezone string, now func() time.Time) (*Calendar, error) {
	c, err := New(timezone)
	if err != nil {
		return nil, err
	}
	c.now = now
	return c, nil
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Now returns the current instant expressed in the fixed timezone.
func (c *Calendar) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns the current civil date as YYYY-MM-DD in the fixed timezone.
func (c *Calendar) Today() string {
	return c.Now().Format("2006-01-02")
}

// NowMinutesOfDay returns minutes elapsed since local midnight in the
// fixed timezone.
func (c *Calendar) NowMinutesOfDay() int {
	n := c.Now()
	return n.Hour()*60 + n.Minute()
}

// DateKey validates an explicit civil date or falls back to today when
// the input is empty.
func (c *Calendar) DateKey(date string) (string, error) {
	if date == "" {
		return c.Today(), nil
	}
	if !civilDateRegex.MatchString(date) {
		return "", ErrInvalidDate
	}
	if _, err := time.ParseInLocation("2006-01-02", date, c.loc); err != nil {
		return "", ErrInvalidDate
	}
	return date, nil
}

// WeekdayISO returns 1 (Monday) .. 7 (Sunday) for a civil date. The date
// is anchored at local noon before deriving the weekday so a timezone
// offset can never push it into the previous or next day.
func (c *Calendar) WeekdayISO(date string) (int, error) {
	key, err := c.DateKey(date)
	if err != nil {
		return 0, err
	}
	noon, err := time.ParseInLocation("2006-01-02 15:04", key+" 12:00", c.loc)
	if err != nil {
		return 0, ErrInvalidDate
	}
	wd := int(noon.Weekday())
	if wd == 0 {
		wd = 7
	}
	return wd, nil
}

// ParseTimeToMinutes converts "HH:MM" or "HH:MM:SS" to minutes since
// midnight. A nil or empty input yields nil, matching schedules whose
// segments are not configured.
func ParseTimeToMinutes(t *string) (*int, error) {
	if t == nil || *t == "" {
		return nil, nil
	}
	if !timeOfDayRegex.MatchString(*t) {
		return nil, ErrInvalidTimeOfDay
	}
	parts := strings.Split(*t, ":")
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	if h > 23 || m > 59 {
		return nil, ErrInvalidTimeOfDay
	}
	mins := h*60 + m
	return &mins, nil
}
