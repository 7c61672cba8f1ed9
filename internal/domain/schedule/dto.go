package schedule

import (
	"fmt"

	"github.com/andeanwork/attendance-backend-go/internal/pkg/validator"
)

// DayResolution is what the resolver returns for one (employee, date):
// both rows untouched, never merged. Precedence between them is the
// caller's decision via ResolveDayStatus.
type DayResolution struct {
	Date      string             `json:"date"`
	Weekday   int                `json:"weekday"`
	Schedule  *WeeklySchedule    `json:"schedule"`
	Exception *ScheduleException `json:"exception"`
}

type WeekDayInput struct {
	Weekday          int     `json:"weekday"`
	StartTime        *string `json:"start_time"`
	EndTime          *string `json:"end_time"`
	SecondStartTime  *string `json:"second_start_time"`
	SecondEndTime    *string `json:"second_end_time"`
	IsRestDay        bool    `json:"is_rest_day"`
	ToleranceMinutes *int    `json:"tolerance_minutes"`
}

type SetWeekRequest struct {
	ValidFrom string         `json:"valid_from"`
	Days      []WeekDayInput `json:"days"`
}

func present(t *string) bool {
	return t != nil && *t != ""
}

func (r *SetWeekRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ValidFrom != "" {
		if _, ok := validator.IsValidDate(r.ValidFrom); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "valid_from",
				Message: "valid_from must be YYYY-MM-DD",
			})
		}
	}

	if len(r.Days) != 7 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "exactly 7 day entries are required",
		})
		return errs
	}

	workable := 0
	seen := make(map[int]bool)
	for _, d := range r.Days {
		field := fmt.Sprintf("days.%d", d.Weekday)

		if d.Weekday < 1 || d.Weekday > 7 {
			errs = append(errs, validator.ValidationError{
				Field:   "days",
				Message: "each entry must indicate its weekday (1..7)",
			})
			continue
		}
		if seen[d.Weekday] {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "weekday appears more than once",
			})
			continue
		}
		seen[d.Weekday] = true

		for _, t := range []*string{d.StartTime, d.EndTime, d.SecondStartTime, d.SecondEndTime} {
			if present(t) && !validator.IsValidTimeOfDay(*t) {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: "times must be HH:MM or HH:MM:SS",
				})
			}
		}

		if d.IsRestDay {
			continue
		}
		workable++

		// A used segment must be complete.
		if present(d.StartTime) != present(d.EndTime) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "first segment needs both start and end",
			})
		}
		if present(d.SecondStartTime) != present(d.SecondEndTime) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "second segment needs both start and end",
			})
		}
		if present(d.StartTime) && present(d.EndTime) && *d.StartTime >= *d.EndTime {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "first segment start must be before its end",
			})
		}
		if present(d.SecondStartTime) && present(d.SecondEndTime) && *d.SecondStartTime >= *d.SecondEndTime {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "second segment start must be before its end",
			})
		}
		if !present(d.StartTime) && !present(d.EndTime) && !present(d.SecondStartTime) && !present(d.SecondEndTime) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "configure at least one segment or mark the day as rest",
			})
		}
	}

	if workable == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "a week cannot be rest days only",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AddExceptionRequest struct {
	Date       string  `json:"date"`
	Type       string  `json:"type"`
	IsWorkable bool    `json:"is_workable"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	Note       *string `json:"note"`
}

func (r *AddExceptionRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}
	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	}
	for _, t := range []*string{r.StartTime, r.EndTime} {
		if present(t) && !validator.IsValidTimeOfDay(*t) {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "times must be HH:MM or HH:MM:SS",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
