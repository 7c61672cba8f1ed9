package attendance

import (
	"github.com/andeanwork/attendance-backend-go/internal/domain/schedule"
	"github.com/andeanwork/attendance-backend-go/internal/domain/workpoint"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// MARKING DTOs
// ========================================

type MarkRequest struct {
	Identifier  string   `json:"identifier"`
	Direction   string   `json:"direction"`
	Method      string   `json:"method"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	EvidenceURL *string  `json:"evidence_url"`
	DeviceID    *string  `json:"device_id"`
}

func (r *MarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Identifier) {
		errs = append(errs, validator.ValidationError{
			Field:   "identifier",
			Message: "identifier is required",
		})
	}
	if r.Direction != string(DirectionIn) && r.Direction != string(DirectionOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "direction",
			Message: "direction must be IN or OUT",
		})
	}
	if !validator.IsInSlice(r.Method, CaptureMethodValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "method",
			Message: "unknown capture method",
		})
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be supplied together",
		})
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UnattendedMarkRequest struct {
	Identifier string `json:"identifier"`
}

func (r *UnattendedMarkRequest) Validate() error {
	if validator.IsEmpty(r.Identifier) {
		return validator.ValidationErrors{{
			Field:   "identifier",
			Message: "identifier is required",
		}}
	}
	return nil
}

// EmployeeInfo is the display block returned with each marking.
type EmployeeInfo struct {
	ID             string  `json:"id"`
	FullName       string  `json:"full_name"`
	DocumentNumber string  `json:"document_number"`
	PhotoURL       *string `json:"photo_url"`
	SiteName       *string `json:"site_name"`
	AreaName       *string `json:"area_name"`
}

type MarkResponse struct {
	OK              bool                        `json:"ok"`
	Event           EventKind                   `json:"event"`
	Direction       Direction                   `json:"direction"`
	ValidationState ValidationState             `json:"validation_state"`
	LateMinutes     *int                        `json:"late_minutes"`
	Geo             workpoint.GeoResult         `json:"geo"`
	Schedule        *schedule.WeeklySchedule    `json:"schedule"`
	Exception       *schedule.ScheduleException `json:"exception"`
	Employee        EmployeeInfo                `json:"employee"`
}

// ========================================
// ADMIN DTOs
// ========================================

type ManualEntryRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Event       string  `json:"event"`
	Reason      string  `json:"reason"`
	EvidenceURL *string `json:"evidence_url"`
}

func (r *ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}
	if !validator.IsValidTimeOfDay(r.Time) {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be HH:MM or HH:MM:SS",
		})
	}
	if !validator.IsInSlice(r.Event, EventKindValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "event",
			Message: "unknown event kind",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	EmployeeID string
	From       string // civil date, inclusive
	To         string // civil date, inclusive
	State      string
	Page       int
	Limit      int
}

type TimelineResponse struct {
	Employee EmployeeInfo `json:"employee"`
	Timeline []Record     `json:"timeline"`
}

// OpenDay reports the oldest prior day an employee left without
// checkout; nil date means nothing pending.
type OpenDay struct {
	EmployeeID string  `json:"employee_id"`
	Date       *string `json:"date"`
}
