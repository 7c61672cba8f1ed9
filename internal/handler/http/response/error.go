package response

import (
	"errors"
	"net/http"

	"github.com/andeanwork/attendance-backend-go/internal/domain/attendance"
	"github.com/andeanwork/attendance-backend-go/internal/domain/auth"
	"github.com/andeanwork/attendance-backend-go/internal/domain/employee"
	"github.com/andeanwork/attendance-backend-go/internal/domain/schedule"
	"github.com/andeanwork/attendance-backend-go/internal/domain/workpoint"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/calendar"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A sequence rejection carries the prompt for the kiosk.
	var seqErr *attendance.SequenceError
	if errors.As(err, &seqErr) {
		SequenceConflict(w, seqErr.Message)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrNoPasswordSet):
		Forbidden(w, "No password configured, contact HR")
	case errors.Is(err, auth.ErrHRAccessRequired):
		Forbidden(w, "HR access required")
	case errors.Is(err, auth.ErrManagementAccess):
		Forbidden(w, "Management access required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrOpenPriorShift):
		Conflict(w, "A prior day's shift is still open, contact HR")
	case errors.Is(err, attendance.ErrNoWorkableShift):
		BadRequest(w, "No workable shift today", nil)
	case errors.Is(err, attendance.ErrDuplicateRecord):
		Conflict(w, "An identical record already exists")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule not found")
	case errors.Is(err, schedule.ErrExceptionNotFound):
		NotFound(w, "Schedule exception not found")
	case errors.Is(err, schedule.ErrExceptionExists):
		Conflict(w, "An exception already exists for this date")

	// Work point domain errors
	case errors.Is(err, workpoint.ErrWorkPointNotFound):
		NotFound(w, "Work point not found")
	case errors.Is(err, workpoint.ErrWorkPointInactive):
		BadRequest(w, "Work point is inactive", nil)
	case errors.Is(err, workpoint.ErrAssignmentNotFound):
		NotFound(w, "Assignment not found")
	case errors.Is(err, workpoint.ErrOverlappingAssignment):
		Conflict(w, "Employee already has an active assignment in that window")
	case errors.Is(err, workpoint.ErrInvalidAssignmentState):
		BadRequest(w, "Invalid assignment state", nil)

	// Calendar errors
	case errors.Is(err, calendar.ErrInvalidDate):
		BadRequest(w, "Invalid date, use YYYY-MM-DD", nil)
	case errors.Is(err, calendar.ErrInvalidTimeOfDay):
		BadRequest(w, "Invalid time of day, use HH:MM or HH:MM:SS", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
