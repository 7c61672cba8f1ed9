package workpoint

import (
	"github.com/andeanwork/attendance-backend-go/internal/pkg/validator"
)

// Geofence result modes.
const (
	GeoModeNoGPS = "no_gps"
	GeoModePoint = "point"
)

// GeoResult is the auditable outcome of a geofence validation. Absence
// of GPS or of an assignment is a valid outcome, never an error.
type GeoResult struct {
	OK          bool     `json:"ok"`
	Mode        string   `json:"mode"`
	WorkPointID *string  `json:"work_point_id"`
	DistanceM   *float64 `json:"distance_m"`
	RadiusM     *int     `json:"radius_m"`
}

type ValidateGeoRequest struct {
	EmployeeID string   `json:"employee_id"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

func (r *ValidateGeoRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
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

type CreateWorkPointRequest struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	RadiusM   *int     `json:"radius_m"`
	Active    *bool    `json:"active"`
	SiteID    *string  `json:"site_id"`
}

func (r *CreateWorkPointRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.Latitude == nil || !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude is required and must be between -90 and 90",
		})
	}
	if r.Longitude == nil || !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude is required and must be between -180 and 180",
		})
	}
	if r.RadiusM != nil && *r.RadiusM <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_m",
			Message: "radius_m must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateWorkPointRequest struct {
	Name      *string  `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	RadiusM   *int     `json:"radius_m"`
	Active    *bool    `json:"active"`
	SiteID    *string  `json:"site_id"`
}

func (r *UpdateWorkPointRequest) Validate() error {
	var errs validator.ValidationErrors

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
	if r.RadiusM != nil && *r.RadiusM <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_m",
			Message: "radius_m must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignRequest struct {
	WorkPointID  string  `json:"work_point_id"`
	EmployeeID   string  `json:"employee_id"`
	ValidFrom    string  `json:"valid_from"`
	ValidUntil   string  `json:"valid_until"`
	SupervisorID *string `json:"supervisor_id"`
}

func (r *AssignRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkPointID) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_point_id",
			Message: "work_point_id is required",
		})
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	from, okFrom := validator.IsValidDate(r.ValidFrom)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "valid_from",
			Message: "valid_from must be YYYY-MM-DD",
		})
	}
	until, okUntil := validator.IsValidDate(r.ValidUntil)
	if !okUntil {
		errs = append(errs, validator.ValidationError{
			Field:   "valid_until",
			Message: "valid_until must be YYYY-MM-DD",
		})
	}
	if okFrom && okUntil && !from.Before(until) {
		errs = append(errs, validator.ValidationError{
			Field:   "valid_until",
			Message: "valid_until must be after valid_from",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
