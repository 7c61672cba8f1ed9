package workpoint

import "time"

type WorkPoint struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
	RadiusM   int
	Active    bool
	SiteID    *string
	CreatedAt time.Time
}

type AssignmentState string

const (
	AssignmentActive AssignmentState = "ACTIVE"
	AssignmentClosed AssignmentState = "CLOSED"
	AssignmentVoid   AssignmentState = "VOID"
)

var AssignmentStateValues = []string{
	string(AssignmentActive),
	string(AssignmentClosed),
	string(AssignmentVoid),
}

// Assignment ties an employee to a work point for a validity window.
// At most one ACTIVE assignment should be effective at any instant.
type Assignment struct {
	ID           string
	WorkPointID  string
	EmployeeID   string
	ValidFrom    time.Time
	ValidUntil   time.Time
	SupervisorID *string
	State        AssignmentState
	CreatedAt    time.Time
}

// ActiveAssignment is the read model the geofence validator consumes:
// the assignment effective now joined with its work point.
type ActiveAssignment struct {
	AssignmentID string
	WorkPointID  string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusM      int
	ValidFrom    time.Time
	ValidUntil   time.Time
}
