package attendance

import (
	"strings"
	"time"
)

// EventKind is one step of the daily shift sequence.
type EventKind string

const (
	EventShiftIn  EventKind = "JORNADA_IN"
	EventBreakOut EventKind = "REFRIGERIO_OUT"
	EventBreakIn  EventKind = "REFRIGERIO_IN"
	EventShiftOut EventKind = "JORNADA_OUT"
)

var EventKindValues = []string{
	string(EventShiftIn),
	string(EventBreakOut),
	string(EventBreakIn),
	string(EventShiftOut),
}

// Direction is the declared (or derived) marking direction.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// DirectionFor derives the stored direction column from an event kind.
func DirectionFor(event EventKind) Direction {
	if strings.HasSuffix(string(event), "_IN") {
		return DirectionIn
	}
	return DirectionOut
}

// CaptureMethod identifies how the marking reached the system.
type CaptureMethod string

const (
	MethodBarcodeScanner   CaptureMethod = "scanner_barras"
	MethodFixedQR          CaptureMethod = "qr_fijo"
	MethodDynamicQR        CaptureMethod = "qr_dinamico"
	MethodManualSupervisor CaptureMethod = "manual_supervisor"
)

var CaptureMethodValues = []string{
	string(MethodBarcodeScanner),
	string(MethodFixedQR),
	string(MethodDynamicQR),
	string(MethodManualSupervisor),
}

// ValidationState of a record. Records are append-only; only this
// column moves, through the reviewing workflow.
type ValidationState string

const (
	StatePending  ValidationState = "pendiente"
	StateApproved ValidationState = "aprobado"
	StateRejected ValidationState = "rechazado"
)

var ValidationStateValues = []string{
	string(StatePending),
	string(StateApproved),
	string(StateRejected),
}

// Record is one attendance fact. RecordedAt is an instant normalized to
// the fixed civil timezone.
type Record struct {
	ID              string
	EmployeeID      string
	RecordedAt      time.Time
	Direction       Direction
	Event           EventKind
	Method          CaptureMethod
	Latitude        *float64
	Longitude       *float64
	EvidenceURL     *string
	DeviceID        *string
	Note            *string
	WorkPointID     *string
	GeoMode         string
	DistanceM       *float64
	ValidationState ValidationState
	LateMinutes     *int
	CreatedAt       time.Time

	// Joined for listings
	EmployeeName   *string
	DocumentNumber *string
}
