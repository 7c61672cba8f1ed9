package workpoint

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/andeanwork/attendance-backend-go/internal/domain/workpoint"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pointLat = -12.046374
	pointLng = -77.042793
)

// meters of great-circle distance per degree of latitude on the sphere
// the haversine uses.
const metersPerDegreeLat = math.Pi * 6371000 / 180

type fakeAssignmentRepo struct {
	active *workpoint.ActiveAssignment
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, a workpoint.Assignment) (workpoint.Assignment, error) {
	return a, nil
}

func (f *fakeAssignmentRepo) HasOverlap(ctx context.Context, employeeID string, from, until time.Time) (bool, error) {
	return false, nil
}

func (f *fakeAssignmentRepo) GetActiveAt(ctx context.Context, employeeID string, at time.Time) (*workpoint.ActiveAssignment, error) {
	return f.active, nil
}

func (f *fakeAssignmentRepo) ListActive(ctx context.Context, employeeID string) ([]workpoint.ActiveAssignment, error) {
	if f.active == nil {
		return nil, nil
	}
	return []workpoint.ActiveAssignment{*f.active}, nil
}

func (f *fakeAssignmentRepo) SetState(ctx context.Context, id string, state workpoint.AssignmentState) error {
	return nil
}

func (f *fakeAssignmentRepo) Delete(ctx context.Context, id string) error { return nil }

func newGeoService(t *testing.T, active *workpoint.ActiveAssignment) workpoint.WorkPointService {
	t.Helper()
	cal, err := calendar.New("America/Lima")
	require.NoError(t, err)
	return NewWorkPointService(nil, &fakeAssignmentRepo{active: active}, cal)
}

func assignedPoint(radius int) *workpoint.ActiveAssignment {
	return &workpoint.ActiveAssignment{
		AssignmentID: "as-1",
		WorkPointID:  "wp-1",
		Name:         "Sede Central",
		Latitude:     pointLat,
		Longitude:    pointLng,
		RadiusM:      radius,
	}
}

func f64(v float64) *float64 { return &v }

func TestValidateGeo_NoCoordinates(t *testing.T) {
	svc := newGeoService(t, assignedPoint(120))

	res, err := svc.ValidateGeo(context.Background(), "emp-1", nil, nil)
	require.NoError(t, err)

	assert.False(t, res.OK)
	assert.Equal(t, workpoint.GeoModeNoGPS, res.Mode)
	assert.Nil(t, res.DistanceM)
	assert.Nil(t, res.WorkPointID)
}

func TestValidateGeo_NoActiveAssignment(t *testing.T) {
	svc := newGeoService(t, nil)

	res, err := svc.ValidateGeo(context.Background(), "emp-1", f64(pointLat), f64(pointLng))
	require.NoError(t, err)

	assert.False(t, res.OK)
	assert.Equal(t, workpoint.GeoModeNoGPS, res.Mode)
}

func TestValidateGeo_ExactlyAtPoint(t *testing.T) {
	svc := newGeoService(t, assignedPoint(120))

	res, err := svc.ValidateGeo(context.Background(), "emp-1", f64(pointLat), f64(pointLng))
	require.NoError(t, err)

	assert.True(t, res.OK)
	assert.Equal(t, workpoint.GeoModePoint, res.Mode)
	require.NotNil(t, res.DistanceM)
	assert.Equal(t, 0.0, *res.DistanceM)
	require.NotNil(t, res.WorkPointID)
	assert.Equal(t, "wp-1", *res.WorkPointID)
	require.NotNil(t, res.RadiusM)
	assert.Equal(t, 120, *res.RadiusM)
}

func TestValidateGeo_AtRadiusBoundaryInclusive(t *testing.T) {
	svc := newGeoService(t, assignedPoint(120))

	lat := pointLat + 120/metersPerDegreeLat
	res, err := svc.ValidateGeo(context.Background(), "emp-1", f64(lat), f64(pointLng))
	require.NoError(t, err)

	assert.True(t, res.OK, "distance equal to the radius must pass")
	require.NotNil(t, res.DistanceM)
	assert.Equal(t, 120.0, *res.DistanceM)
}

func TestValidateGeo_OneMeterBeyondRadius(t *testing.T) {
	svc := newGeoService(t, assignedPoint(120))

	lat := pointLat + 121/metersPerDegreeLat
	res, err := svc.ValidateGeo(context.Background(), "emp-1", f64(lat), f64(pointLng))
	require.NoError(t, err)

	assert.False(t, res.OK)
	require.NotNil(t, res.DistanceM)
	assert.Equal(t, 121.0, *res.DistanceM)
}
