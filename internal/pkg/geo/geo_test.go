package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Lima city center, used across the geofence tests.
const (
	limaLat = -12.046374
	limaLng = -77.042793
)

func TestHaversineDistance_SamePoint(t *testing.T) {
	assert.Equal(t, 0.0, HaversineDistance(limaLat, limaLng, limaLat, limaLng))
}

func TestHaversineDistance_OneDegreeLatitude(t *testing.T) {
	// One degree of latitude on a 6,371,000 m sphere is pi*R/180.
	want := math.Pi * 6371000 / 180

	got := HaversineDistance(limaLat, limaLng, limaLat+1, limaLng)
	assert.InDelta(t, want, got, 0.5)
}

func TestHaversineDistance_Symmetry(t *testing.T) {
	there := HaversineDistance(limaLat, limaLng, -12.1, -77.1)
	back := HaversineDistance(-12.1, -77.1, limaLat, limaLng)
	assert.InDelta(t, there, back, 1e-9)
}
