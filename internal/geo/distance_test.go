// internal/geo/distance_test.go
package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_SamePointIsZero(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{50.85, 4.35},
		{-33.87, 151.21},
		{89.9, -179.9},
	}

	for _, p := range points {
		assert.InDelta(t, 0, DistanceKm(p[0], p[1], p[0], p[1]), 1e-9)
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"brussels to antwerp", 50.85, 4.35, 51.22, 4.40},
		{"across equator", -10.0, 20.0, 10.0, -20.0},
		{"across date line", 60.0, 179.5, 60.0, -179.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d1 := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			d2 := DistanceKm(tt.lat2, tt.lon2, tt.lat1, tt.lon1)
			assert.InDelta(t, d1, d2, 1e-9)
		})
	}
}

func TestDistanceKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKm                 float64
		tolerance              float64
	}{
		// Filter fixture from the radius scenarios: ~6 km north-east of the
		// Brussels match location.
		{"brussels radius fixture", 50.85, 4.35, 50.90, 4.40, 6.6, 0.5},
		{"brussels to paris", 50.8503, 4.3517, 48.8566, 2.3522, 264, 3},
		{"one degree of latitude", 0, 0, 1, 0, 111.2, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.wantKm, got, tt.tolerance)
		})
	}
}
