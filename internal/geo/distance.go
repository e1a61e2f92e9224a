// Package geo computes great-circle distances between coordinates.
package geo

import (
	"math"

	"github.com/UnknownOlympus/courier/internal/models"
	"github.com/umahmood/haversine"
)

// EarthRadiusKm is the sphere radius the haversine library measures on.
// Every distance in this module is expressed against it.
const EarthRadiusKm = 6371.0

// Distance returns the haversine great-circle distance between a and b in kilometers.
// It is total over valid coordinates: identical points yield exactly 0 and the
// result is symmetric in its arguments.
func Distance(a, b models.Coordinates) float64 {
	if a == b {
		return 0
	}

	_, km := haversine.Distance(
		haversine.Coord{Lat: a.Latitude, Lon: a.Longitude},
		haversine.Coord{Lat: b.Latitude, Lon: b.Longitude},
	)

	// Rounding on near-antipodal points can push the haversine term past 1.
	if math.IsNaN(km) {
		return math.Pi * EarthRadiusKm
	}

	return km
}

// Valid reports whether c is finite and within latitude [-90, 90] and longitude [-180, 180].
func Valid(c models.Coordinates) bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) ||
		math.IsInf(c.Latitude, 0) || math.IsInf(c.Longitude, 0) {
		return false
	}

	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}
