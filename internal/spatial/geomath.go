package spatial

import (
	"math"

	"github.com/golang/geo/s2"

	"github.com/poinet/profiler-backend-go/internal/models"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters

	// Rough meters-per-degree of latitude, used for bounding-box padding
	metersPerDegreeLat = 111000.0

	// Floor for the longitude cosine scale so padding near the poles
	// never divides by zero
	minCosLat = 1e-6
)

// DistanceMeters calculates the great-circle distance between two points
// in meters using the Haversine formula. NaN coordinates are treated as
// infinitely far away rather than propagating NaN.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	if math.IsNaN(lat1) || math.IsNaN(lon1) || math.IsNaN(lat2) || math.IsNaN(lon2) {
		return math.Inf(1)
	}
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// BoundsWithPadding computes the trail's bounding box expanded by
// padMeters on every side. Longitude padding is scaled by the cosine of
// the box's center latitude. Returns nil for an empty trail.
func BoundsWithPadding(trail []models.TrailPing, padMeters float64) *models.Bounds {
	if len(trail) == 0 {
		return nil
	}

	minLat, maxLat := math.Inf(1), math.Inf(-1)
	minLon, maxLon := math.Inf(1), math.Inf(-1)
	for _, p := range trail {
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
	}
	if math.IsInf(minLat, 1) {
		return nil
	}

	dLat := padMeters / metersPerDegreeLat
	centerLat := (minLat + maxLat) / 2
	cos := math.Cos(centerLat * math.Pi / 180)
	dLon := (padMeters / metersPerDegreeLat) / math.Max(cos, minCosLat)

	return &models.Bounds{
		MinLat: minLat - dLat,
		MaxLat: maxLat + dLat,
		MinLon: minLon - dLon,
		MaxLon: maxLon + dLon,
	}
}
