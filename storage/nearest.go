package storage

import (
	"math"

	"foodgateway/pkg/models"
)

// NearestAvailable returns the available driver closest to loc, or nil.
// Ties resolve by id so the choice does not depend on input order.
func NearestAvailable(drivers []*models.Driver, loc models.Location) *models.Driver {
	var nearest *models.Driver
	best := math.MaxFloat64
	for _, d := range drivers {
		if !d.Available {
			continue
		}
		dist := DistanceKm(loc, models.Location{Latitude: d.Latitude, Longitude: d.Longitude})
		if nearest == nil || dist < best || (dist == best && d.ID < nearest.ID) {
			nearest, best = d, dist
		}
	}
	return nearest
}

// DistanceKm is the haversine distance between two points.
func DistanceKm(a, b models.Location) float64 {
	const earthRadiusKm = 6371.0
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
