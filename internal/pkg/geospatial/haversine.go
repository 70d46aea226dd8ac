package geospatial

import "math"

const (
	earthRadiusMiles = 3958.8
	metersPerMile    = 1609.344
)

// DistanceMiles calculates the great-circle distance in statute miles
// between two points using the Haversine formula. Identical points
// return 0 without evaluating the formula.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// MilesToMeters converts statute miles to meters.
func MilesToMeters(miles float64) float64 {
	return miles * metersPerMile
}

// BoundingBox returns a bounding box around a point with the given radius in miles.
func BoundingBox(lat, lon, radiusMiles float64) (minLat, minLon, maxLat, maxLon float64) {
	radiusMeters := MilesToMeters(radiusMiles)
	latDelta := radiusMeters / 111320.0
	lonDelta := radiusMeters / (111320.0 * math.Cos(toRad(lat)))

	return lat - latDelta, lon - lonDelta, lat + latDelta, lon + lonDelta
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
