package routing

import (
	"time"

	"github.com/stagewise/venuescout/internal/core/domain"
	"github.com/stagewise/venuescout/internal/pkg/geospatial"
)

// Distance returns the great-circle distance between two points in
// statute miles. Great-circle distance is used as a proxy for drive
// distance throughout the routing engine.
func Distance(a, b domain.GeoPoint) float64 {
	return geospatial.DistanceMiles(a.Lat, a.Lon, b.Lat, b.Lon)
}

// DaysBetween returns the whole calendar days from one date to another.
// Negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(day(to).Sub(day(from)) / (24 * time.Hour))
}

// day normalizes a timestamp to midnight UTC. All date arithmetic in
// the engine runs on normalized dates.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
