package routing

import (
	"math"

	"github.com/stagewise/venuescout/internal/core/domain"
)

// EvaluateLeg computes the geometric cost of inserting a venue between
// the two endpoints of a leg.
//
// ExtraDistance may be negative or zero when the venue lies essentially
// on the great-circle path; it is never clamped, since negative overhead
// marks an excellent fit. DistanceToVenue is the nearest-endpoint proxy
// used for radius filtering.
func EvaluateLeg(leg domain.Leg, venue domain.GeoPoint) domain.RouteFit {
	direct := Distance(leg.From.Location, leg.To.Location)
	fromStart := Distance(leg.From.Location, venue)
	toEnd := Distance(venue, leg.To.Location)
	detour := fromStart + toEnd

	origin := leg.From
	dest := leg.To
	return domain.RouteFit{
		Origin:          &origin,
		Destination:     &dest,
		DirectDistance:  direct,
		DistanceToVenue: math.Min(fromStart, toEnd),
		DetourDistance:  detour,
		ExtraDistance:   detour - direct,
		DaysAvailable:   leg.DaysBetween,
	}
}

// EvaluateSingle evaluates a venue against an artist with exactly one
// known upcoming show. With no second stop to anchor a one-way detour,
// the detour is the round trip and exactly one day of availability is
// assumed.
func EvaluateSingle(stop domain.TourStop, venue domain.GeoPoint) domain.RouteFit {
	dist := Distance(stop.Location, venue)

	origin := stop
	return domain.RouteFit{
		Origin:          &origin,
		DistanceToVenue: dist,
		DetourDistance:  dist * 2,
		ExtraDistance:   dist * 2,
		DaysAvailable:   1,
	}
}
