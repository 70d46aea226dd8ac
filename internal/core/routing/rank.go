package routing

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/stagewise/venuescout/internal/core/domain"
)

// minSearchRadiusMiles is the floor applied to every search: a slightly
// too-far artist with an excellent detour fit is still worth surfacing.
const minSearchRadiusMiles = 200.0

// EffectiveRadius widens a caller-requested radius to the search floor.
func EffectiveRadius(userRadius float64) float64 {
	return math.Max(userRadius, minSearchRadiusMiles)
}

// Rank evaluates every candidate artist's route against the venue and
// returns at most one DiscoveryResult per artist, sorted ascending by
// score with days-available descending as the tie-break.
//
// Argument problems (venue coordinates, window, radius) are fatal and
// reported before any per-artist work. Artists with no usable in-window
// stops simply produce no result.
func Rank(venue domain.GeoPoint, schedules []domain.ArtistSchedule, window domain.DateWindow, userRadius float64) ([]domain.DiscoveryResult, error) {
	if !venue.Valid() {
		return nil, fmt.Errorf("%w: venue at (%.4f, %.4f)", ErrInvalidCoordinate, venue.Lat, venue.Lon)
	}
	if window.End.Before(window.Start) {
		return nil, fmt.Errorf("%w: window ends %s before it starts %s",
			ErrInvalidDateRange, window.End.Format(time.DateOnly), window.Start.Format(time.DateOnly))
	}
	if userRadius < 0 {
		return nil, fmt.Errorf("%w: negative search radius %.1f", ErrInvalidConfiguration, userRadius)
	}

	effective := EffectiveRadius(userRadius)

	results := make([]domain.DiscoveryResult, 0, len(schedules))
	for _, sched := range schedules {
		fit, ok := BestFit(venue, sched.Stops, window, effective)
		if !ok {
			continue
		}
		results = append(results, domain.DiscoveryResult{Artist: sched.Artist, BestFit: fit})
	}

	SortResults(results)
	return results, nil
}

// BestFit evaluates one artist's stops against the venue and returns the
// single lowest-scoring fit inside effectiveRadius, or ok=false when the
// artist offers no opportunity. Stops outside the window, stops with
// invalid coordinates, and later duplicates of an already-seen date are
// dropped without error.
func BestFit(venue domain.GeoPoint, stops []domain.TourStop, window domain.DateWindow, effectiveRadius float64) (domain.RouteFit, bool) {
	usable := usableStops(stops, window)
	if len(usable) == 0 {
		return domain.RouteFit{}, false
	}

	sort.SliceStable(usable, func(i, j int) bool {
		return usable[i].Date.Before(usable[j].Date)
	})

	var fits []domain.RouteFit
	if len(usable) == 1 {
		fits = append(fits, EvaluateSingle(usable[0], venue))
	} else {
		for _, leg := range Legs(usable) {
			fits = append(fits, EvaluateLeg(leg, venue))
		}
	}

	var best domain.RouteFit
	found := false
	for _, fit := range fits {
		if fit.DistanceToVenue > effectiveRadius {
			continue
		}
		fit.Score = Score(fit)
		if !found || fit.Score < best.Score {
			best = fit
			found = true
		}
	}
	return best, found
}

// SortResults orders results ascending by score; equal scores are broken
// by days-available descending, then artist ascending. The ordering is
// total, so identical inputs always yield identical output order no
// matter how the results were collected.
func SortResults(results []domain.DiscoveryResult) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i].BestFit, results[j].BestFit
		if a.Score != b.Score {
			return a.Score < b.Score
		}
		if a.DaysAvailable != b.DaysAvailable {
			return a.DaysAvailable > b.DaysAvailable
		}
		return results[i].Artist < results[j].Artist
	})
}

// usableStops filters to in-window stops with valid coordinates,
// normalizes dates to midnight UTC, and resolves duplicate dates in
// favor of the earlier-inserted record.
func usableStops(stops []domain.TourStop, window domain.DateWindow) []domain.TourStop {
	start, end := day(window.Start), day(window.End)
	seen := make(map[time.Time]bool, len(stops))

	var usable []domain.TourStop
	for _, stop := range stops {
		if !stop.Location.Valid() {
			continue
		}
		date := day(stop.Date)
		if date.Before(start) || date.After(end) {
			continue
		}
		if seen[date] {
			continue
		}
		seen[date] = true

		stop.Date = date
		usable = append(usable, stop)
	}
	return usable
}
