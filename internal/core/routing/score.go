package routing

import (
	"math"

	"github.com/stagewise/venuescout/internal/core/domain"
)

// Scoring constants. The 200-mile distance cap marks the outer edge of
// "worth considering" and is independent of any caller-supplied radius.
const (
	distanceCapMiles = 200.0
	detourCapMiles   = 200.0

	weightDistance = 1.5
	weightDetour   = 1.2
	weightDays     = 0.8
)

// Score folds a route fit and its day gap into a single composite score.
// Lower is strictly better; the range is 0–300. Proximity to the route
// dominates, detour overhead matters almost as much, and date fit least:
// a close, low-detour artist can often shift dates, a far one cannot be
// made closer.
func Score(fit domain.RouteFit) float64 {
	return distancePenalty(fit.DistanceToVenue)*weightDistance +
		detourPenalty(fit.DistanceToVenue, fit.ExtraDistance)*weightDetour +
		daysPenalty(fit.DaysAvailable)*weightDays
}

// distancePenalty maps distance-to-route onto 0–100, saturating at the
// 200-mile cap.
func distancePenalty(distanceToVenue float64) float64 {
	if distanceToVenue > distanceCapMiles {
		return 100
	}
	return math.Round(distanceToVenue / distanceCapMiles * 100)
}

// detourPenalty maps the extra driving attributable to the insertion
// onto 0–100, relative to what a detour of this depth could reasonably
// cost. A venue sitting exactly on the route tolerates no overhead at
// all, so a zero budget saturates on any positive overhead.
func detourPenalty(distanceToVenue, extraDistance float64) float64 {
	maxAcceptable := math.Min(distanceToVenue*2, detourCapMiles)
	if maxAcceptable == 0 {
		if extraDistance > 0 {
			return 100
		}
		return 0
	}
	if extraDistance > maxAcceptable {
		return 100
	}
	return math.Round(extraDistance / maxAcceptable * 100)
}

// daysPenalty scores the leg's day gap. Two days is ideal: a travel day
// in, the show, a travel day out. One- and three-day gaps are close
// behind; wider gaps mean the artist is probably routing elsewhere.
func daysPenalty(days int) float64 {
	switch {
	case days < 1:
		// Legs below a one-day gap are never produced (see Legs).
		return 100
	case days == 2:
		return 0
	case days == 1 || days == 3:
		return 10
	case days == 4:
		return 30
	case days == 5:
		return 50
	default:
		return 50 + float64(days-5)*10
	}
}
