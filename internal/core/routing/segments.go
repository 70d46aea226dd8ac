package routing

import (
	"github.com/stagewise/venuescout/internal/core/domain"
)

// Legs produces the consecutive-pair legs of an artist's route.
//
// The input must already be sorted ascending by date; Rank sorts before
// segmenting, direct callers own that precondition. Pairs with a day gap
// below one are dropped: a same-day pair cannot host an inserted show.
// Fewer than two stops yield no legs.
func Legs(stops []domain.TourStop) []domain.Leg {
	if len(stops) < 2 {
		return nil
	}

	legs := make([]domain.Leg, 0, len(stops)-1)
	for i := 0; i < len(stops)-1; i++ {
		days := DaysBetween(stops[i].Date, stops[i+1].Date)
		if days < 1 {
			continue
		}
		legs = append(legs, domain.Leg{
			From:        stops[i],
			To:          stops[i+1],
			DaysBetween: days,
		})
	}
	return legs
}
