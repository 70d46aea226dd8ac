package routing

import (
	"fmt"
	"time"

	"github.com/stagewise/venuescout/internal/core/domain"
)

// FindGaps scans one tour's date-sorted stops for open intervals of at
// least minGapDays where no show is scheduled, including the stretches
// before the first and after the last stop. Gaps come back in
// chronological order.
func FindGaps(stops []domain.TourStop, tourStart, tourEnd time.Time, minGapDays int) ([]domain.TourGap, error) {
	if tourEnd.Before(tourStart) {
		return nil, fmt.Errorf("%w: tour ends %s before it starts %s",
			ErrInvalidDateRange, tourEnd.Format(time.DateOnly), tourStart.Format(time.DateOnly))
	}
	if minGapDays < 1 {
		return nil, fmt.Errorf("%w: min gap days must be >= 1, got %d", ErrInvalidConfiguration, minGapDays)
	}

	start, end := day(tourStart), day(tourEnd)

	var gaps []domain.TourGap
	emit := func(from, to time.Time) {
		if to.Before(from) {
			return
		}
		days := DaysBetween(from, to) + 1
		if days < minGapDays {
			return
		}
		gaps = append(gaps, domain.TourGap{Start: from, End: to, DurationDays: days})
	}

	if len(stops) == 0 {
		emit(start, end)
		return gaps, nil
	}

	emit(start, day(stops[0].Date).AddDate(0, 0, -1))
	for i := 0; i < len(stops)-1; i++ {
		emit(day(stops[i].Date).AddDate(0, 0, 1), day(stops[i+1].Date).AddDate(0, 0, -1))
	}
	emit(day(stops[len(stops)-1].Date).AddDate(0, 0, 1), end)

	return gaps, nil
}
