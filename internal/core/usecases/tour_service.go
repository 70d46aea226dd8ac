package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stagewise/venuescout/internal/core/domain"
	"github.com/stagewise/venuescout/internal/core/ports"
	"github.com/stagewise/venuescout/internal/core/routing"
)

// TourService answers schedule questions about a single tour.
type TourService struct {
	tours ports.TourRepository
	stops ports.TourStopRepository
	cache ports.CacheService
}

// NewTourService creates a new TourService.
func NewTourService(tours ports.TourRepository, stops ports.TourStopRepository, cache ports.CacheService) *TourService {
	return &TourService{tours: tours, stops: stops, cache: cache}
}

// GetByID returns a single tour.
func (s *TourService) GetByID(ctx context.Context, id string) (*domain.Tour, error) {
	return s.tours.GetByID(ctx, id)
}

// ListByArtist returns an artist's tours.
func (s *TourService) ListByArtist(ctx context.Context, artistID string) ([]domain.Tour, error) {
	return s.tours.ListByArtist(ctx, artistID)
}

// FindGaps returns the open date ranges of at least minGapDays inside a
// tour's declared start/end bracket.
func (s *TourService) FindGaps(ctx context.Context, tourID string, minGapDays int) ([]domain.TourGap, error) {
	tour, err := s.tours.GetByID(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("resolve tour %s: %w", tourID, err)
	}

	cacheKey := fmt.Sprintf("gaps:%s:%d", tourID, minGapDays)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var gaps []domain.TourGap
			if err := json.Unmarshal(data, &gaps); err == nil {
				return gaps, nil
			}
		}
	}

	stops, err := s.stops.ListByArtist(ctx, tour.ArtistID, domain.DateWindow{Start: tour.StartDate, End: tour.EndDate})
	if err != nil {
		return nil, fmt.Errorf("load stops for tour %s: %w", tourID, err)
	}

	gaps, err := routing.FindGaps(stops, tour.StartDate, tour.EndDate, minGapDays)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(gaps); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return gaps, nil
}
