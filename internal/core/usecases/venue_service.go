package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stagewise/venuescout/internal/core/domain"
	"github.com/stagewise/venuescout/internal/core/ports"
	"github.com/stagewise/venuescout/internal/pkg/geospatial"
)

// VenueService handles venue-related business logic.
type VenueService struct {
	venues ports.VenueRepository
	cache  ports.CacheService
}

// NewVenueService creates a new VenueService.
func NewVenueService(venues ports.VenueRepository, cache ports.CacheService) *VenueService {
	return &VenueService{venues: venues, cache: cache}
}

// GetByID returns a single venue.
func (s *VenueService) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	cacheKey := "venues:id:" + id
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var venue domain.Venue
			if err := json.Unmarshal(data, &venue); err == nil {
				return &venue, nil
			}
		}
	}

	venue, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(venue); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 600)
		}
	}

	return venue, nil
}

// GetBySlug returns a venue by slug.
func (s *VenueService) GetBySlug(ctx context.Context, slug string) (*domain.Venue, error) {
	return s.venues.GetBySlug(ctx, slug)
}

// List returns all venues.
func (s *VenueService) List(ctx context.Context) ([]domain.Venue, error) {
	return s.venues.List(ctx)
}

// FindNearby returns venues within radiusMiles of the given point.
func (s *VenueService) FindNearby(ctx context.Context, lat, lon, radiusMiles float64, limit int) ([]domain.Venue, error) {
	if radiusMiles <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %.1f", radiusMiles)
	}
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	return s.venues.FindNearby(ctx, lat, lon, geospatial.MilesToMeters(radiusMiles), limit)
}
