package usecases

import (
	"context"

	"github.com/stagewise/venuescout/internal/core/domain"
	"github.com/stagewise/venuescout/internal/core/ports"
)

// ArtistService handles artist-related business logic.
type ArtistService struct {
	artists ports.ArtistRepository
	stops   ports.TourStopRepository
}

// NewArtistService creates a new ArtistService.
func NewArtistService(artists ports.ArtistRepository, stops ports.TourStopRepository) *ArtistService {
	return &ArtistService{artists: artists, stops: stops}
}

// GetBySlug returns an artist by slug.
func (s *ArtistService) GetBySlug(ctx context.Context, slug string) (*domain.Artist, error) {
	return s.artists.GetBySlug(ctx, slug)
}

// ListTracked returns every artist whose event feed is polled.
func (s *ArtistService) ListTracked(ctx context.Context) ([]domain.Artist, error) {
	return s.artists.ListTracked(ctx)
}

// Stops returns an artist's committed stops inside a date window,
// sorted ascending by date.
func (s *ArtistService) Stops(ctx context.Context, artistID string, window domain.DateWindow) ([]domain.TourStop, error) {
	return s.stops.ListByArtist(ctx, artistID, window)
}
