package usecases

import (
	"context"
	"fmt"
	"sort"

	"github.com/stagewise/venuescout/internal/core/domain"
	"github.com/stagewise/venuescout/internal/core/ports"
)

// IngestService processes polled batches of tour stops.
type IngestService struct {
	artists   ports.ArtistRepository
	stops     ports.TourStopRepository
	cache     ports.CacheService
	publisher ports.EventPublisher
}

// NewIngestService creates a new IngestService.
func NewIngestService(
	artists ports.ArtistRepository,
	stops ports.TourStopRepository,
	cache ports.CacheService,
	publisher ports.EventPublisher,
) *IngestService {
	return &IngestService{artists: artists, stops: stops, cache: cache, publisher: publisher}
}

// ProcessStopBatch persists one artist's polled stops and announces the
// change. Records with out-of-range coordinates are dropped; the count
// of dropped records is returned so the poller can report it.
func (s *IngestService) ProcessStopBatch(ctx context.Context, artistSlug string, stops []domain.TourStop) (int, error) {
	artist, err := s.artists.GetBySlug(ctx, artistSlug)
	if err != nil {
		return 0, fmt.Errorf("resolve artist %s: %w", artistSlug, err)
	}

	usable := make([]domain.TourStop, 0, len(stops))
	for _, stop := range stops {
		if !stop.Location.Valid() {
			continue
		}
		stop.ArtistID = artist.ID
		usable = append(usable, stop)
	}
	skipped := len(stops) - len(usable)

	if len(usable) == 0 {
		return skipped, nil
	}

	sort.SliceStable(usable, func(i, j int) bool {
		return usable[i].Date.Before(usable[j].Date)
	})

	if err := s.stops.UpsertBatch(ctx, artist.ID, usable); err != nil {
		return skipped, fmt.Errorf("upsert stops for %s: %w", artistSlug, err)
	}

	// Broadcast to WebSocket clients and invalidate stale discovery
	// answers. Both are best-effort; the batch is already persisted.
	_ = s.publisher.PublishStopBatch(ctx, artistSlug, usable)
	_ = s.publisher.PublishDiscoveryRefresh(ctx, artistSlug)

	return skipped, nil
}
