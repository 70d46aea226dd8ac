package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/stagewise/venuescout/internal/core/domain"
	"github.com/stagewise/venuescout/internal/core/ports"
	"github.com/stagewise/venuescout/internal/core/routing"
)

// DiscoveryService finds touring artists whose routes pass close enough
// to a venue to host an inserted show. The routing math itself lives in
// the routing package; this service resolves the venue, loads candidate
// schedules, and fans the per-artist evaluation out over a bounded
// worker pool. Each artist's evaluation is independent, so concurrent
// invocation is safe.
type DiscoveryService struct {
	venues     ports.VenueRepository
	stops      ports.TourStopRepository
	cache      ports.CacheService
	workers    int
	maxArtists int
}

// NewDiscoveryService creates a new DiscoveryService.
func NewDiscoveryService(venues ports.VenueRepository, stops ports.TourStopRepository, cache ports.CacheService, workers, maxArtists int) *DiscoveryService {
	if workers <= 0 {
		workers = 8
	}
	if maxArtists <= 0 || maxArtists > 1000 {
		maxArtists = 500
	}
	return &DiscoveryService{
		venues:     venues,
		stops:      stops,
		cache:      cache,
		workers:    workers,
		maxArtists: maxArtists,
	}
}

// DiscoverForVenue ranks candidate artists for a venue within a date
// window. Argument problems are fatal and reported before any artist is
// evaluated; artists with unusable data are silently skipped.
func (s *DiscoveryService) DiscoverForVenue(ctx context.Context, venueID string, radiusMiles float64, window domain.DateWindow) ([]domain.DiscoveryResult, error) {
	ctx, span := otel.Tracer("venuescout/discovery").Start(ctx, "DiscoverForVenue")
	defer span.End()
	span.SetAttributes(attribute.String("venue_id", venueID), attribute.Float64("radius_miles", radiusMiles))

	venue, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("resolve venue %s: %w", venueID, err)
	}
	if !venue.Location.Valid() {
		return nil, fmt.Errorf("%w: venue %s at (%.4f, %.4f)",
			routing.ErrInvalidCoordinate, venueID, venue.Location.Lat, venue.Location.Lon)
	}
	if window.End.Before(window.Start) {
		return nil, fmt.Errorf("%w: window %s..%s", routing.ErrInvalidDateRange,
			window.Start.Format(time.DateOnly), window.End.Format(time.DateOnly))
	}
	if radiusMiles < 0 {
		return nil, fmt.Errorf("%w: negative radius %.1f", routing.ErrInvalidConfiguration, radiusMiles)
	}

	cacheKey := fmt.Sprintf("discovery:%s:%.0f:%s:%s",
		venueID, radiusMiles, window.Start.Format(time.DateOnly), window.End.Format(time.DateOnly))
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var results []domain.DiscoveryResult
			if err := json.Unmarshal(data, &results); err == nil {
				return results, nil
			}
		}
	}

	schedules, err := s.stops.ListSchedules(ctx, window, s.maxArtists)
	if err != nil {
		return nil, fmt.Errorf("load schedules: %w", err)
	}

	results := s.evaluateAll(venue.Location, schedules, window, routing.EffectiveRadius(radiusMiles))
	routing.SortResults(results)

	span.SetAttributes(attribute.Int("candidates", len(schedules)), attribute.Int("results", len(results)))

	// Discovery answers age quickly as feeds refresh; 5 minutes is plenty.
	if s.cache != nil {
		if data, err := json.Marshal(results); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return results, nil
}

// evaluateAll runs the per-artist best-fit search on a bounded pool.
func (s *DiscoveryService) evaluateAll(venue domain.GeoPoint, schedules []domain.ArtistSchedule, window domain.DateWindow, effectiveRadius float64) []domain.DiscoveryResult {
	jobs := make(chan domain.ArtistSchedule)
	out := make(chan domain.DiscoveryResult, len(schedules))

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sched := range jobs {
				fit, ok := routing.BestFit(venue, sched.Stops, window, effectiveRadius)
				if !ok {
					continue
				}
				out <- domain.DiscoveryResult{Artist: sched.Artist, BestFit: fit}
			}
		}()
	}

	for _, sched := range schedules {
		jobs <- sched
	}
	close(jobs)
	wg.Wait()
	close(out)

	results := make([]domain.DiscoveryResult, 0, len(schedules))
	for r := range out {
		results = append(results, r)
	}
	return results
}
