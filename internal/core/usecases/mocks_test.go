package usecases_test

import (
	"context"
	"errors"
	"sync"

	"github.com/stagewise/venuescout/internal/core/domain"
)

var errCacheMiss = errors.New("cache miss")

// Hand-rolled mocks shared by the usecase tests. Only the methods a
// test cares about get a function field; the rest return zero values.

type mockVenueRepo struct {
	getByIDFn    func(ctx context.Context, id string) (*domain.Venue, error)
	getBySlugFn  func(ctx context.Context, slug string) (*domain.Venue, error)
	listFn       func(ctx context.Context) ([]domain.Venue, error)
	findNearbyFn func(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.Venue, error)
}

func (m *mockVenueRepo) Upsert(ctx context.Context, venue *domain.Venue) error { return nil }

func (m *mockVenueRepo) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockVenueRepo) GetBySlug(ctx context.Context, slug string) (*domain.Venue, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, nil
}

func (m *mockVenueRepo) List(ctx context.Context) ([]domain.Venue, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockVenueRepo) FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.Venue, error) {
	if m.findNearbyFn != nil {
		return m.findNearbyFn(ctx, lat, lon, radiusMeters, limit)
	}
	return nil, nil
}

type mockArtistRepo struct {
	getBySlugFn   func(ctx context.Context, slug string) (*domain.Artist, error)
	listTrackedFn func(ctx context.Context) ([]domain.Artist, error)
}

func (m *mockArtistRepo) Upsert(ctx context.Context, artist *domain.Artist) error { return nil }

func (m *mockArtistRepo) GetByID(ctx context.Context, id string) (*domain.Artist, error) {
	return nil, nil
}

func (m *mockArtistRepo) GetBySlug(ctx context.Context, slug string) (*domain.Artist, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, nil
}

func (m *mockArtistRepo) ListTracked(ctx context.Context) ([]domain.Artist, error) {
	if m.listTrackedFn != nil {
		return m.listTrackedFn(ctx)
	}
	return nil, nil
}

type mockTourStopRepo struct {
	upsertBatchFn   func(ctx context.Context, artistID string, stops []domain.TourStop) error
	listByArtistFn  func(ctx context.Context, artistID string, window domain.DateWindow) ([]domain.TourStop, error)
	listSchedulesFn func(ctx context.Context, window domain.DateWindow, limit int) ([]domain.ArtistSchedule, error)
}

func (m *mockTourStopRepo) UpsertBatch(ctx context.Context, artistID string, stops []domain.TourStop) error {
	if m.upsertBatchFn != nil {
		return m.upsertBatchFn(ctx, artistID, stops)
	}
	return nil
}

func (m *mockTourStopRepo) ListByArtist(ctx context.Context, artistID string, window domain.DateWindow) ([]domain.TourStop, error) {
	if m.listByArtistFn != nil {
		return m.listByArtistFn(ctx, artistID, window)
	}
	return nil, nil
}

func (m *mockTourStopRepo) ListSchedules(ctx context.Context, window domain.DateWindow, limit int) ([]domain.ArtistSchedule, error) {
	if m.listSchedulesFn != nil {
		return m.listSchedulesFn(ctx, window, limit)
	}
	return nil, nil
}

func (m *mockTourStopRepo) DeleteByArtist(ctx context.Context, artistID string) error { return nil }

type mockTourRepo struct {
	getByIDFn func(ctx context.Context, id string) (*domain.Tour, error)
}

func (m *mockTourRepo) Upsert(ctx context.Context, tour *domain.Tour) error { return nil }

func (m *mockTourRepo) GetByID(ctx context.Context, id string) (*domain.Tour, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockTourRepo) ListByArtist(ctx context.Context, artistID string) ([]domain.Tour, error) {
	return nil, nil
}

type mockHoldRepo struct {
	mu       sync.Mutex
	createFn func(ctx context.Context, hold *domain.BookingHold) error
	getFn    func(ctx context.Context, id string) (*domain.BookingHold, error)
	listFn   func(ctx context.Context, venueID string) ([]domain.BookingHold, error)
	statuses map[string]string
}

func (m *mockHoldRepo) Create(ctx context.Context, hold *domain.BookingHold) error {
	if m.createFn != nil {
		return m.createFn(ctx, hold)
	}
	return nil
}

func (m *mockHoldRepo) GetByID(ctx context.Context, id string) (*domain.BookingHold, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockHoldRepo) UpdateStatus(ctx context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.statuses == nil {
		m.statuses = make(map[string]string)
	}
	m.statuses[id] = status
	return nil
}

func (m *mockHoldRepo) ListByVenue(ctx context.Context, venueID string) ([]domain.BookingHold, error) {
	if m.listFn != nil {
		return m.listFn(ctx, venueID)
	}
	return nil, nil
}

// mockCache is an in-memory CacheService good enough for hit/miss tests.
type mockCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	gets   int
	sets   int
	misses int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	m.misses++
	return nil, errCacheMiss
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type mockPublisher struct {
	mu         sync.Mutex
	stopSlugs  []string
	refreshed  []string
	broadcasts int
}

func (m *mockPublisher) PublishStopBatch(ctx context.Context, artistSlug string, stops []domain.TourStop) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopSlugs = append(m.stopSlugs, artistSlug)
	return nil
}

func (m *mockPublisher) PublishDiscoveryRefresh(ctx context.Context, artistSlug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshed = append(m.refreshed, artistSlug)
	return nil
}

func (m *mockPublisher) PublishBroadcast(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcasts++
	return nil
}

type mockNotifier struct {
	mu       sync.Mutex
	notified []string
	err      error
}

func (m *mockNotifier) Notify(ctx context.Context, recipient, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.notified = append(m.notified, recipient)
	return nil
}
