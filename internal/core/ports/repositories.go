package ports

import (
	"context"

	"github.com/stagewise/venuescout/internal/core/domain"
)

// VenueRepository persists venues.
type VenueRepository interface {
	Upsert(ctx context.Context, venue *domain.Venue) error
	GetByID(ctx context.Context, id string) (*domain.Venue, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Venue, error)
	List(ctx context.Context) ([]domain.Venue, error)
	FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.Venue, error)
}

// ArtistRepository persists tracked artists.
type ArtistRepository interface {
	Upsert(ctx context.Context, artist *domain.Artist) error
	GetByID(ctx context.Context, id string) (*domain.Artist, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Artist, error)
	ListTracked(ctx context.Context) ([]domain.Artist, error)
}

// TourStopRepository persists artists' committed tour stops.
type TourStopRepository interface {
	// UpsertBatch inserts a polled batch of stops. Conflicting dates keep
	// the earlier-inserted row.
	UpsertBatch(ctx context.Context, artistID string, stops []domain.TourStop) error
	ListByArtist(ctx context.Context, artistID string, window domain.DateWindow) ([]domain.TourStop, error)
	// ListSchedules returns every tracked artist's in-window stops, sorted
	// by date, keyed by artist slug.
	ListSchedules(ctx context.Context, window domain.DateWindow, limit int) ([]domain.ArtistSchedule, error)
	DeleteByArtist(ctx context.Context, artistID string) error
}

// TourRepository persists named tours with declared start/end dates.
type TourRepository interface {
	Upsert(ctx context.Context, tour *domain.Tour) error
	GetByID(ctx context.Context, id string) (*domain.Tour, error)
	ListByArtist(ctx context.Context, artistID string) ([]domain.Tour, error)
}

// HoldRepository persists booking holds.
type HoldRepository interface {
	Create(ctx context.Context, hold *domain.BookingHold) error
	GetByID(ctx context.Context, id string) (*domain.BookingHold, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListByVenue(ctx context.Context, venueID string) ([]domain.BookingHold, error)
}
