package ports

import (
	"context"

	"github.com/stagewise/venuescout/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishStopBatch(ctx context.Context, artistSlug string, stops []domain.TourStop) error
	PublishDiscoveryRefresh(ctx context.Context, artistSlug string) error
	PublishBroadcast(ctx context.Context, data []byte) error
}

// EventSubscriber subscribes to domain events from a message broker.
type EventSubscriber interface {
	SubscribeStopBatches(ctx context.Context, handler func(ctx context.Context, artistSlug string, stops []domain.TourStop) error) error
	SubscribeDiscoveryRefreshes(ctx context.Context, handler func(ctx context.Context, artistSlug string) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// EventSource fetches an artist's upcoming events from the external
// feed API. Implementations own coordinate coercion: records with
// missing or unparseable coordinates are dropped and counted, never
// passed through.
type EventSource interface {
	FetchArtistEvents(ctx context.Context, artistSlug string) (stops []domain.TourStop, skipped int, err error)
}

// NotificationService delivers messages to booking contacts.
type NotificationService interface {
	Notify(ctx context.Context, recipient, subject, body string) error
}
