package http

import (
	"github.com/nats-io/nats.go"
	"go.temporal.io/sdk/client"

	"github.com/stagewise/venuescout/internal/adapters/postgres"
	"github.com/stagewise/venuescout/internal/adapters/valkey"
	"github.com/stagewise/venuescout/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Venues    *usecases.VenueService
	Artists   *usecases.ArtistService
	Tours     *usecases.TourService
	Discovery *usecases.DiscoveryService
	Holds     *usecases.HoldService
	NATS      *nats.Conn
	Temporal  client.Client
	DB        *postgres.DB
	Cache     *valkey.Cache
}
