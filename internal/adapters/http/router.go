package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/stagewise/venuescout/internal/pkg/metrics"
)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness, no timeout wrapper
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// REST API v1. Discovery gets a longer timeout than the lookups.
	v1 := app.Group("/v1")
	v1.Get("/venues", timeout.NewWithContext(ListVenuesHandler(deps), 15*time.Second))
	v1.Get("/venues/nearby", timeout.NewWithContext(NearbyVenuesHandler(deps), 15*time.Second))
	v1.Get("/venues/:id", timeout.NewWithContext(GetVenueHandler(deps), 15*time.Second))
	v1.Get("/venues/:id/discovery", timeout.NewWithContext(DiscoveryHandler(deps), 30*time.Second))
	// Legacy alias for discovery, kept through the sunset window.
	v1.Get("/venues/:id/matches",
		DeprecationMiddleware([]DeprecatedRoute{{
			Prefix:      "/v1/venues/",
			Suffix:      "/matches",
			SunsetDate:  time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC),
			Alternative: "/v1/venues/{id}/discovery",
		}}),
		timeout.NewWithContext(DiscoveryHandler(deps), 30*time.Second))
	v1.Get("/venues/:id/holds", timeout.NewWithContext(VenueHoldsHandler(deps), 15*time.Second))
	v1.Get("/artists", timeout.NewWithContext(ListArtistsHandler(deps), 15*time.Second))
	v1.Get("/artists/:slug", timeout.NewWithContext(GetArtistHandler(deps), 15*time.Second))
	v1.Get("/artists/:slug/stops", timeout.NewWithContext(ArtistStopsHandler(deps), 15*time.Second))
	v1.Get("/tours/:id", timeout.NewWithContext(GetTourHandler(deps), 15*time.Second))
	v1.Get("/tours/:id/gaps", timeout.NewWithContext(TourGapsHandler(deps), 15*time.Second))
	v1.Post("/holds", timeout.NewWithContext(CreateHoldHandler(deps), 15*time.Second))
	v1.Get("/holds/:id", timeout.NewWithContext(GetHoldHandler(deps), 15*time.Second))
	v1.Post("/holds/:id/release", timeout.NewWithContext(ReleaseHoldHandler(deps), 15*time.Second))
	v1.Get("/stats", timeout.NewWithContext(StatsHandler(deps), 15*time.Second))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}
