package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.temporal.io/sdk/client"

	"github.com/stagewise/venuescout/internal/adapters/http"
	natsadapter "github.com/stagewise/venuescout/internal/adapters/nats"
	"github.com/stagewise/venuescout/internal/adapters/postgres"
	"github.com/stagewise/venuescout/internal/adapters/valkey"
	"github.com/stagewise/venuescout/internal/core/ports"
	"github.com/stagewise/venuescout/internal/core/usecases"
	"github.com/stagewise/venuescout/internal/pkg/config"
	"github.com/stagewise/venuescout/internal/pkg/logging"
	"github.com/stagewise/venuescout/internal/pkg/metrics"
	"github.com/stagewise/venuescout/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("venuescout-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Export pool stats
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.UpdateDBPoolMetrics(db.Pool.Stat())
			}
		}
	}()

	// Cache
	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
		cache = nil
	} else {
		cacheSvc = cache
		defer cache.Close()
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Drop stale discovery answers whenever an artist's stops change.
	if cache != nil {
		sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats subscriber unavailable", "error", err)
		} else {
			defer sub.Close()
			err = sub.SubscribeDiscoveryRefreshes(ctx, func(ctx context.Context, artistSlug string) error {
				slog.Info("invalidating discovery cache", "artist", artistSlug)
				return cache.InvalidatePrefix(ctx, "discovery:")
			})
			if err != nil {
				slog.Warn("discovery refresh subscription failed", "error", err)
			}
		}
	}

	// Temporal (optional): drives the hold placement saga
	var temporalClient client.Client
	if cfg.Temporal.Enabled {
		temporalClient, err = client.Dial(client.Options{HostPort: cfg.Temporal.HostPort})
		if err != nil {
			slog.Warn("temporal unavailable, holds stay manual", "error", err)
		} else {
			defer temporalClient.Close()
		}
	}

	// Repos
	venueRepo := postgres.NewVenueRepo(db)
	artistRepo := postgres.NewArtistRepo(db)
	stopRepo := postgres.NewTourStopRepo(db)
	tourRepo := postgres.NewTourRepo(db)
	holdRepo := postgres.NewHoldRepo(db)

	// Use cases
	venueSvc := usecases.NewVenueService(venueRepo, cacheSvc)
	artistSvc := usecases.NewArtistService(artistRepo, stopRepo)
	tourSvc := usecases.NewTourService(tourRepo, stopRepo, cacheSvc)
	discoverySvc := usecases.NewDiscoveryService(venueRepo, stopRepo, cacheSvc,
		cfg.Discovery.Workers, cfg.Discovery.MaxArtists)
	holdSvc := usecases.NewHoldService(holdRepo, venueRepo, natsadapter.NewNotifier(natsConn))

	deps := &http.Dependencies{
		Venues:    venueSvc,
		Artists:   artistSvc,
		Tours:     tourSvc,
		Discovery: discoverySvc,
		Holds:     holdSvc,
		NATS:      natsConn,
		Temporal:  temporalClient,
		DB:        db,
		Cache:     cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "VenueScout API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173, https://*.venuescout.io",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
