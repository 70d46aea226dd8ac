package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/stagewise/venuescout/internal/adapters/eventsource"
	natsadapter "github.com/stagewise/venuescout/internal/adapters/nats"
	"github.com/stagewise/venuescout/internal/adapters/postgres"
	"github.com/stagewise/venuescout/internal/core/domain"
	"github.com/stagewise/venuescout/internal/core/usecases"
	"github.com/stagewise/venuescout/internal/pkg/config"
	"github.com/stagewise/venuescout/internal/pkg/logging"
	"github.com/stagewise/venuescout/internal/pkg/metrics"
)

// Manifest lists artists to track. Passing a manifest file as the first
// argument upserts its artists before polling starts.
type Manifest struct {
	Source  string        `json:"source"`
	Artists []ArtistEntry `json:"artists"`
}

type ArtistEntry struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Genre string `json:"genre,omitempty"`
}

func main() {
	cfg, err := config.Load("venuescout-poller")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	// NATS
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer publisher.Close()

	artistRepo := postgres.NewArtistRepo(db)
	stopRepo := postgres.NewTourStopRepo(db)
	ingestSvc := usecases.NewIngestService(artistRepo, stopRepo, nil, publisher)

	// Optional manifest: seed tracked artists before the first poll
	if len(os.Args) > 1 {
		if err := seedArtists(ctx, artistRepo, os.Args[1]); err != nil {
			log.Fatalf("seed artists: %v", err)
		}
	}

	feed := eventsource.New(cfg.EventSource.BaseURL,
		time.Duration(cfg.EventSource.TimeoutSeconds)*time.Second)

	pollInterval := time.Duration(cfg.EventSource.PollIntervalMin) * time.Minute
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	slog.Info("event feed poller starting",
		"base_url", cfg.EventSource.BaseURL, "interval", pollInterval.String())

	// Signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Run once immediately
	pollAll(ctx, artistRepo, feed, ingestSvc)

	for {
		select {
		case <-ticker.C:
			pollAll(ctx, artistRepo, feed, ingestSvc)
		case <-ctx.Done():
			return
		case sig := <-quit:
			slog.Info("shutting down poller", "signal", sig.String())
			cancel()
			// Give in-flight polls time to finish
			time.Sleep(2 * time.Second)
			return
		}
	}
}

// pollAll fetches every tracked artist's feed and hands the batches to
// the ingest service.
func pollAll(ctx context.Context, artists *postgres.ArtistRepo, feed *eventsource.Client, ingest *usecases.IngestService) {
	tracked, err := artists.ListTracked(ctx)
	if err != nil {
		slog.Error("list tracked artists", "error", err)
		return
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, 8) // max 8 concurrent fetches

	for _, a := range tracked {
		wg.Add(1)
		go func(artist domain.Artist) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			start := time.Now()
			stops, skipped, err := feed.FetchArtistEvents(ctx, artist.Slug)
			metrics.FeedPollDuration.WithLabelValues(artist.Slug).Observe(time.Since(start).Seconds())
			if err != nil {
				metrics.FeedPollErrors.WithLabelValues(artist.Slug).Inc()
				slog.Error("poll feed", "artist", artist.Slug, "error", err)
				return
			}

			dropped, err := ingest.ProcessStopBatch(ctx, artist.Slug, stops)
			if err != nil {
				slog.Error("ingest batch", "artist", artist.Slug, "error", err)
				return
			}

			metrics.StopsIngested.WithLabelValues(artist.Slug).Add(float64(len(stops) - dropped))
			if len(stops) > 0 {
				slog.Info("polled artist feed", "artist", artist.Slug,
					"stops", len(stops), "dropped", dropped, "feed_skipped", skipped)
			}
		}(a)
	}

	wg.Wait()
}

// seedArtists upserts the manifest's artists as tracked.
func seedArtists(ctx context.Context, artists *postgres.ArtistRepo, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return err
	}

	for _, entry := range manifest.Artists {
		artist := &domain.Artist{
			Slug:    entry.Slug,
			Name:    entry.Name,
			Genre:   entry.Genre,
			Tracked: true,
		}
		if err := artists.Upsert(ctx, artist); err != nil {
			return err
		}
	}

	slog.Info("seeded artist manifest", "source", manifest.Source, "artists", len(manifest.Artists))
	return nil
}
