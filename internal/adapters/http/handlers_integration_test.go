//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stagewise/venuescout/internal/adapters/http"
	"github.com/stagewise/venuescout/internal/adapters/postgres"
	"github.com/stagewise/venuescout/internal/core/domain"
	"github.com/stagewise/venuescout/internal/core/usecases"
	"github.com/stagewise/venuescout/internal/pkg/config"
)

// setupTestDB connects to the test database and returns a clean DB instance.
func setupTestDB(t *testing.T) *postgres.DB {
	cfg, err := config.Load("venuescout-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}

	db := &postgres.DB{Pool: pool}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("ping db: %v", err)
	}

	return db
}

// setupTestDeps creates dependencies with real DB and repos, no cache.
func setupTestDeps(t *testing.T, db *postgres.DB) *http.Dependencies {
	venueRepo := postgres.NewVenueRepo(db)
	artistRepo := postgres.NewArtistRepo(db)
	stopRepo := postgres.NewTourStopRepo(db)
	tourRepo := postgres.NewTourRepo(db)
	holdRepo := postgres.NewHoldRepo(db)

	return &http.Dependencies{
		Venues:    usecases.NewVenueService(venueRepo, nil),
		Artists:   usecases.NewArtistService(artistRepo, stopRepo),
		Tours:     usecases.NewTourService(tourRepo, stopRepo, nil),
		Discovery: usecases.NewDiscoveryService(venueRepo, stopRepo, nil, 4, 100),
		Holds:     usecases.NewHoldService(holdRepo, venueRepo, &mockNotifier{}),
		DB:        db,
	}
}

// seedTestVenue inserts a test venue and returns its UUID.
func seedTestVenue(t *testing.T, db *postgres.DB, slug string) string {
	ctx := context.Background()
	var id string
	if err := db.Pool.QueryRow(ctx, `
		INSERT INTO venues (slug, name, city, region, capacity, location)
		VALUES ($1, $2, 'Buffalo', 'NY', 300, ST_SetSRID(ST_MakePoint(-78.8784, 42.8864), 4326)::geography)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, slug, "Test Venue "+slug).Scan(&id); err != nil {
		t.Fatalf("seed venue: %v", err)
	}
	return id
}

// seedTestArtist inserts a tracked test artist and returns its UUID.
func seedTestArtist(t *testing.T, db *postgres.DB, slug string) string {
	ctx := context.Background()
	var id string
	if err := db.Pool.QueryRow(ctx, `
		INSERT INTO artists (slug, name, genre, tracked)
		VALUES ($1, $2, 'indie', true)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, slug, "Test Artist "+slug).Scan(&id); err != nil {
		t.Fatalf("seed artist: %v", err)
	}
	return id
}

// seedTestStop inserts a tour stop for an artist on a given date.
func seedTestStop(t *testing.T, db *postgres.DB, artistID string, date time.Time) {
	ctx := context.Background()
	if _, err := db.Pool.Exec(ctx, `
		INSERT INTO tour_stops (artist_id, date, label, source, location)
		VALUES ($1, $2, 'Rochester, NY', 'seed', ST_SetSRID(ST_MakePoint(-77.6088, 43.1566), 4326)::geography)
		ON CONFLICT (artist_id, date) DO NOTHING
	`, artistID, date); err != nil {
		t.Fatalf("seed tour stop: %v", err)
	}
}

// TestListVenues_Integration_WithRealDB tests venue listing against real database.
func TestListVenues_Integration_WithRealDB(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	seedTestVenue(t, db, "test_mohawk")
	seedTestVenue(t, db, "test_bugjar")

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/venues", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.Venue      `json:"data"`
		Pagination struct{ Total int } `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if result.Pagination.Total < 2 {
		t.Errorf("expected at least 2 venues, got %d", result.Pagination.Total)
	}
}

// TestGetVenue_Integration tests venue lookup against real database.
func TestGetVenue_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	slug := "test_integ_" + time.Now().Format("20060102150405")
	seedTestVenue(t, db, slug)

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/venues/"+slug, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var venue domain.Venue
	if err := json.NewDecoder(resp.Body).Decode(&venue); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if venue.Slug != slug {
		t.Errorf("expected slug %s, got %s", slug, venue.Slug)
	}
}

// TestNearbyVenues_Integration tests the geospatial query against real database.
func TestNearbyVenues_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	seedTestVenue(t, db, "test_spatial")

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	// Search near Buffalo
	req := httptest.NewRequest("GET", "/v1/venues/nearby?lat=42.8864&lon=-78.8784&radius=10", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var venues []domain.Venue
	if err := json.NewDecoder(resp.Body).Decode(&venues); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(venues) == 0 {
		t.Error("expected at least 1 nearby venue, got 0")
	}
}

// TestDiscovery_Integration runs end-to-end discovery against seeded stops.
func TestDiscovery_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	venueID := seedTestVenue(t, db, "test_discovery")
	artistID := seedTestArtist(t, db, "test_band")

	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 7)
	seedTestStop(t, db, artistID, start)
	seedTestStop(t, db, artistID, start.AddDate(0, 0, 5))

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	url := "/v1/venues/" + venueID + "/discovery?radius=200&start=" +
		start.AddDate(0, 0, -1).Format(time.DateOnly) + "&end=" +
		start.AddDate(0, 0, 10).Format(time.DateOnly)
	req := httptest.NewRequest("GET", url, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Results []domain.DiscoveryResult `json:"results"`
		Count   int                      `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if result.Count == 0 {
		t.Error("expected at least 1 discovery result, got 0")
	}
}
