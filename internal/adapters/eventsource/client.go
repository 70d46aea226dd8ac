package eventsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/stagewise/venuescout/internal/core/domain"
)

// Client implements ports.EventSource against the upstream events API.
// The feed is JSON; coordinates arrive as strings and are coerced here
// so nothing downstream ever sees an unparsed record.
type Client struct {
	baseURL string
	http    *http.Client
	source  string
}

// New creates a feed client. timeout bounds each request.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		source:  "events-api",
	}
}

// eventRecord mirrors the upstream payload. Coordinates are strings in
// the feed, and some records omit the venue block entirely.
type eventRecord struct {
	ID       string `json:"id"`
	Datetime string `json:"datetime"`
	Venue    *struct {
		Name      string `json:"name"`
		City      string `json:"city"`
		Region    string `json:"region"`
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"venue"`
}

// FetchArtistEvents returns an artist's upcoming events as tour stops.
// Records without usable coordinates or dates are dropped and counted.
func (c *Client) FetchArtistEvents(ctx context.Context, artistSlug string) ([]domain.TourStop, int, error) {
	url := fmt.Sprintf("%s/artists/%s/events?date=upcoming", c.baseURL, artistSlug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read body: %w", err)
	}

	var records []eventRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, 0, fmt.Errorf("unmarshal feed for %s: %w", artistSlug, err)
	}

	stops := make([]domain.TourStop, 0, len(records))
	skipped := 0
	for _, rec := range records {
		stop, ok := c.toStop(rec)
		if !ok {
			skipped++
			continue
		}
		stops = append(stops, stop)
	}

	return stops, skipped, nil
}

func (c *Client) toStop(rec eventRecord) (domain.TourStop, bool) {
	if rec.Venue == nil {
		return domain.TourStop{}, false
	}

	lat, err := strconv.ParseFloat(rec.Venue.Latitude, 64)
	if err != nil {
		return domain.TourStop{}, false
	}
	lon, err := strconv.ParseFloat(rec.Venue.Longitude, 64)
	if err != nil {
		return domain.TourStop{}, false
	}

	point := domain.GeoPoint{Lat: lat, Lon: lon}
	if !point.Valid() {
		return domain.TourStop{}, false
	}

	date, err := time.Parse(time.RFC3339, rec.Datetime)
	if err != nil {
		// Some feeds send a bare date for all-day listings.
		date, err = time.Parse(time.DateOnly, rec.Datetime)
		if err != nil {
			return domain.TourStop{}, false
		}
	}

	label := rec.Venue.City
	if rec.Venue.Name != "" {
		label = rec.Venue.Name + ", " + rec.Venue.City
	}

	return domain.TourStop{
		Location: point,
		Date:     date,
		Label:    label,
		Source:   c.source,
	}, true
}
