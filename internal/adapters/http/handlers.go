package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.temporal.io/sdk/client"

	"github.com/stagewise/venuescout/internal/core/domain"
	"github.com/stagewise/venuescout/internal/core/routing"
	"github.com/stagewise/venuescout/internal/pkg/metrics"
	"github.com/stagewise/venuescout/internal/workflows"
)

const defaultDiscoveryWindowDays = 90

// CatalogStats holds row counts from the touring tables.
type CatalogStats struct {
	Venues    int    `json:"venues"`
	Artists   int    `json:"artists"`
	TourStops int    `json:"tour_stops"`
	Holds     int    `json:"holds"`
	LastPoll  string `json:"last_poll,omitempty"`
}

// StatsHandler returns row counts from the touring tables.
func StatsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.DB == nil {
			return errInternal(c, "database not available")
		}

		var stats CatalogStats
		row := deps.DB.Pool.QueryRow(c.Context(), `
			SELECT
				(SELECT count(*) FROM venues),
				(SELECT count(*) FROM artists),
				(SELECT count(*) FROM tour_stops),
				(SELECT count(*) FROM booking_holds),
				COALESCE((SELECT max(created_at)::text FROM tour_stops), '')
		`)
		if err := row.Scan(&stats.Venues, &stats.Artists, &stats.TourStops,
			&stats.Holds, &stats.LastPoll); err != nil {
			return errInternal(c, err.Error())
		}

		c.Set("Cache-Control", "public, max-age=60")
		return c.JSON(stats)
	}
}

// ListVenuesHandler returns all venues, paginated.
func ListVenuesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		venues, err := deps.Venues.List(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}

		page, pg := paginate(c, venues, 100, 200)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// GetVenueHandler returns a single venue by UUID, falling back to slug.
func GetVenueHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "venue id is required")
		}
		venue, err := deps.Venues.GetByID(c.Context(), id)
		if err != nil {
			venue, err = deps.Venues.GetBySlug(c.Context(), id)
			if err != nil {
				return errNotFound(c, "venue not found")
			}
		}
		return c.JSON(venue)
	}
}

// NearbyVenuesHandler returns venues within a radius (miles) of a point.
func NearbyVenuesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat := c.QueryFloat("lat", 0)
		lon := c.QueryFloat("lon", 0)
		radius := c.QueryFloat("radius", 25)
		limit := c.QueryInt("limit", 20)

		if lat == 0 || lon == 0 {
			return errBadRequest(c, "lat and lon are required")
		}
		if radius <= 0 || radius > 500 {
			return errBadRequest(c, "radius must be between 1 and 500 miles")
		}

		venues, err := deps.Venues.FindNearby(c.Context(), lat, lon, radius, limit)
		if err != nil {
			return errInternal(c, err.Error())
		}

		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(venues)
	}
}

// DiscoveryHandler ranks touring artists routable through a venue.
// GET /v1/venues/:id/discovery?radius=50&start=2026-06-01&end=2026-08-31
func DiscoveryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "venue id is required")
		}

		radius := c.QueryFloat("radius", 50)
		window, err := parseWindow(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		results, err := deps.Discovery.DiscoverForVenue(c.Context(), id, radius, window)
		if err != nil {
			metrics.DiscoveryRequests.WithLabelValues("error").Inc()
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return errNotFound(c, "venue not found")
			case errors.Is(err, routing.ErrInvalidCoordinate),
				errors.Is(err, routing.ErrInvalidDateRange),
				errors.Is(err, routing.ErrInvalidConfiguration):
				return errBadRequest(c, err.Error())
			default:
				return errInternal(c, err.Error())
			}
		}
		metrics.DiscoveryRequests.WithLabelValues("ok").Inc()
		metrics.ArtistsRanked.Add(float64(len(results)))

		return c.JSON(fiber.Map{
			"venue_id": id,
			"window": fiber.Map{
				"start": window.Start.Format(time.DateOnly),
				"end":   window.End.Format(time.DateOnly),
			},
			"results": results,
			"count":   len(results),
		})
	}
}

// parseWindow reads start/end query dates; missing values default to a
// window opening today.
func parseWindow(c *fiber.Ctx) (domain.DateWindow, error) {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	window := domain.DateWindow{
		Start: now,
		End:   now.AddDate(0, 0, defaultDiscoveryWindowDays),
	}

	if raw := c.Query("start"); raw != "" {
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return window, fiber.NewError(400, "start must be YYYY-MM-DD")
		}
		window.Start = t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return window, fiber.NewError(400, "end must be YYYY-MM-DD")
		}
		window.End = t
	}
	return window, nil
}

// ListArtistsHandler returns every tracked artist, paginated.
func ListArtistsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		artists, err := deps.Artists.ListTracked(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}

		page, pg := paginate(c, artists, 100, 500)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// GetArtistHandler returns a single artist by slug.
func GetArtistHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")
		if slug == "" {
			return errBadRequest(c, "artist slug is required")
		}
		artist, err := deps.Artists.GetBySlug(c.Context(), slug)
		if err != nil {
			return errNotFound(c, "artist not found")
		}
		return c.JSON(artist)
	}
}

// ArtistStopsHandler returns an artist's committed stops in a window.
func ArtistStopsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")
		if slug == "" {
			return errBadRequest(c, "artist slug is required")
		}

		artist, err := deps.Artists.GetBySlug(c.Context(), slug)
		if err != nil {
			return errNotFound(c, "artist not found")
		}

		window, err := parseWindow(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		stops, err := deps.Artists.Stops(c.Context(), artist.ID, window)
		if err != nil {
			return errInternal(c, err.Error())
		}

		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(fiber.Map{
			"artist": artist.Slug,
			"stops":  stops,
			"count":  len(stops),
		})
	}
}

// GetTourHandler returns a tour by ID.
func GetTourHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "tour id is required")
		}
		tour, err := deps.Tours.GetByID(c.Context(), id)
		if err != nil {
			return errNotFound(c, "tour not found")
		}
		return c.JSON(tour)
	}
}

// TourGapsHandler returns a tour's open date ranges.
// GET /v1/tours/:id/gaps?min_days=4
func TourGapsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "tour id is required")
		}
		minDays := c.QueryInt("min_days", 4)
		if minDays < 1 || minDays > 120 {
			return errBadRequest(c, "min_days must be between 1 and 120")
		}

		gaps, err := deps.Tours.FindGaps(c.Context(), id, minDays)
		if err != nil {
			return errNotFound(c, err.Error())
		}

		return c.JSON(fiber.Map{
			"tour_id":  id,
			"min_days": minDays,
			"gaps":     gaps,
			"count":    len(gaps),
		})
	}
}

// holdRequest is the POST /v1/holds body.
type holdRequest struct {
	VenueID  string `json:"venue_id"`
	Artist   string `json:"artist"`
	HoldDate string `json:"hold_date"`
	Contact  string `json:"contact"`
}

// CreateHoldHandler creates a pending hold and, when a Temporal client
// is configured, starts the placement saga that confirms or rolls it
// back.
func CreateHoldHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req holdRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.VenueID == "" || req.Artist == "" || req.HoldDate == "" || req.Contact == "" {
			return errBadRequest(c, "venue_id, artist, hold_date, and contact are required")
		}

		holdDate, err := time.Parse(time.DateOnly, req.HoldDate)
		if err != nil {
			return errBadRequest(c, "hold_date must be YYYY-MM-DD")
		}

		hold, err := deps.Holds.RequestHold(c.Context(), req.VenueID, req.Artist, holdDate, req.Contact)
		if err != nil {
			return errConflict(c, err.Error())
		}

		if deps.Temporal != nil {
			_, err := deps.Temporal.ExecuteWorkflow(c.Context(), client.StartWorkflowOptions{
				ID:        "hold-" + hold.ID,
				TaskQueue: workflows.HoldTaskQueue,
			}, workflows.BookingHoldWorkflow, workflows.HoldInput{HoldID: hold.ID})
			if err != nil {
				return errInternal(c, "start hold workflow: "+err.Error())
			}
		}

		return c.Status(201).JSON(hold)
	}
}

// GetHoldHandler returns a hold by ID.
func GetHoldHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "hold id is required")
		}
		hold, err := deps.Holds.GetByID(c.Context(), id)
		if err != nil {
			return errNotFound(c, "hold not found")
		}
		return c.JSON(hold)
	}
}

// ReleaseHoldHandler frees a hold.
func ReleaseHoldHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "hold id is required")
		}
		if err := deps.Holds.ReleaseHold(c.Context(), id); err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"id": id, "status": domain.HoldStatusReleased})
	}
}

// VenueHoldsHandler lists a venue's holds.
func VenueHoldsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "venue id is required")
		}
		holds, err := deps.Holds.ListByVenue(c.Context(), id)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(holds)
	}
}
