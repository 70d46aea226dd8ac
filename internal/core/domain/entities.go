package domain

import (
	"time"
)

// Venue represents a bookable venue (club, theatre, hall).
type Venue struct {
	ID        string         `json:"id"`
	Slug      string         `json:"slug"`
	Name      string         `json:"name"`
	Location  GeoPoint       `json:"location"`
	City      string         `json:"city"`
	Region    string         `json:"region,omitempty"`
	Capacity  int            `json:"capacity,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Distance  *float64       `json:"distance,omitempty"` // computed field, meters
	CreatedAt time.Time      `json:"created_at"`
}

// Artist represents a touring act whose event feed is tracked.
type Artist struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Genre     string    `json:"genre,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Tracked   bool      `json:"tracked"`
	CreatedAt time.Time `json:"created_at"`
}

// TourStop is one committed, dated appearance by an artist.
// The routing core reads only Location, Date, and Label; the remaining
// fields exist for persistence and feed bookkeeping.
type TourStop struct {
	ID        string    `json:"id,omitempty"`
	ArtistID  string    `json:"artist_id,omitempty"`
	Location  GeoPoint  `json:"location"`
	Date      time.Time `json:"date"`
	Label     string    `json:"label"` // city/venue name
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Leg is a consecutive pair of tour stops, derived and never stored.
// DaysBetween is always >= 1 once a leg is constructed.
type Leg struct {
	From        TourStop `json:"from"`
	To          TourStop `json:"to"`
	DaysBetween int      `json:"days_between"`
}

// RouteFit is the evaluation of one venue against one leg (or a single
// stop). Destination is nil only in the single-show case. Distances are
// statute miles; Score is unit-less, lower is better.
type RouteFit struct {
	Origin          *TourStop `json:"origin_stop"`
	Destination     *TourStop `json:"destination_stop,omitempty"`
	DirectDistance  float64   `json:"direct_distance"`
	DistanceToVenue float64   `json:"distance_to_venue"`
	DetourDistance  float64   `json:"detour_distance"`
	ExtraDistance   float64   `json:"extra_distance"`
	DaysAvailable   int       `json:"days_available"`
	Score           float64   `json:"routing_score"`
}

// ArtistSchedule pairs an artist identity with its date-ordered stops.
type ArtistSchedule struct {
	Artist string     `json:"artist"`
	Stops  []TourStop `json:"stops"`
}

// DiscoveryResult is the single best routing opportunity for one artist.
type DiscoveryResult struct {
	Artist  string   `json:"artist"`
	BestFit RouteFit `json:"best_fit"`
}

// DateWindow is an inclusive calendar-date interval.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Tour represents one artist's named run with declared start/end dates.
type Tour struct {
	ID        string    `json:"id"`
	ArtistID  string    `json:"artist_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}

// TourGap is a maximal open interval in a tour with no committed stop.
type TourGap struct {
	Start        time.Time `json:"start_date"`
	End          time.Time `json:"end_date"`
	DurationDays int       `json:"duration_days"`
}

// Booking-hold lifecycle states.
const (
	HoldStatusPending  = "pending"
	HoldStatusPlaced   = "placed"
	HoldStatusReleased = "released"
	HoldStatusExpired  = "expired"
)

// BookingHold is a promoter's soft reservation of a routing opportunity.
type BookingHold struct {
	ID        string    `json:"id"`
	VenueID   string    `json:"venue_id"`
	Artist    string    `json:"artist"`
	HoldDate  time.Time `json:"hold_date"`
	Contact   string    `json:"contact"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
