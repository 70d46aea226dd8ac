package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/stagewise/venuescout/internal/core/domain"
	"github.com/stagewise/venuescout/internal/core/ports"
)

// Default hold lifetime before an unconfirmed hold lapses.
const holdTTL = 48 * time.Hour

// HoldService handles booking-hold business logic.
type HoldService struct {
	holds    ports.HoldRepository
	venues   ports.VenueRepository
	notifier ports.NotificationService
}

// NewHoldService creates a new HoldService.
func NewHoldService(holds ports.HoldRepository, venues ports.VenueRepository, notifier ports.NotificationService) *HoldService {
	return &HoldService{holds: holds, venues: venues, notifier: notifier}
}

// RequestHold creates a pending hold for a venue, artist, and date.
func (s *HoldService) RequestHold(ctx context.Context, venueID, artist string, holdDate time.Time, contact string) (*domain.BookingHold, error) {
	venue, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("resolve venue %s: %w", venueID, err)
	}
	if artist == "" {
		return nil, fmt.Errorf("artist is required")
	}
	if contact == "" {
		return nil, fmt.Errorf("contact is required")
	}
	if holdDate.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, fmt.Errorf("hold date %s is in the past", holdDate.Format(time.DateOnly))
	}

	existing, err := s.holds.ListByVenue(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("list holds for %s: %w", venueID, err)
	}
	for _, h := range existing {
		if h.Status == domain.HoldStatusPlaced && h.HoldDate.Equal(holdDate) {
			return nil, fmt.Errorf("venue %s already has a placed hold on %s", venue.Slug, holdDate.Format(time.DateOnly))
		}
	}

	hold := &domain.BookingHold{
		VenueID:   venueID,
		Artist:    artist,
		HoldDate:  holdDate,
		Contact:   contact,
		Status:    domain.HoldStatusPending,
		ExpiresAt: time.Now().Add(holdTTL),
	}
	if err := s.holds.Create(ctx, hold); err != nil {
		return nil, fmt.Errorf("create hold: %w", err)
	}

	return hold, nil
}

// GetByID returns a single hold.
func (s *HoldService) GetByID(ctx context.Context, id string) (*domain.BookingHold, error) {
	return s.holds.GetByID(ctx, id)
}

// ListByVenue returns a venue's holds.
func (s *HoldService) ListByVenue(ctx context.Context, venueID string) ([]domain.BookingHold, error) {
	return s.holds.ListByVenue(ctx, venueID)
}

// PlaceHold marks a pending hold as placed and notifies the contact.
func (s *HoldService) PlaceHold(ctx context.Context, id string) error {
	hold, err := s.holds.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("resolve hold %s: %w", id, err)
	}
	if hold.Status != domain.HoldStatusPending {
		return fmt.Errorf("hold %s is %s, not pending", id, hold.Status)
	}

	if err := s.holds.UpdateStatus(ctx, id, domain.HoldStatusPlaced); err != nil {
		return fmt.Errorf("place hold %s: %w", id, err)
	}

	subject := "Hold placed"
	body := fmt.Sprintf("Your hold for %s on %s is placed until %s.",
		hold.Artist, hold.HoldDate.Format(time.DateOnly), hold.ExpiresAt.Format(time.RFC1123))
	if err := s.notifier.Notify(ctx, hold.Contact, subject, body); err != nil {
		return fmt.Errorf("notify %s: %w", hold.Contact, err)
	}

	return nil
}

// ReleaseHold frees a hold regardless of its current state.
func (s *HoldService) ReleaseHold(ctx context.Context, id string) error {
	if err := s.holds.UpdateStatus(ctx, id, domain.HoldStatusReleased); err != nil {
		return fmt.Errorf("release hold %s: %w", id, err)
	}
	return nil
}

// ExpireHold marks a lapsed hold as expired.
func (s *HoldService) ExpireHold(ctx context.Context, id string) error {
	hold, err := s.holds.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("resolve hold %s: %w", id, err)
	}
	if hold.Status != domain.HoldStatusPending && hold.Status != domain.HoldStatusPlaced {
		return nil
	}
	return s.holds.UpdateStatus(ctx, id, domain.HoldStatusExpired)
}
