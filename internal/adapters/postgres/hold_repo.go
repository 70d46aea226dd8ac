package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stagewise/venuescout/internal/core/domain"
)

// HoldRepo implements ports.HoldRepository with pgx.
type HoldRepo struct {
	db *DB
}

// NewHoldRepo creates a new HoldRepo.
func NewHoldRepo(db *DB) *HoldRepo {
	return &HoldRepo{db: db}
}

// Create inserts a hold and fills in the generated ID.
func (r *HoldRepo) Create(ctx context.Context, h *domain.BookingHold) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO booking_holds (venue_id, artist, hold_date, contact, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, h.VenueID, h.Artist, h.HoldDate, h.Contact, h.Status, h.ExpiresAt).
		Scan(&h.ID, &h.CreatedAt)
}

// GetByID returns a hold by UUID.
func (r *HoldRepo) GetByID(ctx context.Context, id string) (*domain.BookingHold, error) {
	var h domain.BookingHold
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, venue_id, artist, hold_date, contact, status, expires_at, created_at
		FROM booking_holds WHERE id = $1
	`, id).Scan(&h.ID, &h.VenueID, &h.Artist, &h.HoldDate, &h.Contact, &h.Status, &h.ExpiresAt, &h.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("hold %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// UpdateStatus moves a hold to a new lifecycle state.
func (r *HoldRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE booking_holds SET status = $2 WHERE id = $1
	`, id, status)
	return err
}

// ListByVenue returns a venue's holds, newest first.
func (r *HoldRepo) ListByVenue(ctx context.Context, venueID string) ([]domain.BookingHold, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, venue_id, artist, hold_date, contact, status, expires_at, created_at
		FROM booking_holds
		WHERE venue_id = $1
		ORDER BY created_at DESC
	`, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holds []domain.BookingHold
	for rows.Next() {
		var h domain.BookingHold
		if err := rows.Scan(&h.ID, &h.VenueID, &h.Artist, &h.HoldDate, &h.Contact, &h.Status, &h.ExpiresAt, &h.CreatedAt); err != nil {
			return nil, err
		}
		holds = append(holds, h)
	}
	return holds, rows.Err()
}
