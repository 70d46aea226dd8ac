package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stagewise/venuescout/internal/core/domain"
)

// TourRepo implements ports.TourRepository with pgx.
type TourRepo struct {
	db *DB
}

// NewTourRepo creates a new TourRepo.
func NewTourRepo(db *DB) *TourRepo {
	return &TourRepo{db: db}
}

// Upsert inserts or updates a tour, keyed by artist and name.
func (r *TourRepo) Upsert(ctx context.Context, t *domain.Tour) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO tours (artist_id, name, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (artist_id, name) DO UPDATE
		SET start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date
	`, t.ArtistID, t.Name, t.StartDate, t.EndDate)
	return err
}

// GetByID returns a tour by UUID.
func (r *TourRepo) GetByID(ctx context.Context, id string) (*domain.Tour, error) {
	var t domain.Tour
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, artist_id, name, start_date, end_date, created_at
		FROM tours WHERE id = $1
	`, id).Scan(&t.ID, &t.ArtistID, &t.Name, &t.StartDate, &t.EndDate, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("tour %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByArtist returns an artist's tours, most recent first.
func (r *TourRepo) ListByArtist(ctx context.Context, artistID string) ([]domain.Tour, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, artist_id, name, start_date, end_date, created_at
		FROM tours
		WHERE artist_id = $1
		ORDER BY start_date DESC
	`, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tours []domain.Tour
	for rows.Next() {
		var t domain.Tour
		if err := rows.Scan(&t.ID, &t.ArtistID, &t.Name, &t.StartDate, &t.EndDate, &t.CreatedAt); err != nil {
			return nil, err
		}
		tours = append(tours, t)
	}
	return tours, rows.Err()
}
