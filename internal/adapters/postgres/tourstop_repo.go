package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stagewise/venuescout/internal/core/domain"
)

// TourStopRepo implements ports.TourStopRepository with pgx.
type TourStopRepo struct {
	db *DB
}

// NewTourStopRepo creates a new TourStopRepo.
func NewTourStopRepo(db *DB) *TourStopRepo {
	return &TourStopRepo{db: db}
}

// UpsertBatch inserts a polled batch using pgx.Batch. One stop per
// artist per date; DO NOTHING keeps the earlier-inserted row when a
// feed re-reports a date.
func (r *TourStopRepo) UpsertBatch(ctx context.Context, artistID string, stops []domain.TourStop) error {
	batch := &pgx.Batch{}
	for _, s := range stops {
		batch.Queue(`
			INSERT INTO tour_stops (artist_id, location, date, label, source)
			VALUES ($1, ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography, $4, $5, $6)
			ON CONFLICT (artist_id, date) DO NOTHING
		`, artistID, s.Location.Lon, s.Location.Lat, s.Date, s.Label, s.Source)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range stops {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}

// ListByArtist returns one artist's stops inside a window, date ascending.
func (r *TourStopRepo) ListByArtist(ctx context.Context, artistID string, window domain.DateWindow) ([]domain.TourStop, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, artist_id,
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       date, COALESCE(label, ''), COALESCE(source, ''), created_at
		FROM tour_stops
		WHERE artist_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`, artistID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStops(rows)
}

// ListSchedules returns every tracked artist's in-window stops, grouped
// by artist slug and date ascending within each artist.
func (r *TourStopRepo) ListSchedules(ctx context.Context, window domain.DateWindow, limit int) ([]domain.ArtistSchedule, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT a.slug, ts.id, ts.artist_id,
		       ST_Y(ts.location::geometry) as lat,
		       ST_X(ts.location::geometry) as lon,
		       ts.date, COALESCE(ts.label, ''), COALESCE(ts.source, ''), ts.created_at
		FROM tour_stops ts
		JOIN artists a ON a.id = ts.artist_id
		WHERE a.tracked AND ts.date BETWEEN $1 AND $2
		  AND a.slug IN (
		      SELECT DISTINCT a2.slug
		      FROM artists a2
		      JOIN tour_stops ts2 ON ts2.artist_id = a2.id
		      WHERE a2.tracked AND ts2.date BETWEEN $1 AND $2
		      ORDER BY a2.slug
		      LIMIT $3
		  )
		ORDER BY a.slug, ts.date
	`, window.Start, window.End, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []domain.ArtistSchedule
	var current *domain.ArtistSchedule
	for rows.Next() {
		var slug string
		var s domain.TourStop
		if err := rows.Scan(
			&slug, &s.ID, &s.ArtistID,
			&s.Location.Lat, &s.Location.Lon,
			&s.Date, &s.Label, &s.Source, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		if current == nil || current.Artist != slug {
			schedules = append(schedules, domain.ArtistSchedule{Artist: slug})
			current = &schedules[len(schedules)-1]
		}
		current.Stops = append(current.Stops, s)
	}
	return schedules, rows.Err()
}

// DeleteByArtist removes all of one artist's stops.
func (r *TourStopRepo) DeleteByArtist(ctx context.Context, artistID string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM tour_stops WHERE artist_id = $1`, artistID)
	return err
}

func scanStops(rows pgx.Rows) ([]domain.TourStop, error) {
	var stops []domain.TourStop
	for rows.Next() {
		var s domain.TourStop
		if err := rows.Scan(
			&s.ID, &s.ArtistID,
			&s.Location.Lat, &s.Location.Lon,
			&s.Date, &s.Label, &s.Source, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, rows.Err()
}
