package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stagewise/venuescout/internal/core/domain"
)

// VenueRepo implements ports.VenueRepository with pgx.
type VenueRepo struct {
	db *DB
}

// NewVenueRepo creates a new VenueRepo.
func NewVenueRepo(db *DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// Upsert inserts or updates a single venue, keyed by slug.
func (r *VenueRepo) Upsert(ctx context.Context, v *domain.Venue) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO venues (slug, name, location, city, region, capacity, metadata)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography, $5, $6, $7, $8)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name, location = EXCLUDED.location,
		    city = EXCLUDED.city, region = EXCLUDED.region,
		    capacity = EXCLUDED.capacity, metadata = EXCLUDED.metadata
	`, v.Slug, v.Name, v.Location.Lon, v.Location.Lat,
		v.City, v.Region, v.Capacity, v.Metadata)
	return err
}

// GetByID returns a venue by UUID.
func (r *VenueRepo) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	return r.getWhere(ctx, "id = $1", id)
}

// GetBySlug returns a venue by slug.
func (r *VenueRepo) GetBySlug(ctx context.Context, slug string) (*domain.Venue, error) {
	return r.getWhere(ctx, "slug = $1", slug)
}

func (r *VenueRepo) getWhere(ctx context.Context, where string, arg any) (*domain.Venue, error) {
	var v domain.Venue
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, slug, name,
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       city, COALESCE(region, ''), COALESCE(capacity, 0), COALESCE(metadata, '{}'), created_at
		FROM venues WHERE `+where,
		arg).Scan(
		&v.ID, &v.Slug, &v.Name,
		&v.Location.Lat, &v.Location.Lon,
		&v.City, &v.Region, &v.Capacity, &v.Metadata, &v.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("venue %v: %w", arg, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns all venues ordered by name.
func (r *VenueRepo) List(ctx context.Context) ([]domain.Venue, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, slug, name,
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       city, COALESCE(region, ''), COALESCE(capacity, 0), COALESCE(metadata, '{}'), created_at
		FROM venues
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []domain.Venue
	for rows.Next() {
		var v domain.Venue
		if err := rows.Scan(
			&v.ID, &v.Slug, &v.Name,
			&v.Location.Lat, &v.Location.Lon,
			&v.City, &v.Region, &v.Capacity, &v.Metadata, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

// FindNearby returns venues within radiusMeters using PostGIS ST_DWithin.
func (r *VenueRepo) FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.Venue, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, slug, name,
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       city, COALESCE(region, ''), COALESCE(capacity, 0),
		       ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) as distance,
		       created_at
		FROM venues
		WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
		ORDER BY distance
		LIMIT $4
	`, lon, lat, radiusMeters, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []domain.Venue
	for rows.Next() {
		var v domain.Venue
		var dist float64
		if err := rows.Scan(
			&v.ID, &v.Slug, &v.Name,
			&v.Location.Lat, &v.Location.Lon,
			&v.City, &v.Region, &v.Capacity,
			&dist, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		v.Distance = &dist
		venues = append(venues, v)
	}
	return venues, rows.Err()
}
