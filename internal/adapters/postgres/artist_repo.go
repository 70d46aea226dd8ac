package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stagewise/venuescout/internal/core/domain"
)

// ArtistRepo implements ports.ArtistRepository with pgx.
type ArtistRepo struct {
	db *DB
}

// NewArtistRepo creates a new ArtistRepo.
func NewArtistRepo(db *DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// Upsert inserts or updates an artist, keyed by slug.
func (r *ArtistRepo) Upsert(ctx context.Context, a *domain.Artist) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO artists (slug, name, genre, image_url, tracked)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name, genre = EXCLUDED.genre,
		    image_url = EXCLUDED.image_url, tracked = EXCLUDED.tracked
	`, a.Slug, a.Name, a.Genre, a.ImageURL, a.Tracked)
	return err
}

// GetByID returns an artist by UUID.
func (r *ArtistRepo) GetByID(ctx context.Context, id string) (*domain.Artist, error) {
	return r.getWhere(ctx, "id = $1", id)
}

// GetBySlug returns an artist by slug.
func (r *ArtistRepo) GetBySlug(ctx context.Context, slug string) (*domain.Artist, error) {
	return r.getWhere(ctx, "slug = $1", slug)
}

func (r *ArtistRepo) getWhere(ctx context.Context, where string, arg any) (*domain.Artist, error) {
	var a domain.Artist
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, slug, name, COALESCE(genre, ''), COALESCE(image_url, ''), tracked, created_at
		FROM artists WHERE `+where,
		arg).Scan(&a.ID, &a.Slug, &a.Name, &a.Genre, &a.ImageURL, &a.Tracked, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("artist %v: %w", arg, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListTracked returns every artist whose feed the poller follows.
func (r *ArtistRepo) ListTracked(ctx context.Context) ([]domain.Artist, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, slug, name, COALESCE(genre, ''), COALESCE(image_url, ''), tracked, created_at
		FROM artists
		WHERE tracked
		ORDER BY slug
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []domain.Artist
	for rows.Next() {
		var a domain.Artist
		if err := rows.Scan(&a.ID, &a.Slug, &a.Name, &a.Genre, &a.ImageURL, &a.Tracked, &a.CreatedAt); err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}
