package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stagewise/venuescout/internal/core/domain"
	"github.com/stagewise/venuescout/internal/core/routing"
	"github.com/stagewise/venuescout/internal/core/usecases"
)

func summerTour() *domain.Tour {
	return &domain.Tour{
		ID:        "t1",
		ArtistID:  "a1",
		Name:      "Summer Run",
		StartDate: day(2026, 6, 1),
		EndDate:   day(2026, 6, 30),
	}
}

func TestTourService_FindGaps(t *testing.T) {
	tours := &mockTourRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Tour, error) {
			return summerTour(), nil
		},
	}
	stops := &mockTourStopRepo{
		listByArtistFn: func(ctx context.Context, artistID string, window domain.DateWindow) ([]domain.TourStop, error) {
			if artistID != "a1" {
				t.Errorf("expected artist a1, got %s", artistID)
			}
			return []domain.TourStop{
				{Location: rochesterPoint, Date: day(2026, 6, 10)},
				{Location: pittsburghPoint, Date: day(2026, 6, 12)},
			}, nil
		},
	}

	svc := usecases.NewTourService(tours, stops, nil)

	gaps, err := svc.FindGaps(context.Background(), "t1", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gaps) != 2 {
		t.Fatalf("expected 2 gaps, got %d", len(gaps))
	}
	if !gaps[0].Start.Equal(day(2026, 6, 1)) || !gaps[0].End.Equal(day(2026, 6, 9)) {
		t.Errorf("unexpected leading gap: %v", gaps[0])
	}
	if gaps[0].DurationDays != 9 {
		t.Errorf("expected 9-day leading gap, got %d", gaps[0].DurationDays)
	}
	if !gaps[1].Start.Equal(day(2026, 6, 13)) || !gaps[1].End.Equal(day(2026, 6, 30)) {
		t.Errorf("unexpected trailing gap: %v", gaps[1])
	}
}

func TestTourService_FindGaps_PropagatesArgumentErrors(t *testing.T) {
	tours := &mockTourRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Tour, error) {
			return summerTour(), nil
		},
	}

	svc := usecases.NewTourService(tours, &mockTourStopRepo{}, nil)

	_, err := svc.FindGaps(context.Background(), "t1", 0)
	if !errors.Is(err, routing.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestTourService_FindGaps_TourLookupError(t *testing.T) {
	wantErr := errors.New("no such tour")
	tours := &mockTourRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Tour, error) {
			return nil, wantErr
		},
	}

	svc := usecases.NewTourService(tours, &mockTourStopRepo{}, nil)

	_, err := svc.FindGaps(context.Background(), "missing", 4)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestTourService_FindGaps_CachesResult(t *testing.T) {
	tours := &mockTourRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Tour, error) {
			return summerTour(), nil
		},
	}
	calls := 0
	stops := &mockTourStopRepo{
		listByArtistFn: func(ctx context.Context, artistID string, window domain.DateWindow) ([]domain.TourStop, error) {
			calls++
			return nil, nil
		},
	}

	cache := newMockCache()
	svc := usecases.NewTourService(tours, stops, cache)

	if _, err := svc.FindGaps(context.Background(), "t1", 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.FindGaps(context.Background(), "t1", 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 stop load, got %d", calls)
	}

	// A different threshold is a different cache entry.
	if _, err := svc.FindGaps(context.Background(), "t1", 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 stop loads after threshold change, got %d", calls)
	}
}
