package routing_test

import (
	"testing"

	"github.com/stagewise/venuescout/internal/core/domain"
	"github.com/stagewise/venuescout/internal/core/routing"
)

func fit(distance, extra float64, days int) domain.RouteFit {
	return domain.RouteFit{
		DistanceToVenue: distance,
		ExtraDistance:   extra,
		DaysAvailable:   days,
	}
}

func TestScore_IdealFit(t *testing.T) {
	// On the route, no overhead, perfect two-day gap.
	if s := routing.Score(fit(0, 0, 2)); s != 0 {
		t.Errorf("ideal fit scored %v, want 0", s)
	}
}

func TestScore_WorstFit(t *testing.T) {
	// Far away, huge overhead; only the day term stays below its cap.
	s := routing.Score(fit(500, 500, 2))
	if s != 100*1.5+100*1.2 {
		t.Errorf("saturated fit scored %v, want %v", s, 100*1.5+100*1.2)
	}
}

func TestScore_DistanceMonotonic(t *testing.T) {
	prev := -1.0
	for d := 0.0; d <= 300; d += 10 {
		s := routing.Score(fit(d, 150, 4))
		if s < prev {
			t.Fatalf("score decreased from %v to %v as distance grew to %v", prev, s, d)
		}
		prev = s
	}
}

func TestScore_DetourMonotonic(t *testing.T) {
	prev := -1000.0
	for extra := -20.0; extra <= 260; extra += 10 {
		s := routing.Score(fit(120, extra, 4))
		if s < prev {
			t.Fatalf("score decreased from %v to %v as extra distance grew to %v", prev, s, extra)
		}
		prev = s
	}
}

func TestScore_DaysCurve(t *testing.T) {
	// Distance and detour zeroed out so only the day term remains.
	cases := []struct {
		days int
		want float64
	}{
		{1, 10 * 0.8},
		{2, 0},
		{3, 10 * 0.8},
		{4, 30 * 0.8},
		{5, 50 * 0.8},
		{6, 60 * 0.8},
		{10, 100 * 0.8},
	}
	for _, c := range cases {
		if got := routing.Score(fit(0, 0, c.days)); got != c.want {
			t.Errorf("days=%d scored %v, want %v", c.days, got, c.want)
		}
	}
}

// A venue exactly on the route tolerates no overhead: any positive extra
// distance saturates the detour term instead of dividing by zero.
func TestScore_ZeroDistanceGuard(t *testing.T) {
	withOverhead := routing.Score(fit(0, 0.5, 2))
	if withOverhead != 100*1.2 {
		t.Errorf("zero-distance fit with overhead scored %v, want %v", withOverhead, 100*1.2)
	}
	noOverhead := routing.Score(fit(0, 0, 2))
	if noOverhead != 0 {
		t.Errorf("zero-distance fit without overhead scored %v, want 0", noOverhead)
	}
}

func TestScore_NegativeOverheadRewarded(t *testing.T) {
	onPath := routing.Score(fit(50, -3, 2))
	offPath := routing.Score(fit(50, 30, 2))
	if onPath >= offPath {
		t.Errorf("negative overhead (%v) should beat positive overhead (%v)", onPath, offPath)
	}
}
