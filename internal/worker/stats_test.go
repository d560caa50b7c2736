package worker

import (
	"math"
	"strings"
	"testing"
)

func TestSquaredDeviationsFromLatest(t *testing.T) {
	tracker := NewTracker(5)
	for _, v := range []float64{5, 6, 7, 8, 9} {
		tracker.Record(v)
	}
	// (5-9)² + (6-9)² + (7-9)² + (8-9)² + (9-9)² = 16+9+4+1+0
	if got := tracker.SquaredDeviations(); got != 30 {
		t.Fatalf("expected 30, got %v", got)
	}
}

func TestSquaredDeviationsSingleValueIsZero(t *testing.T) {
	tracker := NewTracker(5)
	tracker.Record(3.5)
	if got := tracker.SquaredDeviations(); got != 0 {
		t.Fatalf("expected 0 for single value, got %v", got)
	}
}

func TestSquaredDeviationsEmptyWindowIsZero(t *testing.T) {
	tracker := NewTracker(5)
	if got := tracker.SquaredDeviations(); got != 0 {
		t.Fatalf("expected 0 for empty window, got %v", got)
	}
}

func TestWindowEvictsOldestAtCapacity(t *testing.T) {
	tracker := NewTracker(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		tracker.Record(v)
		if tracker.WindowLen() > 3 {
			t.Fatalf("window exceeded capacity: %d", tracker.WindowLen())
		}
	}
	// Window is now [3,4,5]; deviations from 5: 4+1+0.
	if got := tracker.SquaredDeviations(); got != 5 {
		t.Fatalf("expected 5 after eviction, got %v", got)
	}
}

func TestTotalsAccumulate(t *testing.T) {
	tracker := NewTracker(4)
	tracker.Record(0.01)
	tracker.Record(0.02)
	if tracker.Processed() != 2 {
		t.Fatalf("expected 2 processed, got %d", tracker.Processed())
	}
	if math.Abs(tracker.Total()-0.03) > 1e-12 {
		t.Fatalf("expected total 0.03, got %v", tracker.Total())
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		in       float64
		expected float64
	}{
		{1.005, 1.01},
		{1.004, 1.00},
		{2.675, 2.68},
		{0, 0},
		{30, 30},
		{16.994, 16.99},
		{16.995, 17.00},
	}
	for _, tc := range cases {
		if got := roundHalfUp(tc.in); got != tc.expected {
			t.Fatalf("roundHalfUp(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestSummaryFormatsTwoDecimals(t *testing.T) {
	tracker := NewTracker(10)
	tracker.Record(0.5025)
	tracker.Record(0.5025)

	summary := tracker.Summary()
	if !strings.Contains(summary, "processed 2 orders") {
		t.Fatalf("expected count in summary: %q", summary)
	}
	if !strings.Contains(summary, "1.01 minutes total") {
		t.Fatalf("expected half-up rounded total in summary: %q", summary)
	}
	if !strings.Contains(summary, "rolling squared deviation 0.00") {
		t.Fatalf("expected deviation in summary: %q", summary)
	}
}
