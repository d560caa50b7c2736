package worker

import (
	"fmt"
	"math"
	"sync"
)

// roundEpsilon nudges values sitting exactly on a .xx5 boundary upward
// before half-up rounding, so 1.005 rounds to 1.01 despite its binary
// representation being slightly below the boundary.
const roundEpsilon = 1e-9

// Tracker accumulates per-worker processing statistics: a running total
// and count of processed orders, plus a bounded window of the most
// recent durations. Statistics are local to this process; sibling
// workers diverge by design.
type Tracker struct {
	mu        sync.Mutex
	keep      int
	processed int64
	total     float64
	window    []float64
}

// NewTracker returns a tracker with a rolling window of capacity keep.
func NewTracker(keep int) *Tracker {
	if keep < 1 {
		keep = 1
	}
	return &Tracker{keep: keep, window: make([]float64, 0, keep+1)}
}

// Record accounts one successfully processed order: it bumps the
// processed count, adds minutes to the running total, and pushes the
// value onto the rolling window, evicting the oldest entry when the
// window would exceed its capacity.
func (t *Tracker) Record(minutes float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.processed++
	t.total += minutes
	t.window = append(t.window, minutes)
	if len(t.window) > t.keep {
		t.window = t.window[1:]
	}
}

// Processed returns the number of successfully processed orders.
func (t *Tracker) Processed() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.processed
}

// Total returns the running sum of processed minutes.
func (t *Tracker) Total() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// SquaredDeviations returns the sum of squared deviations of every
// windowed value from the most recent one. It is a dispersion-from-
// latest signal, not a statistical variance: the reference point is the
// last observation, never the mean. Empty and single-value windows
// yield 0.
func (t *Tracker) SquaredDeviations() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.window) == 0 {
		return 0
	}
	latest := t.window[len(t.window)-1]
	sum := 0.0
	for _, v := range t.window {
		d := v - latest
		sum += d * d
	}
	return sum
}

// WindowLen reports the current rolling window length.
func (t *Tracker) WindowLen() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.window)
}

// Summary renders the processed count, running total, and rolling
// squared-deviation sum as a single human-readable line. Totals are
// rounded half-up to two decimals.
func (t *Tracker) Summary() string {
	processed := t.Processed()
	total := roundHalfUp(t.Total())
	sqDev := roundHalfUp(t.SquaredDeviations())
	return fmt.Sprintf("processed %d orders, %.2f minutes total, rolling squared deviation %.2f", processed, total, sqDev)
}

// roundHalfUp rounds to two decimal places with ties going up.
func roundHalfUp(v float64) float64 {
	return math.Floor(v*100+0.5+roundEpsilon) / 100
}
