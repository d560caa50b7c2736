package worker

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"os"
	"sync"
	"time"

	"hopper/internal/claim"
	"hopper/internal/logging"
	"hopper/internal/workqueue"
)

// Recorder persists one successfully processed order. Implemented by
// the ledger; nil disables persistence.
type Recorder interface {
	RecordProcessed(ctx context.Context, sourcePath string, minutes float64) error
}

// Driver runs the claim/process/account loop for one worker.
//
// Each iteration sleeps a bounded random jitter, pops one queued path,
// and tries to claim it. A deferred claim re-enqueues the path at the
// tail; a failed claim drops it (a sibling worker owns it now); a
// successful claim is processed, recorded, and its file deleted without
// blocking the loop. A sleep interrupted by shutdown counts nothing and
// leaves the claimed file behind, as a hard kill would. Every keep-th
// successful completion emits the statistics summary. No error
// terminates the loop.
type Driver struct {
	queue     *workqueue.Queue
	claimer   claim.Claimer
	processor *Processor
	tracker   *Tracker
	recorder  Recorder
	logger    *slog.Logger

	keep      int
	jitterMax time.Duration
	jitter    func() time.Duration

	cleanupWG sync.WaitGroup
	remove    func(string) error
}

// DriverOptions carries optional Driver collaborators.
type DriverOptions struct {
	// Recorder persists processed orders; nil skips persistence.
	Recorder Recorder
	// JitterMax bounds the random pre-claim sleep. Zero disables jitter;
	// the claim protocol stays correct without it.
	JitterMax time.Duration
}

// NewDriver assembles a driver.
func NewDriver(queue *workqueue.Queue, claimer claim.Claimer, processor *Processor, tracker *Tracker, keep int, logger *slog.Logger, opts DriverOptions) *Driver {
	if keep < 1 {
		keep = 1
	}
	d := &Driver{
		queue:     queue,
		claimer:   claimer,
		processor: processor,
		tracker:   tracker,
		recorder:  opts.Recorder,
		logger:    logging.NewComponentLogger(logger, "driver"),
		keep:      keep,
		jitterMax: opts.JitterMax,
		remove:    os.Remove,
	}
	d.jitter = func() time.Duration {
		if d.jitterMax <= 0 {
			return 0
		}
		return time.Duration(rand.Int63n(int64(d.jitterMax)))
	}
	return d
}

// Run loops until ctx is canceled, then waits for outstanding cleanup
// tasks before returning.
func (d *Driver) Run(ctx context.Context) {
	defer d.cleanupWG.Wait()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		d.iterate(ctx)
	}
}

func (d *Driver) iterate(ctx context.Context) {
	if wait := d.jitter(); wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}

	path, ok := d.queue.Dequeue()
	if !ok {
		return
	}

	switch d.claimer.Claim(path) {
	case claim.Deferred:
		// Writer has not finished flushing; retry later. A permanently
		// empty file re-enqueues forever, paced only by the jitter.
		d.logger.Debug("order empty, deferring claim", logging.String(logging.FieldPath, path))
		d.queue.Enqueue(path)
		return
	case claim.Failed:
		d.logger.Debug("order claimed elsewhere", logging.String(logging.FieldPath, path))
		return
	case claim.Claimed:
	}

	claimedPath := claim.ClaimedPath(path)
	minutes, procErr := d.processor.Process(ctx, claimedPath)
	if procErr != nil && !errors.Is(procErr, errUnprocessable) {
		// Interrupted mid-sleep: the work was not done, so the claimed
		// file stays in place, same as a hard kill would leave it.
		d.logger.Warn("processing interrupted, leaving claimed order",
			logging.Error(procErr),
			logging.String(logging.FieldPath, claimedPath),
		)
		return
	}

	processed := procErr == nil
	if processed {
		d.tracker.Record(minutes)
		if d.recorder != nil {
			if err := d.recorder.RecordProcessed(ctx, path, minutes); err != nil {
				d.logger.Warn("ledger record failed",
					logging.Error(err),
					logging.String(logging.FieldPath, path),
				)
			}
		}
	}

	d.scheduleCleanup(claimedPath)

	if processed && d.tracker.Processed()%int64(d.keep) == 0 {
		d.logger.Info(d.tracker.Summary())
	}
}

// scheduleCleanup deletes the claimed file without blocking the loop.
// A failed delete leaks an .inProgress file, which is tolerated: it is
// invisible to the admission filter and never re-claimed.
func (d *Driver) scheduleCleanup(claimedPath string) {
	d.cleanupWG.Add(1)
	go func() {
		defer d.cleanupWG.Done()
		if err := d.remove(claimedPath); err != nil {
			d.logger.Warn("delete claimed order failed",
				logging.Error(err),
				logging.String(logging.FieldPath, claimedPath),
			)
		}
	}()
}

// Submit routes a watched path through the admission decision made by
// the caller into this worker's queue.
func (d *Driver) Submit(path string) {
	d.queue.Enqueue(path)
}
