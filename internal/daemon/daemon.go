package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"hopper/internal/admission"
	"hopper/internal/claim"
	"hopper/internal/config"
	"hopper/internal/ledger"
	"hopper/internal/logging"
	"hopper/internal/watch"
	"hopper/internal/worker"
	"hopper/internal/workqueue"
)

// Daemon coordinates one worker's watch/claim/process lifecycle and
// enforces single-instance execution per state directory. Sibling
// workers sharing a watch directory each run their own daemon with a
// distinct state directory; they coordinate only through rename
// atomicity in the claim protocol.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *ledger.Store
	queue   *workqueue.Queue
	tracker *worker.Tracker
	driver  *worker.Driver
	monitor *watch.Monitor

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New constructs a daemon with initialized collaborators. store may be
// nil to run without a ledger.
func New(cfg *config.Config, store *ledger.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || logger == nil {
		return nil, errors.New("daemon requires config and logger")
	}

	queue := workqueue.New()
	tracker := worker.NewTracker(cfg.Worker.WindowKeep)
	processor := worker.NewProcessor(cfg.Worker.SecondsPerUnit, worker.SleepDelayer{}, logger)

	var recorder worker.Recorder
	if store != nil {
		recorder = store
	}
	driver := worker.NewDriver(queue, claim.FS{}, processor, tracker, cfg.Worker.WindowKeep, logger, worker.DriverOptions{
		Recorder:  recorder,
		JitterMax: time.Duration(cfg.Worker.JitterMaxMillis) * time.Millisecond,
	})

	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		queue:    queue,
		tracker:  tracker,
		driver:   driver,
		lockPath: filepath.Join(cfg.Paths.StateDir, "hopperd.lock"),
	}
	d.lock = flock.New(d.lockPath)
	d.monitor = watch.NewMonitor(
		cfg.Paths.WatchDir,
		time.Duration(cfg.Watch.PollIntervalMillis)*time.Millisecond,
		d.admit,
		logger,
	)
	return d, nil
}

// admit routes watch events through the admission filter into the
// worker's queue.
func (d *Daemon) admit(path string) {
	if !admission.Matches(path) {
		d.logger.Debug("ignoring non-order file", logging.String(logging.FieldPath, path))
		return
	}
	d.logger.Debug("order admitted", logging.String(logging.FieldPath, path))
	d.driver.Submit(path)
}

// Start acquires the instance lock and launches the monitor and driver.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another hopperd instance already owns this state directory")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	if err := d.monitor.Start(runCtx); err != nil {
		_ = d.lock.Unlock()
		cancel()
		d.cancel = nil
		return fmt.Errorf("start watch monitor: %w", err)
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.driver.Run(runCtx)
	}()

	d.running.Store(true)
	attrs := []logging.Attr{
		logging.String("watch_dir", d.cfg.Paths.WatchDir),
		logging.String("lock", d.lockPath),
		logging.Int("window_keep", d.cfg.Worker.WindowKeep),
		logging.Float64("seconds_per_unit", d.cfg.Worker.SecondsPerUnit),
	}
	if d.store != nil {
		attrs = append(attrs, logging.String(logging.FieldRunID, d.store.RunID()))
	}
	d.logger.Info("hopper daemon started", logging.Args(attrs...)...)
	return nil
}

// Stop halts the monitor and driver and releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	d.monitor.Stop()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.wg.Wait()

	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("release daemon lock failed", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("hopper daemon stopped", logging.String("final", d.tracker.Summary()))
}

// Close stops the daemon and releases held resources.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Running reports whether the daemon has been started.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// QueueLen reports the number of orders waiting in the local queue.
func (d *Daemon) QueueLen() int {
	return d.queue.Len()
}

// Processed reports the number of orders processed this run.
func (d *Daemon) Processed() int64 {
	return d.tracker.Processed()
}
