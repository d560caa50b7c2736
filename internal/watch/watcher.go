// Package watch emits an event for every file that appears in a
// monitored directory, including files already present when the monitor
// starts. It polls with os.ReadDir; notification fidelity is bounded by
// the poll interval, which is fine for a queue whose items take minutes
// to process.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"hopper/internal/logging"
)

// Handler receives the absolute path of a file that appeared.
type Handler func(path string)

// Monitor watches one directory and invokes the handler once per
// appearance of each file name. A name that vanishes and comes back is
// reported again.
type Monitor struct {
	dir      string
	interval time.Duration
	handler  Handler
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	seen    map[string]struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMonitor builds a monitor for dir. interval falls back to 500ms
// when not positive.
func NewMonitor(dir string, interval time.Duration, handler Handler, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Monitor{
		dir:      dir,
		interval: interval,
		handler:  handler,
		logger:   logging.NewComponentLogger(logger, "watch"),
		seen:     make(map[string]struct{}),
	}
}

// Start begins polling in a background goroutine. The first poll runs
// immediately so files already present are reported at startup.
func (m *Monitor) Start(ctx context.Context) error {
	if m.handler == nil {
		return errors.New("watch monitor requires a handler")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return errors.New("watch monitor already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.ctx = runCtx
	m.cancel = cancel
	m.running = true

	m.wg.Add(1)
	go m.loop()
	return nil
}

// Stop halts polling and waits for the loop to exit.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

func (m *Monitor) loop() {
	defer m.wg.Done()

	m.poll()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.poll()
		}
	}
}

func (m *Monitor) poll() {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		m.logger.Warn("scan watch directory failed; will retry",
			logging.Error(err),
			logging.String(logging.FieldPath, m.dir),
		)
		return
	}

	current := make(map[string]struct{}, len(entries))
	var appeared []string
	m.mu.Lock()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		current[name] = struct{}{}
		if _, ok := m.seen[name]; !ok {
			appeared = append(appeared, name)
		}
	}
	// Replacing the seen set drops vanished names, so a name that comes
	// back is reported as a fresh appearance.
	m.seen = current
	m.mu.Unlock()

	for _, name := range appeared {
		m.handler(filepath.Join(m.dir, name))
	}
}
