package worker

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"hopper/internal/logging"
)

// errUnprocessable marks an order whose content could not be read or
// parsed. The claim is consumed; the file goes to cleanup.
var errUnprocessable = errors.New("order not processable")

// Delayer suspends the caller for a duration. Injectable so tests can
// substitute an instant or instrumented delay for wall-clock sleeping.
type Delayer interface {
	Delay(ctx context.Context, d time.Duration) error
}

// SleepDelayer waits on the wall clock, honoring context cancellation.
type SleepDelayer struct{}

func (SleepDelayer) Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Processor simulates the work encoded in a claimed order file: the
// file content is a decimal number of minutes, and processing is a
// single suspension of minutes × secondsPerUnit seconds, interrupted
// only by context cancellation.
type Processor struct {
	secondsPerUnit float64
	delayer        Delayer
	logger         *slog.Logger
}

// NewProcessor builds a processor. secondsPerUnit is nominally 60 for
// real minutes and can be lowered to compress simulated time.
func NewProcessor(secondsPerUnit float64, delayer Delayer, logger *slog.Logger) *Processor {
	if delayer == nil {
		delayer = SleepDelayer{}
	}
	return &Processor{
		secondsPerUnit: secondsPerUnit,
		delayer:        delayer,
		logger:         logging.NewComponentLogger(logger, "processor"),
	}
}

// Process reads the claimed file, parses its minute value, and sleeps
// for the scaled duration. A nil error means the full delay elapsed and
// the order counts as processed. A read or parse failure logs at error
// level and returns errUnprocessable, leaving the claim consumed and
// the file to cleanup. A context cancellation during the delay returns
// the context's error: the order's work was not done.
func (p *Processor) Process(ctx context.Context, claimedPath string) (float64, error) {
	content, err := os.ReadFile(claimedPath)
	if err != nil {
		p.logger.Error("read order failed",
			logging.Error(err),
			logging.String(logging.FieldPath, claimedPath),
		)
		return 0, errUnprocessable
	}

	minutes, err := strconv.ParseFloat(strings.TrimSpace(string(content)), 64)
	if err != nil || minutes < 0 {
		p.logger.Error("order content is not a non-negative minute value",
			logging.String(logging.FieldPath, claimedPath),
			logging.String("content", strings.TrimSpace(string(content))),
		)
		return 0, errUnprocessable
	}

	delay := time.Duration(minutes * p.secondsPerUnit * float64(time.Second))
	p.logger.Debug("processing order",
		logging.String(logging.FieldPath, claimedPath),
		logging.Float64("minutes", minutes),
		logging.Duration("delay", delay),
	)
	if err := p.delayer.Delay(ctx, delay); err != nil {
		return 0, err
	}
	return minutes, nil
}
