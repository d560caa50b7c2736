package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks configuration values for internal consistency. It does
// not touch the file system; existence of the watch directory is checked
// at startup so the exit-code contract stays in one place.
func (c *Config) Validate() error {
	var problems []string

	if c.Worker.SecondsPerUnit < 0 {
		problems = append(problems, fmt.Sprintf("worker.seconds_per_unit must not be negative (got %v)", c.Worker.SecondsPerUnit))
	}
	if c.Worker.WindowKeep < 1 {
		problems = append(problems, fmt.Sprintf("worker.window_keep must be at least 1 (got %d)", c.Worker.WindowKeep))
	}
	if c.Worker.JitterMaxMillis < 0 {
		problems = append(problems, fmt.Sprintf("worker.jitter_max_millis must not be negative (got %d)", c.Worker.JitterMaxMillis))
	}
	if c.Watch.PollIntervalMillis < 1 {
		problems = append(problems, fmt.Sprintf("watch.poll_interval_millis must be at least 1 (got %d)", c.Watch.PollIntervalMillis))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format must be console or json (got %q)", c.Logging.Format))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
