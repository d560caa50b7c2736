// Command hopperd runs one hopper worker against a watched directory.
//
// Usage: hopperd [flags] <watch-dir>
//
// The positional watch directory overrides paths.watch_dir from the
// configuration file. Startup validation failures use distinct exit
// codes: 1 for a missing argument, 2 when the path is not a directory,
// 3 when the path does not exist. Any other startup failure exits 4.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"hopper/internal/config"
	"hopper/internal/daemon"
	"hopper/internal/ledger"
	"hopper/internal/logging"
)

const (
	exitOK         = 0
	exitMissingArg = 1
	exitNotDir     = 2
	exitNotExist   = 3
	exitFailure    = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("hopperd", flag.ContinueOnError)
	configPath := flags.String("config", "", "configuration file path")
	if err := flags.Parse(args); err != nil {
		return exitFailure
	}

	cfg, _, _, err := config.Load(*configPath)
	if err != nil {
		log.Printf("load config: %v", err)
		return exitFailure
	}

	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: logOutputs(cfg),
	})
	if err != nil {
		log.Printf("init logger: %v", err)
		return exitFailure
	}

	watchDir := strings.TrimSpace(flags.Arg(0))
	if watchDir == "" {
		watchDir = cfg.Paths.WatchDir
	}
	watchDir, code := validateWatchDir(watchDir, logger)
	if code != exitOK {
		return code
	}
	cfg.Paths.WatchDir = watchDir

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := ledger.Open(cfg)
	if err != nil {
		logger.Error("open ledger", logging.Error(err))
		return exitFailure
	}

	d, err := daemon.New(cfg, store, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		_ = store.Close()
		return exitFailure
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("start daemon", logging.Error(err))
		return exitFailure
	}

	<-ctx.Done()
	logger.Info("hopperd shutting down")
	return exitOK
}

// validateWatchDir applies the startup exit-code contract and returns
// the expanded directory on success.
func validateWatchDir(dir string, logger *slog.Logger) (string, int) {
	if strings.TrimSpace(dir) == "" {
		logger.Error("watch directory argument required")
		return "", exitMissingArg
	}

	expanded, err := config.ExpandPath(dir)
	if err != nil {
		logger.Error("resolve watch directory", logging.Error(err))
		return "", exitNotExist
	}

	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Error("watch directory does not exist", logging.String(logging.FieldPath, expanded))
			return "", exitNotExist
		}
		logger.Error("stat watch directory", logging.Error(err), logging.String(logging.FieldPath, expanded))
		return "", exitNotExist
	}
	if !info.IsDir() {
		logger.Error("watch path is not a directory", logging.String(logging.FieldPath, expanded))
		return "", exitNotDir
	}
	return expanded, exitOK
}

func logOutputs(cfg *config.Config) []string {
	outputs := []string{"stdout"}
	if strings.TrimSpace(cfg.Paths.LogDir) != "" {
		if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err == nil {
			outputs = append(outputs, cfg.Paths.LogDir+"/hopperd.log")
		}
	}
	return outputs
}
