// Package app holds the bootstrap shared by the analysis binaries: loading
// configuration, resolving paths and wiring the run logger.
package app

import (
	"log/slog"
	"os"

	"github.com/google/uuid"

	"invcli/internal/config"
)

// Run carries everything a single analysis run needs before any data is read.
type Run struct {
	ID     string
	Config *config.Config
	Logger *slog.Logger
}

// Bootstrap loads configuration and builds the run logger. Every log record
// carries the run ID so interleaved runs in one terminal session stay
// distinguishable. Path resolution happens in the commands, after CLI flags
// have been applied on top of the configuration.
func Bootstrap(configPath string) (*Run, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Logging)
	runID := uuid.New().String()
	logger = logger.With("run_id", runID)
	slog.SetDefault(logger)

	return &Run{ID: runID, Config: cfg, Logger: logger}, nil
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
