package utils

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/mdobak/go-xerrors"
)

var (
	loggerOnce sync.Once
	logger     *slog.Logger
)

// GetLogger returns the process-wide structured logger. The level can be
// raised with LOG_LEVEL=debug; output goes to stderr so progress bars on
// stdout stay intact.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		level := slog.LevelInfo
		if GetEnv("LOG_LEVEL", "info") == "debug" {
			level = slog.LevelDebug
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		logger = slog.New(handler)
	})
	return logger
}

// LogError reports err with a stack-carrying wrapper attached.
func LogError(ctx context.Context, msg string, err error) {
	GetLogger().ErrorContext(ctx, msg, slog.Any("error", xerrors.New(err)))
}
