package bumpfill

import (
	"errors"
	"log/slog"
	"os"

	"github.com/pavanmanishd/bumpfill/arena"
)

// Logger wraps slog.Logger with fill-specific fields.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a text handler to stderr at Info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// LogFill logs the outcome of a fill. Producer failures are ordinary results
// and go to Debug; contract violations and allocation failures go to Error.
func (l *Logger) LogFill(op string, n, built int, state State, err error) {
	switch {
	case err == nil:
		l.Debug("fill finished",
			"op", op,
			"len", n,
		)
	case errors.Is(err, ErrLengthMismatch), errors.Is(err, arena.ErrAllocationExhausted), errors.Is(err, ErrInvalidLength):
		l.Error("fill failed",
			"op", op,
			"len", n,
			"constructed", built,
			"state", state.String(),
			"error", err,
		)
	default:
		l.Debug("fill abandoned",
			"op", op,
			"len", n,
			"constructed", built,
			"error", err,
		)
	}
}
