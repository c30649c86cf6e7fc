// Package tdlog is the kernel's thin structured-logging facade. It keeps a
// "quiet unless asked" posture, gating diagnostic output behind an explicit
// level, and routes through log/slog so a driver can attach structured
// fields (wave id, tier, seed) instead of formatting strings by hand.
package tdlog

import (
	"log/slog"
	"os"
)

// New returns a text-handler logger writing to stderr at the given level.
// Drivers construct one at startup and pass it down; the kernel packages
// themselves never log (World.Apply's only output channel is its event
// list) and neither does pkg/sim, so this is exclusively a cmd/tdsim
// concern.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything, for tests and library
// callers that don't want kernel driver output.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(discardWriter{}, nil))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// WithSeed returns a child logger carrying the game seed as a field, so
// every generation-related log line it emits can be traced back to a run.
func WithSeed(l *slog.Logger, seed uint64) *slog.Logger {
	return l.With(slog.Uint64("seed", seed))
}
