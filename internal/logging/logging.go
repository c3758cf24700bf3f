// Package logging builds the structured logger the commands write
// diagnostics with.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/hyp3rd/ewrap"

	"popstats/internal/sentinel"
)

// New returns a text logger on w at level ("debug", "info", "warn",
// "error"). quiet raises the level to at least warn.
func New(w io.Writer, level string, quiet bool) (*slog.Logger, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidParameter, "log level %q", level)
	}
	if quiet && lv < slog.LevelWarn {
		lv = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv})), nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
