package logger

import (
	"io"
	"log/slog"
)

// NewNope returns a logger that drops everything.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
