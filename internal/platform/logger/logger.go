package logger

import (
	"log/slog"
	"os"
)

// New returns a structured text logger on stderr. Level defaults to info;
// PARTNERDESK_DEBUG=true lowers it to debug.
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("PARTNERDESK_DEBUG") == "true" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
