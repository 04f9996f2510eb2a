// Package logging provides structured logging setup for vmsync.
package logging

import (
	"log/slog"
	"os"
)

// Setup initializes the default slog logger.
// Debug mode uses human-readable text at debug level; otherwise JSON at info.
func Setup(debug bool) {
	var handler slog.Handler
	if debug {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	slog.SetDefault(slog.New(handler))
}
