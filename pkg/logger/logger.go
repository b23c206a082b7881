package logger

import (
	"io"
	"log/slog"
	"os"
)

// SetupGlobal installs the default slog logger. Output goes to stderr because
// stdout carries the JSON result.
func SetupGlobal(debug bool, showSource bool) {
	setup(os.Stderr, debug, showSource)
}

func setup(w io.Writer, debug bool, showSource bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: showSource,
	}

	handler := slog.NewTextHandler(w, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}
