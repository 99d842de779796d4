package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	slog.SetDefault(slog.New(stdoutHandler(os.Stdout)))
}

// AttachPG routes ERROR+ records to pg in addition to stdout.
func AttachPG(pg *PGHandler) {
	slog.SetDefault(slog.New(NewMultiHandler(stdoutHandler(os.Stdout), pg)))
}

func stdoutHandler(w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}
