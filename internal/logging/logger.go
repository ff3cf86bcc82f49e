package logging

import (
	"log/slog"
	"os"
)

// Setup installs a plain JSON-to-stdout logger as the slog default. main swaps in
// the database-backed fan-out once the connection is up; until then everything,
// including config and migration failures, still lands on stdout.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
