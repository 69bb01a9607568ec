// Package logging wires the API's slog output: JSON to stdout for
// every record, with ERROR-and-above mirrored into the system_logs
// table via PGHandler.
package logging

import (
	"log/slog"
	"os"
)

// Setup installs the JSON stdout logger as the process default. Called
// before config loading so early failures are still structured.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler).With("service", "linklab-api"))
}
