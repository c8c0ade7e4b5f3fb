// Package cli implements the loadplan command-line interface.
//
// The main commands are:
//   - plan: import a manifest, plan the load and write exports
//   - serve: run the HTTP planning service
//   - vehicles: list built-in and custom vehicle presets
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with timestamp formatting. The logger
// writes to w and filters messages at the specified level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
