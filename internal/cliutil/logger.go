package cliutil

import (
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger builds a charmbracelet/log logger to stderr at the given level
// ("debug", "info", "warn", "error"); verbose forces debug regardless of level.
func NewLogger(level string, verbose bool) *log.Logger {
	logger := log.New(os.Stderr)
	logger.SetReportTimestamp(true)

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	logger.SetLevel(lvl)
	return logger
}
