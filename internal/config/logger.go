package config

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns a logger writing to w with the given prefix, at the
// level named by PONG_LOG_LEVEL (debug, info, warn, error; default info).
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(GetEnv("PONG_LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
