// Package logging builds the debug logger. The hook's stdout is part of
// its contract with the host, so all diagnostics go to stderr and are
// silenced entirely unless debugging is switched on.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

// New returns a development logger on stderr when debug is true,
// otherwise a no-op logger
func New(debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		// Fall back to nop logger
		return zap.NewNop()
	}
	return logger
}

// FromEnv builds a logger honoring the EDITGUARD_DEBUG variable
func FromEnv() *zap.Logger {
	return New(DebugEnabled())
}

// DebugEnabled reports whether EDITGUARD_DEBUG requests debug logging
func DebugEnabled() bool {
	switch strings.ToLower(os.Getenv("EDITGUARD_DEBUG")) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
