package logger

import (
	"os"

	corelogger "github.com/wenchichenginl/HERON/core/logger"
)

// Logger mirrors the core logger interface for convenience.
type Logger = corelogger.Logger

// NopLogger re-exports the core no-op logger.
type NopLogger = corelogger.NopLogger

// New returns a Logger for the given component writing to stdout.
func New(component string) Logger {
	return NewZerologLogger(component, os.Stdout)
}
