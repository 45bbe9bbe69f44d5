package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var debugLog = zerolog.Nop()

// EnableDebugLogging routes debug events to a log file in the temp
// directory. Disabled by default; the logger is a no-op then.
func EnableDebugLogging(enabled bool) {
	if !enabled {
		debugLog = zerolog.Nop()
		return
	}
	path := filepath.Join(os.TempDir(), "blockfall-debug.log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	debugLog = zerolog.New(file).With().Timestamp().Logger()
}

func DebugLogf(format string, args ...any) {
	debugLog.Debug().Msgf(format, args...)
}
