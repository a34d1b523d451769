package forms

import (
	"log/slog"
	"os"
)

// formsLogLevel controls the log level for widget debug logging.
// Default is LevelInfo, which suppresses Debug messages.
// SetVerbose(true) sets it to LevelDebug.
var formsLogLevel = new(slog.LevelVar)

// SetVerbose enables or disables verbose/debug logging for widgets.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		formsLogLevel.Set(slog.LevelDebug)
	} else {
		formsLogLevel.Set(slog.LevelInfo)
	}
}

// formsVerbose returns true if debug logging is enabled.
func formsVerbose() bool {
	return formsLogLevel.Level() <= slog.LevelDebug
}

// defaultLogger is used by managers created without WithLogger.
var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: formsLogLevel}))
