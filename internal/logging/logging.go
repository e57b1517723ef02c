// Package logging provides a minimal process-wide logger for the
// orchestration core. Every component logs through here rather than
// calling fmt.Println directly, so a caller embedding this module can
// silence it with a single Disable() call — qarun wires that to its
// --quiet flag.
package logging

import (
	"log"
	"os"
)

var (
	disabled = false
	logger   = log.New(os.Stdout, "", log.LstdFlags)
)

// Disable turns off all logging.
func Disable() {
	disabled = true
}

// Enable turns logging back on.
func Enable() {
	disabled = false
}

func emit(level string, v ...any) {
	if disabled {
		return
	}
	logger.Println(append([]any{level}, v...)...)
}

func emitf(level, format string, v ...any) {
	if disabled {
		return
	}
	logger.Printf(level+" "+format, v...)
}

// Info logs an info message.
func Info(v ...any) { emit("INFO:", v...) }

// Infof logs a formatted info message.
func Infof(format string, v ...any) { emitf("INFO:", format, v...) }

// Warn logs a warning message.
func Warn(v ...any) { emit("WARN:", v...) }

// Warnf logs a formatted warning message.
func Warnf(format string, v ...any) { emitf("WARN:", format, v...) }

// Error logs an error message.
func Error(v ...any) { emit("ERROR:", v...) }

// Errorf logs a formatted error message.
func Errorf(format string, v ...any) { emitf("ERROR:", format, v...) }

// Step logs one Agent Loop iteration against a test run, the recurring
// log line a run produces as it drives the browser.
func Step(testID string, iteration int, message string) {
	Infof("[%s] iteration %d: %s", testID, iteration, message)
}
