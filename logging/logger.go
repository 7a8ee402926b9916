// Package logging builds the diagnostic loggers used by the command-line tools. Test progress
// and results are written directly to the console; these loggers carry everything else.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logrus logger writing text lines with full timestamps to out. The result
// satisfies framework.Logger.
func NewLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	return logger
}

// DebugLevel returns the level to use for a tool's own logger given its -debug-all flag.
func DebugLevel(debugAll bool) logrus.Level {
	if debugAll {
		return logrus.DebugLevel
	}
	return logrus.InfoLevel
}

// Printer is the Printf-style interface expected by the test framework.
type Printer interface {
	Printf(message string, args ...interface{})
}

type debugPrinter struct {
	logger *logrus.Logger
}

func (d debugPrinter) Printf(message string, args ...interface{}) {
	d.logger.Debugf(message, args...)
}

// DebugPrinter returns a Printer that logs each message at debug level, so the output only
// appears when the logger's level allows it.
func DebugPrinter(logger *logrus.Logger) Printer {
	return debugPrinter{logger: logger}
}
