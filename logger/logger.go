// Package logger provides the global structured logger for rulefmt.
//
// Commands call Initialize once after flag parsing; library packages grab
// component loggers via Named. Before Initialize the package holds a no-op
// logger, so early or test use never panics.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the global logger instance
	Logger *zap.SugaredLogger
	// JSONOutput tracks whether machine-readable output was requested
	JSONOutput bool
)

func init() {
	// Safe no-op logger at package load time, replaced by Initialize
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger. Verbosity is the -v flag count;
// jsonOutput switches from the console encoder to production JSON on stderr.
func Initialize(verbosity int, jsonOutput bool) error {
	JSONOutput = jsonOutput
	level := VerbosityToLevel(verbosity)

	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		// Keep stdout clean for emitted JSON events
		config.OutputPaths = []string{"stderr"}
		config.ErrorOutputPaths = []string{"stderr"}
		zapLogger, err := config.Build()
		if err != nil {
			return err
		}
		Logger = zapLogger.Sugar()
		return nil
	}

	zapLogger := zap.New(
		zapcore.NewCore(
			newConsoleEncoder(),
			zapcore.AddSync(os.Stderr),
			level,
		),
	)
	Logger = zapLogger.Sugar()
	return nil
}

// Named returns a component logger, e.g. Named("pipeline")
func Named(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		Logger.Sync()
	}
}

// Debugf logs a formatted debug message
func Debugf(format string, args ...interface{}) {
	if Logger != nil {
		Logger.Debugf(format, args...)
	}
}

// Infof logs a formatted info message
func Infof(format string, args ...interface{}) {
	if Logger != nil {
		Logger.Infof(format, args...)
	}
}

// Infow logs an info message with structured fields
func Infow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Infow(msg, keysAndValues...)
	}
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	if Logger != nil {
		Logger.Warnf(format, args...)
	}
}

// Warnw logs a warning message with structured fields
func Warnw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Warnw(msg, keysAndValues...)
	}
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	if Logger != nil {
		Logger.Errorf(format, args...)
	}
}

// Errorw logs an error message with structured fields
func Errorw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Errorw(msg, keysAndValues...)
	}
}
