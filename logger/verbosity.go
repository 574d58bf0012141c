package logger

import "go.uber.org/zap/zapcore"

// Verbosity level constants for CLI flag counts.
const (
	VerbosityUser  = 0 // No flags: results, warnings, errors
	VerbosityInfo  = 1 // -v: + per-file progress
	VerbosityDebug = 2 // -vv: + classification and filter detail
	VerbosityTrace = 3 // -vvv: + per-line decisions
)

// VerbosityToLevel maps verbosity flags (-v, -vv, ...) to zap log levels.
//
// Mapping:
//
//	0 (none)  -> WarnLevel  (errors and warnings only)
//	1 (-v)    -> InfoLevel  (+ informational messages)
//	2+ (-vv)  -> DebugLevel (+ debug messages)
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch verbosity {
	case VerbosityUser:
		return zapcore.WarnLevel
	case VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// ShouldLogTrace returns true for verbosity >= 3 (-vvv).
// Use this to gate per-line decision logging, which is too chatty for -vv.
func ShouldLogTrace(verbosity int) bool {
	return verbosity >= VerbosityTrace
}
