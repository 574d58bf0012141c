package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		verbosity  int
		jsonOutput bool
	}{
		{name: "console default", verbosity: 0, jsonOutput: false},
		{name: "console verbose", verbosity: 1, jsonOutput: false},
		{name: "JSON output mode", verbosity: 0, jsonOutput: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			if err := Initialize(tt.verbosity, tt.jsonOutput); err != nil {
				t.Fatalf("Initialize() error = %v", err)
			}
			if Logger == nil {
				t.Error("Initialize() did not set global Logger")
			}
			if JSONOutput != tt.jsonOutput {
				t.Errorf("Initialize() JSONOutput = %v, want %v", JSONOutput, tt.jsonOutput)
			}

			Cleanup()
			Logger = zap.NewNop().Sugar()
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{0, zapcore.WarnLevel},
		{1, zapcore.InfoLevel},
		{2, zapcore.DebugLevel},
		{3, zapcore.DebugLevel},
		{7, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		if got := VerbosityToLevel(tt.verbosity); got != tt.want {
			t.Errorf("VerbosityToLevel(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestShouldLogTrace(t *testing.T) {
	if ShouldLogTrace(2) {
		t.Error("ShouldLogTrace(2) should be false")
	}
	if !ShouldLogTrace(3) {
		t.Error("ShouldLogTrace(3) should be true")
	}
}

func TestLoggingFunctionsWithNilLogger(t *testing.T) {
	Logger = nil
	defer func() { Logger = zap.NewNop().Sugar() }()

	// All package-level functions must be safe with a nil logger.
	Debugf("test %s", "format")
	Infof("test %s", "format")
	Infow("test", "key", "value")
	Warnf("test %s", "format")
	Warnw("test", "key", "value")
	Errorf("test %s", "format")
	Errorw("test", "key", "value")
	Cleanup()
}

func TestNamed(t *testing.T) {
	Logger = zap.NewNop().Sugar()

	if Named("pipeline") == nil {
		t.Error("Named() returned nil")
	}
}
