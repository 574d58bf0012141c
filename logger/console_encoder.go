package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset  = "\x1b[0m"
	colorBold   = "\x1b[1m"
	colorDim    = "\x1b[2m"
	colorYellow = "\x1b[33m"
	colorRed    = "\x1b[31m"
	colorCyan   = "\x1b[36m"
)

// consoleEncoder is a compact human-mode encoder.
// Format: "13:04:35  WARN  pipeline  skipping unparsable line  file=emby.list line=7"
type consoleEncoder struct {
	zapcore.Encoder // base encoder for field serialization
	buf             *buffer.Buffer
}

func newConsoleEncoder() *consoleEncoder {
	return &consoleEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		buf:     buffer.NewPool().Get(),
	}
}

func (enc *consoleEncoder) Clone() zapcore.Encoder {
	return &consoleEncoder{
		Encoder: enc.Encoder.Clone(),
		buf:     buffer.NewPool().Get(),
	}
}

func (enc *consoleEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := buffer.NewPool().Get()

	final.AppendString(colorDim)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level shown only when it carries information (non-INFO)
	if level := levelTag(ent.Level); level != "" {
		final.AppendString("  ")
		final.AppendString(level)
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorCyan)
		final.AppendString(ent.LoggerName)
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	if len(fields) > 0 {
		final.AppendString("  ")
		final.AppendString(colorDim)
		final.AppendString(formatFields(fields))
		final.AppendString(colorReset)
	}

	final.AppendString("\n")
	return final, nil
}

func levelTag(level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel:
		return colorDim + "DEBUG" + colorReset
	case zapcore.WarnLevel:
		return colorBold + colorYellow + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + colorRed + "ERROR" + colorReset
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return colorBold + colorRed + level.CapitalString() + colorReset
	default:
		return ""
	}
}

// formatFields renders structured fields as key=value pairs.
func formatFields(fields []zapcore.Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Key+"="+fieldValue(f))
	}
	return strings.Join(parts, " ")
}

func fieldValue(f zapcore.Field) string {
	switch f.Type {
	case zapcore.StringType:
		return f.String
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		return fmt.Sprintf("%d", f.Integer)
	case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", uint64(f.Integer))
	case zapcore.BoolType:
		return fmt.Sprintf("%t", f.Integer == 1)
	case zapcore.ErrorType:
		if err, ok := f.Interface.(error); ok {
			return err.Error()
		}
	}
	if f.Interface != nil {
		return fmt.Sprintf("%v", f.Interface)
	}
	return f.String
}
