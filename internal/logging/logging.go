// Package logging builds the diagnostic logger. Diagnostics always go to
// stderr so stdout stays reserved for the generated message.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	// Verbose enables debug output.
	Verbose bool
	// Output receives log lines; nil means os.Stderr.
	Output io.Writer
	// Color enables colored level names.
	Color bool
}

// Level returns the minimum level for the given verbosity.
func Level(verbose bool) zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	return zapcore.WarnLevel
}

// EncoderConfig returns the console encoder configuration.
func EncoderConfig(color bool) zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.NameKey = "N"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}

// New creates a console logger writing to stderr.
func New(opts Options) *zap.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(EncoderConfig(opts.Color)),
		zapcore.Lock(zapcore.AddSync(out)),
		Level(opts.Verbose),
	)

	return zap.New(core).Named("claude-lazygit")
}
