// Package logging configures the process-wide zap logger. Everything is
// written to stderr: the worker's stdout is reserved for the wire protocol,
// so a single stray log line there would corrupt a response frame.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the root logger. verbose lowers the level to debug.
func New(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build()
}

// Nop returns a logger that discards everything, for tests and for callers
// that have not set up logging yet.
func Nop() *zap.Logger {
	return zap.NewNop()
}
