// Package logger provides a configured zap logger for use throughout the
// ledger and its CLI.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New constructs a *zap.SugaredLogger configured for console output, with
// the service name attached to every line. Call Sync on the result before
// the process exits.
func New(service string) (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stdout"}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.StacktraceKey = ""
	config.DisableStacktrace = true

	log, err := config.Build(zap.WithCaller(false))
	if err != nil {
		return nil, err
	}

	return log.Sugar().With("service", service), nil
}
