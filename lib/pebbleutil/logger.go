package pebbleutil

import (
	"context"

	"go.uber.org/zap"
)

// ZapLogger routes pebble's logs to a zap logger.
type ZapLogger struct {
	l *zap.SugaredLogger
}

// NewZapLogger returns a pebble logger writing to l. A nil logger discards
// everything.
func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapLogger{l: l.Named("pebble").WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

// Infof implements LoggerAndTracer.
func (z *ZapLogger) Infof(format string, args ...interface{}) {
	z.l.Debugf(format, args...)
}

// Errorf implements LoggerAndTracer.
func (z *ZapLogger) Errorf(format string, args ...interface{}) {
	z.l.Errorf(format, args...)
}

// Fatalf implements LoggerAndTracer.
func (z *ZapLogger) Fatalf(format string, args ...interface{}) {
	z.l.Fatalf(format, args...)
}

// Eventf implements LoggerAndTracer.
func (z *ZapLogger) Eventf(ctx context.Context, format string, args ...interface{}) {
}

// IsTracingEnabled implements LoggerAndTracer.
func (z *ZapLogger) IsTracingEnabled(ctx context.Context) bool {
	return false
}
