package session

import "log/slog"

// Logger defines the interface for logging operations
// This allows users to plug in their own logger
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// MetricsRecorder defines the interface for recording store metrics
type MetricsRecorder interface {
	RecordStoreError(backend, kind string)
	UpdateStoreKeys(backend string, count int64)
}

// NoopLogger is a no-operation logger that discards all log messages
type NoopLogger struct{}

func (NoopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (NoopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (NoopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (NoopLogger) Error(msg string, keysAndValues ...interface{}) {}

// SlogLogger forwards to a *slog.Logger
type SlogLogger struct {
	Logger *slog.Logger
}

// NewSlogLogger wraps l, falling back to slog.Default when l is nil
func NewSlogLogger(l *slog.Logger) SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return SlogLogger{Logger: l}
}

func (s SlogLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.Logger.Debug(msg, keysAndValues...)
}

func (s SlogLogger) Info(msg string, keysAndValues ...interface{}) {
	s.Logger.Info(msg, keysAndValues...)
}

func (s SlogLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.Logger.Warn(msg, keysAndValues...)
}

func (s SlogLogger) Error(msg string, keysAndValues ...interface{}) {
	s.Logger.Error(msg, keysAndValues...)
}

// NoopMetrics is a no-operation metrics recorder that discards all metrics
type NoopMetrics struct{}

func (NoopMetrics) RecordStoreError(backend, kind string)       {}
func (NoopMetrics) UpdateStoreKeys(backend string, count int64) {}
