// Package logging is a small structured-logging facade over go.uber.org/zap,
// trimmed to what a library (rather than a long-running server) needs:
// named sub-loggers, leveled structured calls, and a test-capturing
// constructor.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// Logger is the structured logger GraphSolver and its collaborators accept.
type Logger interface {
	Sublogger(name string) Logger
	With(args ...interface{}) Logger

	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	SetLevel(level zapcore.Level)
}

type impl struct {
	name  string
	level zap.AtomicLevel
	zap   *zap.SugaredLogger
}

// NewLogger returns a new logger that writes Info+ logs to stderr.
func NewLogger(name string) Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)

	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	base, err := cfg.Build()
	if err != nil {
		// zap.NewProductionConfig is infallible in practice; fall back to a
		// no-op core rather than panicking a library caller.
		base = zap.NewNop()
	}
	return &impl{name: name, level: level, zap: base.Named(name).Sugar()}
}

// NewTestLogger returns a logger that writes to the test's own log output
// via zaptest, at Debug level.
func NewTestLogger(tb zaptest.TestingT) Logger {
	level := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	base := zaptest.NewLogger(tb, zaptest.Level(level))
	return &impl{name: "test", level: level, zap: base.Sugar()}
}

func (l *impl) Sublogger(name string) Logger {
	full := name
	if l.name != "" {
		full = l.name + "." + name
	}
	return &impl{name: full, level: l.level, zap: l.zap.Named(name)}
}

func (l *impl) With(args ...interface{}) Logger {
	return &impl{name: l.name, level: l.level, zap: l.zap.With(args...)}
}

func (l *impl) Debugw(msg string, keysAndValues ...interface{}) {
	l.zap.Debugw(msg, keysAndValues...)
}

func (l *impl) Infow(msg string, keysAndValues ...interface{}) {
	l.zap.Infow(msg, keysAndValues...)
}

func (l *impl) Warnw(msg string, keysAndValues ...interface{}) {
	l.zap.Warnw(msg, keysAndValues...)
}

func (l *impl) Errorw(msg string, keysAndValues ...interface{}) {
	l.zap.Errorw(msg, keysAndValues...)
}

// SetLevel adjusts the minimum level this logger (and every logger derived
// from it via Sublogger/With) emits at, since they all share one AtomicLevel.
func (l *impl) SetLevel(level zapcore.Level) {
	l.level.SetLevel(level)
}
