package impulse

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging surface the World writes to. The default
// implementation is zap-backed; embedders with their own logging can satisfy
// the interface or install the nop logger.
type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type zapLogger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

// NewLogger builds the default zap-backed logger. With debug disabled only
// info and above are emitted.
func NewLogger(debug bool) Logger {
	cfg := zap.NewProductionConfig()
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return NewNopLogger()
	}
	return &zapLogger{sugar: l.Sugar(), level: cfg.Level}
}

func (l *zapLogger) DebugEnabled() bool {
	return l.level.Enabled(zapcore.DebugLevel)
}

func (l *zapLogger) SetDebug(enabled bool) {
	if enabled {
		l.level.SetLevel(zapcore.DebugLevel)
	} else {
		l.level.SetLevel(zapcore.InfoLevel)
	}
}

func (l *zapLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *zapLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *zapLogger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *zapLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }

type nopLogger struct{}

// NewNopLogger returns a logger that discards everything. Used as the World
// default so logging is strictly opt-in.
func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool             { return false }
func (nopLogger) SetDebug(enabled bool)          {}
func (nopLogger) Debugf(format string, a ...any) {}
func (nopLogger) Infof(format string, a ...any)  {}
func (nopLogger) Warnf(format string, a ...any)  {}
func (nopLogger) Errorf(format string, a ...any) {}
