package calculation

// Logger is a minimal logging interface for the calculators.
// Implementations should be fast; the default is a no-op. A *zap.SugaredLogger
// satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

func orNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}
