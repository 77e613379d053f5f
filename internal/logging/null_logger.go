package logging

// NullLogger drops everything. Tests use it so assertion output is not
// buried under run progress.
type NullLogger struct{}

// NewNullLogger creates a NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...any) {}

func (l *NullLogger) Info(format string, args ...any) {}

func (l *NullLogger) Error(format string, args ...any) {}
