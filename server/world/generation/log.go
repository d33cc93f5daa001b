package generation

import "github.com/sirupsen/logrus"

// Logger is the narrow logging contract the generator needs. *logrus.Logger satisfies it directly.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// nopLogger discards everything logged to it. It is used when no Logger is supplied to Start.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// defaultLogger returns a ready-to-use *logrus.Logger with sensible defaults, for callers that don't
// want to configure their own.
func defaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	return l
}
