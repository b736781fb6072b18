package logger

import (
	"github.com/uber-common/bark"
)

// Similar to bark.Logger but with an extra Trace method, and with
// WithField/WithFields narrowed to return Logger instead of bark.Logger so
// that named loggers can be chained.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Panic(args ...interface{})
	Panicf(format string, args ...interface{})
	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger
	Fields() bark.Fields
	// Forwards to Debug
	Trace(args ...interface{})
	Tracef(format string, args ...interface{})
}
