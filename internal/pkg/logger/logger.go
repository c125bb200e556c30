// Package logger provides the application-wide Logger and its console and
// file implementations on top of log/slog.
package logger

// Logger defines the logging interface.
//
// Calls of the form Info("message", "key", value, ...) are emitted as a
// message with structured attributes; any other argument list is
// concatenated into the message.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})
}
