// Package logging decouples the application from the logging framework.
// Components receive a Logger through their constructors; the production
// implementation is backed by logrus and tests use MockLogger.
package logging

// Logger is the structured logger used throughout history-csv.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a logger that attaches err to every entry.
	WithError(err error) Logger

	// WithField returns a logger that attaches a single field to every entry.
	WithField(key string, value interface{}) Logger

	// WithFields returns a logger that attaches fields to every entry.
	WithFields(fields ...Field) Logger

	// Fatal logs at fatal level and exits the program.
	Fatal(msg string, fields ...Field)

	// Fatalf logs a formatted message at fatal level and exits the program.
	Fatalf(msg string, args ...interface{})
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
