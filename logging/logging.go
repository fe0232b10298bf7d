// Package logging provides the leveled-logging hook that SchemaCollection,
// Serialiser and Deserialiser call into when a (de)serialisation decision is
// worth surfacing: a schema dedup hit, a skipped or defaulted Complex field,
// a zero-value substitution. None of these are errors — a SerialisationFault
// or DeserialisationFault is returned for those — they are the kind of
// "why did the wire form come out this way" detail a caller debugging a
// schema-compatibility mismatch wants without instrumenting every call site
// themselves.
package logging

import (
	"context"
	"fmt"
	"log"
)

// Classification categorizes a log entry by how noteworthy it is.
type Classification string

const (
	// Warn marks a decision a caller likely wants to know about even in
	// production, such as a schema being rebuilt under a new identifier.
	Warn Classification = "WARN"
	// Debug marks per-value detail only useful while diagnosing a specific
	// (de)serialisation, such as one skipped field or one defaulted field.
	Debug Classification = "DEBUG"
	// Trace marks schema-identity bookkeeping: interning, deduplication, and
	// two-phase bind placeholder resolution inside a SchemaCollection.
	Trace Classification = "TRACE"
)

// Logger receives classified, printf-style log entries.
type Logger interface {
	Logf(classification Classification, format string, v ...interface{})
}

// ContextLogger is an optional interface a Logger may implement to derive a
// request- or call-scoped Logger from a context.Context.
type ContextLogger interface {
	WithContext(context.Context) Logger
}

// WithContext returns logger bound to ctx if logger implements ContextLogger,
// or logger unchanged otherwise.
func WithContext(ctx context.Context, logger Logger) Logger {
	if cl, ok := logger.(ContextLogger); ok {
		return cl.WithContext(ctx)
	}
	return logger
}

// StandardLogger delegates to a standard library *log.Logger, prefixing each
// entry with its Classification.
type StandardLogger struct {
	Logger *log.Logger
}

// NewStandardLogger returns a StandardLogger writing through l, tagged so
// entries from this package are identifiable alongside a host application's
// own log output.
func NewStandardLogger(l *log.Logger) StandardLogger {
	return StandardLogger{Logger: l}
}

func (s StandardLogger) Logf(classification Classification, format string, v ...interface{}) {
	s.Logger.Output(2, fmt.Sprintf("msgpack-strict %s %s", classification, fmt.Sprintf(format, v...)))
}

// Noop is the default Logger for a SchemaCollection, Serialiser, or
// Deserialiser: every call is discarded without formatting its arguments.
type Noop struct{}

func (Noop) Logf(Classification, string, ...interface{}) {}
