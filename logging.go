package attrs

import "time"

// ResolveLogEvent describes one resolution attempt for logging: which
// attribute on which primitive type, the engine that ran (a Go rule, an
// expression engine, or the inheritance walk), where the value came from, and
// how long it took.
type ResolveLogEvent struct {
	Type     string
	Attr     string
	Engine   string
	Origin   Origin
	Duration time.Duration
	Err      error
}

// ResolveLogger records resolution events.
type ResolveLogger interface {
	LogResolve(ResolveLogEvent)
}

// ResolveLoggerFunc adapts a function to ResolveLogger.
type ResolveLoggerFunc func(ResolveLogEvent)

// LogResolve implements ResolveLogger.
func (f ResolveLoggerFunc) LogResolve(event ResolveLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopResolveLogger struct{}

func (noopResolveLogger) LogResolve(ResolveLogEvent) {}
