package obs

import "log"

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is a minimal logging interface for observability bridges.
type Logger interface {
	Logf(level Level, format string, args ...interface{})
}

// StdLogger adapts the standard library logger.
type StdLogger struct {
	L   *log.Logger
	Min Level
}

func (s StdLogger) Logf(level Level, format string, args ...interface{}) {
	if s.L == nil || level < s.Min {
		return
	}
	s.L.Printf("[%s] "+format, append([]interface{}{level.String()}, args...)...)
}

// LogObserver bridges lifecycle events onto a Logger.
type LogObserver struct {
	L Logger
}

func (o LogObserver) RequestCreated(e RequestEvent) {
	o.L.Logf(Debug, "request created %s %s %s", e.Method, e.Origin, e.Path)
}

func (o LogObserver) RequestBodySent(e RequestEvent) {
	o.L.Logf(Debug, "request body sent %s %s %s", e.Method, e.Origin, e.Path)
}

func (o LogObserver) ResponseHeaders(e HeadersEvent) {
	o.L.Logf(Debug, "response headers %d for %s %s %s", e.StatusCode, e.Method, e.Origin, e.Path)
}

func (o LogObserver) ResponseTrailers(e TrailersEvent) {
	o.L.Logf(Debug, "response trailers for %s %s %s", e.Method, e.Origin, e.Path)
}

func (o LogObserver) RequestError(e ErrorEvent) {
	o.L.Logf(Error, "request errored %s %s %s: %v", e.Method, e.Origin, e.Path, e.Err)
}
