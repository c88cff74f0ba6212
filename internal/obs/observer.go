// Package obs carries the observability publish points of the request
// core. The core calls an injected Observer unconditionally; the no-op
// implementation makes an unobserved request free.
package obs

// RequestEvent identifies the request an event belongs to.
type RequestEvent struct {
	Origin string
	Method string
	Path   string
}

// HeadersEvent is published when response headers arrive.
type HeadersEvent struct {
	RequestEvent
	StatusCode int
	StatusText string
	RawHeaders [][]byte
}

// TrailersEvent is published when a request completes.
type TrailersEvent struct {
	RequestEvent
	RawTrailers [][]byte
}

// ErrorEvent is published on every error delivery attempt, including
// redundant ones during transport teardown.
type ErrorEvent struct {
	RequestEvent
	Err error
}

// Observer receives lifecycle events. Implementations must not block and
// must not call back into the request.
type Observer interface {
	RequestCreated(e RequestEvent)
	RequestBodySent(e RequestEvent)
	ResponseHeaders(e HeadersEvent)
	ResponseTrailers(e TrailersEvent)
	RequestError(e ErrorEvent)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) RequestCreated(RequestEvent)    {}
func (NopObserver) RequestBodySent(RequestEvent)   {}
func (NopObserver) ResponseHeaders(HeadersEvent)   {}
func (NopObserver) ResponseTrailers(TrailersEvent) {}
func (NopObserver) RequestError(ErrorEvent)        {}
