package model

import (
	"io"

	"github.com/ToddyTheNoobDud/undici-experimental/internal/errs"
	"github.com/ToddyTheNoobDud/undici-experimental/internal/obs"
)

// The lifecycle methods below are invoked synchronously by the transport
// layer. Calling one on an already-terminal request is a transport bug,
// not bad input, and trips a non-recoverable assertion.

// Completed reports whether the request reached terminal success.
func (r *Request) Completed() bool { return r.completed }

// Aborted reports whether the request reached terminal failure.
func (r *Request) Aborted() bool { return r.aborted }

// OnConnect installs the transport abort capability. A body error
// recorded before any capability existed short-circuits the handler
// notification into an immediate abort.
func (r *Request) OnConnect(abort func(error)) {
	r.assertActive("OnConnect")
	if r.pendingErr != nil {
		abort(r.pendingErr)
		return
	}
	r.abort = abort
	if err := r.handler.OnConnect(abort); err != nil {
		abort(err)
	}
}

// OnBodySent reports a written body chunk. Forwarded unconditionally.
func (r *Request) OnBodySent(chunk []byte) {
	if h, ok := r.handler.(BodySentHandler); ok {
		if err := h.OnBodySent(chunk); err != nil {
			r.abortWith(err)
		}
	}
}

// OnRequestSent reports the fully written request.
func (r *Request) OnRequestSent() {
	r.observer.RequestBodySent(r.event())
	if h, ok := r.handler.(RequestSentHandler); ok {
		if err := h.OnRequestSent(); err != nil {
			r.abortWith(err)
		}
	}
}

// OnResponseStarted reports the first response byte.
func (r *Request) OnResponseStarted() {
	if h, ok := r.handler.(ResponseStartedHandler); ok {
		if err := h.OnResponseStarted(); err != nil {
			r.abortWith(err)
		}
	}
}

// OnHeaders delivers the response status line and raw header pairs.
// resume restarts a transport paused by backpressure.
func (r *Request) OnHeaders(statusCode int, rawHeaders [][]byte, resume func(), statusText string) {
	r.assertActive("OnHeaders")
	r.observer.ResponseHeaders(obs.HeadersEvent{
		RequestEvent: r.event(),
		StatusCode:   statusCode,
		StatusText:   statusText,
		RawHeaders:   rawHeaders,
	})
	if h, ok := r.handler.(ResponseHandler); ok {
		if err := h.OnHeaders(statusCode, rawHeaders, resume, statusText); err != nil {
			r.abortWith(err)
		}
	}
}

// OnData delivers one response body chunk.
func (r *Request) OnData(chunk []byte) {
	r.assertActive("OnData")
	if h, ok := r.handler.(ResponseHandler); ok {
		if err := h.OnData(chunk); err != nil {
			r.abortWith(err)
		}
	}
}

// OnUpgrade hands the raw connection to an upgrade or CONNECT handler.
func (r *Request) OnUpgrade(statusCode int, rawHeaders [][]byte, conn io.ReadWriteCloser) {
	r.assertActive("OnUpgrade")
	if h, ok := r.handler.(UpgradeHandler); ok {
		if err := h.OnUpgrade(statusCode, rawHeaders, conn); err != nil {
			r.abortWith(err)
		}
	}
}

// OnComplete marks terminal success and delivers the raw trailer pairs.
func (r *Request) OnComplete(rawTrailers [][]byte) {
	r.finalize()
	r.assertActive("OnComplete")
	r.completed = true
	r.observer.ResponseTrailers(obs.TrailersEvent{
		RequestEvent: r.event(),
		RawTrailers:  rawTrailers,
	})
	if h, ok := r.handler.(ResponseHandler); ok {
		if err := h.OnComplete(rawTrailers); err != nil {
			// already terminal, nowhere to route the failure
			r.abortWith(err)
		}
	}
}

// OnError marks terminal failure. Transports may call it repeatedly
// during teardown; every call past the first is a silent no-op.
func (r *Request) OnError(err error) {
	r.finalize()
	r.observer.RequestError(obs.ErrorEvent{RequestEvent: r.event(), Err: err})
	if r.aborted || r.completed {
		return
	}
	r.aborted = true
	r.handler.OnError(err)
}

// abortWith routes an error into the transport abort capability,
// deferring it until one exists. First error wins; terminal requests
// swallow it.
func (r *Request) abortWith(err error) {
	if err == nil {
		err = &errs.AbortedError{}
	}
	if r.completed || r.aborted {
		return
	}
	if r.abort != nil {
		r.abort(err)
		return
	}
	if r.pendingErr == nil {
		r.pendingErr = err
	}
}

// finalize releases the body error subscription. Runs on every terminal
// transition so a body stream never outlives its request reference.
func (r *Request) finalize() {
	if r.unwatch != nil {
		r.unwatch()
		r.unwatch = nil
	}
}

func (r *Request) assertActive(op string) {
	if r.aborted {
		panic("undici: " + op + " called on aborted request")
	}
	if r.completed {
		panic("undici: " + op + " called on completed request")
	}
}
