package model

import (
	"io"

	"github.com/ToddyTheNoobDud/undici-experimental/internal/errs"
)

// Handler is the caller-facing sink for lifecycle events. Every handler
// must accept the connect notification and errors; the remaining
// capabilities are split off so that upgrade handlers need not fake a
// response surface.
//
// Handler methods report failure by returning an error. A returned error
// aborts the request it was delivered for.
type Handler interface {
	// OnConnect is called once a connection has been assigned. abort
	// cancels the request and may be retained past the call.
	OnConnect(abort func(error)) error

	// OnError delivers the terminal failure. It is called at most once
	// and must not fail.
	OnError(err error)
}

// ResponseHandler is required for every request that is neither an
// upgrade nor CONNECT. Headers and trailers cross the boundary as raw
// name/value byte pairs; header.ParseRaw decodes them.
type ResponseHandler interface {
	Handler
	OnHeaders(statusCode int, rawHeaders [][]byte, resume func(), statusText string) error
	OnData(chunk []byte) error
	OnComplete(rawTrailers [][]byte) error
}

// UpgradeHandler is required for upgrade and CONNECT requests.
type UpgradeHandler interface {
	Handler
	OnUpgrade(statusCode int, rawHeaders [][]byte, conn io.ReadWriteCloser) error
}

// Optional progress capabilities, asserted per call. Absence is a no-op.
type BodySentHandler interface {
	OnBodySent(chunk []byte) error
}

type RequestSentHandler interface {
	OnRequestSent() error
}

type ResponseStartedHandler interface {
	OnResponseStarted() error
}

func verifyHandler(h Handler, upgrade bool) error {
	if h == nil {
		return errs.InvalidArgument("handler must not be nil")
	}
	if upgrade {
		if _, ok := h.(UpgradeHandler); !ok {
			return errs.InvalidArgument("upgrade handler must implement OnUpgrade")
		}
		return nil
	}
	if _, ok := h.(ResponseHandler); !ok {
		return errs.InvalidArgument("handler must implement OnHeaders, OnData and OnComplete")
	}
	return nil
}
