// Package undici is the request-construction and validation core of an
// HTTP client. It turns caller input into a protocol-legal request
// descriptor and drives its lifecycle events to a handler; the transport
// and wire codecs live outside this module.
package undici

import (
	"github.com/ToddyTheNoobDud/undici-experimental/internal/errs"
	"github.com/ToddyTheNoobDud/undici-experimental/internal/header"
	"github.com/ToddyTheNoobDud/undici-experimental/internal/model"
	"github.com/ToddyTheNoobDud/undici-experimental/internal/obs"
)

type Request = model.Request
type Options = model.Options
type Body = model.Body
type BodyKind = model.BodyKind
type Opener = model.Opener
type ErrorNotifier = model.ErrorNotifier

const (
	BodyNone     = model.BodyNone
	BodyBytes    = model.BodyBytes
	BodyStream   = model.BodyStream
	BodySequence = model.BodySequence
	BodyOpener   = model.BodyOpener
)

type Handler = model.Handler
type ResponseHandler = model.ResponseHandler
type UpgradeHandler = model.UpgradeHandler

type HeaderTable = header.Table
type HeaderEntry = header.Entry
type Range = header.Range

type Observer = obs.Observer
type NopObserver = obs.NopObserver

type InvalidArgumentError = errs.InvalidArgumentError
type InvalidHeaderError = errs.InvalidHeaderError
type NotSupportedError = errs.NotSupportedError
type InvalidStateError = errs.InvalidStateError
type AbortedError = errs.AbortedError

// NewRequest validates origin, options and handler capabilities and
// returns the immutable request descriptor, or fails without side
// effects.
func NewRequest(origin string, opts Options, handler Handler) (*Request, error) {
	return model.NewRequest(origin, opts, handler)
}

// ParseRawHeaders decodes wire-format name/value byte pairs.
func ParseRawHeaders(pairs [][]byte) (*HeaderTable, error) {
	return header.ParseRaw(pairs)
}

// ParseRangeHeader parses a bytes range header.
func ParseRangeHeader(s string) (Range, error) {
	return header.ParseRange(s)
}
