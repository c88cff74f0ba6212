package model

import (
	"bytes"
	"io"
	"iter"
	"strings"
	"sync/atomic"

	"github.com/ToddyTheNoobDud/undici-experimental/internal/errs"
)

// BodyKind is the closed set of body classifications.
type BodyKind int

const (
	// BodyNone marks an absent body. Empty payloads normalize to it.
	BodyNone BodyKind = iota
	// BodyBytes is an immutable in-memory payload of known length.
	BodyBytes
	// BodyStream is a reader drained exactly once by the transport.
	BodyStream
	// BodySequence is a chunk iterator drained exactly once.
	BodySequence
	// BodyOpener is a lazily opened, re-openable payload (file or
	// form-style bodies).
	BodyOpener
)

// Opener is a body that the transport opens lazily, possibly more than
// once across retries of an idempotent request.
type Opener interface {
	Open() (io.ReadCloser, error)
}

// ErrorNotifier is implemented by body streams that can fail
// asynchronously, outside a Read call. Subscribe registers fn and returns
// a cancel func detaching it again.
type ErrorNotifier interface {
	Subscribe(fn func(error)) (cancel func())
}

// Body is a classified request body. Exactly one of the kind-specific
// accessors is meaningful, selected by Kind.
type Body struct {
	kind   BodyKind
	data   []byte
	stream io.Reader
	seq    iter.Seq[[]byte]
	opener Opener

	used atomic.Bool
}

func (b *Body) Kind() BodyKind {
	if b == nil {
		return BodyNone
	}
	return b.kind
}

// Bytes returns the in-memory payload for BodyBytes.
func (b *Body) Bytes() []byte { return b.data }

// Size returns the payload length, or -1 when it is not known up front.
func (b *Body) Size() int64 {
	switch b.Kind() {
	case BodyNone:
		return 0
	case BodyBytes:
		return int64(len(b.data))
	case BodyStream:
		if s, ok := b.stream.(interface{ Size() int64 }); ok {
			return s.Size()
		}
	}
	return -1
}

// Stream hands out the reader of a BodyStream. A second call fails with
// InvalidState: the reader's position is gone after the first consumer.
func (b *Body) Stream() (io.Reader, error) {
	if err := b.consume(); err != nil {
		return nil, err
	}
	return b.stream, nil
}

// Chunks hands out the chunk iterator of a BodySequence, at most once.
func (b *Body) Chunks() (iter.Seq[[]byte], error) {
	if err := b.consume(); err != nil {
		return nil, err
	}
	return b.seq, nil
}

// Open opens a BodyOpener payload. Openers are re-openable, so Open is
// not gated by the one-shot guard.
func (b *Body) Open() (io.ReadCloser, error) {
	return b.opener.Open()
}

func (b *Body) consume() error {
	if !b.used.CompareAndSwap(false, true) {
		return errs.InvalidState("body already used")
	}
	return nil
}

// classifyBody maps a caller-supplied body value onto the closed body
// set. In-memory values are snapshotted into immutable buffers; empty
// payloads normalize to nil.
func classifyBody(v interface{}) (*Body, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case string:
		return bytesBody([]byte(b)), nil
	case []byte:
		return bytesBody(bytes.Clone(b)), nil
	case *bytes.Buffer:
		return bytesBody(bytes.Clone(b.Bytes())), nil
	case *bytes.Reader:
		snapshot := *b
		data, _ := io.ReadAll(&snapshot)
		return bytesBody(data), nil
	case *strings.Reader:
		snapshot := *b
		data, _ := io.ReadAll(&snapshot)
		return bytesBody(data), nil
	case iter.Seq[[]byte]:
		return &Body{kind: BodySequence, seq: b}, nil
	case func(func([]byte) bool):
		return &Body{kind: BodySequence, seq: b}, nil
	case chan []byte:
		return &Body{kind: BodySequence, seq: chanSeq(b)}, nil
	case <-chan []byte:
		return &Body{kind: BodySequence, seq: chanSeq(b)}, nil
	case io.Reader:
		return &Body{kind: BodyStream, stream: b}, nil
	case Opener:
		return &Body{kind: BodyOpener, opener: b}, nil
	default:
		return nil, errs.InvalidArgument("body must be a string, a byte slice, a reader, a chunk sequence or an openable payload")
	}
}

func bytesBody(data []byte) *Body {
	if len(data) == 0 {
		return nil
	}
	return &Body{kind: BodyBytes, data: data}
}

func chanSeq(ch <-chan []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for chunk := range ch {
			if !yield(chunk) {
				return
			}
		}
	}
}
