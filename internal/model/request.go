package model

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ToddyTheNoobDud/undici-experimental/internal/errs"
	"github.com/ToddyTheNoobDud/undici-experimental/internal/grammar"
	"github.com/ToddyTheNoobDud/undici-experimental/internal/header"
	"github.com/ToddyTheNoobDud/undici-experimental/internal/obs"
)

// Options carries the caller-supplied request configuration. Headers
// accepts nil, an even-length []string of alternating names and values,
// a map[string]string, a map[string][]string or an http.Header.
type Options struct {
	Method string
	Path   string
	Query  url.Values

	Headers interface{}
	Body    interface{}

	// Upgrade names the protocol to switch to, empty for none.
	Upgrade string

	HeadersTimeout time.Duration
	BodyTimeout    time.Duration

	// Idempotent defaults to true for GET and HEAD when left nil.
	Idempotent *bool
	Blocking   bool
	// Reset is tri-state: nil leaves the decision to the transport.
	Reset *bool

	// ExpectContinue and ThrowOnError exist for surface compatibility
	// and must be left unset.
	ExpectContinue bool
	ThrowOnError   bool

	// Observer receives the lifecycle publish points. Nil means no-op.
	Observer obs.Observer
}

// Request is one fully validated outbound request. It is immutable after
// construction except for the lifecycle state driven by the transport.
type Request struct {
	Origin  string
	Method  string
	Path    string
	Upgrade string

	Idempotent bool
	Blocking   bool
	Reset      *bool

	HeadersTimeout time.Duration
	BodyTimeout    time.Duration

	// Single-assignment fields captured during header processing.
	Host          string
	ContentLength int64 // -1 when unknown
	ContentType   string

	Headers *header.Table
	Body    *Body

	handler  Handler
	observer obs.Observer

	completed  bool
	aborted    bool
	abort      func(error)
	pendingErr error
	unwatch    func()
}

// NewRequest validates all construction input and assembles the request
// descriptor. Any validation failure is fatal: no partial request is
// returned.
func NewRequest(origin string, opts Options, handler Handler) (*Request, error) {
	if opts.ExpectContinue {
		return nil, errs.InvalidArgument("expectContinue is not supported")
	}
	if opts.ThrowOnError {
		return nil, errs.InvalidArgument("throwOnError is not supported")
	}
	if opts.Method == "" || !grammar.IsToken(opts.Method) {
		return nil, errs.InvalidArgument("invalid request method")
	}
	if opts.Upgrade != "" && !grammar.IsUSVString(opts.Upgrade) {
		return nil, errs.InvalidArgument("invalid upgrade protocol")
	}
	if opts.HeadersTimeout < 0 {
		return nil, errs.InvalidArgument("invalid headersTimeout")
	}
	if opts.BodyTimeout < 0 {
		return nil, errs.InvalidArgument("invalid bodyTimeout")
	}
	path, err := buildTarget(opts.Path, opts.Query)
	if err != nil {
		return nil, err
	}
	if err := validatePath(path, opts.Method); err != nil {
		return nil, err
	}
	parsedOrigin, err := parseOrigin(origin)
	if err != nil {
		return nil, err
	}
	upgrade := opts.Upgrade != "" || opts.Method == "CONNECT"
	if err := verifyHandler(handler, upgrade); err != nil {
		return nil, err
	}

	observer := opts.Observer
	if observer == nil {
		observer = obs.NopObserver{}
	}
	r := &Request{
		Origin:         parsedOrigin,
		Method:         opts.Method,
		Path:           path,
		Upgrade:        opts.Upgrade,
		Idempotent:     idempotentDefault(opts.Idempotent, opts.Method),
		Blocking:       opts.Blocking,
		Reset:          opts.Reset,
		HeadersTimeout: opts.HeadersTimeout,
		BodyTimeout:    opts.BodyTimeout,
		ContentLength:  -1,
		Headers:        header.NewTable(),
		handler:        handler,
		observer:       observer,
	}
	if err := r.processHeaders(opts.Headers); err != nil {
		return nil, err
	}
	body, err := classifyBody(opts.Body)
	if err != nil {
		return nil, err
	}
	r.Body = body
	if body != nil && body.kind == BodyStream {
		if n, ok := body.stream.(ErrorNotifier); ok {
			r.unwatch = n.Subscribe(r.abortWith)
		}
	}
	r.observer.RequestCreated(r.event())
	return r, nil
}

func idempotentDefault(v *bool, method string) bool {
	if v != nil {
		return *v
	}
	return method == "GET" || method == "HEAD"
}

func (r *Request) event() obs.RequestEvent {
	return obs.RequestEvent{Origin: r.Origin, Method: r.Method, Path: r.Path}
}

// processHeaders dispatches the accepted header input shapes onto
// processHeader. Map shapes are walked in sorted key order so that
// construction is deterministic.
func (r *Request) processHeaders(headers interface{}) error {
	switch h := headers.(type) {
	case nil:
		return nil
	case []string:
		if len(h)%2 != 0 {
			return errs.InvalidArgument("headers slice must be even")
		}
		for i := 0; i < len(h); i += 2 {
			if err := r.processHeader(h[i], []string{h[i+1]}); err != nil {
				return err
			}
		}
		return nil
	case map[string]string:
		for _, k := range sortedKeys(h) {
			if err := r.processHeader(k, []string{h[k]}); err != nil {
				return err
			}
		}
		return nil
	case map[string][]string:
		return r.processHeaderMap(h)
	case http.Header:
		return r.processHeaderMap(h)
	default:
		return errs.InvalidArgument("headers must be an even-length string slice or a string map")
	}
}

func (r *Request) processHeaderMap(h map[string][]string) error {
	for _, k := range sortedKeys(h) {
		if h[k] == nil {
			// unset value, permits conditional header construction
			continue
		}
		if err := r.processHeader(k, h[k]); err != nil {
			return err
		}
	}
	return nil
}

// processHeader canonicalizes and validates one header line, then either
// captures it into a single-assignment field or stores it in the table.
// The sensitive triad is first-wins; everything else is last-write-wins
// per distinct original key.
func (r *Request) processHeader(name string, values []string) error {
	canon, err := header.Canonicalize(name)
	if err != nil {
		return err
	}
	if err := header.ValidateValues(canon, values); err != nil {
		return err
	}
	switch canon {
	case "host":
		if r.Host == "" && len(values) == 1 {
			r.Host = values[0]
		}
	case "content-length":
		if r.ContentLength == -1 {
			n, err := parseLeadingInt(first(values))
			if err != nil {
				return errs.InvalidHeader("invalid content-length header")
			}
			r.ContentLength = n
		}
	case "content-type":
		if r.ContentType == "" {
			r.ContentType = first(values)
			r.Headers.Set(name, values)
		}
	case "transfer-encoding", "keep-alive", "upgrade":
		// derived by the transport from framing decisions, a caller
		// value would desynchronize it
		return errs.InvalidHeader("invalid " + canon + " header")
	case "connection":
		switch strings.ToLower(first(values)) {
		case "close":
			t := true
			r.Reset = &t
		case "keep-alive":
		default:
			return errs.InvalidHeader("invalid connection header")
		}
	case "expect":
		return errs.NotSupported("expect header is not supported")
	default:
		r.Headers.Set(name, values)
	}
	return nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// parseLeadingInt parses the leading decimal digits of s, matching the
// lenient integer prefix rule for content-length values.
func parseLeadingInt(s string) (int64, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return strconv.ParseInt(s[:i], 10, 64)
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
