package model_test

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/ToddyTheNoobDud/undici-experimental/internal/model"
	"github.com/ToddyTheNoobDud/undici-experimental/internal/obs"
)

// notifyingBody is a body stream that can fail asynchronously.
type notifyingBody struct {
	*strings.Reader

	mu       sync.Mutex
	fn       func(error)
	detached bool
}

func (n *notifyingBody) Subscribe(fn func(error)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.fn = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		n.detached = true
		n.fn = nil
	}
}

func (n *notifyingBody) Fail(err error) {
	n.mu.Lock()
	fn := n.fn
	n.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

func newNotifyingBody(s string) *notifyingBody {
	return &notifyingBody{Reader: strings.NewReader(s)}
}

func TestLifecycleHappyPath(t *testing.T) {
	r, h := mustRequest(t, "http://example.com", model.Options{Method: "GET", Path: "/"})

	r.OnConnect(func(error) { t.Fatal("abort called on happy path") })
	r.OnRequestSent()
	r.OnResponseStarted()
	r.OnHeaders(200, nil, func() {}, "OK")
	r.OnData([]byte("chunk"))
	r.OnComplete(nil)

	want := []string{"OnConnect", "OnRequestSent", "OnResponseStarted", "OnHeaders", "OnData", "OnComplete"}
	if !reflect.DeepEqual(h.calls, want) {
		t.Errorf("calls = %v, want %v", h.calls, want)
	}
	if !r.Completed() || r.Aborted() {
		t.Errorf("completed = %v, aborted = %v", r.Completed(), r.Aborted())
	}
}

func TestOnErrorIdempotent(t *testing.T) {
	r, h := mustRequest(t, "http://example.com", model.Options{Method: "GET", Path: "/"})
	boom := errors.New("boom")

	r.OnError(boom)
	r.OnError(errors.New("second"))

	if len(h.errs) != 1 || h.errs[0] != boom {
		t.Errorf("errs = %v, want just boom", h.errs)
	}
	if !r.Aborted() || r.Completed() {
		t.Errorf("completed = %v, aborted = %v", r.Completed(), r.Aborted())
	}
}

func TestTerminalStatesAreExclusive(t *testing.T) {
	r, h := mustRequest(t, "http://example.com", model.Options{Method: "GET", Path: "/"})
	r.OnComplete(nil)
	r.OnError(errors.New("late teardown error"))
	if r.Aborted() {
		t.Error("completed request became aborted")
	}
	if len(h.errs) != 0 {
		t.Errorf("handler saw error after completion: %v", h.errs)
	}
}

func TestEventsAfterTerminalPanic(t *testing.T) {
	ops := map[string]func(*model.Request){
		"OnConnect":  func(r *model.Request) { r.OnConnect(func(error) {}) },
		"OnHeaders":  func(r *model.Request) { r.OnHeaders(200, nil, func() {}, "OK") },
		"OnData":     func(r *model.Request) { r.OnData(nil) },
		"OnUpgrade":  func(r *model.Request) { r.OnUpgrade(101, nil, nil) },
		"OnComplete": func(r *model.Request) { r.OnComplete(nil) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			r, _ := mustRequest(t, "http://example.com", model.Options{Method: "GET", Path: "/"})
			r.OnError(errors.New("done"))
			defer func() {
				if recover() == nil {
					t.Errorf("%s after terminal did not panic", name)
				}
			}()
			op(r)
		})
	}
}

func TestDeferredBodyError(t *testing.T) {
	body := newNotifyingBody("data")
	r, h := mustRequest(t, "http://example.com", model.Options{Method: "POST", Path: "/", Body: body})

	boom := errors.New("stream broke early")
	body.Fail(boom)

	var aborted error
	r.OnConnect(func(err error) { aborted = err })

	if aborted != boom {
		t.Errorf("abort got %v, want %v", aborted, boom)
	}
	if len(h.calls) != 0 {
		t.Errorf("handler.OnConnect forwarded despite deferred error: %v", h.calls)
	}
}

func TestBodyErrorAfterConnectAborts(t *testing.T) {
	body := newNotifyingBody("data")
	r, _ := mustRequest(t, "http://example.com", model.Options{Method: "POST", Path: "/", Body: body})

	var aborted error
	r.OnConnect(func(err error) { aborted = err })

	boom := errors.New("stream broke late")
	body.Fail(boom)
	if aborted != boom {
		t.Errorf("abort got %v, want %v", aborted, boom)
	}
}

func TestBodyObserverDetachedOnTerminal(t *testing.T) {
	body := newNotifyingBody("data")
	r, _ := mustRequest(t, "http://example.com", model.Options{Method: "POST", Path: "/", Body: body})
	r.OnConnect(func(error) {})
	r.OnComplete(nil)
	if !body.detached {
		t.Error("body subscription still attached after completion")
	}
	// a late failure must be inert
	body.Fail(errors.New("too late"))
	if r.Aborted() {
		t.Error("detached body error aborted the request")
	}
}

func TestHandlerErrorRoutesToAbort(t *testing.T) {
	r, h := mustRequest(t, "http://example.com", model.Options{Method: "GET", Path: "/"})
	boom := errors.New("handler refused")
	h.failOn, h.failErr = "OnHeaders", boom

	var aborted error
	r.OnConnect(func(err error) { aborted = err })
	r.OnHeaders(200, nil, func() {}, "OK")

	if aborted != boom {
		t.Errorf("abort got %v, want %v", aborted, boom)
	}
}

func TestUpgradeFlow(t *testing.T) {
	r, h := mustRequest(t, "http://example.com", model.Options{Method: "GET", Path: "/", Upgrade: "websocket"})
	r.OnConnect(func(error) {})
	r.OnUpgrade(101, nil, nil)
	want := []string{"OnConnect", "OnUpgrade"}
	if !reflect.DeepEqual(h.calls, want) {
		t.Errorf("calls = %v, want %v", h.calls, want)
	}
}

// countingObserver tallies publish-point hits.
type countingObserver struct {
	created, bodySent, headers, trailers, errored int
}

func (o *countingObserver) RequestCreated(obs.RequestEvent)    { o.created++ }
func (o *countingObserver) RequestBodySent(obs.RequestEvent)   { o.bodySent++ }
func (o *countingObserver) ResponseHeaders(obs.HeadersEvent)   { o.headers++ }
func (o *countingObserver) ResponseTrailers(obs.TrailersEvent) { o.trailers++ }
func (o *countingObserver) RequestError(obs.ErrorEvent)        { o.errored++ }

func TestObserverPublishPoints(t *testing.T) {
	o := &countingObserver{}
	r, _ := mustRequest(t, "http://example.com", model.Options{Method: "GET", Path: "/", Observer: o})

	r.OnConnect(func(error) {})
	r.OnRequestSent()
	r.OnHeaders(200, nil, func() {}, "OK")
	r.OnComplete(nil)
	// redundant teardown error still publishes
	r.OnError(errors.New("late"))

	want := countingObserver{created: 1, bodySent: 1, headers: 1, trailers: 1, errored: 1}
	if *o != want {
		t.Errorf("observer = %+v, want %+v", *o, want)
	}
}
