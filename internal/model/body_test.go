package model_test

import (
	"bytes"
	"errors"
	"io"
	"iter"
	"strings"
	"testing"

	"github.com/ToddyTheNoobDud/undici-experimental/internal/errs"
	"github.com/ToddyTheNoobDud/undici-experimental/internal/model"
)

type openerBody struct{ data string }

func (o openerBody) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(o.data)), nil
}

func bodyOf(t *testing.T, v interface{}) *model.Body {
	t.Helper()
	r, _ := mustRequest(t, "http://example.com", model.Options{Method: "POST", Path: "/", Body: v})
	return r.Body
}

func TestBodyClassification(t *testing.T) {
	cases := map[string]struct {
		body interface{}
		kind model.BodyKind
	}{
		"String":        {"hello", model.BodyBytes},
		"ByteSlice":     {[]byte("hello"), model.BodyBytes},
		"BytesBuffer":   {bytes.NewBufferString("hello"), model.BodyBytes},
		"BytesReader":   {bytes.NewReader([]byte("hello")), model.BodyBytes},
		"StringsReader": {strings.NewReader("hello"), model.BodyBytes},
		"Reader":        {io.NopCloser(strings.NewReader("hello")), model.BodyStream},
		"Sequence":      {iter.Seq[[]byte](func(yield func([]byte) bool) { yield([]byte("hello")) }), model.BodySequence},
		"Channel":       {make(chan []byte), model.BodySequence},
		"Opener":        {openerBody{data: "hello"}, model.BodyOpener},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			b := bodyOf(t, c.body)
			if b.Kind() != c.kind {
				t.Errorf("kind = %v, want %v", b.Kind(), c.kind)
			}
		})
	}
}

func TestEmptyBodiesNormalizeToNone(t *testing.T) {
	for name, v := range map[string]interface{}{
		"Nil":         nil,
		"EmptyString": "",
		"EmptyBytes":  []byte{},
		"EmptyBuffer": &bytes.Buffer{},
	} {
		t.Run(name, func(t *testing.T) {
			if b := bodyOf(t, v); b != nil {
				t.Errorf("body = %+v, want nil", b)
			}
		})
	}
}

func TestBodyBytesSnapshot(t *testing.T) {
	src := []byte("hello")
	b := bodyOf(t, src)
	src[0] = 'X'
	if string(b.Bytes()) != "hello" {
		t.Errorf("bytes = %q, caller mutation leaked in", b.Bytes())
	}
	if b.Size() != 5 {
		t.Errorf("size = %d", b.Size())
	}
}

func TestBodyStreamConsumedOnce(t *testing.T) {
	b := bodyOf(t, io.NopCloser(strings.NewReader("hello")))
	if _, err := b.Stream(); err != nil {
		t.Fatal(err)
	}
	_, err := b.Stream()
	var is *errs.InvalidStateError
	if !errors.As(err, &is) {
		t.Fatalf("second consumption: error = %v, want InvalidStateError", err)
	}
}

func TestBodySequenceConsumedOnce(t *testing.T) {
	seq := iter.Seq[[]byte](func(yield func([]byte) bool) {
		yield([]byte("a"))
		yield([]byte("b"))
	})
	b := bodyOf(t, seq)
	chunks, err := b.Chunks()
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for c := range chunks {
		got = append(got, string(c))
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("chunks = %v", got)
	}
	_, err = b.Chunks()
	var is *errs.InvalidStateError
	if !errors.As(err, &is) {
		t.Fatalf("second consumption: error = %v, want InvalidStateError", err)
	}
}

func TestBodyChannelDrains(t *testing.T) {
	ch := make(chan []byte, 2)
	ch <- []byte("x")
	ch <- []byte("y")
	close(ch)
	b := bodyOf(t, ch)
	chunks, err := b.Chunks()
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for c := range chunks {
		got = append(got, string(c))
	}
	if len(got) != 2 {
		t.Errorf("chunks = %v", got)
	}
}

func TestBodyOpenerReopens(t *testing.T) {
	b := bodyOf(t, openerBody{data: "again"})
	for i := 0; i < 2; i++ {
		rc, err := b.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		if string(data) != "again" {
			t.Errorf("read %d = %q", i, data)
		}
	}
}

type sizedReader struct{ io.Reader }

func (sizedReader) Size() int64 { return 42 }

func TestBodyStreamSize(t *testing.T) {
	b := bodyOf(t, sizedReader{strings.NewReader("ignored")})
	if b.Size() != 42 {
		t.Errorf("size = %d, want 42", b.Size())
	}
	b = bodyOf(t, io.NopCloser(strings.NewReader("x")))
	if b.Size() != -1 {
		t.Errorf("size = %d, want -1", b.Size())
	}
}
