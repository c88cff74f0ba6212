package header

import (
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/ToddyTheNoobDud/undici-experimental/internal/errs"
)

// ParseRaw decodes an alternating sequence of name/value byte pairs, as
// produced by the wire parser, into an ordered table. Names are lowercased
// and repeated names merge their values in first-seen order.
//
// When both content-length and content-disposition are present, the
// content-disposition value is transcoded byte-for-byte through Latin-1
// instead of taken verbatim. Servers put raw filename bytes there and an
// exact byte mapping to U+00XX keeps them recoverable.
func ParseRaw(pairs [][]byte) (*Table, error) {
	if len(pairs)%2 != 0 {
		return nil, errs.InvalidArgument("raw headers must come in name/value pairs")
	}
	t := NewTable()
	for i := 0; i < len(pairs); i += 2 {
		t.Add(strings.ToLower(string(pairs[i])), string(pairs[i+1]))
	}
	if _, ok := t.Get("content-length"); ok {
		if i, ok := t.index["content-disposition"]; ok {
			e := &t.entries[i]
			for j, v := range e.Values {
				latin1, err := charmap.ISO8859_1.NewDecoder().String(v)
				if err != nil {
					return nil, err
				}
				e.Values[j] = latin1
			}
		}
	}
	return t, nil
}

// EncodeRaw is the inverse of ParseRaw: every value becomes its own
// name/value byte pair, in table order.
func EncodeRaw(entries []Entry) [][]byte {
	pairs := make([][]byte, 0, len(entries)*2)
	for _, e := range entries {
		for _, v := range e.Values {
			pairs = append(pairs, []byte(e.Name), []byte(v))
		}
	}
	return pairs
}
