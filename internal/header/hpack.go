package header

import (
	"bytes"

	"golang.org/x/net/http2/hpack"
)

// DecodeBlock decodes an HPACK header block fragment into raw name/value
// byte pairs, ready for ParseRaw. The HTTP/2 counterpart of the HTTP/1
// wire pair format.
func DecodeBlock(block []byte) ([][]byte, error) {
	var pairs [][]byte
	dec := hpack.NewDecoder(4096, func(f hpack.HeaderField) {
		pairs = append(pairs, []byte(f.Name), []byte(f.Value))
	})
	if _, err := dec.Write(block); err != nil {
		return nil, err
	}
	if err := dec.Close(); err != nil {
		return nil, err
	}
	return pairs, nil
}

// EncodeBlock encodes header entries into an HPACK block fragment.
func EncodeBlock(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	enc := hpack.NewEncoder(&buf)
	for _, e := range entries {
		for _, v := range e.Values {
			if err := enc.WriteField(hpack.HeaderField{Name: e.Name, Value: v}); err != nil {
				return nil, err
			}
		}
	}
	return buf.Bytes(), nil
}
