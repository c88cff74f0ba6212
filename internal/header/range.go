package header

import (
	"strconv"
	"strings"

	"github.com/ToddyTheNoobDud/undici-experimental/internal/errs"
)

// Range is a decoded bytes range. End and Size are -1 when the header left
// them out.
type Range struct {
	Start int64
	End   int64
	Size  int64
}

// ErrInvalidRange signals a malformed range header, as opposed to an
// absent one which parses to the zero range.
var ErrInvalidRange = errs.InvalidHeader("invalid range header")

// ParseRange parses "bytes=<start>-<end>/<size>" where <end> and <size>
// are optional. An absent header yields {0, -1, -1}.
func ParseRange(s string) (Range, error) {
	if s == "" {
		return Range{Start: 0, End: -1, Size: -1}, nil
	}
	rest, ok := strings.CutPrefix(s, "bytes=")
	if !ok {
		return Range{}, ErrInvalidRange
	}
	startStr, rest, ok := strings.Cut(rest, "-")
	if !ok {
		return Range{}, ErrInvalidRange
	}
	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 0 {
		return Range{}, ErrInvalidRange
	}
	endStr, sizeStr, hasSize := strings.Cut(rest, "/")
	end, size := int64(-1), int64(-1)
	if endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil || end < 0 {
			return Range{}, ErrInvalidRange
		}
	}
	if hasSize {
		size, err = strconv.ParseInt(sizeStr, 10, 64)
		if err != nil || size < 0 {
			return Range{}, ErrInvalidRange
		}
	}
	return Range{Start: start, End: end, Size: size}, nil
}
