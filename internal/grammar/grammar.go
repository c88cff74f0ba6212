// Package grammar holds the pure predicates deciding whether caller input
// is legal on an HTTP wire. They are the security boundary against header
// and request-target injection: reject on first violation, no repair.
package grammar

import (
	"unicode/utf8"

	"golang.org/x/net/http/httpguts"
)

// IsToken reports whether s is a non-empty RFC 7230 token, the grammar for
// header field names and request methods.
func IsToken(s string) bool {
	return httpguts.ValidHeaderFieldName(s)
}

// IsValidHeaderValue reports whether s is a legal header field value:
// TAB, 0x20-0x7E and 0x80-0xFF only. CR, LF and other control characters
// are rejected so a value can never split a header line.
func IsValidHeaderValue(s string) bool {
	return httpguts.ValidHeaderFieldValue(s)
}

// IsUSVString reports whether s is a sequence of Unicode scalar values,
// i.e. valid UTF-8 with no surrogate halves encoded into it.
func IsUSVString(s string) bool {
	return utf8.ValidString(s)
}
