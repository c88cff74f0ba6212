// Package header implements the header-name canonicalizer, the ordered
// header table used by request construction, and the codecs for raw wire
// header pairs.
package header

import (
	"net/textproto"
	"strconv"
	"strings"

	"github.com/ToddyTheNoobDud/undici-experimental/internal/errs"
	"github.com/ToddyTheNoobDud/undici-experimental/internal/grammar"
)

// wellKnown lists the header names worth a table hit. Lookup must cover
// both the lowercase and the conventional wire casing of each name.
var wellKnown = []string{
	"accept",
	"accept-encoding",
	"accept-language",
	"accept-ranges",
	"access-control-allow-origin",
	"age",
	"authorization",
	"cache-control",
	"connection",
	"content-disposition",
	"content-encoding",
	"content-language",
	"content-length",
	"content-range",
	"content-type",
	"cookie",
	"date",
	"etag",
	"expect",
	"expires",
	"forwarded",
	"host",
	"if-match",
	"if-modified-since",
	"if-none-match",
	"if-range",
	"if-unmodified-since",
	"keep-alive",
	"last-modified",
	"location",
	"origin",
	"pragma",
	"proxy-authorization",
	"range",
	"referer",
	"retry-after",
	"server",
	"set-cookie",
	"te",
	"trailer",
	"transfer-encoding",
	"upgrade",
	"user-agent",
	"vary",
	"via",
}

var canonicalNames = func() map[string]string {
	m := make(map[string]string, len(wellKnown)*2)
	for _, lower := range wellKnown {
		m[lower] = lower
		m[textproto.CanonicalMIMEHeaderKey(lower)] = lower
	}
	return m
}()

// Canonicalize maps a header name to its canonical lowercase form. Names
// missing from the static table are lowercased generically and must be
// legal tokens.
func Canonicalize(name string) (string, error) {
	if c, ok := canonicalNames[name]; ok {
		return c, nil
	}
	if !grammar.IsToken(name) {
		return "", errs.InvalidHeader("invalid header name " + strconv.Quote(name))
	}
	return strings.ToLower(name), nil
}

// ValidateValues checks every element of a header value against the field
// value grammar. name is only used for the error message.
func ValidateValues(name string, values []string) error {
	for _, v := range values {
		if !grammar.IsValidHeaderValue(v) {
			return errs.InvalidHeader("invalid " + name + " header value")
		}
	}
	return nil
}
