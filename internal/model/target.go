package model

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
	"golang.org/x/net/idna"

	"github.com/ToddyTheNoobDud/undici-experimental/internal/errs"
)

// parseOrigin validates an absolute http(s) origin and normalizes its
// host to the ASCII form that goes on the wire.
func parseOrigin(origin string) (string, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return "", errs.InvalidArgument("invalid origin: " + err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errs.InvalidArgument("origin scheme must be http or https")
	}
	if u.Host == "" {
		return "", errs.InvalidArgument("origin must include a host")
	}
	host, err := normalizeHost(u.Host)
	if err != nil {
		return "", err
	}
	return u.Scheme + "://" + host, nil
}

func normalizeHost(hostport string) (string, error) {
	host, port := hostport, ""
	if h, p, err := net.SplitHostPort(hostport); err == nil {
		host, port = h, p
	}
	ascii, err := idnaASCII(host)
	if err != nil {
		return "", errs.InvalidArgument("invalid origin host " + host)
	}
	if port != "" {
		ascii = net.JoinHostPort(ascii, port)
	} else if strings.Contains(ascii, ":") {
		// bare IPv6 literal keeps its brackets
		ascii = "[" + strings.Trim(ascii, "[]") + "]"
	}
	if !httpguts.ValidHostHeader(ascii) {
		return "", errs.InvalidArgument("invalid origin host " + hostport)
	}
	return ascii, nil
}

func idnaASCII(v string) (string, error) {
	if isASCII(v) {
		return v, nil
	}
	return idna.Lookup.ToASCII(v)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// validatePath enforces the request-target grammar: asterisk-form,
// absolute-form, origin-form starting with a slash, or anything for
// CONNECT which takes authority-form. Bytes outside 0x21-0xFF can never
// appear in a target.
func validatePath(path, method string) error {
	if path == "" {
		return errs.InvalidArgument("path must not be empty")
	}
	if path != "*" && path[0] != '/' && method != "CONNECT" &&
		!strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		return errs.InvalidArgument("path must be an absolute URL or start with a slash")
	}
	for _, r := range path {
		if r < 0x21 || r > 0xff {
			return errs.InvalidArgument("invalid request path")
		}
	}
	return nil
}

// buildTarget merges a query mapping into the request target. Passing a
// query alongside a path that already carries one is ambiguous and
// rejected rather than guessed at.
func buildTarget(path string, query url.Values) (string, error) {
	if len(query) == 0 {
		return path, nil
	}
	if strings.Contains(path, "?") {
		return "", errs.InvalidArgument(`query params cannot be passed when path already contains "?"`)
	}
	return path + "?" + query.Encode(), nil
}
