// Package errs defines the error kinds surfaced by request construction
// and the request lifecycle.
package errs

// InvalidArgumentError reports malformed construction input: a bad path,
// method, header shape, body type, timeout or flag value.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return "undici: invalid argument: " + e.Message
}

// InvalidHeaderError reports a structurally plausible but protocol-illegal
// header name or value, including forbidden and duplicate sensitive headers.
type InvalidHeaderError struct {
	Message string
}

func (e *InvalidHeaderError) Error() string {
	return "undici: invalid header: " + e.Message
}

// NotSupportedError reports a feature the client refuses to implement.
type NotSupportedError struct {
	Message string
}

func (e *NotSupportedError) Error() string {
	return "undici: not supported: " + e.Message
}

// InvalidStateError reports an operation performed on an object whose state
// no longer permits it, e.g. consuming a one-shot body twice.
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return "undici: invalid state: " + e.Message
}

// AbortedError is the error delivered when a request is aborted without a
// more specific cause.
type AbortedError struct{}

func (e *AbortedError) Error() string {
	return "undici: request aborted"
}

func InvalidArgument(msg string) error { return &InvalidArgumentError{Message: msg} }
func InvalidHeader(msg string) error   { return &InvalidHeaderError{Message: msg} }
func NotSupported(msg string) error    { return &NotSupportedError{Message: msg} }
func InvalidState(msg string) error    { return &InvalidStateError{Message: msg} }
