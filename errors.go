package response

import "errors"

// Package-level errors for common failure scenarios
var (
	// ErrInvalidArgument indicates malformed header, cookie, link or body input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupportedConfiguration indicates an unknown sink kind or an unusable option.
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")
	// ErrNotFound indicates that a file to deliver does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStreamFailure indicates an I/O failure while streaming a body.
	ErrStreamFailure = errors.New("stream failure")
	// ErrFinalized indicates use of a response whose body was already ended.
	ErrFinalized = errors.New("response already finalized")
	// ErrHeadersSent indicates a header or status change after headers were flushed.
	ErrHeadersSent = errors.New("headers already sent")
)
