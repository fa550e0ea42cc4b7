package domain

import (
	"errors"
	"fmt"
)

// UpstreamError wraps any network, HTTP, parse, or credential failure from a
// named provider. Callers decide whether to fall back or surface it; the
// process never crashes on one.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s unavailable: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NewUpstreamError tags err with the provider it came from.
func NewUpstreamError(provider string, err error) *UpstreamError {
	return &UpstreamError{Provider: provider, Err: err}
}

// IsUpstream reports whether err is (or wraps) an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// InvalidRequestError marks malformed caller parameters. It is surfaced
// before any network call is made.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "invalid request: " + e.Reason
}

// NewInvalidRequest builds an InvalidRequestError with the given reason.
func NewInvalidRequest(reason string) *InvalidRequestError {
	return &InvalidRequestError{Reason: reason}
}

// IsInvalidRequest reports whether err is (or wraps) an InvalidRequestError.
func IsInvalidRequest(err error) bool {
	var ie *InvalidRequestError
	return errors.As(err, &ie)
}

// ErrNoData means the upstream call succeeded but returned nothing for the
// requested key.
var ErrNoData = errors.New("no data found")
