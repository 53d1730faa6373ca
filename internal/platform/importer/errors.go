package importer

import (
	"errors"
	"fmt"
)

// AuthError means Splitwise rejected the user's API key. The import is
// terminal; the user must re-link their account.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// UpstreamError is any non-auth Splitwise failure (non-2xx response or an
// unusable payload). The status and a best-effort upstream message are kept
// for the client.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("splitwise API error: %d - %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("splitwise API error: %s", e.Message)
}

// TransportError is a network-level failure reaching Splitwise. Not retried;
// the whole import fails with a single terminal error.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to connect to Splitwise API: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// InvalidRangeError means a supplied date-filter bound did not parse as a
// calendar date. Rejected before any record is filtered.
type InvalidRangeError struct {
	Bound string // "start_date" or "end_date"
	Value string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid %s format: %q", e.Bound, e.Value)
}

// IsAuthError checks if an error is (or wraps) an AuthError
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsUpstreamError checks if an error is (or wraps) an UpstreamError
func IsUpstreamError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// IsTransportError checks if an error is (or wraps) a TransportError
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsInvalidRangeError checks if an error is (or wraps) an InvalidRangeError
func IsInvalidRangeError(err error) bool {
	var re *InvalidRangeError
	return errors.As(err, &re)
}
