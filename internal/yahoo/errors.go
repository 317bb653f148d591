package yahoo

import (
	"errors"
	"fmt"
)

// ErrNoData indicates the upstream returned an empty table or result
// set. This is the normal "no data" outcome, not a fault.
var ErrNoData = errors.New("yahoo: no data")

// RequestError wraps a transport-level failure (connection, timeout,
// non-2xx status).
type RequestError struct {
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("yahoo: request %s: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// DecodeError wraps a malformed or unparseable response body.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("yahoo: decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// APIError carries an error object returned inside a response envelope.
type APIError struct {
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yahoo: API error %s: %s", e.Code, e.Description)
}
