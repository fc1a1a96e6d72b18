package cryptofolio

import "errors"

var (
	// ErrNetworkFailure is returned when a remote call fails, times out or
	// answers with a non-2xx status.
	ErrNetworkFailure = errors.New("network failure")
	// ErrMalformedResponse is returned when a response body is not valid JSON.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrDivisionByZero is returned when a percentage is computed against a
	// zero initial investment.
	ErrDivisionByZero = errors.New("division by zero")
)
