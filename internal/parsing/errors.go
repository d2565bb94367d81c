// Package parsing defensively converts raw model output into typed
// extraction and role-analysis results.
package parsing

import "fmt"

// APICallError represents a failure of the upstream call itself (network,
// timeout, non-2xx). This is the one failure class that does not degrade to
// the canned fallback.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents unusable content in an otherwise successful
// response. Consumers resolve it through the fallback ladder; it is kept as
// a distinct type so malformed content is never confused with a call failure.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
