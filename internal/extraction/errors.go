// Package extraction turns extracted resume text into a validated
// ProfileRecord via a schema-constrained generative-model call.
package extraction

import "fmt"

// Error represents an extraction failure: the collaborator call failed,
// the response was not conformant JSON, or required fields were absent.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
