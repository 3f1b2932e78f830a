// Package rendering turns a ProfileRecord into a formatted resume document.
package rendering

import "fmt"

// RenderError represents a rendering failure on an already-valid record.
// It is caught at the pipeline call boundary and never rolls back
// persisted data.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
