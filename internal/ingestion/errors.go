// Package ingestion extracts plain UTF-8 text from uploaded resume documents.
package ingestion

import "fmt"

// NotFoundError indicates the referenced source document does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("source document not found: %s", e.Path)
}

// UnreadableError indicates the document exists but text could not be
// extracted from it (corrupt file, unsupported format, or a scanned
// image-only document that yields no text).
type UnreadableError struct {
	Path    string
	Message string
	Cause   error
}

func (e *UnreadableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unreadable document %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("unreadable document %s: %s", e.Path, e.Message)
}

func (e *UnreadableError) Unwrap() error {
	return e.Cause
}
