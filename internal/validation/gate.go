// Package validation provides the heuristic pre-check that uploaded text
// plausibly represents a resume, so an extraction call is not wasted on
// arbitrary documents. It is a best-effort filter, not a classifier: false
// positives and false negatives are expected and acceptable.
package validation

import (
	"fmt"
	"strings"
)

// DefaultMinTextLength is the minimum stripped text length accepted.
// Anything shorter is treated as a failed text extraction (e.g., a scanned
// image-only document).
const DefaultMinTextLength = 50

// DefaultKeywords is the keyword set at least one of which must appear
// (case-insensitive) for text to pass the gate.
var DefaultKeywords = []string{
	"experience", "education", "skills", "history", "summary", "profile", "contact",
}

// Gate checks extracted source text against the resume heuristics.
type Gate struct {
	MinTextLength int
	Keywords      []string
}

// NewGate creates a Gate. Zero/nil arguments fall back to the defaults.
func NewGate(minTextLength int, keywords []string) *Gate {
	if minTextLength <= 0 {
		minTextLength = DefaultMinTextLength
	}
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	return &Gate{MinTextLength: minTextLength, Keywords: keywords}
}

// Result is the outcome of a gate check.
type Result struct {
	OK bool
	// Reason is a human-readable explanation when OK is false. It is safe
	// to show to the user.
	Reason string
}

// Check applies the length and keyword heuristics to text.
func (g *Gate) Check(text string) Result {
	stripped := strings.TrimSpace(text)
	if len(stripped) < g.MinTextLength {
		return Result{
			OK:     false,
			Reason: "text extraction produced a blank or near-blank document; the file may be scanned or image-based",
		}
	}

	lower := strings.ToLower(stripped)
	for _, kw := range g.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return Result{OK: true}
		}
	}

	return Result{
		OK: false,
		Reason: fmt.Sprintf(
			"the document does not appear to be a resume (missing keywords: %s...)",
			strings.Join(g.Keywords[:min(3, len(g.Keywords))], ", "),
		),
	}
}

// RejectedError wraps a failing gate result as an error for pipeline
// propagation. It is user-facing by design and distinct from generic
// processing failures.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("validation rejected: %s", e.Reason)
}
