// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/nazrawi/tenabot/internal/pipeline"
	"github.com/nazrawi/tenabot/internal/types"
	"github.com/nazrawi/tenabot/internal/validation"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintValidation outputs the validation gate decision.
func (p *Printer) PrintValidation(result validation.Result) {
	var sb strings.Builder
	if result.OK {
		sb.WriteString("Decision: accepted\n")
		sb.WriteString("Document looks like a resume.")
	} else {
		sb.WriteString("Decision: rejected\n")
		sb.WriteString(fmt.Sprintf("Reason: %s", result.Reason))
	}
	p.printBox("VALIDATION GATE", sb.String())
}

// PrintProfile outputs a human-readable summary of the extracted profile.
func (p *Printer) PrintProfile(record *types.ProfileRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Position:  %s\n", record.PositionInferred))
	sb.WriteString(fmt.Sprintf("Education: %s\n", record.EducationLevel))
	if !record.Email.IsEmpty() {
		sb.WriteString(fmt.Sprintf("Email:     %s\n", record.Email))
	}
	if !record.Phone.IsEmpty() {
		sb.WriteString(fmt.Sprintf("Phone:     %s\n", record.Phone))
	}
	sb.WriteString("\n")

	if len(record.Skills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(record.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", record.Skills[i]))
		}
		if len(record.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(record.WorkHistory) > 0 {
		sb.WriteString("Work history:\n")
		count := min(len(record.WorkHistory), 3)
		for i := 0; i < count; i++ {
			entry := record.WorkHistory[i]
			sb.WriteString(fmt.Sprintf("  • %s", entry.Title))
			if !entry.Company.IsEmpty() {
				sb.WriteString(fmt.Sprintf(" @ %s", entry.Company))
			}
			sb.WriteString("\n")
		}
		if len(record.WorkHistory) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.WorkHistory)-3))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Education entries: %d", len(record.Education)))

	p.printBox("EXTRACTED PROFILE", sb.String())
}

// PrintRunResult outputs the final state of a processing run.
func (p *Printer) PrintRunResult(result *pipeline.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Final stage: %s\n", result.Stage))
	if result.FailedStage != "" {
		sb.WriteString(fmt.Sprintf("Failed at:   %s\n", result.FailedStage))
	}
	if result.Reason != "" {
		sb.WriteString(fmt.Sprintf("Reason:      %s\n", result.Reason))
	}
	if result.DocumentPath != "" {
		sb.WriteString(fmt.Sprintf("Document:    %s\n", result.DocumentPath))
	}

	p.printBox("PROCESSING RESULT", strings.TrimSuffix(sb.String(), "\n"))
}
