package rendering

import (
	"fmt"
	"strings"

	"github.com/nazrawi/tenabot/internal/types"
)

const (
	// DefaultSummaryThreshold is the summary length above which a work
	// entry's summary is split into bullets instead of one dense paragraph.
	DefaultSummaryThreshold = 100
	// DefaultMaxSummaryBullets caps how many bullets a split summary keeps.
	DefaultMaxSummaryBullets = 4
)

// Renderer maps a ProfileRecord to a RenderedDocument. Render is pure and
// deterministic: identical records yield byte-identical document bodies.
type Renderer struct {
	SummaryThreshold  int
	MaxSummaryBullets int
}

// NewRenderer creates a Renderer with default layout settings.
func NewRenderer() *Renderer {
	return &Renderer{
		SummaryThreshold:  DefaultSummaryThreshold,
		MaxSummaryBullets: DefaultMaxSummaryBullets,
	}
}

// RenderedDocument is the structured page flow of a formatted resume plus
// its deterministic HTML body. Sections whose data cleaned away entirely
// are nil/empty and never appear in the body.
type RenderedDocument struct {
	Title       string
	Contact     []ContactLine
	CoreValues  *ColumnSection
	Skills      *ColumnSection
	WorkHistory []JobBlock
	Education   []string
	Footer      string

	// Body is the rendered HTML document.
	Body []byte
}

// ContactLine is a single entry of the contact block. Href is empty for
// plain-text entries.
type ContactLine struct {
	Label string
	Text  string
	Href  string
}

// ColumnSection is a list section balanced across two columns.
type ColumnSection struct {
	Heading string
	Left    []string
	Right   []string
}

// JobBlock is one work-history entry ready for layout.
type JobBlock struct {
	Title   string
	Company string
	Dates   string
	// Paragraph is set for short summaries; Bullets for long ones. At most
	// one of the two is non-empty.
	Paragraph string
	Bullets   []string
}

// Render builds the document. Any internal failure, including a panic in
// layout code, is returned as a *RenderError; the input record is never
// mutated.
func (r *Renderer) Render(record types.ProfileRecord) (doc *RenderedDocument, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = &RenderError{Message: fmt.Sprintf("layout panic: %v", rec)}
		}
	}()

	doc = &RenderedDocument{
		Title:       title(record),
		Contact:     contactLines(record),
		CoreValues:  columnSection("Core Values", record.CoreValues),
		Skills:      columnSection("Skills", record.Skills),
		WorkHistory: r.workBlocks(record.WorkHistory),
		Education:   educationLines(record.Education),
		Footer:      "Generated by Tenabot AI Resume Assistant using Gemini AI.",
	}

	body, err := executeTemplate(doc)
	if err != nil {
		return nil, &RenderError{Message: "failed to execute document template", Cause: err}
	}
	doc.Body = body
	return doc, nil
}

func title(record types.ProfileRecord) string {
	if record.PositionInferred.IsEmpty() {
		return "Professional Resume"
	}
	return record.PositionInferred.String()
}

// contactLines builds the contact block. Absent values suppress their line
// entirely; URL-like fields become labeled links.
func contactLines(record types.ProfileRecord) []ContactLine {
	var lines []ContactLine
	if !record.Phone.IsEmpty() {
		lines = append(lines, ContactLine{Label: "Phone", Text: record.Phone.String()})
	}
	if !record.Email.IsEmpty() {
		email := record.Email.String()
		lines = append(lines, ContactLine{Label: "Email", Text: email, Href: "mailto:" + email})
	}
	if !record.LinkedIn.IsEmpty() {
		lines = append(lines, ContactLine{Label: "LinkedIn", Text: record.LinkedIn.String(), Href: ensureURL(record.LinkedIn.String())})
	}
	if !record.GitHub.IsEmpty() {
		lines = append(lines, ContactLine{Label: "GitHub", Text: record.GitHub.String(), Href: ensureURL(record.GitHub.String())})
	}
	return lines
}

func ensureURL(s string) string {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	return "https://" + s
}

// columnSection cleans the list and balances it across two columns.
// Returns nil when nothing survives cleaning so the section is suppressed.
func columnSection(heading string, items []string) *ColumnSection {
	cleaned := CleanList(items)
	if len(cleaned) == 0 {
		return nil
	}
	left, right := SplitColumns(cleaned)
	return &ColumnSection{Heading: heading, Left: left, Right: right}
}

// workBlocks lays out the work history in input order; the record's own
// order is authoritative and is not re-sorted by date.
func (r *Renderer) workBlocks(entries []types.WorkEntry) []JobBlock {
	var blocks []JobBlock
	for _, entry := range entries {
		if entry.Title.IsEmpty() && entry.Company.IsEmpty() && entry.Summary.IsEmpty() {
			continue
		}
		block := JobBlock{
			Title:   entry.Title.String(),
			Company: entry.Company.String(),
			Dates:   dateRange(entry.StartDate.String(), entry.EndDate.String()),
		}
		summary := entry.Summary.String()
		if bullets := SplitSummary(summary, r.SummaryThreshold, r.MaxSummaryBullets); len(bullets) > 0 {
			block.Bullets = bullets
		} else {
			block.Paragraph = strings.TrimSpace(summary)
		}
		blocks = append(blocks, block)
	}
	return blocks
}

func dateRange(start, end string) string {
	if end == "" {
		end = "Present"
	}
	if start == "" {
		return end
	}
	return start + " - " + end
}

// educationLines formats education entries as single lines, skipping the
// connective words for pieces that are absent.
func educationLines(entries []types.EducationEntry) []string {
	var lines []string
	for _, entry := range entries {
		var sb strings.Builder
		if !entry.Degree.IsEmpty() {
			sb.WriteString(entry.Degree.String())
		}
		if !entry.FieldOfStudy.IsEmpty() {
			if sb.Len() > 0 {
				sb.WriteString(" in ")
			}
			sb.WriteString(entry.FieldOfStudy.String())
		}
		if !entry.Institution.IsEmpty() {
			if sb.Len() > 0 {
				sb.WriteString(" from ")
			}
			sb.WriteString(entry.Institution.String())
		}
		if !entry.GraduationDate.IsEmpty() {
			if sb.Len() > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString("(" + entry.GraduationDate.String() + ")")
		}
		if sb.Len() == 0 {
			continue
		}
		lines = append(lines, sb.String())
	}
	return lines
}
