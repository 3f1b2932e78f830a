package ingestion

import (
	"archive/zip"
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor reads stored uploads and extracts their text content.
// Supported formats: .pdf and .docx.
type Extractor struct {
	// MediaRoot is the base directory uploads are stored under; source
	// references are resolved relative to it.
	MediaRoot string
}

// NewExtractor creates an Extractor rooted at mediaRoot.
func NewExtractor(mediaRoot string) *Extractor {
	return &Extractor{MediaRoot: mediaRoot}
}

// ExtractText extracts all text from the referenced document and normalizes
// its whitespace. A document that opens but yields no text at all (e.g., a
// scanned image-only PDF) is reported as unreadable by the caller's length
// check, not here; this function only fails on I/O and format errors.
func (e *Extractor) ExtractText(sourceRef string) (string, error) {
	fullPath := filepath.Join(e.MediaRoot, sourceRef)

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Path: fullPath}
		}
		return "", &UnreadableError{Path: fullPath, Message: "failed to read file", Cause: err}
	}

	log.Printf("[ingestion] extracting text from %s (%d bytes)", sourceRef, len(data))

	var text string
	switch strings.ToLower(filepath.Ext(sourceRef)) {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDocx(data)
	default:
		return "", &UnreadableError{Path: fullPath, Message: "unsupported format: only pdf and docx are allowed"}
	}
	if err != nil {
		return "", &UnreadableError{Path: fullPath, Message: "text extraction failed", Cause: err}
	}

	return normalizeWhitespace(text), nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	rs, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var xmlTags = regexp.MustCompile(`<[^>]+>`)

func extractDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", err
			}
			docXML, err = io.ReadAll(rc)
			_ = rc.Close()
			if err != nil {
				return "", err
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", &UnreadableError{Message: "no document.xml found in docx"}
	}

	// Convert paragraph boundaries to newlines, then strip all tags.
	xml := string(docXML)
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	return xmlTags.ReplaceAllString(xml, " "), nil
}

var multiSpace = regexp.MustCompile(`[ \t]+`)
var multiNewline = regexp.MustCompile(`\n{3,}`)

// normalizeWhitespace collapses runs of spaces and blank lines while keeping
// line structure, which the validation gate and the extraction prompt both
// benefit from.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(multiSpace.ReplaceAllString(line, " "))
	}
	s = strings.Join(lines, "\n")
	s = multiNewline.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
