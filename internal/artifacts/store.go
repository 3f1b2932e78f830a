// Package artifacts stores generated resume documents on disk.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const generatedDir = "generated_resumes"

// Store writes rendered documents under MediaRoot/generated_resumes.
type Store struct {
	MediaRoot string

	// now is swappable for tests
	now func() time.Time
}

// NewStore creates a Store rooted at mediaRoot.
func NewStore(mediaRoot string) *Store {
	return &Store{MediaRoot: mediaRoot, now: time.Now}
}

// SavePDF persists a generated document and returns its path relative to
// MediaRoot. File names carry the owning user reference and a timestamp so
// successive runs never overwrite each other.
func (s *Store) SavePDF(userRef string, pdf []byte) (string, error) {
	dir := filepath.Join(s.MediaRoot, generatedDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := fmt.Sprintf("resume_%s_%d.pdf", userRef, s.now().Unix())
	if err := os.WriteFile(filepath.Join(dir, name), pdf, 0o644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return filepath.Join(generatedDir, name), nil
}

// SaveUpload persists an uploaded resume file under MediaRoot/resumes and
// returns its path relative to MediaRoot.
func (s *Store) SaveUpload(userRef, originalName string, data []byte) (string, error) {
	dir := filepath.Join(s.MediaRoot, "resumes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	ext := filepath.Ext(originalName)
	name := fmt.Sprintf("upload_%s_%d%s", userRef, s.now().Unix(), ext)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return filepath.Join("resumes", name), nil
}
