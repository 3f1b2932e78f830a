package artifacts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedStore(root string) *Store {
	s := NewStore(root)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s
}

func TestSavePDF(t *testing.T) {
	root := t.TempDir()
	s := fixedStore(root)

	rel, err := s.SavePDF("42", []byte("%PDF-1.4 test"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("generated_resumes", "resume_42_1700000000.pdf"), rel)

	data, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 test"), data)
}

func TestSavePDFNamesAreTimestamped(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	base := time.Unix(1700000000, 0)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	first, err := s.SavePDF("42", []byte("a"))
	require.NoError(t, err)
	second, err := s.SavePDF("42", []byte("b"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestSaveUploadKeepsExtension(t *testing.T) {
	root := t.TempDir()
	s := fixedStore(root)

	rel, err := s.SaveUpload("7", "My Resume.docx", []byte("doc"))
	require.NoError(t, err)
	assert.Equal(t, ".docx", filepath.Ext(rel))

	_, err = os.Stat(filepath.Join(root, rel))
	assert.NoError(t, err)
}
