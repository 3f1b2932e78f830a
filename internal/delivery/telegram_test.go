package delivery

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNotifier(t *testing.T, handler http.HandlerFunc) *Notifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	n := NewNotifier("test-token")
	n.BaseURL = srv.URL
	return n
}

func TestSendDocument(t *testing.T) {
	var gotPath string
	var gotChatID, gotCaption, gotParseMode, gotFilename string
	var gotDoc []byte

	n := testNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotChatID = r.FormValue("chat_id")
		gotCaption = r.FormValue("caption")
		gotParseMode = r.FormValue("parse_mode")
		file, header, err := r.FormFile("document")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		gotDoc, err = io.ReadAll(file)
		require.NoError(t, err)
		w.Write([]byte(`{"ok":true}`))
	})

	caption := SuccessCaption("Engineer")
	err := n.SendDocument(context.Background(), 12345, "Harvard_Resume_Engineer.pdf", []byte("%PDF"), caption)
	require.NoError(t, err)

	assert.Equal(t, "/bottest-token/sendDocument", gotPath)
	assert.Equal(t, "12345", gotChatID)
	assert.Equal(t, caption, gotCaption)
	assert.Equal(t, "Markdown", gotParseMode)
	assert.Equal(t, "Harvard_Resume_Engineer.pdf", gotFilename)
	assert.Equal(t, []byte("%PDF"), gotDoc)
}

func TestSendDocumentAPIRejection(t *testing.T) {
	n := testNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	})

	err := n.SendDocument(context.Background(), 1, "x.pdf", []byte("d"), "")
	require.Error(t, err)
	var derr *DeliveryError
	require.ErrorAs(t, err, &derr)
	assert.Contains(t, derr.Message, "chat not found")
}

func TestSendMessage(t *testing.T) {
	var gotText, gotParseMode string
	n := testNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotText = r.FormValue("text")
		gotParseMode = r.FormValue("parse_mode")
		w.Write([]byte(`{"ok":true}`))
	})

	err := n.SendMessage(context.Background(), 9, "processing failed")
	require.NoError(t, err)
	assert.Equal(t, "processing failed", gotText)
	assert.Equal(t, "Markdown", gotParseMode)
}

func TestDocumentFilename(t *testing.T) {
	tests := []struct {
		jobTitle string
		want     string
	}{
		{"Backend Engineer", "Harvard_Resume_Backend_Engineer.pdf"},
		{"DevOps/SRE (Senior)", "Harvard_Resume_DevOpsSRE_Senior.pdf"},
		{"Data-Analyst", "Harvard_Resume_Data_Analyst.pdf"},
		{"", "Harvard_Resume_Resume.pdf"},
		{"   ", "Harvard_Resume_Resume.pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DocumentFilename(tt.jobTitle))
	}
}

func TestSuccessCaptionNamesJobTitle(t *testing.T) {
	caption := SuccessCaption("Backend Engineer")
	assert.Contains(t, caption, "✅ Resume Analysis Complete!")
	assert.Contains(t, caption, "*Backend_Engineer*")

	assert.Contains(t, SuccessCaption(""), "*Resume*")
}
