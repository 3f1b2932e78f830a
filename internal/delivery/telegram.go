package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const defaultBaseURL = "https://api.telegram.org"

// SuccessCaption builds the Markdown caption accompanying a delivered
// document, naming the job title the resume was prepared for.
func SuccessCaption(jobTitle string) string {
	return fmt.Sprintf(
		"✅ Resume Analysis Complete!\n\nHere is your **Harvard-Style PDF Resume** for *%s*.",
		sanitizeTitle(jobTitle),
	)
}

// Notifier talks to the Telegram Bot API.
type Notifier struct {
	BotToken string
	BaseURL  string
	Client   *http.Client
}

// NewNotifier creates a Notifier for the given bot token.
func NewNotifier(botToken string) *Notifier {
	return &Notifier{
		BotToken: botToken,
		BaseURL:  defaultBaseURL,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (n *Notifier) endpoint(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", n.BaseURL, n.BotToken, method)
}

// SendDocument uploads a document to the chat with a Markdown caption.
func (n *Notifier) SendDocument(ctx context.Context, chatID int64, filename string, document []byte, caption string) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return &DeliveryError{Message: "failed to build request", Cause: err}
	}
	if caption != "" {
		if err := w.WriteField("caption", caption); err != nil {
			return &DeliveryError{Message: "failed to build request", Cause: err}
		}
		if err := w.WriteField("parse_mode", "Markdown"); err != nil {
			return &DeliveryError{Message: "failed to build request", Cause: err}
		}
	}
	part, err := w.CreateFormFile("document", filename)
	if err != nil {
		return &DeliveryError{Message: "failed to attach document", Cause: err}
	}
	if _, err := part.Write(document); err != nil {
		return &DeliveryError{Message: "failed to attach document", Cause: err}
	}
	if err := w.Close(); err != nil {
		return &DeliveryError{Message: "failed to finalize request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint("sendDocument"), &body)
	if err != nil {
		return &DeliveryError{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return n.do(req, "sendDocument")
}

// SendMessage sends a Markdown-formatted message to the chat.
func (n *Notifier) SendMessage(ctx context.Context, chatID int64, text string) error {
	form := url.Values{}
	form.Set("chat_id", strconv.FormatInt(chatID, 10))
	form.Set("text", text)
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint("sendMessage"), strings.NewReader(form.Encode()))
	if err != nil {
		return &DeliveryError{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return n.do(req, "sendMessage")
}

func (n *Notifier) do(req *http.Request, method string) error {
	resp, err := n.Client.Do(req)
	if err != nil {
		return &DeliveryError{Message: fmt.Sprintf("%s request failed", method), Cause: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &DeliveryError{Message: fmt.Sprintf("%s response unreadable", method), Cause: err}
	}

	var api apiResponse
	if err := json.Unmarshal(payload, &api); err != nil {
		return &DeliveryError{Message: fmt.Sprintf("%s returned status %d", method, resp.StatusCode)}
	}
	if !api.OK {
		return &DeliveryError{Message: fmt.Sprintf("%s rejected: %s", method, api.Description)}
	}
	return nil
}

// DocumentFilename builds the user-facing attachment name from the job
// title the user uploaded against.
func DocumentFilename(jobTitle string) string {
	return fmt.Sprintf("Harvard_Resume_%s.pdf", sanitizeTitle(jobTitle))
}

// sanitizeTitle keeps letters, digits, and underscores; spaces and hyphens
// become underscores and everything else is dropped. An empty title falls
// back to "Resume".
func sanitizeTitle(jobTitle string) string {
	if strings.TrimSpace(jobTitle) == "" {
		return "Resume"
	}
	var b strings.Builder
	for _, r := range jobTitle {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteRune('_')
		}
	}
	return b.String()
}
