package rendering

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDFBackend converts a rendered HTML body into final PDF bytes.
type PDFBackend interface {
	RenderPDF(ctx context.Context, html []byte) ([]byte, error)
}

// ChromePDFBackend prints HTML to PDF through headless Chrome. Layout
// decisions stay in the document template; this backend only handles
// pagination and font shaping.
type ChromePDFBackend struct {
	// Timeout bounds a single print run, browser startup included.
	Timeout time.Duration
}

// NewChromePDFBackend creates a backend with a 60 second print timeout.
func NewChromePDFBackend() *ChromePDFBackend {
	return &ChromePDFBackend{Timeout: 60 * time.Second}
}

// RenderPDF implements PDFBackend. The HTML is written to a temp file and
// loaded over file:// so relative anchors resolve the same way every run.
func (b *ChromePDFBackend) RenderPDF(ctx context.Context, html []byte) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, b.Timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "tenabot-render-")
	if err != nil {
		return nil, &RenderError{Message: "failed to create render scratch directory", Cause: err}
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "resume.html")
	if err := os.WriteFile(htmlPath, html, 0o644); err != nil {
		return nil, &RenderError{Message: "failed to stage document for printing", Cause: err}
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm, in inches
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "headless print failed", Cause: err}
	}
	return pdfBuf, nil
}
