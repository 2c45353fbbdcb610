package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
)

// ErrEmptyDocument is returned when there is no markup to export.
var ErrEmptyDocument = errors.New("export: document content is empty")

// ChromePDF prints self-contained HTML documents to PDF with headless Chrome.
type ChromePDF struct {
	chromePath string
	timeout    time.Duration
	tempDir    string
}

// NewChromePDF creates a PDF renderer. An empty chromePath lets the
// executable be detected from CHROME_PATH or common install locations.
func NewChromePDF(chromePath string, timeout time.Duration) *ChromePDF {
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromePDF{
		chromePath: chromePath,
		timeout:    timeout,
		tempDir:    os.TempDir(),
	}
}

// detectChromePath checks CHROME_PATH first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// Render prints html to a PDF, honouring the document's own @page size.
// The markup is loaded from a temporary file and is never modified.
func (c *ChromePDF) Render(ctx context.Context, html string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, ErrEmptyDocument
	}

	tmp := filepath.Join(c.tempDir, fmt.Sprintf("ledger-report-%s.html", uuid.NewString()))
	if err := os.WriteFile(tmp, []byte(html), 0o600); err != nil {
		return nil, fmt.Errorf("export: failed to write temporary document: %w", err)
	}
	defer os.Remove(tmp)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // required for running in containers
	)
	if c.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(c.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate("file://"+filepath.ToSlash(tmp)),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithLandscape(false).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
