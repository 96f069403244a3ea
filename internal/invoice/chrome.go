package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChromeRenderer prints the HTML invoice through a remote headless Chrome.
type ChromeRenderer struct {
	remoteURL string
	timeout   time.Duration
}

func NewChromeRenderer(remoteURL string, timeout time.Duration) *ChromeRenderer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &ChromeRenderer{remoteURL: remoteURL, timeout: timeout}
}

func (r *ChromeRenderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	html, err := HTML(doc)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	allocCtx, allocCancel := chromedp.NewRemoteAllocator(timeoutCtx, r.remoteURL)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdfData []byte
	err = chromedp.Run(taskCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}

			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfData, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)

			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp invoice rendering failed: %w", err)
	}

	return pdfData, nil
}
