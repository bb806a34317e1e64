package company

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// minRenderedLength is the extracted-text length below which a page is
// assumed to be a JavaScript-rendered SPA whose plain HTTP response holds
// no content.
const minRenderedLength = 500

// needsBrowser reports whether the plain HTTP fetch came back too short to
// be real page content.
func needsBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < minRenderedLength
}

// renderPage loads a page in a headless browser and returns the rendered
// HTML. Requires Chrome or Chromium on the system.
func renderPage(ctx context.Context, pageURL string, timeout time.Duration) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to fill the page.
		chromedp.Sleep(3*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Dismiss cookie banners when present; ignore when not.
			_ = chromedp.Click(`button[id*="accept"], button[class*="accept"]`, chromedp.NodeVisible).Do(ctx)
			return nil
		}),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}
	return html, nil
}
