// Package company provides company context for prompt grounding. Content
// comes from the knowledge store when a previous run already fetched it,
// and from the company's own pages otherwise; freshly fetched pages feed
// back into the store so later runs skip the network.
package company

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// fetchTimeout bounds one page fetch, plain HTTP and browser alike.
const fetchTimeout = 30 * time.Second

// userAgent identifies the fetcher to company sites.
const userAgent = "Mozilla/5.0 (compatible; JobAdComposer/1.0)"

// pageSelectors locate the content region of typical company pages, tried
// in order. The body element is the fallback when none match.
var pageSelectors = []string{
	"main",
	"article",
	".about-content",
	".values-content",
	".culture-content",
	".content",
	"#content",
}

// fetchHTML retrieves the raw HTML of one page over plain HTTP.
func fetchHTML(ctx context.Context, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid URL %q", pageURL)
	}

	client := &http.Client{Timeout: fetchTimeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP status %d for %s", resp.StatusCode, pageURL)
	}
	return string(body), nil
}

// extractText parses HTML, strips navigation noise and returns the text of
// the most content-like region with all whitespace runs collapsed to single
// spaces. The collapse keeps downstream excerpting (prompt injection caps
// the context by rune count) independent of the page's markup layout.
func extractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup").Remove()

	var content *goquery.Selection
	for _, selector := range pageSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	return strings.Join(strings.Fields(content.Text()), " "), nil
}
