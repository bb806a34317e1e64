package company

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/matthias/jobad-composer/internal/knowledge"
)

// storedPageLimit is how many stored pages one lookup pulls back.
const storedPageLimit = 3

// minStoredLength filters near-empty pages out of the company collection.
const minStoredLength = 50

// ChunkStore persists fetched pages for later runs. *knowledge.PGStore
// satisfies it.
type ChunkStore interface {
	AddChunks(ctx context.Context, chunks []knowledge.Chunk) (int, error)
}

// Provider resolves company context. Both the retrieval source and the
// store-back target may be nil, reducing the provider to a plain fetcher.
type Provider struct {
	source knowledge.Source
	store  ChunkStore

	// UseBrowser enables headless-browser rendering for pages whose plain
	// HTTP fetch comes back too short to be real content.
	UseBrowser bool
}

// NewProvider returns a Provider over the given retrieval source and
// store-back target.
func NewProvider(source knowledge.Source, store ChunkStore) *Provider {
	return &Provider{source: source, store: store}
}

// ExtractCompanyName derives a company name from a URL: the first dot
// label of the host with any www prefix stripped. Unparsable input maps
// to "unknown_company" so the derived collection key is never empty.
func ExtractCompanyName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "unknown_company"
	}
	host := parsed.Host
	if host == "" {
		host = parsed.Path
	}
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return "unknown_company"
	}
	if parts := strings.Split(host, "."); len(parts) >= 2 {
		return parts[0]
	}
	if idx := strings.Index(host, "/"); idx >= 0 {
		return host[:idx]
	}
	return host
}

// Context returns text about the company for prompt grounding. name may be
// empty, in which case it is derived from the first URL. Every failure
// degrades to an empty string: company context is a style aid, never a
// run requirement.
func (p *Provider) Context(ctx context.Context, name string, urls []string) string {
	if len(urls) == 0 {
		return ""
	}
	if name == "" {
		name = ExtractCompanyName(urls[0])
	}

	if existing := p.lookupStored(ctx, name); existing != "" {
		log.WithField("company", name).Debug("company context served from knowledge store")
		return existing
	}

	pages := p.fetchPages(ctx, urls)
	if len(pages) == 0 {
		return ""
	}
	p.storePages(ctx, name, pages)

	texts := make([]string, len(pages))
	for i, pg := range pages {
		texts[i] = pg.text
	}
	return strings.Join(texts, "\n\n")
}

type fetchedPage struct {
	url  string
	text string
}

func (p *Provider) lookupStored(ctx context.Context, name string) string {
	if p.source == nil {
		return ""
	}
	hits, err := p.source.Search(ctx, knowledge.CompanyCollection(name), name, storedPageLimit)
	if err != nil {
		log.WithField("company", name).WithError(err).Debug("stored company content lookup failed")
		return ""
	}
	parts := make([]string, 0, len(hits))
	for _, hit := range hits {
		if hit.Content != "" {
			parts = append(parts, hit.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

// fetchPages fetches all URLs concurrently. Failed pages are dropped; the
// survivors come back in input order.
func (p *Provider) fetchPages(ctx context.Context, urls []string) []fetchedPage {
	texts := make([]string, len(urls))
	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	for i, pageURL := range urls {
		i, pageURL := i, pageURL
		g.Go(func() error {
			text, err := p.fetchOne(gCtx, pageURL)
			if err != nil {
				log.WithField("url", pageURL).WithError(err).Warn("company page fetch failed, skipping")
				return nil
			}
			mu.Lock()
			texts[i] = text
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	var pages []fetchedPage
	for i, text := range texts {
		if text != "" {
			pages = append(pages, fetchedPage{url: urls[i], text: text})
		}
	}
	return pages
}

func (p *Provider) fetchOne(ctx context.Context, pageURL string) (string, error) {
	html, err := fetchHTML(ctx, pageURL)
	if err != nil {
		return "", err
	}
	text, err := extractText(html)
	if err != nil {
		return "", err
	}

	if p.UseBrowser && needsBrowser(text) {
		rendered, rerr := renderPage(ctx, pageURL, fetchTimeout)
		if rerr != nil {
			log.WithField("url", pageURL).WithError(rerr).Warn("browser rendering failed, keeping plain fetch")
			return text, nil
		}
		if renderedText, terr := extractText(rendered); terr == nil && renderedText != "" {
			return renderedText, nil
		}
	}
	return text, nil
}

// storePages writes fetched pages back into the company collection, best
// effort. Failures never reach the caller.
func (p *Provider) storePages(ctx context.Context, name string, pages []fetchedPage) {
	if p.store == nil {
		return
	}
	scrapeDate := time.Now().UTC().Format(time.RFC3339)
	var chunks []knowledge.Chunk
	for _, pg := range pages {
		if len([]rune(strings.TrimSpace(pg.text))) < minStoredLength {
			continue
		}
		chunks = append(chunks, knowledge.Chunk{
			Collection: knowledge.CompanyCollection(name),
			Content:    pg.text,
			Metadata: map[string]string{
				"company_name": name,
				"url":          pg.url,
				"scrape_date":  scrapeDate,
			},
		})
	}
	if len(chunks) == 0 {
		return
	}
	if _, err := p.store.AddChunks(ctx, chunks); err != nil {
		log.WithField("company", name).WithError(err).Warn("failed to store company content")
	}
}
