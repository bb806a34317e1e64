package company

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthias/jobad-composer/internal/knowledge"
)

type mockSource struct {
	hits    []knowledge.Hit
	err     error
	queries []string
}

func (m *mockSource) Search(_ context.Context, collection, query string, _ int) ([]knowledge.Hit, error) {
	m.queries = append(m.queries, collection+"|"+query)
	return m.hits, m.err
}

type mockChunkStore struct {
	chunks []knowledge.Chunk
	err    error
}

func (m *mockChunkStore) AddChunks(_ context.Context, chunks []knowledge.Chunk) (int, error) {
	m.chunks = append(m.chunks, chunks...)
	if m.err != nil {
		return 0, m.err
	}
	return len(chunks), nil
}

func TestExtractCompanyName(t *testing.T) {
	tests := []struct {
		rawURL string
		want   string
	}{
		{"https://www.rocketcorp.ch/about", "rocketcorp"},
		{"https://jobs.megacorp.com", "jobs"},
		{"http://example.org", "example"},
		{"https://localhost/careers", "localhost"},
		{"", "unknown_company"},
		{"://bad", "unknown_company"},
	}

	for _, tt := range tests {
		t.Run(tt.rawURL, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCompanyName(tt.rawURL))
		})
	}
}

func TestContext_NoURLsReturnsEmpty(t *testing.T) {
	p := NewProvider(nil, nil)
	assert.Empty(t, p.Context(context.Background(), "acme", nil))
}

func TestContext_StoredContentSkipsFetch(t *testing.T) {
	src := &mockSource{hits: []knowledge.Hit{
		{Content: "We build rockets."},
		{Content: "Founded in 2010."},
	}}
	p := NewProvider(src, nil)

	got := p.Context(context.Background(), "", []string{"https://www.rocketcorp.ch/about"})

	assert.Equal(t, "We build rockets.\n\nFounded in 2010.", got)
	require.Len(t, src.queries, 1)
	assert.Contains(t, src.queries[0], knowledge.CompanyCollection("rocketcorp"))
}

func TestContext_FetchesAndStoresPages(t *testing.T) {
	longText := ""
	for i := 0; i < 10; i++ {
		longText += "We value craftsmanship and honest engineering. "
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "<html><body><main>%s</main></body></html>", longText)
	}))
	defer server.Close()

	store := &mockChunkStore{}
	p := NewProvider(nil, store)

	got := p.Context(context.Background(), "acme", []string{server.URL})

	assert.Contains(t, got, "craftsmanship")
	require.Len(t, store.chunks, 1)
	assert.Equal(t, knowledge.CompanyCollection("acme"), store.chunks[0].Collection)
	assert.Equal(t, "acme", store.chunks[0].Metadata["company_name"])
	assert.Equal(t, server.URL, store.chunks[0].Metadata["url"])
}

func TestContext_ShortPagesNotStored(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body><main>tiny</main></body></html>")
	}))
	defer server.Close()

	store := &mockChunkStore{}
	p := NewProvider(nil, store)

	got := p.Context(context.Background(), "acme", []string{server.URL})

	assert.Equal(t, "tiny", got)
	assert.Empty(t, store.chunks, "near-empty pages stay out of the collection")
}

func TestContext_FailedFetchDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	p := NewProvider(nil, nil)
	assert.Empty(t, p.Context(context.Background(), "acme", []string{server.URL}))
}

func TestContext_SearchErrorFallsThroughToFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body><main>fresh content</main></body></html>")
	}))
	defer server.Close()

	src := &mockSource{err: knowledge.ErrUnavailable}
	p := NewProvider(src, nil)

	got := p.Context(context.Background(), "acme", []string{server.URL})
	assert.Equal(t, "fresh content", got)
}

func TestContext_PartialFetchKeepsSurvivorsInOrder(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body><main>survivor page</main></body></html>")
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	p := NewProvider(nil, nil)
	got := p.Context(context.Background(), "acme", []string{bad.URL, good.URL})

	assert.Equal(t, "survivor page", got)
}

func TestExtractText_StripsChromeAndCollapsesWhitespace(t *testing.T) {
	html := `<html><body>
		<nav>Menu Menu Menu</nav>
		<main>  Our   team
		builds   things  </main>
		<footer>legal</footer>
	</body></html>`

	text, err := extractText(html)
	require.NoError(t, err)
	assert.Equal(t, "Our team builds things", text)
}

func TestExtractText_FallsBackToBody(t *testing.T) {
	text, err := extractText("<html><body><p>plain page</p></body></html>")
	require.NoError(t, err)
	assert.Equal(t, "plain page", text)
}
