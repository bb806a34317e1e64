// Package llm - embedder.go wraps the Gemini embedding API behind a small
// interface so the knowledge store can be tested without network access.
package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultEmbeddingModel is the Gemini embedding model used for all
// collections.
const DefaultEmbeddingModel = "text-embedding-004"

// maxEmbedBatchSize is the Gemini API limit on requests per batch call.
const maxEmbedBatchSize = 100

// Embedder converts text into embedding vectors.
type Embedder interface {
	// Embed returns the embedding vector for one text
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch returns one vector per input text, in input order
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// GeminiEmbedder implements Embedder using the Gemini embedding API.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

// NewGeminiEmbedder creates an embedder. An empty model selects
// DefaultEmbeddingModel.
func NewGeminiEmbedder(ctx context.Context, apiKey, model string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultEmbeddingModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEmbedder{client: client, model: model}, nil
}

// Embed returns the embedding vector for one text.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	em := e.client.EmbeddingModel(e.model)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding in response")
	}
	return res.Embedding.Values, nil
}

// EmbedBatch embeds the texts in batched API calls, splitting at the API
// batch-size limit.
func (e *GeminiEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	em := e.client.EmbeddingModel(e.model)
	vectors := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += maxEmbedBatchSize {
		end := start + maxEmbedBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch := em.NewBatch()
		for _, text := range texts[start:end] {
			batch.AddContent(genai.Text(text))
		}

		res, err := em.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to embed batch: %w", err)
		}
		if len(res.Embeddings) != end-start {
			return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(res.Embeddings), end-start)
		}
		for i, emb := range res.Embeddings {
			if emb == nil || len(emb.Values) == 0 {
				return nil, fmt.Errorf("empty embedding at index %d", start+i)
			}
			vectors = append(vectors, emb.Values)
		}
	}
	return vectors, nil
}

// Close releases resources held by the embedder.
func (e *GeminiEmbedder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
