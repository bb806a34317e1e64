package knowledge

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"

	"github.com/matthias/jobad-composer/internal/llm"
)

// embeddingDim matches the Gemini text-embedding-004 output width. The
// knowledge_chunks column is typed to it, so changing the embedding model
// requires a re-ingestion.
const embeddingDim = 768

// Chunk is one ingestible document: content plus retrieval metadata, filed
// under a collection key.
type Chunk struct {
	Collection string            `json:"collection"`
	Content    string            `json:"content"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ID returns the content-addressed chunk id: hex-encoded blake2b-256 over
// collection and content. Re-ingesting the same file is idempotent.
func (c Chunk) ID() string {
	sum := blake2b.Sum256([]byte(c.Collection + ":" + c.Content))
	return hex.EncodeToString(sum[:])
}

// PGStore implements Source on Postgres with the pgvector extension.
// Chunks are embedded on write and ranked by cosine distance on read.
type PGStore struct {
	pool     *pgxpool.Pool
	embedder llm.Embedder
}

// NewPGStore connects a pool with pgvector types registered and verifies
// the connection.
func NewPGStore(ctx context.Context, databaseURL string, embedder llm.Embedder) (*PGStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PGStore{pool: pool, embedder: embedder}, nil
}

// Close closes the connection pool.
func (s *PGStore) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the pgvector extension, the knowledge_chunks table
// and its indexes. Idempotent.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS knowledge_chunks (
			id TEXT PRIMARY KEY,
			collection TEXT NOT NULL,
			content TEXT NOT NULL,
			metadata JSONB NOT NULL DEFAULT '{}',
			embedding vector(%d) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, embeddingDim),
		`CREATE INDEX IF NOT EXISTS idx_knowledge_chunks_collection ON knowledge_chunks (collection)`,
		`CREATE INDEX IF NOT EXISTS idx_knowledge_chunks_embedding ON knowledge_chunks
			USING hnsw (embedding vector_cosine_ops)`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure knowledge schema: %w", err)
		}
	}
	return nil
}

// Search embeds the query and returns the k nearest chunks in the
// collection by cosine distance.
func (s *PGStore) Search(ctx context.Context, collection, query string, k int) ([]Hit, error) {
	if s == nil || s.pool == nil || s.embedder == nil {
		return nil, ErrUnavailable
	}
	if k <= 0 {
		return nil, nil
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT content, metadata
		 FROM knowledge_chunks
		 WHERE collection = $1
		 ORDER BY embedding <=> $2
		 LIMIT $3`,
		collection, pgvector.NewVector(vec), k,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search collection %s: %w", collection, err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var content string
		var metadataJSON []byte
		if err := rows.Scan(&content, &metadataJSON); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		metadata := map[string]string{}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &metadata); err != nil {
				return nil, fmt.Errorf("failed to decode chunk metadata: %w", err)
			}
		}
		hits = append(hits, Hit{Content: content, Metadata: metadata})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read search results: %w", err)
	}
	return hits, nil
}

// AddChunks embeds and upserts the chunks. Returns the number of rows
// written. Chunks with identical collection and content collapse into one
// row.
func (s *PGStore) AddChunks(ctx context.Context, chunks []Chunk) (int, error) {
	if s == nil || s.pool == nil || s.embedder == nil {
		return 0, ErrUnavailable
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed chunks: %w", err)
	}

	written := 0
	for i, chunk := range chunks {
		metadataJSON, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return written, fmt.Errorf("failed to marshal chunk metadata: %w", err)
		}
		_, err = s.pool.Exec(ctx,
			`INSERT INTO knowledge_chunks (id, collection, content, metadata, embedding)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE
			 SET metadata = EXCLUDED.metadata, embedding = EXCLUDED.embedding, updated_at = NOW()`,
			chunk.ID(), chunk.Collection, chunk.Content, metadataJSON, pgvector.NewVector(vectors[i]),
		)
		if err != nil {
			return written, fmt.Errorf("failed to upsert chunk in %s: %w", chunk.Collection, err)
		}
		written++
	}

	log.WithFields(log.Fields{
		"chunks": written,
	}).Debug("knowledge chunks upserted")
	return written, nil
}

// Count returns the number of stored chunks in a collection. An empty
// collection name counts everything.
func (s *PGStore) Count(ctx context.Context, collection string) (int, error) {
	if s == nil || s.pool == nil {
		return 0, ErrUnavailable
	}

	var count int
	var err error
	if collection == "" {
		err = s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM knowledge_chunks`).Scan(&count)
	} else {
		err = s.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM knowledge_chunks WHERE collection = $1`, collection).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return count, nil
}
