// Package db provides PostgreSQL access to the user-scoped feedback store:
// gold standards (accepted job ads reused as few-shot examples), feedback
// records driving refinement, and the interaction log.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the store tables if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS gold_standards (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			job_title TEXT NOT NULL,
			job_body_json TEXT NOT NULL,
			config_json JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, job_title)
		)`,
		`CREATE TABLE IF NOT EXISTS user_feedback (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			key TEXT NOT NULL,
			job_title TEXT,
			feedback_type TEXT NOT NULL,
			feedback_text TEXT,
			job_body_json TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_user_type ON user_feedback (user_id, feedback_type)`,
		`CREATE TABLE IF NOT EXISTS interactions (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			session_id TEXT,
			interaction_type TEXT NOT NULL,
			job_title TEXT,
			input_data JSONB,
			output_data JSONB,
			metadata JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_user_created ON interactions (user_id, created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure store schema: %w", err)
		}
	}
	return nil
}
