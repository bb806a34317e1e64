// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment variables
// or CLI flags.
type Config struct {
	// Identity
	UserID string `json:"user_id,omitempty"` // User id scoping gold standards and feedback

	// Services
	DatabaseURL   string `json:"database_url,omitempty"`   // PostgreSQL connection URL (relational + vector store)
	GeminiAPIKey  string `json:"gemini_api_key,omitempty"` // Writer/embedding API key (GEMINI_API_KEY)
	OpenRouterKey string `json:"openrouter_key,omitempty"` // Judge API key (OPENROUTER_API_KEY)

	// Models
	WriterModel        string `json:"writer_model,omitempty"`         // Override for the standard writer tier
	JudgeModel         string `json:"judge_model,omitempty"`          // Batched reward judge
	JudgeFallbackModel string `json:"judge_fallback_model,omitempty"` // Retried once when the judge fails
	EmbeddingModel     string `json:"embedding_model,omitempty"`      // Vector store embeddings

	// Knowledge base ingestion
	StyleChunksPath string `json:"style_chunks_path,omitempty"` // JSONL style chunk file
	DutyChunksPath  string `json:"duty_chunks_path,omitempty"`  // JSONL duty template file

	// Generation
	NumCandidates int     `json:"num_candidates,omitempty" validate:"omitempty,min=1,max=10"`
	JitterStep    float64 `json:"jitter_step,omitempty" validate:"omitempty,min=0,max=0.5"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Environment variable names consumed when the config file and flags leave
// a service field empty.
const (
	EnvGeminiAPIKey  = "GEMINI_API_KEY"
	EnvOpenRouterKey = "OPENROUTER_API_KEY"
	EnvDatabaseURL   = "DATABASE_URL"
)

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks numeric ranges and that referenced chunk files exist.
// Required fields are not checked here: requiredness depends on the
// subcommand and is enforced after merging flags and environment.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	for _, path := range []string{c.StyleChunksPath, c.DutyChunksPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: chunk file not found: %s", path)
		}
	}
	return nil
}

// ApplyEnv fills empty service fields from the environment. Explicit config
// and flag values always win.
func (c *Config) ApplyEnv() {
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv(EnvGeminiAPIKey)
	}
	if c.OpenRouterKey == "" {
		c.OpenRouterKey = os.Getenv(EnvOpenRouterKey)
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv(EnvDatabaseURL)
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.OpenRouterKey == "" {
		result.OpenRouterKey = defaults.OpenRouterKey
	}
	if result.WriterModel == "" {
		result.WriterModel = defaults.WriterModel
	}
	if result.JudgeModel == "" {
		result.JudgeModel = defaults.JudgeModel
	}
	if result.JudgeFallbackModel == "" {
		result.JudgeFallbackModel = defaults.JudgeFallbackModel
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.StyleChunksPath == "" {
		result.StyleChunksPath = defaults.StyleChunksPath
	}
	if result.DutyChunksPath == "" {
		result.DutyChunksPath = defaults.DutyChunksPath
	}

	// Numeric fields: use default if zero
	if result.NumCandidates == 0 {
		result.NumCandidates = defaults.NumCandidates
	}
	if result.JitterStep == 0 {
		result.JitterStep = defaults.JitterStep
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
