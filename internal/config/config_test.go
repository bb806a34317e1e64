package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"user_id": "550e8400-e29b-41d4-a716-446655440000",
		"database_url": "postgres://localhost/jobads",
		"judge_model": "openai/o3-mini",
		"num_candidates": 4,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", cfg.UserID)
	assert.Equal(t, "postgres://localhost/jobads", cfg.DatabaseURL)
	assert.Equal(t, "openai/o3-mini", cfg.JudgeModel)
	assert.Equal(t, 4, cfg.NumCandidates)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_NumericRanges(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "empty config is valid", cfg: Config{}},
		{name: "candidates in range", cfg: Config{NumCandidates: 5}},
		{name: "too many candidates", cfg: Config{NumCandidates: 11}, wantErr: true},
		{name: "jitter in range", cfg: Config{JitterStep: 0.1}},
		{name: "jitter too large", cfg: Config{JitterStep: 0.9}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_MissingChunkFile(t *testing.T) {
	cfg := Config{StyleChunksPath: "/nonexistent/style_chunks.jsonl"}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "chunk file not found")
}

func TestValidate_ExistingChunkFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "chunks.jsonl")
	require.NoError(t, os.WriteFile(tmpFile, []byte("{}\n"), 0644))

	cfg := Config{DutyChunksPath: tmpFile}
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnv_FillsOnlyEmptyFields(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "env-gemini")
	t.Setenv(EnvDatabaseURL, "postgres://env/db")

	cfg := Config{GeminiAPIKey: "explicit"}
	cfg.ApplyEnv()

	assert.Equal(t, "explicit", cfg.GeminiAPIKey, "explicit value wins over env")
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{UserID: "explicit-user", NumCandidates: 5}
	defaults := Config{
		UserID:        "default-user",
		JudgeModel:    "openai/o3-mini",
		NumCandidates: 3,
		JitterStep:    0.1,
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "explicit-user", merged.UserID)
	assert.Equal(t, "openai/o3-mini", merged.JudgeModel)
	assert.Equal(t, 5, merged.NumCandidates)
	assert.InDelta(t, 0.1, merged.JitterStep, 1e-9)
}
