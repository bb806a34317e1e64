package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/matthias/jobad-composer/internal/company"
	"github.com/matthias/jobad-composer/internal/config"
	"github.com/matthias/jobad-composer/internal/db"
	"github.com/matthias/jobad-composer/internal/drafting"
	"github.com/matthias/jobad-composer/internal/duties"
	"github.com/matthias/jobad-composer/internal/knowledge"
	"github.com/matthias/jobad-composer/internal/llm"
	"github.com/matthias/jobad-composer/internal/ranking"
	"github.com/matthias/jobad-composer/internal/refinement"
	"github.com/matthias/jobad-composer/internal/styling"
	"github.com/matthias/jobad-composer/internal/types"
	"github.com/matthias/jobad-composer/internal/workflow"
)

// loadCLIConfig loads the optional config file, applies environment
// fallbacks and validates the merged result.
func loadCLIConfig(path string, verbose bool) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		if verbose {
			fmt.Printf("Loaded config from: %s\n", path)
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// writerConfig builds the tiered model config with any override applied.
func writerConfig(cfg config.Config) *llm.Config {
	llmCfg := llm.DefaultGeminiConfig()
	if cfg.WriterModel != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, cfg.WriterModel)
	}
	return llmCfg
}

// clients bundles the service handles one command wires up. Absent
// services stay nil and every consumer degrades.
type clients struct {
	store   *db.Store
	vectors *knowledge.PGStore
}

// close releases whatever was connected.
func (c *clients) close() {
	if c.vectors != nil {
		c.vectors.Close()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// connect opens the relational store and the vector store. Both are
// optional: connection failures print a warning and leave the handle nil
// so runs proceed without persistence or retrieval.
func connect(ctx context.Context, cfg config.Config, verbose bool) *clients {
	c := &clients{}
	if cfg.DatabaseURL == "" {
		return c
	}

	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Printf("Warning: failed to connect to database: %v\n", err)
		fmt.Printf("Continuing without persistence...\n")
	} else {
		c.store = store
		if verbose {
			fmt.Printf("Connected to database\n")
		}
	}

	if cfg.GeminiAPIKey != "" {
		embedder, err := llm.NewGeminiEmbedder(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel)
		if err != nil {
			fmt.Printf("Warning: failed to create embedder: %v\n", err)
			return c
		}
		vectors, err := knowledge.NewPGStore(ctx, cfg.DatabaseURL, embedder)
		if err != nil {
			fmt.Printf("Warning: failed to connect to knowledge store: %v\n", err)
		} else {
			c.vectors = vectors
			if verbose {
				fmt.Printf("Connected to knowledge store\n")
			}
		}
	}
	return c
}

// buildEngine assembles the workflow engine from whatever services are
// available.
func buildEngine(cfg config.Config, c *clients) (*workflow.Engine, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (flag, config file, or %s)", config.EnvGeminiAPIKey)
	}

	factory := llm.Factory(writerConfig(cfg), cfg.GeminiAPIKey)
	engine := workflow.NewEngine(drafting.NewDrafter(factory))

	if cfg.OpenRouterKey != "" {
		judge := ranking.NewOpenRouterJudge("", cfg.OpenRouterKey)
		engine.Scorer = ranking.NewScorer(judge, cfg.JudgeModel, cfg.JudgeFallbackModel)
	} else {
		fmt.Printf("Warning: no OpenRouter key, candidates will not be scored\n")
	}

	var gripes refinement.GripeSource
	if c.store != nil {
		gripes = c.store
		engine.Gold = c.store
		engine.Records = c.store
	}
	engine.Refiner = refinement.NewExpert(factory, gripes)

	if c.vectors != nil {
		engine.Kits = styling.NewAssembler(c.vectors)
		engine.Duties = duties.NewResolver(c.vectors)
		engine.Company = company.NewProvider(c.vectors, c.vectors)
	}
	return engine, nil
}

// parseSkills turns "Go:backend:expert,SQL" style flag values into skill
// items. Category and level are optional.
func parseSkills(values []string) []types.SkillItem {
	var skills []types.SkillItem
	for _, value := range values {
		for _, entry := range strings.Split(value, ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			parts := strings.SplitN(entry, ":", 3)
			item := types.SkillItem{Name: strings.TrimSpace(parts[0])}
			if len(parts) > 1 {
				item.Category = strings.TrimSpace(parts[1])
			}
			if len(parts) > 2 {
				item.Level = strings.TrimSpace(parts[2])
			}
			if item.Name != "" {
				skills = append(skills, item)
			}
		}
	}
	return skills
}

// splitList splits repeated or comma-separated flag values into trimmed
// non-empty entries.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, entry := range strings.Split(value, ",") {
			entry = strings.TrimSpace(entry)
			if entry != "" {
				out = append(out, entry)
			}
		}
	}
	return out
}
