package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthias/jobad-composer/internal/knowledge"
)

var ingestCommand = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest style and duty chunk files into the knowledge base",
	Long: `Loads JSONL chunk files (style exemplars and duty templates), embeds
their search text and upserts them into the pgvector-backed knowledge
base. Chunk ids are content-addressed, so re-running on the same files
is idempotent.`,
	RunE: runIngestCmd,
}

var (
	ingestConfigPath string
	ingestStylePath  string
	ingestDutyPath   string
	ingestVerbose    bool
)

func init() {
	ingestCommand.Flags().StringVar(&ingestConfigPath, "config", "", "Path to config.json file")
	ingestCommand.Flags().StringVar(&ingestStylePath, "style-chunks", "", "JSONL file with style chunks")
	ingestCommand.Flags().StringVar(&ingestDutyPath, "duty-chunks", "", "JSONL file with duty template chunks")
	ingestCommand.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(ingestCommand)
}

func runIngestCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadCLIConfig(ingestConfigPath, ingestVerbose)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("style-chunks") {
		cfg.StyleChunksPath = ingestStylePath
	}
	if cmd.Flags().Changed("duty-chunks") {
		cfg.DutyChunksPath = ingestDutyPath
	}
	if cfg.StyleChunksPath == "" && cfg.DutyChunksPath == "" {
		return fmt.Errorf("nothing to ingest: set --style-chunks and/or --duty-chunks")
	}

	conns := connect(ctx, cfg, ingestVerbose)
	defer conns.close()
	if conns.vectors == nil {
		return fmt.Errorf("ingestion requires a database and a Gemini API key for embeddings")
	}

	if err := conns.vectors.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to prepare knowledge schema: %w", err)
	}

	stats, err := knowledge.IngestFiles(ctx, conns.vectors, cfg.StyleChunksPath, cfg.DutyChunksPath)
	if err != nil {
		return err
	}

	fmt.Printf("Ingested %d style chunks and %d duty chunks (%d stored)\n",
		stats.StyleChunks, stats.DutyChunks, stats.Stored)
	return nil
}
