package knowledge

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

// ChunkWriter is the write side of the store, as consumed by ingestion.
type ChunkWriter interface {
	AddChunks(ctx context.Context, chunks []Chunk) (int, error)
}

// IngestStats reports what an ingestion run loaded and stored.
type IngestStats struct {
	StyleChunks int
	DutyChunks  int
	Stored      int
}

// IngestFiles loads the style and duty chunk files and writes them to the
// store in one pass. A missing file is skipped with a warning; both files
// missing or empty is an error because the run would change nothing.
func IngestFiles(ctx context.Context, store ChunkWriter, stylePath, dutyPath string) (IngestStats, error) {
	stats := IngestStats{}
	var chunks []Chunk

	if fileExists(stylePath) {
		styleChunks, err := LoadStyleChunks(stylePath)
		if err != nil {
			return stats, fmt.Errorf("failed to load style chunks: %w", err)
		}
		stats.StyleChunks = len(styleChunks)
		chunks = append(chunks, styleChunks...)
	} else if stylePath != "" {
		log.WithField("path", stylePath).Warn("style chunks file not found, skipping")
	}

	if fileExists(dutyPath) {
		dutyChunks, err := LoadDutyChunks(dutyPath)
		if err != nil {
			return stats, fmt.Errorf("failed to load duty chunks: %w", err)
		}
		stats.DutyChunks = len(dutyChunks)
		chunks = append(chunks, dutyChunks...)
	} else if dutyPath != "" {
		log.WithField("path", dutyPath).Warn("duty chunks file not found, skipping")
	}

	if len(chunks) == 0 {
		return stats, fmt.Errorf("no chunks found (style=%q, duty=%q)", stylePath, dutyPath)
	}

	stored, err := store.AddChunks(ctx, chunks)
	stats.Stored = stored
	if err != nil {
		return stats, fmt.Errorf("failed to store chunks: %w", err)
	}

	log.WithFields(log.Fields{
		"style":  stats.StyleChunks,
		"duties": stats.DutyChunks,
		"stored": stats.Stored,
	}).Info("knowledge ingestion complete")
	return stats, nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
