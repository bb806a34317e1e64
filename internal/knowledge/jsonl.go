package knowledge

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// maxLineSize bounds one JSONL line. Duty templates run a few KB; style
// chunks stay well under this.
const maxLineSize = 1 << 20

// styleChunkRecord is one line of style_chunks.jsonl, the durable contract
// with the offline extraction tooling.
type styleChunkRecord struct {
	Content      string `json:"content"`
	ProfileColor string `json:"profile_color"`
	Dimension    string `json:"dimension"`
	Language     string `json:"language"`
	UseCase      string `json:"use_case"`
	Mode         string `json:"mode"`
	SourceFile   string `json:"source_file"`
}

// dutyChunkRecord is one line of duty_chunks.jsonl.
type dutyChunkRecord struct {
	Content      string `json:"content"`
	CategoryCode string `json:"category_code"`
	CategoryName string `json:"category_name"`
	BlockName    string `json:"block_name"`
	Seniority    string `json:"seniority"`
	Language     string `json:"language"`
	SourceFile   string `json:"source_file"`
}

// LoadStyleChunks reads style chunks from a JSONL file. Chunks are filed
// under style_{color}, except mode-syntax chunks (dimension "syntax",
// color "any") which go to the shared style_syntax collection.
func LoadStyleChunks(path string) ([]Chunk, error) {
	var chunks []Chunk
	err := readLines(path, func(lineNo int, line []byte) error {
		var record styleChunkRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return fmt.Errorf("style chunk line %d: %w", lineNo, err)
		}
		if record.Content == "" {
			return fmt.Errorf("style chunk line %d: missing content", lineNo)
		}
		if record.ProfileColor == "" {
			return fmt.Errorf("style chunk line %d: missing profile_color", lineNo)
		}

		collection := StyleCollection(record.ProfileColor)
		if record.Dimension == "syntax" && record.ProfileColor == "any" {
			collection = CollectionStyleSyntax
		}

		metadata := map[string]string{
			"profile_color": record.ProfileColor,
			"dimension":     record.Dimension,
			"language":      defaultString(record.Language, "de"),
			"use_case":      defaultString(record.UseCase, "job_ads"),
			"source_file":   record.SourceFile,
		}
		if record.Mode != "" {
			metadata["mode"] = record.Mode
		}

		chunks = append(chunks, Chunk{
			Collection: collection,
			Content:    record.Content,
			Metadata:   metadata,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// LoadDutyChunks reads duty template chunks from a JSONL file. The stored
// text prepends the category and block names so job-title queries match
// the right category.
func LoadDutyChunks(path string) ([]Chunk, error) {
	var chunks []Chunk
	err := readLines(path, func(lineNo int, line []byte) error {
		var record dutyChunkRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return fmt.Errorf("duty chunk line %d: %w", lineNo, err)
		}
		if record.Content == "" {
			return fmt.Errorf("duty chunk line %d: missing content", lineNo)
		}

		searchText := fmt.Sprintf("%s — %s\n%s", record.CategoryName, record.BlockName, record.Content)

		chunks = append(chunks, Chunk{
			Collection: CollectionDutyTemplates,
			Content:    searchText,
			Metadata: map[string]string{
				"category_code": record.CategoryCode,
				"category_name": record.CategoryName,
				"block_name":    record.BlockName,
				"seniority":     record.Seniority,
				"language":      defaultString(record.Language, "de"),
				"dimension":     "duties",
				"source_file":   record.SourceFile,
			},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// readLines streams non-empty lines of a JSONL file to fn with 1-based
// line numbers.
func readLines(path string, fn func(lineNo int, line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open chunk file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := fn(lineNo, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read chunk file: %w", err)
	}
	return nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
