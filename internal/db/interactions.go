package db

import (
	"context"
	"encoding/json"
	"fmt"
)

// -----------------------------------------------------------------------------
// Interaction Log Methods
// -----------------------------------------------------------------------------

// SaveInteraction appends one record to the interaction log. The log is
// write-only during a run; it exists for offline analysis.
func (s *Store) SaveInteraction(ctx context.Context, rec Interaction) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO interactions (user_id, session_id, interaction_type, job_title, input_data, output_data, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		rec.UserID, rec.SessionID, rec.InteractionType, rec.JobTitle,
		nullableJSON(rec.InputData), nullableJSON(rec.OutputData), nullableJSON(rec.Metadata),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save interaction: %w", err)
	}
	return id, nil
}

// GetInteractionHistory retrieves a user's interaction records, newest
// first. A non-empty interactionType restricts results to that type.
func (s *Store) GetInteractionHistory(ctx context.Context, userID, interactionType string, limit int) ([]Interaction, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, user_id, COALESCE(session_id, ''), interaction_type,
			COALESCE(job_title, ''), input_data, output_data, metadata, created_at
		FROM interactions WHERE user_id = $1`
	args := []any{userID}
	argNum := 2

	if interactionType != "" {
		query += fmt.Sprintf(" AND interaction_type = $%d", argNum)
		args = append(args, interactionType)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	defer rows.Close()

	var records []Interaction
	for rows.Next() {
		var rec Interaction
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.SessionID, &rec.InteractionType,
			&rec.JobTitle, &rec.InputData, &rec.OutputData, &rec.Metadata, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// nullableJSON maps empty JSON payloads to NULL so the log stays sparse.
func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
