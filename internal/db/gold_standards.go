package db

import (
	"context"
	"encoding/json"
	"fmt"
)

// -----------------------------------------------------------------------------
// Gold Standard Methods
// -----------------------------------------------------------------------------

// SaveGoldStandard upserts an accepted job ad for a user. The job title is
// the key: accepting a new ad for the same title replaces the old example.
func (s *Store) SaveGoldStandard(ctx context.Context, userID, jobTitle, body string, config json.RawMessage) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO gold_standards (user_id, job_title, job_body_json, config_json)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, job_title) DO UPDATE SET job_body_json = $3, config_json = $4, updated_at = NOW()
		 RETURNING id`,
		userID, jobTitle, body, config,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save gold standard: %w", err)
	}
	return id, nil
}

// GetGoldStandards retrieves a user's gold standards, newest first. A
// non-empty titleFilter restricts results to titles containing it.
func (s *Store) GetGoldStandards(ctx context.Context, userID, titleFilter string, limit int) ([]GoldStandard, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT id, user_id, job_title, job_body_json, config_json, created_at, updated_at
		FROM gold_standards WHERE user_id = $1`
	args := []any{userID}
	argNum := 2

	if titleFilter != "" {
		query += fmt.Sprintf(" AND job_title ILIKE $%d", argNum)
		args = append(args, "%"+titleFilter+"%")
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d", argNum)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list gold standards: %w", err)
	}
	defer rows.Close()

	var standards []GoldStandard
	for rows.Next() {
		var gs GoldStandard
		if err := rows.Scan(&gs.ID, &gs.UserID, &gs.JobTitle, &gs.Body, &gs.Config, &gs.CreatedAt, &gs.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan gold standard: %w", err)
		}
		standards = append(standards, gs)
	}
	return standards, nil
}

// DeleteGoldStandard removes one gold standard owned by the given user.
func (s *Store) DeleteGoldStandard(ctx context.Context, id int64, userID string) error {
	result, err := s.pool.Exec(ctx,
		`DELETE FROM gold_standards WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete gold standard: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("gold standard not found: %d", id)
	}
	return nil
}
