package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// User Feedback Methods
// -----------------------------------------------------------------------------

// SaveUserFeedback stores one feedback record and returns its ID. The
// storage key is derived from the job title via FeedbackKey.
func (s *Store) SaveUserFeedback(ctx context.Context, userID, feedbackType, feedbackText, jobTitle, body string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO user_feedback (user_id, key, job_title, feedback_type, feedback_text, job_body_json)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		userID, FeedbackKey(jobTitle), jobTitle, feedbackType, feedbackText, body,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save user feedback: %w", err)
	}
	return id, nil
}

// GetUserFeedback retrieves a user's feedback records, newest first. A
// non-empty feedbackType restricts results to that kind.
func (s *Store) GetUserFeedback(ctx context.Context, userID, feedbackType string, limit int) ([]UserFeedback, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, user_id, key, COALESCE(job_title, ''), feedback_type,
			COALESCE(feedback_text, ''), COALESCE(job_body_json, ''), created_at
		FROM user_feedback WHERE user_id = $1`
	args := []any{userID}
	argNum := 2

	if feedbackType != "" {
		query += fmt.Sprintf(" AND feedback_type = $%d", argNum)
		args = append(args, feedbackType)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list user feedback: %w", err)
	}
	defer rows.Close()

	return scanFeedback(rows)
}

// GetGripes retrieves a user's rejected and edited records, the ones the
// refinement gate treats as standing preferences. Newest first.
func (s *Store) GetGripes(ctx context.Context, userID string, limit int) ([]UserFeedback, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, key, COALESCE(job_title, ''), feedback_type,
			COALESCE(feedback_text, ''), COALESCE(job_body_json, ''), created_at
		 FROM user_feedback
		 WHERE user_id = $1 AND feedback_type IN ($2, $3)
		 ORDER BY created_at DESC LIMIT $4`,
		userID, FeedbackRejected, FeedbackEdited, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list gripes: %w", err)
	}
	defer rows.Close()

	return scanFeedback(rows)
}

func scanFeedback(rows pgx.Rows) ([]UserFeedback, error) {
	var records []UserFeedback
	for rows.Next() {
		var fb UserFeedback
		if err := rows.Scan(&fb.ID, &fb.UserID, &fb.Key, &fb.JobTitle, &fb.FeedbackType, &fb.FeedbackText, &fb.Body, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user feedback: %w", err)
		}
		records = append(records, fb)
	}
	return records, nil
}

// DeleteUserFeedback removes one feedback record owned by the given user.
func (s *Store) DeleteUserFeedback(ctx context.Context, id int64, userID string) error {
	result, err := s.pool.Exec(ctx,
		`DELETE FROM user_feedback WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user feedback: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user feedback not found: %d", id)
	}
	return nil
}
