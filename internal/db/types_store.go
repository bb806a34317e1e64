package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Feedback kinds accepted by the store.
const (
	FeedbackAccepted = "accepted"
	FeedbackRejected = "rejected"
	FeedbackEdited   = "edited"
)

// GoldStandard is an accepted job ad kept per user as a few-shot example.
// Body holds the JobBody JSON verbatim; Config is the generation config the
// ad was produced with, used to prefer style-compatible examples.
type GoldStandard struct {
	ID        int64           `json:"id"`
	UserID    string          `json:"user_id"`
	JobTitle  string          `json:"job_title"`
	Body      string          `json:"body"`
	Config    json.RawMessage `json:"config,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// UserFeedback is one stored feedback record. Rejected and edited records
// ("gripes") feed the refinement gate; accepted records keep the full body
// for the interaction history.
type UserFeedback struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"user_id"`
	Key          string    `json:"key"`
	JobTitle     string    `json:"job_title,omitempty"`
	FeedbackType string    `json:"feedback_type"`
	FeedbackText string    `json:"feedback_text,omitempty"`
	Body         string    `json:"body,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Interaction is one row of the append-only interaction log.
type Interaction struct {
	ID              int64           `json:"id"`
	UserID          string          `json:"user_id"`
	SessionID       string          `json:"session_id,omitempty"`
	InteractionType string          `json:"interaction_type"`
	JobTitle        string          `json:"job_title,omitempty"`
	InputData       json.RawMessage `json:"input_data,omitempty"`
	OutputData      json.RawMessage `json:"output_data,omitempty"`
	Metadata        json.RawMessage `json:"metadata,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// FeedbackKey builds the storage key for a feedback record: the job title
// plus an 8-hex-char UUID fragment, so repeated feedback on the same title
// never collides.
func FeedbackKey(jobTitle string) string {
	id := uuid.New()
	return fmt.Sprintf("%s_%x", jobTitle, id[:4])
}
