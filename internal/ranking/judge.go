package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/matthias/jobad-composer/internal/llm"
)

const (
	// DefaultBaseURL is the OpenRouter API endpoint.
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// DefaultJudgeModel scores candidate batches.
	DefaultJudgeModel = "openai/o3-mini"
	// DefaultJudgeFallbackModel is retried once when the primary judge fails.
	DefaultJudgeFallbackModel = "google/gemini-2.5-flash"

	// judgeTimeout bounds one batched scoring call. Reasoning judges are
	// slow on large batches.
	judgeTimeout = 120 * time.Second
)

// rulerSystemPrompt instructs the reward judge how to score a batch.
const rulerSystemPrompt = "You are a reward model ranking candidate responses. Each trajectory contains " +
	"the instructions a candidate received and the response it produced. Assign each trajectory a quality " +
	"score between 0.0 and 1.0 reflecting how well the response satisfies its instructions. Higher is " +
	"better. Scores are relative within this batch."

// Judge scores a batch of trajectories, returning one reward per entry in
// input order.
type Judge interface {
	ScoreGroup(ctx context.Context, trajectories []Trajectory, model string) ([]float64, error)
}

// OpenRouterJudge implements Judge against the OpenRouter chat completions
// API.
type OpenRouterJudge struct {
	http    *resty.Client
	baseURL string
	apiKey  string
}

// NewOpenRouterJudge creates a judge client. An empty baseURL selects the
// public OpenRouter endpoint.
func NewOpenRouterJudge(baseURL, apiKey string) *OpenRouterJudge {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OpenRouterJudge{
		http:    resty.New().SetTimeout(judgeTimeout),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// ScoreGroup submits the whole batch in one call and parses the judge reply
// as a bare JSON array of floats, one per trajectory.
func (j *OpenRouterJudge) ScoreGroup(ctx context.Context, trajectories []Trajectory, model string) ([]float64, error) {
	if len(trajectories) == 0 {
		return nil, nil
	}

	payload, err := json.MarshalIndent(trajectories, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal trajectories: %w", err)
	}

	user := fmt.Sprintf(
		"Score the following %d candidate trajectories.\n\nTrajectories JSON:\n%s\n\n"+
			"Return ONLY a JSON array with exactly %d floats between 0.0 and 1.0, one per trajectory, in input order.",
		len(trajectories), payload, len(trajectories),
	)

	resp, err := j.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+j.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": model,
			"messages": []map[string]string{
				{"role": "system", "content": rulerSystemPrompt},
				{"role": "user", "content": user},
			},
		}).
		Post(j.baseURL + "/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("judge request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("judge request failed: status %d", resp.StatusCode())
	}

	content := gjson.Get(resp.String(), "choices.0.message.content").String()
	if content == "" {
		return nil, fmt.Errorf("no content in judge response")
	}

	var scores []float64
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(content)), &scores); err != nil {
		return nil, fmt.Errorf("failed to parse judge scores: %w", err)
	}
	if len(scores) != len(trajectories) {
		return nil, fmt.Errorf("judge returned %d scores for %d trajectories", len(scores), len(trajectories))
	}
	return scores, nil
}
