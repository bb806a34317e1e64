// Package ranking scores candidate job bodies with an external scalar-reward
// judge. Candidates are wrapped as chat trajectories, submitted as one batch
// for ranking consistency, and scored with a primary judge model plus one
// fallback retry.
package ranking

import (
	"encoding/json"
	"fmt"

	"github.com/matthias/jobad-composer/internal/types"
)

// Message is one chat turn inside a judge trajectory.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Trajectory is the 3-message transcript the judge evaluates: the rubric,
// the evaluation request, and the candidate output being judged.
type Trajectory struct {
	Messages []Message `json:"messages"`
}

// judgeSystemPrompt tells the judge what a good job ad looks like.
const judgeSystemPrompt = "You are an expert HR quality judge. You evaluate job descriptions for clarity, " +
	"tone, alignment with the requested role, and usefulness to candidates. " +
	"You prefer job ads that are specific, concise, aligned with the seniority level, " +
	"and realistic for the company type and industry."

// BuildTrajectory wraps one candidate body as a judge trajectory.
func BuildTrajectory(jobTitle string, cfg types.JobGenerationConfig, body types.JobBody) (Trajectory, error) {
	cfgJSON, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return Trajectory{}, fmt.Errorf("failed to marshal config: %w", err)
	}
	bodyJSON, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return Trajectory{}, fmt.Errorf("failed to marshal job body: %w", err)
	}

	user := fmt.Sprintf(
		"Evaluate the quality of the following job description.\n\nJob title: %s\n\nConfig JSON:\n%s\n\nJobBody JSON:\n%s\n",
		jobTitle, cfgJSON, bodyJSON,
	)

	return Trajectory{Messages: []Message{
		{Role: "system", Content: judgeSystemPrompt},
		{Role: "user", Content: user},
		{Role: "assistant", Content: string(bodyJSON)},
	}}, nil
}
