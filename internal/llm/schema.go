// Package llm - schema.go holds the predefined response schemas generation
// runs against.
package llm

import "github.com/google/generative-ai-go/genai"

// JobBodySchema returns the response schema for generated job descriptions.
// Drafting and refinement both generate against this shape; property names
// match the JSON tags of types.JobBody.
func JobBodySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"job_description": {
				Type:        genai.TypeString,
				Description: "Opening copy introducing the role and the employer",
			},
			"requirements": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Qualification bullet points",
			},
			"benefits": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Benefit bullet points",
			},
			"duties": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Day-to-day responsibility bullet points",
			},
			"summary": {
				Type:        genai.TypeString,
				Description: "One-sentence closing summary",
			},
		},
		Required: []string{"job_description", "requirements", "benefits", "duties"},
	}
}
