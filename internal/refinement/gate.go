// Package refinement rewrites weak candidates after scoring. The gate
// opens when the user has stored rejection or edit feedback (a standing
// preference, applied to every candidate) or when a judge score falls
// below the threshold (applied to the scored-low candidates only); with
// neither, candidates pass through untouched.
package refinement

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matthias/jobad-composer/internal/db"
)

// RefineThreshold is the judge score below which a candidate needs rework.
const RefineThreshold = 0.7

// gripeLimit bounds how much stored feedback one pass considers.
const gripeLimit = 5

// maxGeneralFeedback caps feedback lines that do not match the current
// job title, keeping the rewrite prompt small.
const maxGeneralFeedback = 2

type scoredCandidate struct {
	index int
	score float64
}

// partitionFeedback splits stored gripes into lines matching the current
// job title and general ones. A gripe matches when its job title contains
// any word of the current title longer than three characters.
func partitionFeedback(gripes []db.UserFeedback, jobTitle string) (avoid, general []string) {
	titleWords := significantWords(jobTitle)
	for _, gripe := range gripes {
		if gripe.FeedbackText == "" {
			continue
		}
		line := "- " + gripe.FeedbackText
		gripeTitle := strings.ToLower(gripe.JobTitle)
		if gripeTitle != "" && containsAny(gripeTitle, titleWords) {
			avoid = append(avoid, line)
		} else {
			general = append(general, line)
		}
	}
	return avoid, general
}

func significantWords(title string) []string {
	var words []string
	for _, word := range strings.Fields(strings.ToLower(title)) {
		if len([]rune(word)) > 3 {
			words = append(words, word)
		}
	}
	return words
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// lowScores returns candidates scoring below the threshold, in index
// order. Candidates missing from the map count as fine, and an empty map
// disables score-triggered refinement entirely.
func lowScores(scores map[int]float64, n int) []scoredCandidate {
	if len(scores) == 0 {
		return nil
	}
	var low []scoredCandidate
	for idx := 0; idx < n; idx++ {
		score, ok := scores[idx]
		if !ok {
			continue
		}
		if score < RefineThreshold {
			low = append(low, scoredCandidate{index: idx, score: score})
		}
	}
	sort.Slice(low, func(i, j int) bool { return low[i].index < low[j].index })
	return low
}

// buildInstructions renders the rewrite context: user feedback first,
// then the score analysis, then a company excerpt.
func buildInstructions(avoid, general []string, low []scoredCandidate, scraped string) string {
	var blocks []string

	feedback := append(append([]string{}, avoid...), capLines(general, maxGeneralFeedback)...)
	if len(feedback) > 0 {
		blocks = append(blocks, "IMPORTANT - User Feedback (HITL): Avoid these issues from past feedback:\n"+strings.Join(feedback, "\n"))
	}

	if len(low) > 0 {
		lines := make([]string, len(low))
		for i, lc := range low {
			lines[i] = fmt.Sprintf("Candidate %d scored %.2f (below threshold %v) - needs improvement", lc.index+1, lc.score, RefineThreshold)
		}
		blocks = append(blocks, "RULER Analysis (Test-time Compute):\n"+strings.Join(lines, "\n"))
	}

	if scraped != "" {
		excerpt := scraped
		if runes := []rune(excerpt); len(runes) > 300 {
			excerpt = string(runes[:300])
		}
		blocks = append(blocks, fmt.Sprintf("Company Context (for style consistency):\n%s...", excerpt))
	}

	return strings.Join(blocks, "\n\n")
}

func capLines(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[:n]
}
