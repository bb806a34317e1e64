// Package curation picks the winning candidate from a scored batch and
// produces the audit ranking. It never judges: scoring completeness is
// the engine's responsibility.
package curation

import (
	"errors"
	"sort"

	"github.com/matthias/jobad-composer/internal/types"
)

// ErrNoCandidates reports an empty batch at the final selection step.
// This is an upstream invariant violation, not a recoverable state.
var ErrNoCandidates = errors.New("no candidates to curate")

// previewRunes bounds the description excerpt in each ranking entry.
const previewRunes = 100

// RankingEntry is one row of the descending audit ranking.
type RankingEntry struct {
	Rank    int     `json:"rank"`
	Score   float64 `json:"score"`
	Preview string  `json:"job_description_preview"`
}

// Select returns the highest-scoring candidate and the full ranking,
// best first. Indices missing from the score map count as 0.0, and ties
// keep the earlier candidate, so an all-zero map deterministically picks
// the first one.
func Select(candidates []types.JobBody, scores map[int]float64) (types.JobBody, []RankingEntry, error) {
	if len(candidates) == 0 {
		return types.JobBody{}, nil, ErrNoCandidates
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	ranking := make([]RankingEntry, len(order))
	for pos, idx := range order {
		ranking[pos] = RankingEntry{
			Rank:    pos + 1,
			Score:   scores[idx],
			Preview: candidates[idx].Preview(previewRunes),
		}
	}
	return candidates[order[0]], ranking, nil
}
