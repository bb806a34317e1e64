package drafting

import (
	"strings"

	"github.com/matthias/jobad-composer/internal/duties"
	"github.com/matthias/jobad-composer/internal/types"
)

// matchBestSentence finds the generated sentence that best covers the given
// keyword. A substring hit scores 1.0, overlap on any keyword word longer
// than three characters scores 0.5. The first sentence with the strictly
// highest score wins; ok is false when nothing scored above zero.
func matchBestSentence(keyword string, sentences []string) (string, bool) {
	keywordLower := strings.ToLower(strings.TrimSpace(keyword))
	words := strings.Fields(keywordLower)

	var best string
	bestScore := 0.0
	for _, sentence := range sentences {
		sentenceLower := strings.ToLower(sentence)

		score := 0.0
		if keywordLower != "" && strings.Contains(sentenceLower, keywordLower) {
			score = 1.0
		} else {
			for _, word := range words {
				if len([]rune(word)) > 3 && strings.Contains(sentenceLower, word) {
					score = 0.5
					break
				}
			}
		}

		if score > bestScore {
			bestScore = score
			best = sentence
		}
	}
	return best, bestScore > 0
}

// EnforceBenefits rewrites body.Benefits so that it holds exactly one
// sentence per configured keyword, in keyword order. Model output only
// survives where it matches a keyword; otherwise the raw keyword stands in.
// Without keywords the benefits list is forced empty.
func EnforceBenefits(body types.JobBody, keywords []string) types.JobBody {
	if len(keywords) == 0 {
		body.Benefits = []string{}
		return body
	}

	enforced := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if match, ok := matchBestSentence(keyword, body.Benefits); ok {
			enforced = append(enforced, match)
		} else {
			enforced = append(enforced, keyword)
		}
	}
	body.Benefits = enforced
	return body
}

// EnforceDuties pins body.Duties to the resolved duty list when duties were
// fixed upfront. Each resolved duty keeps the model's best rephrasing of it,
// falling back to the resolved text, so count and order never drift. Freely
// generated duties pass through untouched.
func EnforceDuties(body types.JobBody, resolved []string, source duties.Source) types.JobBody {
	if source == duties.SourceLLM || len(resolved) == 0 {
		return body
	}

	enforced := make([]string, 0, len(resolved))
	for _, duty := range resolved {
		if match, ok := matchBestSentence(duty, body.Duties); ok {
			enforced = append(enforced, match)
		} else {
			enforced = append(enforced, duty)
		}
	}
	body.Duties = enforced
	return body
}
