package swissgerman

import (
	"strings"

	"github.com/matthias/jobad-composer/internal/types"
)

// Report summarizes the compliance checks for one piece of German output.
type Report struct {
	PronounConsistent    bool     `json:"pronoun_consistent"`
	PronounViolations    int      `json:"pronoun_violations"`
	VocabularyClean      bool     `json:"vocabulary_clean"`
	VocabularyViolations int      `json:"vocabulary_violations"`
	VocabularyDetails    []string `json:"vocabulary_details,omitempty"`
}

// Clean reports whether both checks passed.
func (r Report) Clean() bool {
	return r.PronounConsistent && r.VocabularyClean
}

// CheckText builds a compliance report for one plain text.
func CheckText(text string, formality types.Formality) Report {
	consistent, pronounCount := CheckPronounConsistency(text, formality)
	clean, vocabCount, details := CheckVocabulary(text)
	return Report{
		PronounConsistent:    consistent,
		PronounViolations:    pronounCount,
		VocabularyClean:      clean,
		VocabularyViolations: vocabCount,
		VocabularyDetails:    details,
	}
}

// CheckBody builds a compliance report across every text field of a body.
func CheckBody(body types.JobBody, formality types.Formality) Report {
	parts := []string{body.JobDescription}
	parts = append(parts, body.Requirements...)
	parts = append(parts, body.Benefits...)
	parts = append(parts, body.Duties...)
	if body.Summary != "" {
		parts = append(parts, body.Summary)
	}
	return CheckText(strings.Join(parts, "\n"), formality)
}
