// Package duties resolves the duty bullet list for a job ad through a
// strict three-tier cascade: user-provided duties win outright, otherwise
// category templates are retrieved from the knowledge store, otherwise the
// drafter is left to generate duties on its own.
package duties

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"github.com/matthias/jobad-composer/internal/knowledge"
	"github.com/matthias/jobad-composer/internal/types"
)

// Source identifies which cascade tier produced the duty list.
type Source string

const (
	// SourceUser means the caller supplied duties directly.
	SourceUser Source = "user"
	// SourceCategory means duties came from a job-category template match.
	SourceCategory Source = "category"
	// SourceLLM means no duties were resolved and the drafter generates them.
	SourceLLM Source = "llm"
)

// categoryFetchK is the desired number of category matches. Tier 2 fetches
// twice this so seniority filtering still leaves enough material.
const categoryFetchK = 3

// seniorityTemplate maps the app-level seniority label onto the template
// tiers the duty chunks were ingested under. Labels missing from the map
// search unconstrained. Intern is handled separately: interns have no
// standardized duty set, so tier 2 is skipped for them entirely.
var seniorityTemplate = map[types.Seniority]string{
	types.SeniorityJunior:    "junior",
	types.SeniorityMid:       "junior",
	types.SenioritySenior:    "senior",
	types.SeniorityLead:      "senior",
	types.SeniorityPrincipal: "senior",
}

// escalationHints extend senior-template duties with leadership scope for
// lead and principal roles.
var escalationHints = map[types.Seniority]map[types.Language]string{
	types.SeniorityLead: {
		types.LanguageGerman:  "Führung und Weiterentwicklung des Teams sowie Verantwortung für die fachliche Steuerung",
		types.LanguageEnglish: "Leading and developing the team with responsibility for professional oversight",
	},
	types.SeniorityPrincipal: {
		types.LanguageGerman:  "Strategische Verantwortung und fachliche Führung über mehrere Teams oder Bereiche hinweg",
		types.LanguageEnglish: "Strategic responsibility and technical leadership across multiple teams or domains",
	},
}

// Resolver runs the duty cascade against a knowledge source. A nil source
// is valid and limits the cascade to tiers 1 and 3.
type Resolver struct {
	src knowledge.Source
}

// NewResolver returns a resolver over the given knowledge source.
func NewResolver(src knowledge.Source) *Resolver {
	return &Resolver{src: src}
}

// Resolve executes the cascade and reports which tier supplied the duties.
// Retrieval failures degrade to tier 3 and are never returned to the caller.
func (r *Resolver) Resolve(ctx context.Context, userDuties []string, jobTitle string, seniority types.Seniority, lang types.Language) ([]string, Source) {
	if len(userDuties) > 0 {
		log.WithField("count", len(userDuties)).Info("duty cascade tier 1: user-provided duties")
		return append([]string(nil), userDuties...), SourceUser
	}

	if duties := r.retrieveTemplates(ctx, jobTitle, seniority, lang); len(duties) > 0 {
		log.WithFields(log.Fields{
			"count":     len(duties),
			"job_title": jobTitle,
		}).Info("duty cascade tier 2: category-matched duties")
		return duties, SourceCategory
	}

	log.WithField("job_title", jobTitle).Info("duty cascade tier 3: drafter generates duties")
	return nil, SourceLLM
}

// retrieveTemplates searches duty templates by job title and filters the
// hits to the seniority tier. Every failure path returns nil.
func (r *Resolver) retrieveTemplates(ctx context.Context, jobTitle string, seniority types.Seniority, lang types.Language) []string {
	if seniority == types.SeniorityIntern {
		log.Debug("seniority intern, no template duties")
		return nil
	}
	if r == nil || r.src == nil {
		return nil
	}

	tier := seniorityTemplate[seniority]
	hits, err := r.src.Search(ctx, knowledge.CollectionDutyTemplates, jobTitle, categoryFetchK*2)
	if err != nil {
		log.WithField("job_title", jobTitle).WithError(err).Warn("duty template search failed")
		return nil
	}
	if len(hits) == 0 {
		log.WithField("job_title", jobTitle).Debug("no duty template matches")
		return nil
	}

	var duties []string
	bestCategory := ""
	for _, hit := range hits {
		if tier != "" && hit.Metadata["seniority"] != tier {
			continue
		}
		if bestCategory == "" {
			bestCategory = fmt.Sprintf("%s (%s)", hit.Metadata["category_code"], hit.Metadata["category_name"])
		}
		for _, line := range strings.Split(hit.Content, "\n") {
			line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "•-* "))
			if utf8.RuneCountInString(line) > 5 && !containsLine(duties, line) {
				duties = append(duties, line)
			}
		}
	}

	if hint := escalationHints[seniority][lang]; hint != "" && !containsLine(duties, hint) {
		duties = append(duties, hint)
	}

	if len(duties) > 0 {
		log.WithFields(log.Fields{
			"job_title": jobTitle,
			"seniority": seniority,
			"tier":      tier,
			"category":  bestCategory,
			"count":     len(duties),
		}).Info("duty templates matched")
	}
	return duties
}

// ExplainResolve runs the cascade once and returns the duties, the source
// and a line-per-decision trace for audit output.
func (r *Resolver) ExplainResolve(ctx context.Context, userDuties []string, jobTitle string, seniority types.Seniority, lang types.Language) ([]string, Source, string) {
	var lines []string
	if len(userDuties) > 0 {
		lines = append(lines, fmt.Sprintf("Tier 1: %d user-provided duties => source=user", len(userDuties)))
		return append([]string(nil), userDuties...), SourceUser, strings.Join(lines, "\n")
	}
	lines = append(lines, "Tier 1: no user-provided duties")

	if seniority == types.SeniorityIntern {
		lines = append(lines,
			"Tier 2: seniority 'intern' => skipped, interns get no template",
			"Tier 3: drafter generates duties => source=llm")
		return nil, SourceLLM, strings.Join(lines, "\n")
	}
	if tier := seniorityTemplate[seniority]; tier != "" {
		lines = append(lines, fmt.Sprintf("Tier 2: seniority '%s' => template tier '%s'", seniority, tier))
	} else {
		lines = append(lines, "Tier 2: no seniority constraint, both tiers eligible")
	}

	duties := r.retrieveTemplates(ctx, jobTitle, seniority, lang)
	if len(duties) > 0 {
		lines = append(lines, fmt.Sprintf("Tier 2: %d duty lines matched for '%s' => source=category", len(duties), jobTitle))
		return duties, SourceCategory, strings.Join(lines, "\n")
	}
	lines = append(lines,
		fmt.Sprintf("Tier 2: no template match for '%s'", jobTitle),
		"Tier 3: drafter generates duties => source=llm")
	return nil, SourceLLM, strings.Join(lines, "\n")
}

func containsLine(lines []string, s string) bool {
	for _, line := range lines {
		if line == s {
			return true
		}
	}
	return false
}
