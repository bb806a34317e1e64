package refinement

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/matthias/jobad-composer/internal/db"
	"github.com/matthias/jobad-composer/internal/llm"
	"github.com/matthias/jobad-composer/internal/schemas"
	"github.com/matthias/jobad-composer/internal/types"
)

// refineTemperature keeps rewrites conservative.
const refineTemperature = 0.3

// GripeSource provides stored rejection and edit feedback. *db.Store
// satisfies it.
type GripeSource interface {
	GetGripes(ctx context.Context, userID string, limit int) ([]db.UserFeedback, error)
}

// Input is one refinement pass over a scored candidate batch.
type Input struct {
	UserID      string
	JobTitle    string
	Config      types.JobGenerationConfig
	Candidates  []types.JobBody
	Scores      map[int]float64
	ScrapedText string
}

// Result carries the possibly rewritten batch. Refined reports whether a
// rewrite pass ran at all (the router re-scores only then).
type Result struct {
	Candidates      []types.JobBody
	Refined         bool
	NeedsRefinement bool
}

// Expert rewrites candidates that stored feedback or low judge scores
// flag as weak.
type Expert struct {
	factory llm.ClientFactory
	gripes  GripeSource
}

// NewExpert returns an Expert. gripes may be nil, disabling the
// feedback-driven gate.
func NewExpert(factory llm.ClientFactory, gripes GripeSource) *Expert {
	return &Expert{factory: factory, gripes: gripes}
}

// Refine applies the gate and rewrites eligible candidates concurrently.
// Any stored feedback makes every candidate eligible; otherwise only
// sub-threshold candidates are. Per-candidate rewrite failures keep the
// original, so Refine never shrinks the batch and never returns an error.
func (e *Expert) Refine(ctx context.Context, in Input) Result {
	if len(in.Candidates) == 0 {
		return Result{Candidates: in.Candidates, Refined: true}
	}

	var gripes []db.UserFeedback
	if e.gripes != nil {
		var err error
		gripes, err = e.gripes.GetGripes(ctx, in.UserID, gripeLimit)
		if err != nil {
			log.WithError(err).Warn("feedback lookup failed, refining on scores only")
			gripes = nil
		}
	}

	avoid, general := partitionFeedback(gripes, in.JobTitle)
	hasFeedback := len(avoid)+len(general) > 0
	low := lowScores(in.Scores, len(in.Candidates))

	if !hasFeedback && len(low) == 0 {
		return Result{Candidates: in.Candidates, Refined: false}
	}

	eligible := make(map[int]bool, len(in.Candidates))
	if hasFeedback {
		for idx := range in.Candidates {
			eligible[idx] = true
		}
	} else {
		for _, lc := range low {
			eligible[lc.index] = true
		}
	}

	instructions := buildInstructions(avoid, general, low, in.ScrapedText)
	lang := in.Config.Normalized().Language

	results := make([]types.JobBody, len(in.Candidates))
	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	for i, candidate := range in.Candidates {
		i, candidate := i, candidate
		if !eligible[i] {
			results[i] = candidate
			continue
		}
		g.Go(func() error {
			refined, err := e.rewriteOne(gCtx, lang, candidate, instructions, scoreInfo(in.Scores, i))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.WithField("candidate", i).WithError(err).Warn("refinement failed, keeping original")
				results[i] = candidate
				return nil
			}
			results[i] = refined
			return nil
		})
	}
	_ = g.Wait()

	return Result{Candidates: results, Refined: true, NeedsRefinement: true}
}

// rewriteOne issues a single rewrite with a fresh client so concurrent
// rewrites never share transport state.
func (e *Expert) rewriteOne(ctx context.Context, lang types.Language, candidate types.JobBody, instructions, rulerInfo string) (types.JobBody, error) {
	client, err := e.factory(ctx)
	if err != nil {
		return types.JobBody{}, fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	prompt := buildRefinePrompt(lang, candidate, instructions, rulerInfo)
	raw, err := client.GenerateStructured(ctx, prompt, llm.TierStandard, refineTemperature, llm.JobBodySchema())
	if err != nil {
		return types.JobBody{}, fmt.Errorf("failed to refine candidate: %w", err)
	}
	if err := schemas.ValidateJobBody(raw); err != nil {
		return types.JobBody{}, fmt.Errorf("refined job body is invalid: %w", err)
	}

	var body types.JobBody
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return types.JobBody{}, fmt.Errorf("failed to parse refined job body: %w", err)
	}
	return body, nil
}

func scoreInfo(scores map[int]float64, idx int) string {
	score, ok := scores[idx]
	if !ok {
		return ""
	}
	return fmt.Sprintf("\nRULER Score: %.3f (target: >%v)", score, RefineThreshold)
}

func buildRefinePrompt(lang types.Language, candidate types.JobBody, instructions, rulerInfo string) string {
	candidateJSON, _ := json.MarshalIndent(candidate, "", "  ")

	if lang == types.LanguageGerman {
		return "Du verfeinerst eine Stellenbeschreibung basierend auf Feedback und Qualitätsanalyse.\n" +
			instructions + "\n" +
			rulerInfo + "\n\n" +
			"Aktuelle Stellenbeschreibung:\n" + string(candidateJSON) + "\n\n" +
			"Verfeinere diese Stellenbeschreibung, um:\n" +
			"- Die gleiche Struktur und das Format beizubehalten\n" +
			"- Auf die oben genannten Feedback-Probleme einzugehen\n" +
			"- Klarheit, Professionalität und Ausrichtung zu verbessern\n" +
			"- Ausrichtung am Unternehmensstil sicherzustellen (falls Kontext vorhanden)\n" +
			"- Alle wesentlichen Informationen beizubehalten\n" +
			"Gib die verfeinerte JobBody-Instanz zurück."
	}
	return "You are refining a job description based on feedback and quality analysis.\n" +
		instructions + "\n" +
		rulerInfo + "\n\n" +
		"Current job description:\n" + string(candidateJSON) + "\n\n" +
		"Refine this job description to:\n" +
		"- Maintain the same structure and format\n" +
		"- Address the feedback and issues mentioned above\n" +
		"- Improve clarity, professionalism, and alignment\n" +
		"- Ensure alignment with company style (if context provided)\n" +
		"- Keep all essential information\n" +
		"Return the refined JobBody instance."
}
