package drafting

import (
	"context"
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/matthias/jobad-composer/internal/db"
	"github.com/matthias/jobad-composer/internal/schemas"
	"github.com/matthias/jobad-composer/internal/types"
)

// GoldSource provides stored gold standards for few-shot prompting.
// *db.Store satisfies it.
type GoldSource interface {
	GetGoldStandards(ctx context.Context, userID, titleFilter string, limit int) ([]db.GoldStandard, error)
}

// SelectGoldExamples picks up to two stored gold standards to use as
// few-shot examples. Title matches come first, preferring examples whose
// config shares company type, industry and formality with the current run;
// one non-matching title hit is allowed while the list is still empty. Any
// shortfall is topped up from the user's most recent gold standards. Bodies
// that no longer validate against the JobBody schema are dropped silently.
// Retrieval errors degrade to no examples.
func SelectGoldExamples(ctx context.Context, src GoldSource, userID, jobTitle string, cfg types.JobGenerationConfig) []string {
	if src == nil {
		return nil
	}
	current := cfg.WithIndustryDefaults()

	titleHits, err := src.GetGoldStandards(ctx, userID, jobTitle, 3)
	if err != nil {
		log.WithError(err).Warn("gold standard title lookup failed")
		titleHits = nil
	}
	broadHits, err := src.GetGoldStandards(ctx, userID, "", 5)
	if err != nil {
		log.WithError(err).Warn("gold standard lookup failed")
		broadHits = nil
	}

	examples := make([]string, 0, maxFewShotExamples)
	seen := make(map[string]struct{})

	for _, gs := range titleHits {
		if gs.Body == "" {
			continue
		}
		if _, ok := seen[gs.Body]; ok {
			continue
		}
		if schemas.ValidateJobBody(gs.Body) != nil {
			continue
		}
		if configMatches(gs.Config, current) || len(examples) < 1 {
			examples = append(examples, gs.Body)
			seen[gs.Body] = struct{}{}
			if len(examples) >= maxFewShotExamples {
				break
			}
		}
	}

	if len(examples) < maxFewShotExamples {
		for _, gs := range broadHits {
			if gs.Body == "" {
				continue
			}
			if _, ok := seen[gs.Body]; ok {
				continue
			}
			if schemas.ValidateJobBody(gs.Body) != nil {
				continue
			}
			examples = append(examples, gs.Body)
			seen[gs.Body] = struct{}{}
			if len(examples) >= maxFewShotExamples {
				break
			}
		}
	}

	return examples
}

// configMatches reports whether a stored config shares the style-defining
// attributes with the current one. Missing or unparsable configs count as
// matching, so old records never block example reuse.
func configMatches(raw json.RawMessage, current types.JobGenerationConfig) bool {
	if len(raw) == 0 {
		return true
	}
	var gold types.JobGenerationConfig
	if err := json.Unmarshal(raw, &gold); err != nil {
		return true
	}
	gold = gold.Normalized()
	return gold.CompanyType == current.CompanyType &&
		gold.Industry == current.Industry &&
		gold.Formality == current.Formality
}
