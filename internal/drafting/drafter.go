package drafting

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/matthias/jobad-composer/internal/llm"
	"github.com/matthias/jobad-composer/internal/schemas"
	"github.com/matthias/jobad-composer/internal/swissgerman"
	"github.com/matthias/jobad-composer/internal/types"
)

const (
	// DefaultCandidates is how many drafts one run produces when the caller
	// does not ask for a specific count.
	DefaultCandidates = 3
	// DefaultJitterStep spreads candidate temperatures around the config
	// temperature so drafts differ even on identical prompts.
	DefaultJitterStep = 0.1

	minTemperature = 0.1
	maxTemperature = 0.9
)

// Drafter produces JobBody candidates via schema-constrained completions.
// Every draft call builds its own client from the factory, so concurrent
// candidates never share transport state.
type Drafter struct {
	factory llm.ClientFactory
}

// NewDrafter returns a Drafter backed by the given client factory.
func NewDrafter(factory llm.ClientFactory) *Drafter {
	return &Drafter{factory: factory}
}

// Draft generates a single candidate. The sampling temperature is the
// config temperature plus jitter, clamped to [0.1, 0.9]. The returned body
// has benefits and duties already pinned to the configured keywords and
// resolved duties, and Swiss German spelling applied for German output.
func (d *Drafter) Draft(ctx context.Context, in Inputs, jitter float64) (types.JobBody, error) {
	cfg := in.Config.WithIndustryDefaults()
	temperature := clampTemperature(cfg.Temperature() + jitter)

	client, err := d.factory(ctx)
	if err != nil {
		return types.JobBody{}, fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	prompt := BuildPrompt(in)
	raw, err := client.GenerateStructured(ctx, prompt, llm.TierStandard, float32(temperature), llm.JobBodySchema())
	if err != nil {
		return types.JobBody{}, fmt.Errorf("failed to generate job body: %w", err)
	}
	if err := schemas.ValidateJobBody(raw); err != nil {
		return types.JobBody{}, fmt.Errorf("generated job body is invalid: %w", err)
	}

	var body types.JobBody
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return types.JobBody{}, fmt.Errorf("failed to parse job body: %w", err)
	}

	body = EnforceBenefits(body, cfg.BenefitKeywords)
	body = EnforceDuties(body, in.Duties, in.DutySource)
	if cfg.Language == types.LanguageGerman {
		body = swissgerman.EnforceBody(body)
	}
	return body, nil
}

// DraftN generates n candidates concurrently, each at a temperature offset
// of (i - n/2) * jitterStep so the batch samples both below and above the
// config temperature. Failed candidates are dropped with a warning; only
// when every candidate fails does DraftN return an error.
func (d *Drafter) DraftN(ctx context.Context, in Inputs, n int, jitterStep float64) ([]types.JobBody, error) {
	if n <= 0 {
		n = DefaultCandidates
	}

	results := make([]types.JobBody, n)
	errs := make([]error, n)

	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		jitter := (float64(i) - float64(n)/2) * jitterStep
		g.Go(func() error {
			body, err := d.Draft(gCtx, in, jitter)
			mu.Lock()
			results[i], errs[i] = body, err
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var firstErr error
	candidates := make([]types.JobBody, 0, n)
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			log.WithField("candidate", i).WithError(errs[i]).Warn("draft candidate failed, dropping")
			if firstErr == nil {
				firstErr = errs[i]
			}
			continue
		}
		candidates = append(candidates, results[i])
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("all %d draft candidates failed: %w", n, firstErr)
	}
	return candidates, nil
}

func clampTemperature(t float64) float64 {
	if t < minTemperature {
		return minTemperature
	}
	if t > maxTemperature {
		return maxTemperature
	}
	return t
}
