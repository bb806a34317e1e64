package drafting

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthias/jobad-composer/internal/duties"
	"github.com/matthias/jobad-composer/internal/llm"
	"github.com/matthias/jobad-composer/internal/types"
)

const validDraftJSON = `{
	"job_description": "We build the payment platform used across Switzerland.",
	"requirements": ["r1", "r2", "r3", "r4", "r5", "r6"],
	"benefits": ["You get remote work switzerland options"],
	"duties": ["d1", "d2", "d3", "d4", "d5"],
	"summary": "Apply now."
}`

// fakeLLM hands out fresh fake clients and records every structured call.
type fakeLLM struct {
	mu       sync.Mutex
	response string
	err      error
	failOnce bool
	created  int
	closes   int
	temps    []float32
	prompts  []string
}

func (f *fakeLLM) factory(_ context.Context) (llm.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
	return &fakeLLMClient{parent: f}, nil
}

type fakeLLMClient struct {
	parent *fakeLLM
}

func (c *fakeLLMClient) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	return "", nil
}

func (c *fakeLLMClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return "", nil
}

func (c *fakeLLMClient) GenerateStructured(_ context.Context, prompt string, _ llm.ModelTier, temperature float32, _ *genai.Schema) (string, error) {
	c.parent.mu.Lock()
	defer c.parent.mu.Unlock()
	c.parent.temps = append(c.parent.temps, temperature)
	c.parent.prompts = append(c.parent.prompts, prompt)
	if c.parent.failOnce {
		c.parent.failOnce = false
		return "", errors.New("model overloaded")
	}
	if c.parent.err != nil {
		return "", c.parent.err
	}
	return c.parent.response, nil
}

func (c *fakeLLMClient) GetModel(llm.ModelTier) string { return "fake-model" }

func (c *fakeLLMClient) Close() error {
	c.parent.mu.Lock()
	defer c.parent.mu.Unlock()
	c.parent.closes++
	return nil
}

func TestDraft_HappyPath(t *testing.T) {
	fake := &fakeLLM{response: validDraftJSON}
	drafter := NewDrafter(fake.factory)

	in := Inputs{
		JobTitle: "Backend Engineer",
		Config: types.JobGenerationConfig{
			BenefitKeywords: []string{"remote work switzerland"},
		},
		DutySource: duties.SourceLLM,
	}
	body, err := drafter.Draft(context.Background(), in, 0)
	require.NoError(t, err)

	assert.Equal(t, "We build the payment platform used across Switzerland.", body.JobDescription)
	require.Len(t, body.Benefits, 1)
	assert.Equal(t, "You get remote work switzerland options", body.Benefits[0])

	base := in.Config.WithIndustryDefaults().Temperature()
	require.Len(t, fake.temps, 1)
	assert.InDelta(t, base, float64(fake.temps[0]), 1e-6)
	assert.Equal(t, 1, fake.closes)
}

func TestDraft_GermanOutputGetsSwissSpelling(t *testing.T) {
	fake := &fakeLLM{response: `{
		"job_description": "Wir bieten großartige Projekte und 5 Wochen Urlaub.",
		"requirements": ["r1", "r2", "r3", "r4", "r5", "r6"],
		"benefits": [],
		"duties": ["d1", "d2", "d3", "d4", "d5"],
		"summary": "Bewerben Sie sich jetzt."
	}`}
	drafter := NewDrafter(fake.factory)

	body, err := drafter.Draft(context.Background(), Inputs{
		JobTitle:   "Payroll Spezialist",
		Config:     types.JobGenerationConfig{Language: types.LanguageGerman},
		DutySource: duties.SourceLLM,
	}, 0)
	require.NoError(t, err)

	assert.Equal(t, "Wir bieten grossartige Projekte und 5 Wochen Ferien.", body.JobDescription)
}

func TestDraft_TemperatureClamped(t *testing.T) {
	fake := &fakeLLM{response: validDraftJSON}
	drafter := NewDrafter(fake.factory)
	in := Inputs{JobTitle: "X", Config: types.JobGenerationConfig{}, DutySource: duties.SourceLLM}

	_, err := drafter.Draft(context.Background(), in, 10)
	require.NoError(t, err)
	_, err = drafter.Draft(context.Background(), in, -10)
	require.NoError(t, err)

	require.Len(t, fake.temps, 2)
	assert.InDelta(t, 0.9, float64(fake.temps[0]), 1e-6)
	assert.InDelta(t, 0.1, float64(fake.temps[1]), 1e-6)
}

func TestDraft_InvalidModelOutputFails(t *testing.T) {
	fake := &fakeLLM{response: `{"requirements": []}`}
	drafter := NewDrafter(fake.factory)

	_, err := drafter.Draft(context.Background(), Inputs{
		JobTitle:   "X",
		Config:     types.JobGenerationConfig{},
		DutySource: duties.SourceLLM,
	}, 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestDraftN_SpreadsTemperaturesSymmetrically(t *testing.T) {
	fake := &fakeLLM{response: validDraftJSON}
	drafter := NewDrafter(fake.factory)
	in := Inputs{JobTitle: "X", Config: types.JobGenerationConfig{}, DutySource: duties.SourceLLM}

	candidates, err := drafter.DraftN(context.Background(), in, 3, DefaultJitterStep)
	require.NoError(t, err)
	assert.Len(t, candidates, 3)

	base := in.Config.WithIndustryDefaults().Temperature()
	want := []float64{
		clampTemperature(base - 0.15),
		clampTemperature(base - 0.05),
		clampTemperature(base + 0.05),
	}
	require.Len(t, fake.temps, 3)
	got := make([]float64, len(fake.temps))
	for i, temp := range fake.temps {
		got[i] = float64(temp)
	}
	sort.Float64s(got)
	sort.Float64s(want)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-6)
	}

	// One fresh client per candidate, all closed
	assert.Equal(t, 3, fake.created)
	assert.Equal(t, 3, fake.closes)
}

func TestDraftN_DropsFailedCandidate(t *testing.T) {
	fake := &fakeLLM{response: validDraftJSON, failOnce: true}
	drafter := NewDrafter(fake.factory)

	candidates, err := drafter.DraftN(context.Background(), Inputs{
		JobTitle:   "X",
		Config:     types.JobGenerationConfig{},
		DutySource: duties.SourceLLM,
	}, 3, DefaultJitterStep)

	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestDraftN_AllFailedReturnsError(t *testing.T) {
	fake := &fakeLLM{err: errors.New("quota exhausted")}
	drafter := NewDrafter(fake.factory)

	_, err := drafter.DraftN(context.Background(), Inputs{
		JobTitle:   "X",
		Config:     types.JobGenerationConfig{},
		DutySource: duties.SourceLLM,
	}, 3, DefaultJitterStep)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 3 draft candidates failed")
	assert.Contains(t, err.Error(), "quota exhausted")
}

func TestDraftN_DefaultsToThreeCandidates(t *testing.T) {
	fake := &fakeLLM{response: validDraftJSON}
	drafter := NewDrafter(fake.factory)

	candidates, err := drafter.DraftN(context.Background(), Inputs{
		JobTitle:   "X",
		Config:     types.JobGenerationConfig{},
		DutySource: duties.SourceLLM,
	}, 0, DefaultJitterStep)

	require.NoError(t, err)
	assert.Len(t, candidates, 3)
	assert.Equal(t, 3, fake.created)
}
