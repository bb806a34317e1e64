package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthias/jobad-composer/internal/db"
	"github.com/matthias/jobad-composer/internal/drafting"
	"github.com/matthias/jobad-composer/internal/refinement"
	"github.com/matthias/jobad-composer/internal/types"
)

type fakeDrafter struct {
	candidates []types.JobBody
	err        error
	gotInputs  drafting.Inputs
	gotN       int
}

func (f *fakeDrafter) DraftN(_ context.Context, in drafting.Inputs, n int, _ float64) ([]types.JobBody, error) {
	f.gotInputs = in
	f.gotN = n
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

type fakeScorer struct {
	batches []map[int]float64
	err     error
	calls   int
}

func (f *fakeScorer) ScoreAll(_ context.Context, candidates []types.JobBody, _ string, _ types.JobGenerationConfig) (map[int]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.batches) == 0 {
		scores := make(map[int]float64, len(candidates))
		for i := range candidates {
			scores[i] = 0.5
		}
		return scores, nil
	}
	batch := f.batches[0]
	if len(f.batches) > 1 {
		f.batches = f.batches[1:]
	}
	return batch, nil
}

type fakeRefiner struct {
	result refinement.Result
	called bool
	gotIn  refinement.Input
}

func (f *fakeRefiner) Refine(_ context.Context, in refinement.Input) refinement.Result {
	f.called = true
	f.gotIn = in
	if f.result.Candidates == nil {
		return refinement.Result{Candidates: in.Candidates, Refined: false}
	}
	return f.result
}

type fakeCompany struct {
	text    string
	gotName string
}

func (f *fakeCompany) Context(_ context.Context, name string, _ []string) string {
	f.gotName = name
	return f.text
}

type fakeRecorder struct {
	mu           sync.Mutex
	golds        int
	feedbacks    int
	interactions []db.Interaction
	lastFeedback string
}

func (f *fakeRecorder) SaveGoldStandard(_ context.Context, _, _, _ string, _ json.RawMessage) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.golds++
	return 1, nil
}

func (f *fakeRecorder) SaveUserFeedback(_ context.Context, _, feedbackType, _, _, _ string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedbacks++
	f.lastFeedback = feedbackType
	return 1, nil
}

func (f *fakeRecorder) SaveInteraction(_ context.Context, rec db.Interaction) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interactions = append(f.interactions, rec)
	return 1, nil
}

func testCandidates(n int) []types.JobBody {
	out := make([]types.JobBody, n)
	for i := range out {
		out[i] = types.JobBody{
			JobDescription: fmt.Sprintf("Candidate number %d with a distinct description.", i),
			Requirements:   []string{"req"},
		}
	}
	return out
}

func testEngine(drafter Drafter) *Engine {
	e := NewEngine(drafter)
	return e
}

func TestRun_HappyPathSelectsArgmax(t *testing.T) {
	drafter := &fakeDrafter{candidates: testCandidates(3)}
	scorer := &fakeScorer{batches: []map[int]float64{{0: 0.8, 1: 0.95, 2: 0.72}}}
	refiner := &fakeRefiner{}

	e := testEngine(drafter)
	e.Scorer = scorer
	e.Refiner = refiner

	res, err := e.Run(context.Background(), RunOptions{
		JobTitle: "Backend Engineer",
		Config:   types.JobGenerationConfig{Language: types.LanguageEnglish},
	})
	require.NoError(t, err)

	assert.Equal(t, drafter.candidates[1], res.Winner)
	assert.Len(t, res.Ranking, 3)
	assert.Equal(t, 1, res.Ranking[0].Rank)
	assert.InDelta(t, 0.95, res.Ranking[0].Score, 1e-9)
	assert.False(t, res.Refined)
	assert.False(t, res.ScoringUnavailable)
	// Refiner gets its one chance but nothing changed, so no re-score.
	assert.True(t, refiner.called)
	assert.Equal(t, 1, scorer.calls)
	assert.Nil(t, res.SwissReport)
}

func TestRun_RefinementTriggersFullRescore(t *testing.T) {
	refined := testCandidates(3)
	refined[2].JobDescription = "Rewritten candidate two."

	drafter := &fakeDrafter{candidates: testCandidates(3)}
	scorer := &fakeScorer{batches: []map[int]float64{
		{0: 0.9, 1: 0.8, 2: 0.4},
		{0: 0.6, 1: 0.7, 2: 0.92},
	}}
	refiner := &fakeRefiner{result: refinement.Result{Candidates: refined, Refined: true}}

	e := testEngine(drafter)
	e.Scorer = scorer
	e.Refiner = refiner

	res, err := e.Run(context.Background(), RunOptions{
		JobTitle: "Data Engineer",
		Config:   types.JobGenerationConfig{},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, scorer.calls, "refined batch must be re-scored in full")
	assert.Equal(t, refined[2], res.Winner, "winner comes from the re-scored batch")
	assert.True(t, res.Refined)
	assert.Equal(t, 1, res.RefinementCount)
}

func TestRun_ScoringUnavailableFallsBackToFirstCandidate(t *testing.T) {
	drafter := &fakeDrafter{candidates: testCandidates(3)}
	scorer := &fakeScorer{err: errors.New("judge down")}

	e := testEngine(drafter)
	e.Scorer = scorer

	res, err := e.Run(context.Background(), RunOptions{
		JobTitle: "Product Manager",
		Config:   types.JobGenerationConfig{},
	})
	require.NoError(t, err)

	assert.True(t, res.ScoringUnavailable)
	assert.Equal(t, drafter.candidates[0], res.Winner, "stable tie-break picks the first candidate")
	for _, score := range res.Scores {
		assert.Zero(t, score)
	}
}

func TestRun_NoScorerCountsAsUnavailable(t *testing.T) {
	drafter := &fakeDrafter{candidates: testCandidates(2)}
	e := testEngine(drafter)

	res, err := e.Run(context.Background(), RunOptions{
		JobTitle: "Designer",
		Config:   types.JobGenerationConfig{},
	})
	require.NoError(t, err)
	assert.True(t, res.ScoringUnavailable)
	assert.Equal(t, drafter.candidates[0], res.Winner)
}

func TestRun_RejectsMissingTitleAndBadConfig(t *testing.T) {
	e := testEngine(&fakeDrafter{candidates: testCandidates(1)})

	_, err := e.Run(context.Background(), RunOptions{JobTitle: "   "})
	assert.ErrorIs(t, err, ErrNoJobTitle)

	_, err = e.Run(context.Background(), RunOptions{
		JobTitle: "Engineer",
		Config:   types.JobGenerationConfig{Language: "fr"},
	})
	assert.ErrorContains(t, err, "invalid generation config")
}

func TestRun_DraftFailureIsFatal(t *testing.T) {
	drafter := &fakeDrafter{err: errors.New("all candidates failed")}
	e := testEngine(drafter)

	_, err := e.Run(context.Background(), RunOptions{
		JobTitle: "Engineer",
		Config:   types.JobGenerationConfig{},
	})
	assert.ErrorContains(t, err, "drafting failed")
}

func TestRun_CompanyContextReachesRefiner(t *testing.T) {
	drafter := &fakeDrafter{candidates: testCandidates(2)}
	companyFake := &fakeCompany{text: "We build rockets and value plain language."}
	refiner := &fakeRefiner{}

	e := testEngine(drafter)
	e.Company = companyFake
	e.Refiner = refiner

	_, err := e.Run(context.Background(), RunOptions{
		JobTitle:    "Engineer",
		Config:      types.JobGenerationConfig{},
		CompanyURLs: []string{"https://www.rocketcorp.ch/about"},
	})
	require.NoError(t, err)

	assert.Equal(t, "rocketcorp", companyFake.gotName, "company name derived from URL host")
	assert.Equal(t, companyFake.text, refiner.gotIn.ScrapedText)
}

func TestRun_PersistRecordsOutcome(t *testing.T) {
	tests := []struct {
		name          string
		label         string
		wantGolds     int
		wantFeedbacks int
	}{
		{name: "accepted saves gold standard", label: db.FeedbackAccepted, wantGolds: 1},
		{name: "rejected saves gripe", label: db.FeedbackRejected, wantFeedbacks: 1},
		{name: "no label saves only the interaction", label: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &fakeRecorder{}
			e := testEngine(&fakeDrafter{candidates: testCandidates(2)})
			e.Records = recorder

			_, err := e.Run(context.Background(), RunOptions{
				JobTitle:      "Engineer",
				Config:        types.JobGenerationConfig{},
				UserID:        "user-1",
				FeedbackLabel: tt.label,
				UserFeedback:  "too generic",
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantGolds, recorder.golds)
			assert.Equal(t, tt.wantFeedbacks, recorder.feedbacks)
			require.Len(t, recorder.interactions, 1)
			assert.Equal(t, "generation", recorder.interactions[0].InteractionType)
			assert.Equal(t, "Engineer", recorder.interactions[0].JobTitle)
		})
	}
}

func TestRun_SwissReportForGermanRuns(t *testing.T) {
	candidates := testCandidates(1)
	candidates[0].JobDescription = "Wir suchen Verstärkung für unser Team."

	e := testEngine(&fakeDrafter{candidates: candidates})

	res, err := e.Run(context.Background(), RunOptions{
		JobTitle: "Pflegefachperson",
		Config: types.JobGenerationConfig{
			Language:  types.LanguageGerman,
			Formality: types.FormalityFormal,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, res.SwissReport)
}

func TestRun_ProgressEventsCoverEveryNode(t *testing.T) {
	var mu sync.Mutex
	var seen []string

	e := testEngine(&fakeDrafter{candidates: testCandidates(2)})
	e.Refiner = &fakeRefiner{}

	_, err := e.Run(context.Background(), RunOptions{
		JobTitle: "Engineer",
		Config:   types.JobGenerationConfig{},
		OnProgress: func(ev ProgressEvent) {
			mu.Lock()
			seen = append(seen, ev.Node)
			mu.Unlock()
		},
	})
	require.NoError(t, err)

	// The two entry branches interleave, so only membership and the
	// sequential tail order are guaranteed.
	assert.ElementsMatch(t, []string{"style_router", "fetch_company", "draft", "score", "refine", "curate", "persist"}, seen)
	require.GreaterOrEqual(t, len(seen), 4)
	tail := seen[len(seen)-4:]
	assert.Equal(t, []string{"score", "refine", "curate", "persist"}, tail)
}

func TestRun_DrafterReceivesIndustryDefaults(t *testing.T) {
	drafter := &fakeDrafter{candidates: testCandidates(1)}
	e := testEngine(drafter)

	_, err := e.Run(context.Background(), RunOptions{
		JobTitle: "Accountant",
		Config:   types.JobGenerationConfig{Industry: types.IndustryFinance},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, drafter.gotInputs.Config.BenefitKeywords, "industry defaults applied before drafting")
	assert.Equal(t, 3, drafter.gotN, "default candidate count")
	assert.NotNil(t, drafter.gotInputs.StyleKit, "static style kit assembled without a knowledge source")
}
