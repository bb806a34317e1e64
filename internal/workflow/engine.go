package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/matthias/jobad-composer/internal/company"
	"github.com/matthias/jobad-composer/internal/curation"
	"github.com/matthias/jobad-composer/internal/db"
	"github.com/matthias/jobad-composer/internal/drafting"
	"github.com/matthias/jobad-composer/internal/duties"
	"github.com/matthias/jobad-composer/internal/refinement"
	"github.com/matthias/jobad-composer/internal/styling"
	"github.com/matthias/jobad-composer/internal/swissgerman"
	"github.com/matthias/jobad-composer/internal/types"
)

// ErrNoJobTitle rejects a run without a job title before any node runs.
var ErrNoJobTitle = errors.New("job title is required")

// Drafter produces the candidate batch. *drafting.Drafter satisfies it.
type Drafter interface {
	DraftN(ctx context.Context, in drafting.Inputs, n int, jitterStep float64) ([]types.JobBody, error)
}

// Scorer judges a candidate batch in one call. *ranking.Scorer satisfies it.
type Scorer interface {
	ScoreAll(ctx context.Context, candidates []types.JobBody, jobTitle string, cfg types.JobGenerationConfig) (map[int]float64, error)
}

// Refiner conditionally rewrites scored candidates. *refinement.Expert
// satisfies it.
type Refiner interface {
	Refine(ctx context.Context, in refinement.Input) refinement.Result
}

// KitAssembler builds the style kit for a routed profile.
// *styling.Assembler satisfies it.
type KitAssembler interface {
	Assemble(ctx context.Context, profile types.StyleProfile, lang types.Language) types.StyleKit
}

// DutyResolver runs the duty cascade. *duties.Resolver satisfies it.
type DutyResolver interface {
	Resolve(ctx context.Context, userDuties []string, jobTitle string, seniority types.Seniority, lang types.Language) ([]string, duties.Source)
}

// CompanyProvider returns company context text, empty when nothing is
// known. *company.Provider satisfies it.
type CompanyProvider interface {
	Context(ctx context.Context, name string, urls []string) string
}

// Recorder persists run outcomes. All writes are best-effort; *db.Store
// satisfies it.
type Recorder interface {
	SaveGoldStandard(ctx context.Context, userID, jobTitle, body string, config json.RawMessage) (int64, error)
	SaveUserFeedback(ctx context.Context, userID, feedbackType, feedbackText, jobTitle, body string) (int64, error)
	SaveInteraction(ctx context.Context, rec db.Interaction) (int64, error)
}

// ProgressEvent reports one completed node.
type ProgressEvent struct {
	Node    string `json:"node"`
	Message string `json:"message"`
}

// ProgressCallback receives progress events during a run.
type ProgressCallback func(event ProgressEvent)

// Engine wires the experts into the workflow graph. Drafter is required;
// every other collaborator may be nil and degrades to its documented
// fallback (static style kit, llm-sourced duties, no company context, no
// scores, no refinement, no persistence).
type Engine struct {
	Drafter Drafter
	Scorer  Scorer
	Refiner Refiner
	Kits    KitAssembler
	Duties  DutyResolver
	Company CompanyProvider
	Gold    drafting.GoldSource
	Records Recorder
}

// NewEngine returns an engine with nil collaborators replaced by their
// store-less defaults.
func NewEngine(drafter Drafter) *Engine {
	return &Engine{
		Drafter: drafter,
		Kits:    styling.NewAssembler(nil),
		Duties:  duties.NewResolver(nil),
	}
}

// RunOptions configures one workflow run.
type RunOptions struct {
	JobTitle    string
	Config      types.JobGenerationConfig
	UserID      string
	SessionID   string
	CompanyName string
	CompanyURLs []string

	// NumCandidates defaults to drafting.DefaultCandidates, JitterStep to
	// drafting.DefaultJitterStep.
	NumCandidates int
	JitterStep    float64

	// FeedbackLabel/UserFeedback replay a prior decision into the persist
	// node ("accepted", "rejected", "edited"; empty means none).
	FeedbackLabel string
	UserFeedback  string

	OnProgress ProgressCallback
}

// Result is the outcome of one completed run.
type Result struct {
	Winner       types.JobBody           `json:"winner"`
	Ranking      []curation.RankingEntry `json:"ranking"`
	StyleProfile types.StyleProfile      `json:"style_profile"`
	StyleKit     *types.StyleKit         `json:"style_kit,omitempty"`
	Duties       []string                `json:"duties,omitempty"`
	DutySource   duties.Source           `json:"duty_source"`
	Scores       map[int]float64         `json:"scores"`

	ScoringUnavailable bool `json:"scoring_unavailable"`
	Refined            bool `json:"refined"`
	RefinementCount    int  `json:"refinement_count"`

	CompanyContext string              `json:"company_context,omitempty"`
	SwissReport    *swissgerman.Report `json:"swiss_report,omitempty"`
}

// Run executes the workflow graph: the style/draft chain and the company
// fetch as parallel entry branches, then the scoring, refinement, curation
// and persistence chain driven by the transition table. The only hard
// failures are invalid input, a fully failed draft batch, and an empty
// batch reaching curation; everything else degrades.
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if strings.TrimSpace(opts.JobTitle) == "" {
		return nil, ErrNoJobTitle
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation config: %w", err)
	}
	if e.Drafter == nil {
		return nil, errors.New("workflow engine has no drafter")
	}
	if opts.NumCandidates <= 0 {
		opts.NumCandidates = drafting.DefaultCandidates
	}
	if opts.JitterStep <= 0 {
		opts.JitterStep = drafting.DefaultJitterStep
	}

	st := &State{
		JobTitle:      opts.JobTitle,
		Config:        opts.Config.WithIndustryDefaults(),
		UserID:        opts.UserID,
		CompanyName:   opts.CompanyName,
		CompanyURLs:   opts.CompanyURLs,
		FeedbackLabel: opts.FeedbackLabel,
		UserFeedback:  opts.UserFeedback,
	}

	// Entry fork: the style branch walks StyleRouter -> Draft through the
	// transition table, the company branch runs its single node. The two
	// write disjoint state fields and join here before scoring.
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for node := NodeStyleRouter; node != NodeScore; node = next(node, st) {
			if err := e.runNode(gCtx, node, st, &opts); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		return e.runNode(gCtx, NodeFetchCompany, st, &opts)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for node := NodeScore; node != NodeEnd; node = next(node, st) {
		if err := e.runNode(ctx, node, st, &opts); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Ranking:            st.Ranking,
		StyleProfile:       st.StyleProfile,
		StyleKit:           st.StyleKit,
		Duties:             st.Duties,
		DutySource:         st.DutySource,
		Scores:             st.Scores,
		ScoringUnavailable: st.ScoringUnavailable,
		Refined:            st.Refined,
		RefinementCount:    st.RefinementCount,
		CompanyContext:     st.CompanyContext,
	}
	if st.Winner != nil {
		result.Winner = *st.Winner
		if st.Config.Language == types.LanguageGerman {
			report := swissgerman.CheckBody(result.Winner, st.Config.Formality)
			result.SwissReport = &report
		}
	}
	return result, nil
}

// runNode executes one node against the blackboard.
func (e *Engine) runNode(ctx context.Context, node Node, st *State, opts *RunOptions) error {
	switch node {
	case NodeStyleRouter:
		st.StyleProfile = styling.Route(st.Config)
		if e.Kits != nil {
			kit := e.Kits.Assemble(ctx, st.StyleProfile, st.Config.Language)
			st.StyleKit = &kit
		}
		e.emit(opts, node, fmt.Sprintf("style routed: primary=%s", st.StyleProfile.PrimaryColor))

	case NodeFetchCompany:
		st.CompanyContext = e.fetchCompany(ctx, st)
		if st.CompanyContext == "" {
			e.emit(opts, node, "no company context")
		} else {
			e.emit(opts, node, fmt.Sprintf("company context: %d chars", len(st.CompanyContext)))
		}

	case NodeDraft:
		if e.Duties != nil {
			st.Duties, st.DutySource = e.Duties.Resolve(ctx, st.Config.DutyKeywords, st.JobTitle, st.Config.SeniorityLabel, st.Config.Language)
		} else {
			st.Duties, st.DutySource = nil, duties.SourceLLM
		}
		examples := drafting.SelectGoldExamples(ctx, e.Gold, st.UserID, st.JobTitle, st.Config)

		candidates, err := e.Drafter.DraftN(ctx, drafting.Inputs{
			JobTitle:     st.JobTitle,
			Config:       st.Config,
			StyleKit:     st.StyleKit,
			Duties:       st.Duties,
			DutySource:   st.DutySource,
			GoldExamples: examples,
		}, opts.NumCandidates, opts.JitterStep)
		if err != nil {
			return fmt.Errorf("drafting failed: %w", err)
		}
		st.Candidates = candidates
		e.emit(opts, node, fmt.Sprintf("drafted %d candidates (duties: %s)", len(candidates), st.DutySource))

	case NodeScore, NodeRescore:
		st.Scores, st.ScoringUnavailable = e.scoreBatch(ctx, st)
		if st.ScoringUnavailable {
			e.emit(opts, node, "scoring unavailable, all candidates at 0.0")
		} else {
			e.emit(opts, node, fmt.Sprintf("scored %d candidates", len(st.Scores)))
		}

	case NodeRefine:
		if e.Refiner == nil {
			st.Refined = false
			e.emit(opts, node, "refinement disabled")
			return nil
		}
		res := e.Refiner.Refine(ctx, refinement.Input{
			UserID:      st.UserID,
			JobTitle:    st.JobTitle,
			Config:      st.Config,
			Candidates:  st.Candidates,
			Scores:      st.Scores,
			ScrapedText: st.CompanyContext,
		})
		st.Candidates = res.Candidates
		st.Refined = res.Refined
		if res.Refined {
			st.RefinementCount++
			e.emit(opts, node, "candidates refined")
		} else {
			e.emit(opts, node, "no refinement needed")
		}

	case NodeCurate:
		winner, ranking, err := curation.Select(st.Candidates, st.Scores)
		if err != nil {
			return err
		}
		st.Winner = &winner
		st.Ranking = ranking
		e.emit(opts, node, fmt.Sprintf("winner selected (score %.2f)", ranking[0].Score))

	case NodePersist:
		e.persist(ctx, st, opts)
		e.emit(opts, node, "run recorded")

	case NodeEnd:
		// terminal, nothing to do

	default:
		return &DependencyError{Node: node, Missing: "no executor"}
	}
	return nil
}

// fetchCompany is best-effort: no provider, no name and no URLs, or a
// fetch failure all mean "no context".
func (e *Engine) fetchCompany(ctx context.Context, st *State) string {
	if e.Company == nil {
		return ""
	}
	name := st.CompanyName
	if name == "" && len(st.CompanyURLs) > 0 {
		name = company.ExtractCompanyName(st.CompanyURLs[0])
	}
	if name == "" && len(st.CompanyURLs) == 0 {
		return ""
	}
	st.CompanyName = name
	return e.Company.Context(ctx, name, st.CompanyURLs)
}

// scoreBatch recomputes the full score map. Any scorer failure degrades to
// all-zero scores so the run keeps going; the stable tie-break in curation
// then picks the first candidate.
func (e *Engine) scoreBatch(ctx context.Context, st *State) (map[int]float64, bool) {
	zero := func() map[int]float64 {
		scores := make(map[int]float64, len(st.Candidates))
		for i := range st.Candidates {
			scores[i] = 0.0
		}
		return scores
	}

	if e.Scorer == nil {
		return zero(), true
	}
	scores, err := e.Scorer.ScoreAll(ctx, st.Candidates, st.JobTitle, st.Config)
	if err != nil {
		log.WithError(err).Warn("candidate scoring failed, proceeding unscored")
		return zero(), true
	}
	return scores, false
}

// persist records the run outcome: gold standard or gripe depending on the
// feedback label, plus one interaction row. Failures only cost durability,
// never the in-memory result.
func (e *Engine) persist(ctx context.Context, st *State, opts *RunOptions) {
	if e.Records == nil || st.Winner == nil || st.UserID == "" {
		return
	}

	winnerJSON, err := json.Marshal(st.Winner)
	if err != nil {
		log.WithError(err).Warn("failed to serialize winner, skipping persistence")
		return
	}
	configJSON, _ := json.Marshal(st.Config)

	switch st.FeedbackLabel {
	case db.FeedbackAccepted:
		if _, err := e.Records.SaveGoldStandard(ctx, st.UserID, st.JobTitle, string(winnerJSON), configJSON); err != nil {
			log.WithError(err).Warn("failed to save gold standard")
		}
	case db.FeedbackRejected, db.FeedbackEdited:
		if _, err := e.Records.SaveUserFeedback(ctx, st.UserID, st.FeedbackLabel, st.UserFeedback, st.JobTitle, string(winnerJSON)); err != nil {
			log.WithError(err).Warn("failed to save user feedback")
		}
	}

	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	input, _ := json.Marshal(map[string]any{
		"job_title": st.JobTitle,
		"config":    st.Config,
	})
	meta, _ := json.Marshal(map[string]any{
		"method":              "multi_expert",
		"best_score":          bestScore(st),
		"scoring_unavailable": st.ScoringUnavailable,
		"refined":             st.Refined,
		"duty_source":         st.DutySource,
	})
	if _, err := e.Records.SaveInteraction(ctx, db.Interaction{
		UserID:          st.UserID,
		SessionID:       sessionID,
		InteractionType: "generation",
		JobTitle:        st.JobTitle,
		InputData:       input,
		OutputData:      winnerJSON,
		Metadata:        meta,
	}); err != nil {
		log.WithError(err).Warn("failed to save interaction")
	}
}

func bestScore(st *State) float64 {
	if len(st.Ranking) == 0 {
		return 0
	}
	return st.Ranking[0].Score
}

func (e *Engine) emit(opts *RunOptions, node Node, message string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Node: node.String(), Message: message})
	}
}
