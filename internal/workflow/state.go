package workflow

import (
	"fmt"

	"github.com/matthias/jobad-composer/internal/curation"
	"github.com/matthias/jobad-composer/internal/duties"
	"github.com/matthias/jobad-composer/internal/types"
)

// State is the blackboard threaded through the workflow. Exactly one node
// owns it at any time: the two entry branches write disjoint fields and are
// joined before scoring, and every later node runs sequentially, so no
// field needs a lock. Nodes fully initialize or fully replace the fields
// they own, never patch them element-wise.
type State struct {
	// Inputs, set once before the first node runs.
	JobTitle    string
	Config      types.JobGenerationConfig
	UserID      string
	CompanyName string
	CompanyURLs []string

	// Written by the style branch.
	StyleProfile types.StyleProfile
	StyleKit     *types.StyleKit
	Duties       []string
	DutySource   duties.Source

	// Written by the company branch.
	CompanyContext string

	// Candidate blackboard. Draft initializes the list, Refine may replace
	// it wholesale; Scores pair positionally with Candidates and are
	// recomputed whenever the list changes.
	Candidates         []types.JobBody
	Scores             map[int]float64
	ScoringUnavailable bool

	// Refinement bookkeeping. RefinementCount caps the refine hop at one
	// per run; Refined marks whether the last pass changed anything.
	RefinementCount int
	Refined         bool

	// Post-run feedback carried into persistence.
	FeedbackLabel string
	UserFeedback  string

	// Written by curation.
	Winner  *types.JobBody
	Ranking []curation.RankingEntry
}

// DependencyError reports a node entered without the state fields it
// reads. It always signals an engine bug, not bad user input.
type DependencyError struct {
	Node    Node
	Missing string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("workflow node %s missing dependency: %s", e.Node, e.Missing)
}
