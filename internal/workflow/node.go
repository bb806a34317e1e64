// Package workflow orchestrates the multi-expert generation run: style
// routing and company fetch in parallel, concurrent drafting, batched
// judge scoring, one conditional refinement pass, optional re-scoring,
// curation and persistence. Nodes form a closed set and every transition
// goes through one table, so the graph is checkable at a glance.
package workflow

import "fmt"

// Node identifies one step of the workflow graph.
type Node int

// The workflow nodes. StyleRouter and FetchCompany are the two entry
// branches; everything from Score on runs sequentially.
const (
	NodeStyleRouter Node = iota
	NodeFetchCompany
	NodeDraft
	NodeScore
	NodeRefine
	NodeRescore
	NodeCurate
	NodePersist
	NodeEnd
)

var nodeNames = map[Node]string{
	NodeStyleRouter:  "style_router",
	NodeFetchCompany: "fetch_company",
	NodeDraft:        "draft",
	NodeScore:        "score",
	NodeRefine:       "refine",
	NodeRescore:      "rescore",
	NodeCurate:       "curate",
	NodePersist:      "persist",
	NodeEnd:          "end",
}

func (n Node) String() string {
	if name, ok := nodeNames[n]; ok {
		return name
	}
	return fmt.Sprintf("node(%d)", int(n))
}

// next returns the successor of a completed node. The two conditional
// edges read the blackboard: scoring hands over to refinement exactly once
// per run (the refinement expert's own gate decides whether anything is
// rewritten), and refinement triggers a re-score only when it actually
// replaced the candidate list.
func next(n Node, st *State) Node {
	switch n {
	case NodeStyleRouter:
		return NodeDraft
	case NodeFetchCompany, NodeDraft:
		// Both entry branches join at scoring; the engine waits for the
		// join before entering Score.
		return NodeScore
	case NodeScore:
		if st.RefinementCount == 0 {
			return NodeRefine
		}
		return NodeCurate
	case NodeRefine:
		if st.Refined {
			return NodeRescore
		}
		return NodeCurate
	case NodeRescore:
		return NodeCurate
	case NodeCurate:
		return NodePersist
	case NodePersist:
		return NodeEnd
	case NodeEnd:
		return NodeEnd
	default:
		panic(fmt.Sprintf("workflow: transition from unknown node %d", int(n)))
	}
}
