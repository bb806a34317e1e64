//nolint:revive // types is a standard Go package name pattern
package types

// JobBody is the generated job-advertisement artifact. It has no identity of
// its own: every generation request produces a fresh value and it is treated
// as immutable once returned.
type JobBody struct {
	JobDescription string   `json:"job_description"`
	Requirements   []string `json:"requirements"`
	Benefits       []string `json:"benefits"`
	Duties         []string `json:"duties"`
	Summary        string   `json:"summary,omitempty"`
}

// Preview returns the first n runes of the description followed by "...",
// or the whole description when it is shorter. Used in ranking output.
func (b JobBody) Preview(n int) string {
	runes := []rune(b.JobDescription)
	if len(runes) <= n {
		return b.JobDescription
	}
	return string(runes[:n]) + "..."
}

// Clone returns a deep copy. Refinement keeps originals on failure, so
// callers need copies that cannot alias the blackboard's slices.
func (b JobBody) Clone() JobBody {
	out := b
	out.Requirements = append([]string(nil), b.Requirements...)
	out.Benefits = append([]string(nil), b.Benefits...)
	out.Duties = append([]string(nil), b.Duties...)
	return out
}
