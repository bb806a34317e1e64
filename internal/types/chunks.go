//nolint:revive // types is a standard Go package name pattern
package types

// StyleChunk is one line of the style knowledge JSONL file: a pre-extracted
// piece of style guidance tagged with the color and dimension it belongs to.
// This format is the durable contract between offline extraction tooling and
// the runtime retrieval service.
type StyleChunk struct {
	Content      string `json:"content"`
	ProfileColor string `json:"profile_color"` // red | yellow | green | blue | any
	Dimension    string `json:"dimension"`     // hooks | adjectives | syntax | do_dont
	Language     string `json:"language"`      // de | en
	UseCase      string `json:"use_case,omitempty"`
	Mode         string `json:"mode,omitempty"` // proaktiv | reaktiv, set on syntax chunks
	SourceFile   string `json:"source_file,omitempty"`
}

// DutyChunk is one line of the duty-template JSONL file: the duty bullets for
// one job category at one seniority tier, statically derived from a reference
// document and immutable at runtime.
type DutyChunk struct {
	Content      string   `json:"content"` // bullets joined with newlines
	Duties       []string `json:"duties"`
	CategoryCode string   `json:"category_code"` // e.g. "1000"
	CategoryName string   `json:"category_name"` // e.g. "Geschäftsführung / CEO / VR"
	BlockName    string   `json:"block_name"`    // e.g. "Management"
	Seniority    string   `json:"seniority"`     // junior | senior
	Language     string   `json:"language,omitempty"`
	Dimension    string   `json:"dimension,omitempty"`
	SourceFile   string   `json:"source_file,omitempty"`
}
