// Package knowledge provides semantic retrieval over ingested style, duty
// and company content. Consumers treat the service as optional: a nil Source
// or ErrUnavailable means "no data", never a failed run.
package knowledge

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable signals that the knowledge backend cannot serve queries
// (no database configured, embedding service missing). Callers degrade to
// their built-in fallbacks.
var ErrUnavailable = errors.New("knowledge source unavailable")

// Hit is one retrieval result.
type Hit struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Source is the retrieval contract consumed by the style kit assembler, the
// duty cascade and the company context provider.
type Source interface {
	// Search returns up to k hits from the named collection ranked by
	// semantic similarity to the query.
	Search(ctx context.Context, collection, query string, k int) ([]Hit, error)
}

// Collection keys shared between ingestion and retrieval.
const (
	CollectionDutyTemplates = "duty_templates"
	CollectionStyleSyntax   = "style_syntax"
)

// StyleCollection returns the collection key that holds style chunks for
// one color.
func StyleCollection(color string) string {
	return "style_" + color
}

// CompanyCollection returns the collection key that holds scraped content
// for one company.
func CompanyCollection(name string) string {
	return fmt.Sprintf("company_%s", name)
}
