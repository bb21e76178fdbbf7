// Package terminology resolves free-text drug names against an external
// pharmaceutical vocabulary service.
package terminology

import (
	"context"
	"strings"
)

// Result pairs an input term with its best canonical match. When no match
// qualifies, Name equals the input and Score is zero.
type Result struct {
	Input string `json:"input"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Corrected reports whether the lookup produced a usable substitution:
// the canonical name must differ from the input ignoring case.
func (r Result) Corrected() bool {
	return r.Score > 0 && !strings.EqualFold(r.Input, r.Name)
}

// Lookup is the narrow capability the prescription pipeline depends on.
// Implementations must degrade silently: an unreachable service, a timeout,
// or a sub-threshold match all return the input unchanged with a nil error.
type Lookup interface {
	Normalize(ctx context.Context, term string) (Result, error)
}
