package prescription

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vitalsync/vitalsync/internal/terminology"
)

// Normalizer runs terminology lookups for a batch of candidates. Lookups
// for independent candidates fan out concurrently, bounded so the external
// service is not hammered, and results come back in input order.
type Normalizer struct {
	lookup        terminology.Lookup
	maxConcurrent int
}

func NewNormalizer(lookup terminology.Lookup, maxConcurrent int) *Normalizer {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &Normalizer{lookup: lookup, maxConcurrent: maxConcurrent}
}

// NormalizeAll resolves each candidate independently. A failed lookup
// degrades to the unchanged candidate; callers cannot tell "no correction
// needed" from "service unavailable", which keeps a flaky vocabulary from
// ever blocking a prescription run.
func (n *Normalizer) NormalizeAll(ctx context.Context, candidates []string) []terminology.Result {
	results := make([]terminology.Result, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.maxConcurrent)

	for i, candidate := range candidates {
		i, candidate := i, candidate
		g.Go(func() error {
			res, err := n.lookup.Normalize(gctx, candidate)
			if err != nil {
				slog.Debug("terminology lookup degraded", "candidate", candidate, "error", err)
				res = terminology.Result{Input: candidate, Name: candidate}
			}
			results[i] = res
			return nil
		})
	}

	// Workers never return errors; Wait only fences the fan-in.
	_ = g.Wait()

	return results
}

// Rejoin rebuilds the candidate text with corrections applied, preserving
// the original line order.
func Rejoin(results []terminology.Result) string {
	lines := make([]string, len(results))
	for i, r := range results {
		if r.Corrected() {
			lines[i] = r.Name
		} else {
			lines[i] = r.Input
		}
	}
	return strings.Join(lines, "\n")
}
