package terminology

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/vitalsync/vitalsync/internal/cache"
)

// CachedLookup memoizes lookup results in Redis. RxNav rate-limits callers,
// and the same handful of drug names recurs across prescriptions, so cache
// hits skip both network round trips. Cache failures fall through to the
// underlying lookup.
type CachedLookup struct {
	next  Lookup
	cache *cache.Cache
	ttl   time.Duration
}

func NewCachedLookup(next Lookup, c *cache.Cache, ttl time.Duration) *CachedLookup {
	return &CachedLookup{next: next, cache: c, ttl: ttl}
}

func (l *CachedLookup) Normalize(ctx context.Context, term string) (Result, error) {
	key := "rxnorm:" + strings.ToLower(strings.TrimSpace(term))

	var cached Result
	err := l.cache.Get(ctx, key, &cached)
	if err == nil {
		cached.Input = term
		return cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.Debug("terminology cache read failed", "term", term, "error", err)
	}

	res, err := l.next.Normalize(ctx, term)
	if err != nil {
		return res, err
	}

	if err := l.cache.Set(ctx, key, res, l.ttl); err != nil {
		slog.Debug("terminology cache write failed", "term", term, "error", err)
	}
	return res, nil
}
