// Package lookup combines the media probe and the eligibility cache into a
// single "give me a search query" call.
package lookup

import (
	"context"

	"go.uber.org/zap"

	"github.com/kendaniels/now-playing/internal/cache"
	"github.com/kendaniels/now-playing/internal/domain"
	"github.com/kendaniels/now-playing/internal/normalize"
)

// Options controls cache behavior for a single lookup.
type Options struct {
	// AllowCacheFallback permits returning the last cached eligible snapshot
	// when the live probe produced a payload that is ineligible for the
	// requested kind. A probe that produced no payload at all always falls
	// back to the cache, regardless of this flag.
	AllowCacheFallback bool
}

// Result is a lookup outcome. Query is empty when nothing usable was found;
// the embedded probe diagnostics are forwarded either way.
type Result struct {
	domain.ProbeResult

	// Query is the derived search query, empty when no eligible media was
	// found live or cached.
	Query string

	// FromCache is true when Payload and Query came from the eligibility
	// cache rather than the live probe.
	FromCache bool
}

// Orchestrator resolves lookup requests against the live probe first and
// the eligibility cache second.
type Orchestrator struct {
	logger *zap.Logger
	prober domain.Prober
	cache  *cache.EligibilityCache
}

// NewOrchestrator creates a lookup orchestrator.
func NewOrchestrator(logger *zap.Logger, prober domain.Prober, c *cache.EligibilityCache) *Orchestrator {
	return &Orchestrator{logger: logger, prober: prober, cache: c}
}

// Lookup probes for the current media and derives the query for kind.
// Eligible live payloads are written back to the cache before returning.
// The ordering here is load-bearing: a live but ineligible payload must
// never silently fall through to an older cached track unless the caller
// opted in via Options.
func (o *Orchestrator) Lookup(ctx context.Context, kind domain.LookupKind, opts Options) Result {
	res := o.prober.Probe(ctx)

	if res.Unsupported {
		return Result{ProbeResult: res}
	}

	if res.Payload != nil {
		if normalize.Eligible(kind, res.Payload) {
			query := normalize.QueryFor(kind, res.Payload)
			o.cache.Save(kind, res.Payload)
			o.logger.Debug("Live lookup answered",
				zap.String("kind", string(kind)),
				zap.String("query", query))
			return Result{ProbeResult: res, Query: query}
		}

		if opts.AllowCacheFallback {
			if cached := o.fromCache(kind); cached != nil {
				r := res
				r.Payload = cached
				return Result{
					ProbeResult: r,
					Query:       normalize.QueryFor(kind, cached),
					FromCache:   true,
				}
			}
		}

		// Nothing usable: discard the ineligible live payload but keep the
		// probe's diagnostics.
		o.logger.Debug("Live payload ineligible",
			zap.String("kind", string(kind)),
			zap.Bool("cacheFallback", opts.AllowCacheFallback))
		r := res
		r.Payload = nil
		return Result{ProbeResult: r}
	}

	// The probe produced no payload at all; the cache is the only hope.
	if cached := o.fromCache(kind); cached != nil {
		r := res
		r.Payload = cached
		return Result{
			ProbeResult: r,
			Query:       normalize.QueryFor(kind, cached),
			FromCache:   true,
		}
	}

	return Result{ProbeResult: res}
}

// fromCache loads the cached snapshot for kind, re-checking eligibility in
// case the rules have tightened since the entry was written.
func (o *Orchestrator) fromCache(kind domain.LookupKind) domain.Payload {
	cached := o.cache.Load(kind)
	if cached == nil || !normalize.Eligible(kind, cached) {
		return nil
	}
	return cached
}
