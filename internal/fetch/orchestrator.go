// Package fetch runs the queries of a dashboard bundle concurrently.
//
// The Orchestrator has all-settled semantics: every query in a bundle is
// dispatched, a failing query never cancels its siblings, and Run returns
// exactly one Result per query.
package fetch

import (
	"context"
	"io"
	"log/slog"
	"time"

	"nathanbeddoewebdev/donorlens/internal/retry"
	"nathanbeddoewebdev/donorlens/internal/source"

	"golang.org/x/sync/errgroup"
)

// Fetcher performs a single query. *source.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, q source.Query, token string) source.Result
}

// Orchestrator fans a bundle out over a Fetcher.
type Orchestrator struct {
	fetcher Fetcher
	retry   retry.Config
	limit   int
	metrics *Metrics
	logger  *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRetry enables retries of transient query failures.
func WithRetry(cfg retry.Config) Option {
	return func(o *Orchestrator) {
		o.retry = cfg
	}
}

// WithConcurrency caps the number of in-flight queries per bundle.
// Zero or negative means unlimited.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		o.limit = n
	}
}

// WithMetrics records per-query outcomes and latencies.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// WithLogger sets the logger used for failed queries.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// New returns an Orchestrator that issues queries through f.
func New(f Fetcher, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		fetcher: f,
		retry:   retry.DefaultConfig(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run dispatches every query of b and waits for all of them to settle.
// An empty bundle returns an empty map without touching the fetcher.
func (o *Orchestrator) Run(ctx context.Context, b Bundle, token string) Results {
	queries := b.queries
	results := make(Results, len(queries))
	if len(queries) == 0 {
		return results
	}

	start := time.Now()
	settled := make([]source.Result, len(queries))

	var g errgroup.Group
	if o.limit > 0 {
		g.SetLimit(o.limit)
	}
	for i, q := range queries {
		g.Go(func() error {
			settled[i] = o.fetchOne(ctx, b.name, q, token)
			// Never report an error: one failing query must not stop the rest.
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, q := range queries {
		results[q.Name] = settled[i]
		if !settled[i].OK() {
			failed++
		}
	}

	o.metrics.observeCycle(b.name, failed)
	o.logger.Debug("bundle settled",
		"bundle", b.name,
		"queries", len(queries),
		"failed", failed,
		"duration", time.Since(start),
	)

	return results
}

func (o *Orchestrator) fetchOne(ctx context.Context, bundle string, q Query, token string) source.Result {
	start := time.Now()

	var res source.Result
	attempts := 0
	err := retry.Do(ctx, o.retry, retry.IsRetryable, func() error {
		attempts++
		res = o.fetcher.Fetch(ctx, q, token)
		return res.Err
	})
	if err != nil && res.OK() {
		// The context ended before the first attempt.
		res = source.Failure(&source.NetworkError{Query: q.Name, Err: err})
	}

	reason := source.Reason(res.Err)
	o.metrics.observeQuery(bundle, q.Name, reason, time.Since(start))

	if !res.OK() {
		o.logger.Warn("query failed",
			"bundle", bundle,
			"query", q.Name,
			"reason", reason,
			"attempts", attempts,
			"error", res.Err,
		)
	}
	return res
}
