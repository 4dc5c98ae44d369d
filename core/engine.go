package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teampulse/teampulse/schema"
)

// Engine runs the three analyzers over a snapshot and memoizes results in an
// injected cache. Engines are safe for concurrent use; results are computed
// once per fingerprint and shared read-only afterwards.
type Engine struct {
	cfg   schema.AnalyzerConfig
	cache *ResultCache // nil disables caching
}

// NewEngine creates an engine with the given tuning and result cache. Pass a
// nil cache to disable memoization entirely.
func NewEngine(cfg schema.AnalyzerConfig, cache *ResultCache) *Engine {
	return &Engine{cfg: cfg, cache: cache}
}

// Analyze produces the composite result for the snapshot. The analyzers run
// concurrently; a panic inside one marks only that section failed while the
// others complete. A cancelled context aborts the whole run and nothing is
// cached for it. Cached results come back with FromCache set.
func (e *Engine) Analyze(ctx context.Context, snap *schema.RangeSnapshot) (*schema.AnalyticsResult, error) {
	if snap == nil {
		return nil, errors.New("analyze: nil snapshot")
	}

	fingerprint := snap.Fingerprint()
	if e.cache != nil {
		if hit, ok := e.cache.Get(fingerprint); ok {
			cp := *hit
			cp.FromCache = true
			return &cp, nil
		}
	}

	result := &schema.AnalyticsResult{
		Fingerprint: fingerprint,
		ComputedAt:  time.Now().UTC(),
	}

	// Each goroutine writes a distinct section; Wait orders the writes
	// before any read of the result.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		insights, err := guardTemporal(snap, e.cfg)
		result.Temporal = schema.TemporalSection{Status: schema.SectionOK, Insights: insights}
		if err != nil {
			result.Temporal = schema.TemporalSection{Status: schema.SectionFailed, Error: err.Error()}
		}
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		insights, err := guardCollaboration(snap, e.cfg)
		result.Collaboration = schema.CollaborationSection{Status: schema.SectionOK, Insights: insights}
		if err != nil {
			result.Collaboration = schema.CollaborationSection{Status: schema.SectionFailed, Error: err.Error()}
		}
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		insights, err := guardQuality(snap, e.cfg)
		result.Quality = schema.QualitySection{Status: schema.SectionOK, Insights: insights}
		if err != nil {
			result.Quality = schema.QualitySection{Status: schema.SectionFailed, Error: err.Error()}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis aborted: %w", err)
	}

	// Degraded results are not memoized so a later run can retry the
	// failed section.
	if e.cache != nil && !result.Degraded() {
		e.cache.Put(fingerprint, result)
	}
	return result, nil
}

// guardTemporal isolates an analyzer fault so it degrades only its own
// section of the result.
func guardTemporal(snap *schema.RangeSnapshot, cfg schema.AnalyzerConfig) (insights *schema.TemporalInsights, err error) {
	defer func() {
		if r := recover(); r != nil {
			insights, err = nil, fmt.Errorf("temporal analyzer: %v", r)
		}
	}()
	return analyzeTemporal(snap, cfg), nil
}

func guardCollaboration(snap *schema.RangeSnapshot, cfg schema.AnalyzerConfig) (insights *schema.CollaborationInsights, err error) {
	defer func() {
		if r := recover(); r != nil {
			insights, err = nil, fmt.Errorf("collaboration analyzer: %v", r)
		}
	}()
	return analyzeCollaboration(snap, cfg), nil
}

func guardQuality(snap *schema.RangeSnapshot, cfg schema.AnalyzerConfig) (insights *schema.QualityInsights, err error) {
	defer func() {
		if r := recover(); r != nil {
			insights, err = nil, fmt.Errorf("quality analyzer: %v", r)
		}
	}()
	return analyzeQuality(snap, cfg), nil
}
