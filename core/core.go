// Package core has the analyzers, the analytics engine and the command
// entry points that tie collection, analysis and output together.
package core

import (
	"context"
	"errors"
	"time"

	"github.com/teampulse/teampulse/internal/contract"
	"github.com/teampulse/teampulse/internal/history"
	"github.com/teampulse/teampulse/internal/outwriter"
	"github.com/teampulse/teampulse/internal/runstore"
	"github.com/teampulse/teampulse/schema"
)

// ExecutorFunc defines the function signature for executing different report modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// NewEngineFromConfig builds an engine wired per the validated config.
func NewEngineFromConfig(cfg *contract.Config) *Engine {
	var cache *ResultCache
	if cfg.CacheEnabled {
		cache = NewResultCache(cfg.CacheCapacity)
	}
	return NewEngine(cfg.Analyzer, cache)
}

// CollectAndAnalyze collects the commit history for the configured window and
// runs the engine over it. Shared by the CLI entry points and the MCP server.
func CollectAndAnalyze(ctx context.Context, cfg *contract.Config, engine *Engine) (*schema.RangeSnapshot, *schema.AnalyticsResult, error) {
	client := contract.NewLocalGitClient()
	collector := history.NewCollector(client)
	snap, err := collector.CollectSnapshot(ctx, cfg.RepoPath, cfg.StartTime, cfg.EndTime, cfg.MaxCommits)
	if err != nil {
		return nil, nil, err
	}
	result, err := engine.Analyze(ctx, snap)
	if err != nil {
		return nil, nil, err
	}
	return snap, result, nil
}

// ExecuteReport runs the full composite analysis and prints all sections.
// It serves as the main entry point for the 'report' command.
func ExecuteReport(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	snap, result, err := CollectAndAnalyze(ctx, cfg, NewEngineFromConfig(cfg))
	if err != nil {
		return err
	}
	recordRun(cfg, snap, result, start)
	return outwriter.PrintReport(result, snap, cfg, time.Since(start))
}

// ExecuteTemporal runs the analysis and prints only the temporal section.
func ExecuteTemporal(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	snap, result, err := CollectAndAnalyze(ctx, cfg, NewEngineFromConfig(cfg))
	if err != nil {
		return err
	}
	return outwriter.PrintTemporal(result, snap, cfg, time.Since(start))
}

// ExecuteCollaboration runs the analysis and prints only the collaboration
// section.
func ExecuteCollaboration(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	snap, result, err := CollectAndAnalyze(ctx, cfg, NewEngineFromConfig(cfg))
	if err != nil {
		return err
	}
	return outwriter.PrintCollaboration(result, snap, cfg, time.Since(start))
}

// ExecuteQuality runs the analysis and prints only the quality section.
func ExecuteQuality(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	snap, result, err := CollectAndAnalyze(ctx, cfg, NewEngineFromConfig(cfg))
	if err != nil {
		return err
	}
	return outwriter.PrintQuality(result, snap, cfg, time.Since(start))
}

// ExecuteRuns lists the persisted run history.
func ExecuteRuns(_ context.Context, cfg *contract.Config) error {
	start := time.Now()
	if cfg.RunBackend == schema.NoneBackend {
		return errors.New("run history is disabled (run-backend=none)")
	}
	store, err := runstore.NewRunStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			contract.LogWarn("closing run store", cerr)
		}
	}()

	runs, err := store.ListRuns(cfg.RunLimit)
	if err != nil {
		return err
	}
	return outwriter.PrintRuns(runs, cfg, time.Since(start))
}

// recordRun persists the run summary when a run backend is configured.
// Persistence failures degrade to warnings so the report still prints.
func recordRun(cfg *contract.Config, snap *schema.RangeSnapshot, result *schema.AnalyticsResult, started time.Time) {
	if cfg.RunBackend == schema.NoneBackend {
		return
	}
	store, err := runstore.NewRunStore(cfg)
	if err != nil {
		contract.LogWarn("opening run store", err)
		return
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			contract.LogWarn("closing run store", cerr)
		}
	}()

	if _, err := store.RecordRun(BuildRunSummary(cfg, snap, result, started)); err != nil {
		contract.LogWarn("recording run", err)
	}
}

// BuildRunSummary flattens one analysis run into its persisted form.
func BuildRunSummary(cfg *contract.Config, snap *schema.RangeSnapshot, result *schema.AnalyticsResult, started time.Time) schema.RunSummary {
	summary := schema.RunSummary{
		RepoPath:    cfg.RepoPath,
		Fingerprint: result.Fingerprint,
		StartedAt:   started.UTC(),
		FinishedAt:  time.Now().UTC(),
		WindowStart: snap.StartTime,
		WindowEnd:   snap.EndTime,
		CommitCount: len(snap.Records),
		AuthorCount: snap.AuthorCount(),
		Degraded:    result.Degraded(),
	}
	if result.Quality.Insights != nil {
		summary.HealthScore = result.Quality.Insights.HealthScore
		summary.HealthBucket = result.Quality.Insights.HealthBucket
	}
	return summary
}
