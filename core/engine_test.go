package core

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teampulse/teampulse/schema"
)

// concentratedTeamSnapshot models a 30-day window where one author produces
// 80 of 100 commits, all inside a single file category.
func concentratedTeamSnapshot(t *testing.T) *schema.RangeSnapshot {
	t.Helper()

	var records []schema.ChangeRecord
	for i := 0; i < 80; i++ {
		k := i % 10
		records = append(records, commit(
			fmt.Sprintf("a%02d", i), "alice",
			day(i%28).Add(time.Duration(i)*time.Minute), "engine work",
			change(fmt.Sprintf("core/m%d.x", k), k+1, 0)))
	}
	for i := 0; i < 10; i++ {
		records = append(records, commit(
			fmt.Sprintf("b%02d", i), "bob",
			day(i).Add(12*time.Hour), "glue code",
			change("util/b.go", 1, 0)))
		records = append(records, commit(
			fmt.Sprintf("c%02d", i), "carol",
			day(i).Add(13*time.Hour), "glue code",
			change("util/c.go", 2, 0)))
	}
	return mustSnapshot(t, testStart, testEnd, records)
}

func TestEngineAnalyzeConcentratedTeam(t *testing.T) {
	engine := NewEngine(schema.DefaultAnalyzerConfig(), nil)
	snap := concentratedTeamSnapshot(t)

	result, err := engine.Analyze(context.Background(), snap)
	require.NoError(t, err)
	assert.False(t, result.Degraded())
	assert.False(t, result.FromCache)
	assert.Equal(t, snap.Fingerprint(), result.Fingerprint)

	// One author holds 80% of the commits.
	temporal := result.Temporal.Insights
	require.NotNil(t, temporal)
	assert.Equal(t, 1, temporal.BusFactor.AuthorCount)
	assert.Equal(t, schema.RiskHigh, temporal.BusFactor.Risk)
	assert.InDelta(t, 0.8, temporal.BusFactor.Coverage, 1e-9)

	// The .x category is a single-owner silo; .go is evenly shared.
	collab := result.Collaboration.Insights
	require.NotNil(t, collab)
	require.Len(t, collab.Silos, 1)
	assert.Equal(t, ".x", collab.Silos[0].Category)
	assert.Equal(t, "alice", collab.Silos[0].Owner)
	assert.Equal(t, schema.RiskHigh, collab.KnowledgeRisk)

	// Concentration drags the health rating to poor or worse.
	quality := result.Quality.Insights
	require.NotNil(t, quality)
	assert.Less(t, quality.HealthScore, schema.HealthFairCutoff)
	assert.Contains(t, []schema.HealthBucket{schema.HealthPoor, schema.HealthCritical}, quality.HealthBucket)
	assert.Equal(t, schema.RiskHigh, quality.Risk)
}

func TestEngineAnalyzeDeterministic(t *testing.T) {
	engine := NewEngine(schema.DefaultAnalyzerConfig(), nil)
	snap := concentratedTeamSnapshot(t)

	a, err := engine.Analyze(context.Background(), snap)
	require.NoError(t, err)
	b, err := engine.Analyze(context.Background(), snap)
	require.NoError(t, err)

	assert.Equal(t, a.Temporal, b.Temporal)
	assert.Equal(t, a.Collaboration, b.Collaboration)
	assert.Equal(t, a.Quality, b.Quality)
}

func TestEngineAnalyzeCacheHit(t *testing.T) {
	cache := NewResultCache(10)
	engine := NewEngine(schema.DefaultAnalyzerConfig(), cache)
	snap := concentratedTeamSnapshot(t)

	first, err := engine.Analyze(context.Background(), snap)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, 1, cache.Len())

	second, err := engine.Analyze(context.Background(), snap)
	require.NoError(t, err)
	assert.True(t, second.FromCache)

	// Apart from the cache marker, the hit is the stored result.
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, first.ComputedAt, second.ComputedAt)
	assert.Equal(t, first.Quality, second.Quality)

	// The marker lives on a copy; the cached entry itself stays clean.
	stored, ok := cache.Get(snap.Fingerprint())
	require.True(t, ok)
	assert.False(t, stored.FromCache)
}

func TestEngineAnalyzeNilCacheDisablesMemoization(t *testing.T) {
	engine := NewEngine(schema.DefaultAnalyzerConfig(), nil)
	snap := concentratedTeamSnapshot(t)

	for i := 0; i < 2; i++ {
		result, err := engine.Analyze(context.Background(), snap)
		require.NoError(t, err)
		assert.False(t, result.FromCache)
	}
}

func TestEngineAnalyzeNilSnapshot(t *testing.T) {
	engine := NewEngine(schema.DefaultAnalyzerConfig(), nil)
	_, err := engine.Analyze(context.Background(), nil)
	assert.Error(t, err)
}

func TestEngineAnalyzeCancelledContext(t *testing.T) {
	cache := NewResultCache(10)
	engine := NewEngine(schema.DefaultAnalyzerConfig(), cache)
	snap := concentratedTeamSnapshot(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Analyze(ctx, snap)
	assert.Error(t, err)
	assert.Equal(t, 0, cache.Len())
}

func TestEngineAnalyzeEmptySnapshot(t *testing.T) {
	engine := NewEngine(schema.DefaultAnalyzerConfig(), nil)
	snap := mustSnapshot(t, testStart, testEnd, nil)

	result, err := engine.Analyze(context.Background(), snap)
	require.NoError(t, err)
	assert.False(t, result.Degraded())
	require.NotNil(t, result.Quality.Insights)
	assert.Equal(t, schema.HealthExcellent, result.Quality.Insights.HealthBucket)
}
