package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teampulse/teampulse/schema"
)

func TestComputeFileChurn(t *testing.T) {
	snap := mustSnapshot(t, testStart, testEnd, []schema.ChangeRecord{
		commit("1", "alice", day(1), "w", change("b.go", 10, 5), change("a.go", 2, 1)),
		commit("2", "bob", day(2), "w", change("b.go", 5, 0)),
	})

	churns := computeFileChurn(snap)
	require.Len(t, churns, 2)

	assert.Equal(t, "b.go", churns[0].Path)
	assert.Equal(t, 20, churns[0].Churn)
	assert.Equal(t, 2, churns[0].Commits)
	assert.Equal(t, 2, churns[0].Authors)

	assert.Equal(t, "a.go", churns[1].Path)
	assert.Equal(t, 3, churns[1].Churn)
	assert.Equal(t, 1, churns[1].Authors)
}

func TestComputeFileChurnTieBreaksByPath(t *testing.T) {
	snap := mustSnapshot(t, testStart, testEnd, []schema.ChangeRecord{
		commit("1", "alice", day(1), "w", change("z.go", 5, 0), change("a.go", 5, 0)),
	})
	churns := computeFileChurn(snap)
	require.Len(t, churns, 2)
	assert.Equal(t, "a.go", churns[0].Path)
	assert.Equal(t, "z.go", churns[1].Path)
}

func TestComputeHighChurn(t *testing.T) {
	churns := make([]schema.FileChurn, 10)
	for i := range churns {
		churns[i] = schema.FileChurn{Path: fmt.Sprintf("f%02d.go", i), Churn: 10 - i}
	}

	high, cutoff := computeHighChurn(churns, schema.DefaultChurnPercentile)
	assert.Equal(t, 9.0, cutoff)
	require.Len(t, high, 2)
	assert.Equal(t, 10, high[0].Churn)
	assert.Equal(t, 9, high[1].Churn)

	none, cutoff := computeHighChurn(nil, schema.DefaultChurnPercentile)
	assert.Nil(t, none)
	assert.Equal(t, 0.0, cutoff)
}

func TestComputeHighChurnSkipsZeroChurn(t *testing.T) {
	churns := []schema.FileChurn{
		{Path: "a.go", Churn: 0},
		{Path: "b.go", Churn: 0},
		{Path: "c.go", Churn: 4},
	}
	high, _ := computeHighChurn(churns, schema.DefaultChurnPercentile)
	require.Len(t, high, 1)
	assert.Equal(t, "c.go", high[0].Path)
}

func TestComputeComplexityTrend(t *testing.T) {
	rising := mustSnapshot(t, testStart, testEnd, []schema.ChangeRecord{
		commit("1", "alice", day(1), "w", change("a.go", 10, 0)),
		commit("2", "alice", day(8), "w", change("a.go", 50, 0)),
		commit("3", "alice", day(15), "w", change("a.go", 200, 0)),
	})
	assert.Equal(t, schema.TrendIncreasing, computeComplexityTrend(rising))

	falling := mustSnapshot(t, testStart, testEnd, []schema.ChangeRecord{
		commit("1", "alice", day(1), "w", change("a.go", 200, 0)),
		commit("2", "alice", day(8), "w", change("a.go", 50, 0)),
		commit("3", "alice", day(15), "w", change("a.go", 10, 0)),
	})
	assert.Equal(t, schema.TrendDecreasing, computeComplexityTrend(falling))

	flat := mustSnapshot(t, testStart, testEnd, []schema.ChangeRecord{
		commit("1", "alice", day(1), "w", change("a.go", 50, 0)),
		commit("2", "alice", day(8), "w", change("a.go", 50, 0)),
		commit("3", "alice", day(15), "w", change("a.go", 50, 0)),
	})
	assert.Equal(t, schema.TrendStable, computeComplexityTrend(flat))
}

func TestComputeLargeChanges(t *testing.T) {
	files := make([]schema.FileChange, 9)
	for i := range files {
		files[i] = change(fmt.Sprintf("f%d.go", i), 1, 0)
	}

	snap := mustSnapshot(t, testStart, testEnd, []schema.ChangeRecord{
		commit("big", "alice", day(1), "hotfix: patch the outage", files...),
		commit("boundary", "bob", day(2), "refactor", files[:8]...),
		commit("small", "carol", day(3), "fix typo", files[:1]...),
	})

	large := computeLargeChanges(snap, schema.DefaultLargeChangeFiles)
	require.Len(t, large, 1)
	assert.Equal(t, "big", large[0].Hash)
	assert.Equal(t, 9, large[0].Files)
	assert.True(t, large[0].Corrective)
}

func TestComputeHotspots(t *testing.T) {
	high := []schema.FileChurn{
		{Path: "a.go", Churn: 100, Authors: 3},
		{Path: "b.go", Churn: 90, Authors: 1},
		{Path: "c.go", Churn: 80, Authors: 2},
	}

	hotspots := computeHotspots(high, 10)
	require.Len(t, hotspots, 2)
	assert.Equal(t, "a.go", hotspots[0].Path)
	assert.Equal(t, "c.go", hotspots[1].Path)

	assert.Len(t, computeHotspots(high, 1), 1)
}

func TestAnalyzeQualityHealthyWindow(t *testing.T) {
	// Five evenly contributing authors, small commits, churn concentrated in
	// a single file out of ten.
	var records []schema.ChangeRecord
	authors := []string{"alice", "bob", "carol", "dave", "erin"}
	for i := 0; i < 10; i++ {
		files := []schema.FileChange{change(fmt.Sprintf("f%d.go", i), 0, 0)}
		if i == 0 {
			files = []schema.FileChange{change("hot.go", 5, 5)}
		}
		records = append(records, commit(
			fmt.Sprintf("c%d", i), authors[i%5],
			day(i).Add(time.Hour), "routine work", files...))
	}

	snap := mustSnapshot(t, testStart, testEnd, records)
	ins := analyzeQuality(snap, schema.DefaultAnalyzerConfig())

	assert.Equal(t, 100.0, ins.HealthScore)
	assert.Equal(t, schema.HealthExcellent, ins.HealthBucket)
	assert.Equal(t, schema.RiskLow, ins.Risk)
	assert.Empty(t, ins.LargeChanges)
}

func TestAnalyzeQualityUnhealthyWindow(t *testing.T) {
	// One author, sweeping commits: bus-factor and large-change penalties stack.
	bigFiles := make([]schema.FileChange, 12)
	for i := range bigFiles {
		bigFiles[i] = change(fmt.Sprintf("f%02d.go", i), 10*(i+1), i+1)
	}

	var records []schema.ChangeRecord
	for i := 0; i < 4; i++ {
		records = append(records, commit(
			fmt.Sprintf("c%d", i), "alice",
			day(i).Add(time.Hour), "fix everything", bigFiles...))
	}

	snap := mustSnapshot(t, testStart, testEnd, records)
	ins := analyzeQuality(snap, schema.DefaultAnalyzerConfig())

	assert.Less(t, ins.HealthScore, schema.HealthPoorCutoff)
	assert.Equal(t, schema.HealthCritical, ins.HealthBucket)
	assert.Equal(t, schema.RiskHigh, ins.Risk)
	assert.Len(t, ins.LargeChanges, 4)
	assert.InDelta(t, 1.0, ins.LargeDensity, 1e-9)
}

func TestAnalyzeQualityEmptySnapshot(t *testing.T) {
	snap := mustSnapshot(t, testStart, testEnd, nil)
	ins := analyzeQuality(snap, schema.DefaultAnalyzerConfig())

	assert.Equal(t, 100.0, ins.HealthScore)
	assert.Equal(t, schema.HealthExcellent, ins.HealthBucket)
	assert.Equal(t, schema.RiskLow, ins.Risk)
	assert.Equal(t, 0, ins.TotalFiles)
}

func TestRiskForBucket(t *testing.T) {
	assert.Equal(t, schema.RiskLow, riskForBucket(schema.HealthExcellent))
	assert.Equal(t, schema.RiskLow, riskForBucket(schema.HealthGood))
	assert.Equal(t, schema.RiskMedium, riskForBucket(schema.HealthFair))
	assert.Equal(t, schema.RiskHigh, riskForBucket(schema.HealthPoor))
	assert.Equal(t, schema.RiskHigh, riskForBucket(schema.HealthCritical))
}
