package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teampulse/teampulse/schema"
)

func day(offset int) time.Time {
	return testStart.Add(time.Duration(offset) * 24 * time.Hour)
}

func TestDailyCommitSeriesIncludesZeroDays(t *testing.T) {
	end := day(2).Add(23 * time.Hour)
	snap := mustSnapshot(t, testStart, end, []schema.ChangeRecord{
		commit("aaa", "alice", day(0).Add(9*time.Hour), "one"),
		commit("bbb", "alice", day(2).Add(10*time.Hour), "two"),
		commit("ccc", "bob", day(2).Add(11*time.Hour), "three"),
	})

	series := dailyCommitSeries(snap)
	require.Len(t, series, 3)
	assert.Equal(t, 1, series[0].Commits)
	assert.Equal(t, 0, series[1].Commits)
	assert.Equal(t, 2, series[2].Commits)
}

func TestDailyCommitSeriesEmpty(t *testing.T) {
	snap := mustSnapshot(t, testStart, testEnd, nil)
	assert.Nil(t, dailyCommitSeries(snap))
}

func TestComputeVelocityTrend(t *testing.T) {
	rising := make([]schema.DayCount, 0, 9)
	for i := 0; i < 9; i++ {
		rising = append(rising, schema.DayCount{Day: day(i), Commits: i})
	}

	trend := computeVelocityTrend(rising, 1)
	assert.Equal(t, schema.TrendIncreasing, trend.Direction)
	assert.Equal(t, 1, trend.WindowDays)
	assert.Greater(t, trend.LastThirdMean, trend.FirstThirdMean)
	assert.Greater(t, trend.ChangePct, 0.0)
	assert.Len(t, trend.DailyCommits, 9)

	empty := computeVelocityTrend(nil, 7)
	assert.Equal(t, schema.TrendStable, empty.Direction)
}

func TestComputeHeatmapPeaks(t *testing.T) {
	var records []schema.ChangeRecord
	// Five commits at 09:00 on a Monday (2026-01-05), one at 14:00 Tuesday.
	monday := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		records = append(records, commit(string(rune('a'+i)), "alice", monday.Add(time.Duration(i)*time.Minute), "work"))
	}
	records = append(records, commit("f", "bob", time.Date(2026, 1, 6, 14, 0, 0, 0, time.UTC), "more"))

	snap := mustSnapshot(t, testStart, testEnd, records)
	hm := computeHeatmap(snap)

	assert.Equal(t, 5, hm.ByHour[9])
	assert.Equal(t, 1, hm.ByHour[14])
	assert.Equal(t, 5, hm.ByWeekday[int(time.Monday)])
	assert.Equal(t, 1, hm.ByWeekday[int(time.Tuesday)])

	// Ties at or above the cutoff are included; zero-count entries never are.
	assert.Contains(t, hm.PeakHours, 9)
	assert.NotContains(t, hm.PeakHours, 0)
	assert.Contains(t, hm.PeakDays, "Monday")
	assert.NotContains(t, hm.PeakDays, "Sunday")
}

func TestComputeHeatmapEmpty(t *testing.T) {
	snap := mustSnapshot(t, testStart, testEnd, nil)
	hm := computeHeatmap(snap)
	assert.Empty(t, hm.PeakHours)
	assert.Empty(t, hm.PeakDays)
}

func TestComputePeakPeriods(t *testing.T) {
	counts := []int{1, 1, 1, 1, 10, 10, 1, 1, 1, 1}
	daily := make([]schema.DayCount, len(counts))
	for i, c := range counts {
		daily[i] = schema.DayCount{Day: day(i), Commits: c}
	}

	periods := computePeakPeriods(daily, schema.DefaultPeakThreshold)
	require.Len(t, periods, 1)
	p := periods[0]
	assert.Equal(t, day(4), p.Start)
	assert.Equal(t, day(5), p.End)
	assert.Equal(t, 2, p.Days)
	assert.Equal(t, 20, p.Commits)
	assert.Greater(t, p.Intensity, 1.0)
}

func TestComputePeakPeriodsQuietSeries(t *testing.T) {
	daily := []schema.DayCount{
		{Day: day(0), Commits: 2},
		{Day: day(1), Commits: 2},
		{Day: day(2), Commits: 2},
	}
	// A flat series has zero stddev, so every day sits at the cutoff and the
	// whole window merges into one period of intensity 1.
	periods := computePeakPeriods(daily, schema.DefaultPeakThreshold)
	require.Len(t, periods, 1)
	assert.Equal(t, 3, periods[0].Days)
	assert.InDelta(t, 1.0, periods[0].Intensity, 1e-9)

	assert.Nil(t, computePeakPeriods(nil, schema.DefaultPeakThreshold))
	assert.Nil(t, computePeakPeriods([]schema.DayCount{{Day: day(0)}}, schema.DefaultPeakThreshold))
}

func TestComputeBusFactor(t *testing.T) {
	cfg := schema.DefaultAnalyzerConfig()

	tests := []struct {
		name        string
		commits     map[string]int
		wantCount   int
		wantRisk    schema.RiskLevel
		minCoverage float64
	}{
		{
			name:        "single author",
			commits:     map[string]int{"alice": 10},
			wantCount:   1,
			wantRisk:    schema.RiskHigh,
			minCoverage: 1.0,
		},
		{
			name:        "dominant author",
			commits:     map[string]int{"alice": 8, "bob": 1, "carol": 1},
			wantCount:   1,
			wantRisk:    schema.RiskHigh,
			minCoverage: 0.8,
		},
		{
			name:        "two author core",
			commits:     map[string]int{"alice": 5, "bob": 5, "carol": 5, "dave": 5},
			wantCount:   2,
			wantRisk:    schema.RiskMedium,
			minCoverage: 0.5,
		},
		{
			name:        "broad team",
			commits:     map[string]int{"a": 4, "b": 4, "c": 4, "d": 4, "e": 4},
			wantCount:   3,
			wantRisk:    schema.RiskLow,
			minCoverage: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []schema.ChangeRecord
			i := 0
			for author, n := range tt.commits {
				for j := 0; j < n; j++ {
					records = append(records, commit(
						author+string(rune('0'+j)), author,
						testStart.Add(time.Duration(i)*time.Hour), "work"))
					i++
				}
			}
			snap := mustSnapshot(t, testStart, testEnd, records)

			bf := computeBusFactor(snap, cfg)
			assert.Equal(t, tt.wantCount, bf.AuthorCount)
			assert.Equal(t, tt.wantRisk, bf.Risk)
			assert.GreaterOrEqual(t, bf.Coverage, tt.minCoverage)
			assert.Len(t, bf.TopAuthors, tt.wantCount)
		})
	}
}

func TestComputeBusFactorEmpty(t *testing.T) {
	snap := mustSnapshot(t, testStart, testEnd, nil)
	bf := computeBusFactor(snap, schema.DefaultAnalyzerConfig())
	assert.Equal(t, 0, bf.AuthorCount)
	assert.Equal(t, 0.0, bf.Coverage)
	assert.Equal(t, schema.RiskLow, bf.Risk)
}

func TestAnalyzeTemporalEmptySnapshot(t *testing.T) {
	snap := mustSnapshot(t, testStart, testEnd, nil)
	ins := analyzeTemporal(snap, schema.DefaultAnalyzerConfig())

	assert.Equal(t, schema.TrendStable, ins.Velocity.Direction)
	assert.Empty(t, ins.PeakPeriods)
	assert.Equal(t, schema.RiskLow, ins.BusFactor.Risk)
}
