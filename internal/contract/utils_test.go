package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teampulse/teampulse/schema"
)

func TestRiskPlainLabel(t *testing.T) {
	assert.Equal(t, "High", RiskPlainLabel(schema.RiskHigh))
	assert.Equal(t, "Medium", RiskPlainLabel(schema.RiskMedium))
	assert.Equal(t, "Low", RiskPlainLabel(schema.RiskLow))
	assert.Equal(t, "Low", RiskPlainLabel(schema.RiskLevel("unknown")))
}

func TestRiskColorLabelContainsPlainText(t *testing.T) {
	for _, risk := range []schema.RiskLevel{schema.RiskHigh, schema.RiskMedium, schema.RiskLow} {
		assert.Contains(t, RiskColorLabel(risk), RiskPlainLabel(risk))
	}
}

func TestHealthColorLabelContainsBucket(t *testing.T) {
	buckets := []schema.HealthBucket{
		schema.HealthExcellent, schema.HealthGood, schema.HealthFair,
		schema.HealthPoor, schema.HealthCritical,
	}
	for _, b := range buckets {
		assert.Contains(t, HealthColorLabel(b), string(b))
	}
}

func TestParseBoolString(t *testing.T) {
	truthy := []string{"yes", "YES", "true", "True", "1"}
	for _, s := range truthy {
		got, err := ParseBoolString(s)
		require.NoError(t, err, s)
		assert.True(t, got, s)
	}

	falsy := []string{"no", "NO", "false", "False", "0"}
	for _, s := range falsy {
		got, err := ParseBoolString(s)
		require.NoError(t, err, s)
		assert.False(t, got, s)
	}

	for _, s := range []string{"", "maybe", "2", "on"} {
		_, err := ParseBoolString(s)
		assert.Error(t, err, s)
	}
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Same(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.txt")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, path, f.Name())
}

func TestGetRunDBFilePath(t *testing.T) {
	path := GetRunDBFilePath()
	assert.True(t, strings.HasSuffix(path, ".teampulse_runs.db"))
}
