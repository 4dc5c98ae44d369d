package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teampulse/teampulse/schema"
)

func TestResultCachePutGet(t *testing.T) {
	cache := NewResultCache(10)
	result := &schema.AnalyticsResult{Fingerprint: "fp1"}

	_, ok := cache.Get("fp1")
	assert.False(t, ok)

	cache.Put("fp1", result)
	hit, ok := cache.Get("fp1")
	require.True(t, ok)
	assert.Same(t, result, hit)
	assert.Equal(t, 1, cache.Len())
}

func TestResultCacheFIFOEviction(t *testing.T) {
	cache := NewResultCache(3)
	for i := 0; i < 4; i++ {
		fp := fmt.Sprintf("fp%d", i)
		cache.Put(fp, &schema.AnalyticsResult{Fingerprint: fp})
	}

	assert.Equal(t, 3, cache.Len())

	// The oldest insertion goes first, regardless of access patterns.
	_, ok := cache.Get("fp0")
	assert.False(t, ok)
	for _, fp := range []string{"fp1", "fp2", "fp3"} {
		_, ok := cache.Get(fp)
		assert.True(t, ok, fp)
	}
}

func TestResultCacheInsertIfAbsent(t *testing.T) {
	cache := NewResultCache(3)
	first := &schema.AnalyticsResult{Fingerprint: "fp"}
	second := &schema.AnalyticsResult{Fingerprint: "fp"}

	cache.Put("fp", first)
	cache.Put("fp", second)

	hit, ok := cache.Get("fp")
	require.True(t, ok)
	assert.Same(t, first, hit)
	assert.Equal(t, 1, cache.Len())
}

func TestNewResultCacheCapacityFallback(t *testing.T) {
	cache := NewResultCache(0)
	for i := 0; i < schema.DefaultCacheCapacity+1; i++ {
		fp := fmt.Sprintf("fp%d", i)
		cache.Put(fp, &schema.AnalyticsResult{Fingerprint: fp})
	}
	assert.Equal(t, schema.DefaultCacheCapacity, cache.Len())
}
