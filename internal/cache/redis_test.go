package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledCache(t *testing.T) {
	c, err := NewRedisCache(RedisConfig{TTL: time.Minute})
	require.NoError(t, err)
	assert.False(t, c.Enabled())

	var out map[string]int
	assert.ErrorIs(t, c.Get(context.Background(), "k", &out), ErrCacheDisabled)
	assert.ErrorIs(t, c.Set(context.Background(), "k", map[string]int{"a": 1}, 0), ErrCacheDisabled)

	c.InvalidateDonor(context.Background(), "donor-1")
	assert.NoError(t, c.Close())
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "donor:abc:dashboard", GetDashboardCacheKey("abc"))
	assert.Equal(t, "donor:abc:analytics:30", GetAnalyticsCacheKey("abc", 30))
	assert.Equal(t, "donor:abc:*", GetDonorKeyPattern("abc"))
}
