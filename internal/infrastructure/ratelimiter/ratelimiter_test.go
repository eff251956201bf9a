package ratelimiter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowExhaustsBurst(t *testing.T) {
	rl := New(Options{MaxRatePerSecond: 1, MaxBurst: 3})

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("client"), "request %d should pass", i)
	}

	assert.False(t, rl.Allow("client"))
	assert.Equal(t, 0, rl.Remaining("client"))
}

func TestSourcesHaveIndependentBuckets(t *testing.T) {
	rl := New(Options{MaxRatePerSecond: 1, MaxBurst: 1})

	require.True(t, rl.Allow("alice"))
	require.False(t, rl.Allow("alice"))

	assert.True(t, rl.Allow("bob"))
}

func TestRefillRestoresTokens(t *testing.T) {
	cache := NewInMemory()
	rl := New(Options{MaxRatePerSecond: 1, MaxBurst: 5, Cache: cache})

	for i := 0; i < 5; i++ {
		require.True(t, rl.Allow("client"))
	}
	require.False(t, rl.Allow("client"))

	// Rewind the last fill two seconds into the past; the next check should
	// see two whole tokens accrued.
	require.NoError(t, cache.SetWithExpiration(lastFillKeyPrefix+"client", int(time.Now().Add(-2*time.Second).UnixMilli()), time.Minute))

	assert.True(t, rl.Allow("client"))
	assert.True(t, rl.Allow("client"))
	assert.False(t, rl.Allow("client"))
}

func TestRefillCapsAtBurst(t *testing.T) {
	cache := NewInMemory()
	rl := New(Options{MaxRatePerSecond: 100, MaxBurst: 2, Cache: cache})

	require.True(t, rl.Allow("client"))

	// A long idle period must not bank more than the burst.
	require.NoError(t, cache.SetWithExpiration(lastFillKeyPrefix+"client", int(time.Now().Add(-time.Hour).UnixMilli()), time.Minute))

	assert.Equal(t, 2, rl.Remaining("client"))
}

func TestGetSourceKeyPrefersHeader(t *testing.T) {
	rl := New(Options{MaxRatePerSecond: 1, SourceHeaderKey: "X-Forwarded-For"})

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1:1234", rl.GetSourceKey(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", rl.GetSourceKey(r))
}

func TestInMemoryCacheExpiry(t *testing.T) {
	cache := NewInMemory()
	defer cache.Close()

	require.NoError(t, cache.SetWithExpiration("k", 7, 10*time.Millisecond))

	v, err := cache.Get("k")
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	time.Sleep(20 * time.Millisecond)

	_, err = cache.Get("k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
