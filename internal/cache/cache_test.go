package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	c := New(true)

	etag := c.Set("k", []byte(`{"a":1}`), time.Minute)
	require.NotEmpty(t, etag)

	data, gotETag, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, []byte(`{"a":1}`), data)
	require.Equal(t, etag, gotETag)
}

func TestCacheMiss(t *testing.T) {
	c := New(true)
	_, _, ok := c.Get("missing")
	require.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("v"), -time.Second)
	_, _, ok := c.Get("k")
	require.False(t, ok)
}

func TestCacheInvalidate(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("v"), time.Minute)
	c.Invalidate("k")
	_, _, ok := c.Get("k")
	require.False(t, ok)
}

func TestDisabledCacheStillComputesETags(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("v"), time.Minute)
	require.NotEmpty(t, etag)

	_, _, ok := c.Get("k")
	require.False(t, ok)
}

func TestETagChangesWithData(t *testing.T) {
	a := ComputeETag([]byte("one"))
	b := ComputeETag([]byte("two"))
	require.NotEqual(t, a, b)
	require.True(t, CheckETagMatch(a, a))
	require.False(t, CheckETagMatch(a, b))
	require.True(t, CheckETagMatch("*", b))
	require.False(t, CheckETagMatch("", b))
}
