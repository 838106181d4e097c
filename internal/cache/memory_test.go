package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	c := NewMemoryCache()

	c.Set("books:list:0::", []byte("<html>page</html>"), time.Minute)

	value, ok := c.Get("books:list:0::")
	require.True(t, ok)
	assert.Equal(t, []byte("<html>page</html>"), value)
}

func TestMemoryCache_MissingKey(t *testing.T) {
	c := NewMemoryCache()

	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestMemoryCache_ZeroTTLNeverExpires(t *testing.T) {
	c := NewMemoryCache()

	c.Set("forever", []byte("x"), 0)

	assert.Zero(t, c.Sweep())
	_, ok := c.Get("forever")
	assert.True(t, ok)
}

func TestMemoryCache_ExpiredEntryIsAMiss(t *testing.T) {
	c := NewMemoryCache()

	c.Set("short", []byte("x"), 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("short")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestMemoryCache_InvalidateByPrefix(t *testing.T) {
	c := NewMemoryCache()

	c.Set(ListKey(0, "name", ""), []byte("a"), time.Minute)
	c.Set(ListKey(1, "name", "dune"), []byte("b"), time.Minute)
	c.Set("other:key", []byte("c"), time.Minute)

	c.Invalidate(ListKeyPrefix)

	_, ok := c.Get(ListKey(0, "name", ""))
	assert.False(t, ok)
	_, ok = c.Get(ListKey(1, "name", "dune"))
	assert.False(t, ok)
	_, ok = c.Get("other:key")
	assert.True(t, ok)
}

func TestMemoryCache_SweepRemovesOnlyExpired(t *testing.T) {
	c := NewMemoryCache()

	c.Set("expired", []byte("a"), 5*time.Millisecond)
	c.Set("alive", []byte("b"), time.Minute)
	time.Sleep(20 * time.Millisecond)

	removed := c.Sweep()

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("alive")
	assert.True(t, ok)
}

func TestListKey(t *testing.T) {
	key := ListKey(2, "author", "%dune%")
	assert.Equal(t, "books:list:2:author:%dune%", key)
}
