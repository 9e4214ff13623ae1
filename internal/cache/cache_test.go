// internal/cache/cache_test.go
package cache

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[string, int](2)
	assert.False(t, c.Add("a", 1))
	assert.False(t, c.Add("b", 2))
	_, _ = c.Get("a") // b is now oldest
	assert.False(t, c.Add("c", 3))

	_, ok := c.Get("b")
	assert.False(t, ok)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Len())
}

func TestLRUAddReplaces(t *testing.T) {
	c := NewLRU[string, string](4)
	c.Add("k", "old")
	assert.True(t, c.Add("k", "new"))
	v, _ := c.Get("k")
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, c.Len())
}

func TestLRUConcurrent(t *testing.T) {
	c := NewLRU[int, int](64)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				c.Add(g*1000+i, i)
				c.Get(i)
			}
		}(g)
	}
	wg.Wait()
	assert.Equal(t, 64, c.Len())
}

func TestStoreRoundTrip(t *testing.T) {
	s, err := OpenStore(StoreConfig{InMemory: true})
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	_, err = s.Get("missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, s.Put("D|", []byte(`{"pattern":"GAY"}`)))
	got, err := s.Get("D|")
	require.NoError(t, err)
	assert.JSONEq(t, `{"pattern":"GAY"}`, string(got))
}

func TestStorePersistsOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenStore(StoreConfig{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, s.Put("k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = OpenStore(StoreConfig{Dir: dir})
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestOpenStoreNeedsDir(t *testing.T) {
	_, err := OpenStore(StoreConfig{})
	assert.Error(t, err)
}
