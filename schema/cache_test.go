package schema

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheCompileByID(t *testing.T) {
	c := NewCache()
	raw := mustDecode(t, grainSchema)

	first, err := c.Compile(raw)
	require.NoError(t, err)
	second, err := c.Compile(raw)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, c.Len())

	got, ok := c.Get("https://example.test/grain.json")
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestCacheWithoutIDIsNotStored(t *testing.T) {
	c := NewCache()
	raw := mustDecode(t, `{"type": "string"}`)

	a, err := c.Compile(raw)
	require.NoError(t, err)
	b, err := c.Compile(raw)
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.Zero(t, c.Len())
}

func TestCacheCompileError(t *testing.T) {
	c := NewCache()
	_, err := c.Compile(mustDecode(t, `{"$id": "urn:loop", "$ref": "#"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "urn:loop")
	_, ok := c.Get("urn:loop")
	assert.False(t, ok)
}

func TestCacheConcurrent(t *testing.T) {
	c := NewCache()
	raw := mustDecode(t, grainSchema)

	const workers = 16
	results := make([]*Schema, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := c.Compile(raw)
			assert.NoError(t, err)
			results[i] = s
		}()
	}
	wg.Wait()

	for _, s := range results[1:] {
		assert.Same(t, results[0], s)
	}
	assert.Equal(t, 1, c.Len())
}

func TestCachePut(t *testing.T) {
	c := NewCache()
	c.Put(nil)
	c.Put(&Schema{})
	assert.Zero(t, c.Len())

	s := &Schema{ID: "urn:x"}
	c.Put(s)
	got, ok := c.Get("urn:x")
	require.True(t, ok)
	assert.Same(t, s, got)
}
