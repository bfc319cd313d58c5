package mcpserver

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restitch/restitch/spec"
)

const minimalModelYAML = `openapi: 3.1.0
info:
  title: Cache Test API
  version: 1.0.0
paths: {}
`

func TestModelInputResolve_ExactlyOne(t *testing.T) {
	ctx := context.Background()

	_, err := modelInput{}.resolve(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")

	_, err = modelInput{File: "a.yaml", Content: "x"}.resolve(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")
}

func TestModelInputResolve_Content(t *testing.T) {
	docCache.reset()
	doc, err := modelInput{Content: minimalModelYAML}.resolve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc.Info)
	assert.Equal(t, "Cache Test API", doc.Info.Title)
}

func TestMakeCacheKey(t *testing.T) {
	key := makeCacheKey(modelInput{Content: "hello"})
	assert.True(t, strings.HasPrefix(key, "content:"))
	// Same content hashes to the same key.
	assert.Equal(t, key, makeCacheKey(modelInput{Content: "hello"}))
	assert.NotEqual(t, key, makeCacheKey(modelInput{Content: "world"}))

	assert.Equal(t, "url:http://example.com/api.yaml", makeCacheKey(modelInput{URL: "http://example.com/api.yaml"}))

	// Nonexistent files are not cacheable.
	assert.Empty(t, makeCacheKey(modelInput{File: "/no/such/file.yaml"}))

	assert.Empty(t, makeCacheKey(modelInput{}))
}

func TestDocCacheStore_PutGet(t *testing.T) {
	c := &docCacheStore{entries: make(map[string]*cacheEntry), maxSize: 2}
	doc := &spec.Document{}

	assert.Nil(t, c.get("k"))
	c.putWithTTL("k", doc, time.Minute)
	assert.Same(t, doc, c.get("k"))
	assert.Equal(t, 1, c.size())
}

func TestDocCacheStore_Expiry(t *testing.T) {
	c := &docCacheStore{entries: make(map[string]*cacheEntry), maxSize: 2}
	c.putWithTTL("k", &spec.Document{}, -time.Second)
	assert.Nil(t, c.get("k"))
	assert.Equal(t, 0, c.size())
}

func TestDocCacheStore_EvictsOldest(t *testing.T) {
	c := &docCacheStore{entries: make(map[string]*cacheEntry), maxSize: 2}
	c.putWithTTL("a", &spec.Document{}, time.Minute)
	time.Sleep(time.Millisecond)
	c.putWithTTL("b", &spec.Document{}, time.Minute)
	time.Sleep(time.Millisecond)
	c.putWithTTL("c", &spec.Document{}, time.Minute)

	assert.Equal(t, 2, c.size())
	assert.Nil(t, c.get("a"))
	assert.NotNil(t, c.get("b"))
	assert.NotNil(t, c.get("c"))
}

func TestDocCacheStore_Sweep(t *testing.T) {
	c := &docCacheStore{entries: make(map[string]*cacheEntry), maxSize: 4}
	c.putWithTTL("live", &spec.Document{}, time.Minute)
	c.putWithTTL("dead", &spec.Document{}, -time.Second)
	c.sweep()
	assert.Equal(t, 1, c.size())
	assert.NotNil(t, c.get("live"))
}

func TestDocCacheStore_Reset(t *testing.T) {
	c := &docCacheStore{entries: make(map[string]*cacheEntry), maxSize: 4}
	c.putWithTTL("k", &spec.Document{}, time.Minute)
	c.reset()
	assert.Equal(t, 0, c.size())
}

func TestModelInputResolve_CachesContent(t *testing.T) {
	docCache.reset()
	ctx := context.Background()

	first, err := modelInput{Content: minimalModelYAML}.resolve(ctx)
	require.NoError(t, err)
	second, err := modelInput{Content: minimalModelYAML}.resolve(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
}
