package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricelist/internal/domain/price"
)

func newTestCache(t *testing.T) *SnapshotCache {
	t.Helper()
	cache, err := NewSnapshotCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestSnapshotCache_SaveAndLoad(t *testing.T) {
	cache := newTestCache(t)
	prices := samplePrices()
	fp := Fingerprint(prices)

	require.NoError(t, cache.Save(prices, fp))

	loaded, loadedFP, err := cache.Load()
	require.NoError(t, err)
	assert.Equal(t, fp, loadedFP)
	assert.ElementsMatch(t, prices, loaded)
}

func TestSnapshotCache_SaveReplacesPrevious(t *testing.T) {
	cache := newTestCache(t)
	require.NoError(t, cache.Save(samplePrices(), "fp-1"))

	smaller := []price.Price{samplePrices()[0]}
	require.NoError(t, cache.Save(smaller, "fp-2"))

	loaded, fp, err := cache.Load()
	require.NoError(t, err)
	assert.Equal(t, "fp-2", fp)
	assert.Len(t, loaded, 1)
	assert.Equal(t, smaller[0].ID, loaded[0].ID)
}

func TestSnapshotCache_EmptyLoad(t *testing.T) {
	cache := newTestCache(t)

	loaded, fp, err := cache.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.Empty(t, fp)
}
