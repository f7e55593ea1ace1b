package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pricelist/internal/domain/price"
)

func TestStore_ReplaceAndSnapshot(t *testing.T) {
	store := NewStore()
	prices := samplePrices()

	store.Replace(prices, Fingerprint(prices))

	snapshot := store.Snapshot()
	assert.Equal(t, prices, snapshot)
	assert.Equal(t, Fingerprint(prices), store.Fingerprint())

	// the snapshot is a copy, mutating it must not leak back
	snapshot[0].Brand = "changed"
	again := store.Snapshot()
	assert.Equal(t, "Fischer", again[0].Brand)
}

func TestStore_SwapReplacesTempID(t *testing.T) {
	store := NewStore()
	store.Add(price.Price{ID: "temp_100", Code: "A1"})

	found := store.Swap("temp_100", price.Price{ID: "srv-1", Code: "A1"})
	assert.True(t, found)

	_, ok := store.Get("temp_100")
	assert.False(t, ok)
	p, ok := store.Get("srv-1")
	assert.True(t, ok)
	assert.Equal(t, "A1", p.Code)
}

func TestStore_SwapAppendsWhenMissing(t *testing.T) {
	store := NewStore()

	// a poll replaced the collection and dropped the temp record; the
	// confirmed version must still land
	found := store.Swap("temp_100", price.Price{ID: "srv-1"})
	assert.False(t, found)
	_, ok := store.Get("srv-1")
	assert.True(t, ok)
}

func TestStore_SwapDropsRecordAlreadyHoldingNewID(t *testing.T) {
	store := NewStore()
	store.Add(price.Price{ID: "temp_100", Code: "A1"})
	// a poll fetched the committed record before the confirmation
	// arrived, so both versions coexist
	store.Add(price.Price{ID: "srv-1", Code: "A1", Value: 10})

	found := store.Swap("temp_100", price.Price{ID: "srv-1", Code: "A1", Value: 10})
	assert.True(t, found)

	assert.Equal(t, 1, store.Len(), "one record per id")
	_, ok := store.Get("temp_100")
	assert.False(t, ok)
	_, ok = store.Get("srv-1")
	assert.True(t, ok)
}

func TestStore_SwapUpdatesInPlaceWhenOnlyNewIDPresent(t *testing.T) {
	store := NewStore()
	store.Add(price.Price{ID: "srv-1", Value: 10})

	// oldID already gone, the confirmed payload lands on the existing
	// record instead of duplicating it
	found := store.Swap("temp_100", price.Price{ID: "srv-1", Value: 12})
	assert.False(t, found)

	assert.Equal(t, 1, store.Len())
	p, ok := store.Get("srv-1")
	assert.True(t, ok)
	assert.Equal(t, 12.0, p.Value)
}

func TestStore_RemoveReturnsRecord(t *testing.T) {
	store := NewStore()
	store.Add(price.Price{ID: "1", Code: "A1"})

	removed, ok := store.Remove("1")
	assert.True(t, ok)
	assert.Equal(t, "A1", removed.Code)
	assert.Zero(t, store.Len())

	_, ok = store.Remove("1")
	assert.False(t, ok)
}

func TestStore_HasCode(t *testing.T) {
	store := NewStore()
	store.Add(price.Price{ID: "1", Code: "AB12"})

	assert.True(t, store.HasCode("ab12", ""))
	assert.True(t, store.HasCode("AB12", "2"))
	// the record itself is excluded so edits do not collide with
	// their own code
	assert.False(t, store.HasCode("AB12", "1"))
	assert.False(t, store.HasCode("XY99", ""))
}

func TestStore_SetOnlineIsEdgeTriggered(t *testing.T) {
	store := NewStore()

	assert.False(t, store.Online())
	assert.True(t, store.SetOnline(true))
	assert.False(t, store.SetOnline(true))
	assert.True(t, store.SetOnline(false))
	assert.False(t, store.SetOnline(false))
}

func TestStore_RefreshFingerprint(t *testing.T) {
	store := NewStore()
	prices := samplePrices()
	store.Replace(prices, Fingerprint(prices))

	store.Add(price.Price{ID: "d", Brand: "Incepa", Code: "D1"})
	assert.NotEqual(t, Fingerprint(store.Snapshot()), store.Fingerprint())

	store.RefreshFingerprint()
	assert.Equal(t, Fingerprint(store.Snapshot()), store.Fingerprint())
}

func TestStore_DefaultBrandIsAll(t *testing.T) {
	store := NewStore()
	assert.Equal(t, AllBrands, store.SelectedBrand())

	store.SelectBrand("Eliane")
	store.SetSearch("piso")
	assert.Equal(t, "Eliane", store.SelectedBrand())
	assert.Equal(t, "piso", store.SearchTerm())
}
