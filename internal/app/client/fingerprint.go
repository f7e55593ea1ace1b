package client

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"pricelist/internal/domain/price"
)

// Fingerprint derives a comparable value summarizing the collection so
// polling can detect "nothing changed" without re-rendering. Records are
// sorted by id and encoded with a fixed field order, so two collections
// holding the same data always produce the same value regardless of the
// order they arrived in. Not an integrity mechanism.
func Fingerprint(prices []price.Price) string {
	sorted := make([]price.Price, len(prices))
	copy(sorted, prices)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	// struct field order is stable under encoding/json
	data, err := json.Marshal(sorted)
	if err != nil {
		// price.Price contains no unmarshalable types; this cannot
		// happen with well-formed records
		return ""
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
