package client

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"pricelist/internal/domain/price"
)

// AllBrands is the brand filter value that disables brand filtering.
const AllBrands = "TODAS"

// Project derives the presented sequence from the collection: brand
// filter, then case-insensitive substring search over codigo, marca and
// descricao, then a locale-aware sort by brand with a numeric-aware code
// tie-break (so A2 sorts before A10).
//
// Pure function of its inputs; it never touches the store and is safe
// to call from any goroutine.
func Project(prices []price.Price, brand, term string) []price.Price {
	filtered := make([]price.Price, 0, len(prices))
	term = strings.ToLower(term)

	for _, p := range prices {
		if brand != AllBrands && p.Brand != brand {
			continue
		}
		if term != "" && !matches(p, term) {
			continue
		}
		filtered = append(filtered, p)
	}

	brandColl := collate.New(language.BrazilianPortuguese)
	codeColl := collate.New(language.BrazilianPortuguese, collate.Numeric, collate.Loose)

	sort.SliceStable(filtered, func(i, j int) bool {
		if c := brandColl.CompareString(filtered[i].Brand, filtered[j].Brand); c != 0 {
			return c < 0
		}
		return codeColl.CompareString(filtered[i].Code, filtered[j].Code) < 0
	})

	return filtered
}

func matches(p price.Price, term string) bool {
	return strings.Contains(strings.ToLower(p.Code), term) ||
		strings.Contains(strings.ToLower(p.Brand), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// Brands returns the distinct non-empty brand values, sorted, for the
// brand-filter control.
func Brands(prices []price.Price) []string {
	seen := make(map[string]struct{})
	for _, p := range prices {
		b := strings.TrimSpace(p.Brand)
		if b == "" {
			continue
		}
		seen[b] = struct{}{}
	}

	brands := make([]string, 0, len(seen))
	for b := range seen {
		brands = append(brands, b)
	}

	coll := collate.New(language.BrazilianPortuguese)
	sort.Slice(brands, func(i, j int) bool {
		return coll.CompareString(brands[i], brands[j]) < 0
	})
	return brands
}
