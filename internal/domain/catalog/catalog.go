// Package catalog projects the raw product and category collections into the
// storefront view.
package catalog

import (
	"math/rand"
	"sort"
	"strings"

	"undulcito/internal/domain/entity"
)

// AllCategory is the synthetic first category that disables the category filter.
const AllCategory = "Todos"

const (
	BestSellerLimit = 5
	bestSellerPool  = 20
)

// Visible drops products without stock, keeping input order.
func Visible(products []*entity.Product) []*entity.Product {
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if p != nil && p.InStock() {
			out = append(out, p)
		}
	}
	return out
}

// CategoryNames returns AllCategory followed by the names in the given order.
func CategoryNames(categories []*entity.Category) []string {
	names := make([]string, 0, len(categories)+1)
	names = append(names, AllCategory)
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}

// Filter applies the category and search filters together. An empty category
// or AllCategory matches everything, as does an empty search.
func Filter(products []*entity.Product, category, search string) []*entity.Product {
	search = strings.ToLower(strings.TrimSpace(search))
	matchAll := category == "" || category == AllCategory

	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if !matchAll && p.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// BestSellers picks up to n featured products, lowest BestSellerOrder first.
// With nothing flagged it falls back to a random sample of the newest
// products, which is what the homepage showed before ranking existed.
// products must already be visible and newest first.
func BestSellers(products []*entity.Product, n int, rng *rand.Rand) []*entity.Product {
	if n <= 0 {
		return nil
	}

	var flagged []*entity.Product
	for _, p := range products {
		if p.IsBestSeller {
			flagged = append(flagged, p)
		}
	}

	if len(flagged) > 0 {
		sort.SliceStable(flagged, func(i, j int) bool {
			if flagged[i].BestSellerOrder != flagged[j].BestSellerOrder {
				return flagged[i].BestSellerOrder < flagged[j].BestSellerOrder
			}
			return flagged[i].Name < flagged[j].Name
		})
		if len(flagged) > n {
			flagged = flagged[:n]
		}
		return flagged
	}

	pool := products
	if len(pool) > bestSellerPool {
		pool = pool[:bestSellerPool]
	}
	sample := make([]*entity.Product, len(pool))
	copy(sample, pool)
	if rng != nil {
		rng.Shuffle(len(sample), func(i, j int) { sample[i], sample[j] = sample[j], sample[i] })
	}
	if len(sample) > n {
		sample = sample[:n]
	}
	return sample
}
