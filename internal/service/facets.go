package service

import (
	"fmt"

	"github.com/tilemart/catalog-gateway/internal/domain"
)

// FacetAll is the synthetic facet that selects every variant.
const FacetAll = "all"

// UnknownProductLabel is returned when a variant references a product that is
// absent from the fetched collection, e.g. deleted after the variant was
// fetched.
const UnknownProductLabel = "Unknown Product"

// DeriveSizeFacets returns the distinct non-empty sizes observed across the
// given variants in first-seen order, with FacetAll prepended.
func DeriveSizeFacets(variants []domain.Variant) []string {
	facets := []string{FacetAll}
	seen := make(map[string]struct{})
	for _, v := range variants {
		if v.Size == "" {
			continue
		}
		if _, ok := seen[v.Size]; ok {
			continue
		}
		seen[v.Size] = struct{}{}
		facets = append(facets, v.Size)
	}
	return facets
}

// FilterBySize returns all variants for FacetAll, otherwise only those whose
// size exactly equals the facet. Matching is case-sensitive with no
// normalization.
func FilterBySize(variants []domain.Variant, facet string) []domain.Variant {
	if facet == FacetAll {
		return variants
	}
	filtered := make([]domain.Variant, 0)
	for _, v := range variants {
		if v.Size == facet {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// ProductLabel looks a product up in an already-fetched collection and
// formats its display label.
func ProductLabel(products []domain.Product, productID int64) string {
	for _, p := range products {
		if p.ID == productID {
			return fmt.Sprintf("%s (%s)", p.Name, p.Brand)
		}
	}
	return UnknownProductLabel
}
