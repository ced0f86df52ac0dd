package usecase

import (
	"sort"

	"github.com/clinicprime/notelens/internal/catalog"
	"github.com/clinicprime/notelens/internal/domain"
)

// brandMatch is one raw pattern match before deduplication
type brandMatch struct {
	position int
	order    int
	brand    string
}

// MatchBrands scans normalized text with every brand pattern of the catalog and
// returns one hit per brand at its lowest offset, ordered by offset. Brands
// matching at the same offset keep catalog declaration order.
func MatchBrands(text string, cat *catalog.Catalog) []domain.BrandHit {
	if text == "" {
		return []domain.BrandHit{}
	}

	var matches []brandMatch
	for _, brand := range cat.Brands() {
		for _, re := range brand.Patterns() {
			for _, loc := range re.FindAllStringIndex(text, -1) {
				matches = append(matches, brandMatch{position: loc[0], order: brand.Order, brand: brand.Name})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].position != matches[j].position {
			return matches[i].position < matches[j].position
		}
		return matches[i].order < matches[j].order
	})

	hits := make([]domain.BrandHit, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if _, ok := seen[m.brand]; ok {
			continue
		}
		seen[m.brand] = struct{}{}
		hits = append(hits, domain.BrandHit{Position: m.position, Brand: m.brand})
	}

	return hits
}
