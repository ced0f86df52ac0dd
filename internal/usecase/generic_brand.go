package usecase

import (
	"github.com/clinicprime/notelens/internal/catalog"
	"github.com/clinicprime/notelens/internal/domain"
)

// AssignGenericBrand fills in the fallback brand of the highest-priority service
// that has one, only when no brand literal was found. At most one brand is injected;
// it is placed at the offset of the service evidence so it can still link a quantity.
// Explicitly detected brands are returned untouched.
func AssignGenericBrand(hits []domain.BrandHit, services []ServiceHit, cat *catalog.Catalog) []domain.BrandHit {
	if len(hits) > 0 || len(services) == 0 {
		return hits
	}

	for _, s := range services {
		if brand, ok := cat.GenericBrand(s.Service); ok {
			return append(hits, domain.BrandHit{Position: s.Position, Brand: brand})
		}
	}

	return hits
}
