package usecase

import (
	"go.uber.org/zap"

	"github.com/clinicprime/notelens/internal/catalog"
	"github.com/clinicprime/notelens/internal/domain"
)

// ResolverConfig holds configuration for the resolver
type ResolverConfig struct {
	ProximityThreshold int
	Logger             *zap.SugaredLogger
}

// Resolver classifies free-text notes into brands, services and consumption events.
// It holds no mutable state: one Resolver can serve any number of goroutines.
type Resolver struct {
	catalog   *catalog.Catalog
	threshold int
	logger    *zap.SugaredLogger
}

// NewResolver creates a resolver over a compiled catalog
func NewResolver(cat *catalog.Catalog, config ResolverConfig) *Resolver {
	threshold := config.ProximityThreshold
	if threshold <= 0 {
		threshold = DefaultProximityThreshold
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Resolver{
		catalog:   cat,
		threshold: threshold,
		logger:    logger,
	}
}

// Catalog returns the catalog the resolver matches against
func (r *Resolver) Catalog() *catalog.Catalog {
	return r.catalog
}

// ProximityThreshold returns the quantity linking distance in characters
func (r *Resolver) ProximityThreshold() int {
	return r.threshold
}

// Resolve classifies one note. An empty note yields an empty result.
func (r *Resolver) Resolve(text string) *domain.ResolutionResult {
	result := domain.NewResolutionResult()

	normalized := Normalize(text)
	if normalized != "" {
		brandHits := MatchBrands(normalized, r.catalog)
		services := ResolveServices(brandHits, normalized, r.catalog)
		brandHits = AssignGenericBrand(brandHits, services, r.catalog)
		quantities := ExtractQuantities(normalized)

		for _, h := range brandHits {
			result.BrandsDetected = append(result.BrandsDetected, h.Brand)
		}
		result.ServicesDetected = ServiceNames(services)
		result.Events = LinkEvents(brandHits, quantities, r.catalog, r.threshold)
	}
	result.Debt = DetectDebt(text)

	r.logger.Debugw("resolved note",
		"normalized", normalized,
		"brands", result.BrandsDetected,
		"services", result.ServicesDetected,
		"events", len(result.Events),
	)

	return result
}

// ResolveFields concatenates named source fields in order and classifies the result
func (r *Resolver) ResolveFields(fields []domain.SourceField) *domain.ResolutionResult {
	return r.Resolve(JoinFields(fields))
}
