package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/clinicprime/notelens/internal/catalog"
	"github.com/clinicprime/notelens/internal/domain"
)

// DefaultProximityThreshold is the maximum character distance between a brand
// mention and the quantity it is linked to
const DefaultProximityThreshold = 25

// LinkEvents turns every brand hit into a consumption event. Brand hits are
// processed in offset order; each claims the nearest unclaimed quantity if it lies
// within threshold characters. A quantity is claimed at most once; unclaimed
// quantities are dropped.
func LinkEvents(hits []domain.BrandHit, quantities []domain.QuantityHit, cat *catalog.Catalog, threshold int) []domain.ConsumptionEvent {
	events := make([]domain.ConsumptionEvent, 0, len(hits))
	claimed := make([]bool, len(quantities))

	for _, h := range sortedByPosition(hits) {
		service, _ := cat.ServiceOf(h.Brand)
		event := domain.ConsumptionEvent{Brand: h.Brand, Service: service}

		best, bestDist := -1, 0
		for i, q := range quantities {
			if claimed[i] {
				continue
			}
			d := distance(h.Position, q.Position)
			if best < 0 || d < bestDist {
				best, bestDist = i, d
			}
		}

		if best >= 0 && bestDist <= threshold {
			claimed[best] = true
			event.Quantity = decimal.NewNullDecimal(quantities[best].Quantity)
			event.Unit = quantities[best].Unit
		}

		events = append(events, event)
	}

	return events
}

// sortedByPosition returns the hits in ascending offset order without touching the input
func sortedByPosition(hits []domain.BrandHit) []domain.BrandHit {
	out := append([]domain.BrandHit{}, hits...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
