package usecase

import (
	"sort"

	"github.com/clinicprime/notelens/internal/catalog"
	"github.com/clinicprime/notelens/internal/domain"
)

// ServiceHit is a detected service with the offset of its earliest evidence
type ServiceHit struct {
	Service  string
	Position int
}

// ResolveServices collects the services implied by the brand hits and by every
// generic service pattern found in the text, ordered by the catalog priority.
// Services missing from the priority list follow all listed ones, in detection order.
func ResolveServices(hits []domain.BrandHit, text string, cat *catalog.Catalog) []ServiceHit {
	detected := make([]ServiceHit, 0, len(hits))
	index := make(map[string]int, len(hits))

	add := func(service string, position int) {
		if i, ok := index[service]; ok {
			if position < detected[i].Position {
				detected[i].Position = position
			}
			return
		}
		index[service] = len(detected)
		detected = append(detected, ServiceHit{Service: service, Position: position})
	}

	for _, h := range hits {
		if service, ok := cat.ServiceOf(h.Brand); ok {
			add(service, h.Position)
		}
	}

	if text != "" {
		for _, rule := range cat.GenericServices() {
			if loc := rule.Pattern().FindStringIndex(text); loc != nil {
				add(rule.Service, loc[0])
			}
		}
	}

	unranked := len(cat.ServicePriority())
	sortKey := func(i int) int {
		if r, ok := cat.Rank(detected[i].Service); ok {
			return r
		}
		return unranked + index[detected[i].Service]
	}

	keys := make([]int, len(detected))
	for i := range detected {
		keys[i] = sortKey(i)
	}
	sort.Sort(byKey{hits: detected, keys: keys})

	return detected
}

// byKey sorts service hits by precomputed keys, moving both slices together
type byKey struct {
	hits []ServiceHit
	keys []int
}

func (s byKey) Len() int           { return len(s.hits) }
func (s byKey) Less(i, j int) bool { return s.keys[i] < s.keys[j] }
func (s byKey) Swap(i, j int) {
	s.hits[i], s.hits[j] = s.hits[j], s.hits[i]
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
}

// ServiceNames returns the service names of the hits
func ServiceNames(services []ServiceHit) []string {
	names := make([]string, len(services))
	for i, s := range services {
		names[i] = s.Service
	}
	return names
}
