// Package catalog holds the rule catalog: canonical brands with their service and
// match patterns, generic service patterns, the service priority order and the
// generic brand fallback. A Catalog is validated and compiled once and is then
// read-only, so a single instance can be shared by any number of goroutines.
package catalog

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/clinicprime/notelens/internal/domain"
)

// BrandRule declares a canonical brand, the service it belongs to and the
// patterns that recognise it in normalized text.
type BrandRule struct {
	Name     string   `yaml:"name" json:"name" validate:"required"`
	Service  string   `yaml:"service" json:"service" validate:"required"`
	Patterns []string `yaml:"patterns" json:"patterns" validate:"dive,required"`
}

// ServiceRule maps a generic pattern (no brand literal) to a service
type ServiceRule struct {
	Pattern string `yaml:"pattern" json:"pattern" validate:"required"`
	Service string `yaml:"service" json:"service" validate:"required"`
}

// Definition is the uncompiled, serializable form of a catalog.
// Brand and generic rule order is significant: it breaks ties between matches
// starting at the same offset.
type Definition struct {
	Brands          []BrandRule       `yaml:"brands" json:"brands" validate:"dive"`
	GenericServices []ServiceRule     `yaml:"generic_services" json:"generic_services" validate:"dive"`
	ServicePriority []string          `yaml:"service_priority" json:"service_priority" validate:"dive,required"`
	GenericBrands   map[string]string `yaml:"generic_brands" json:"generic_brands" validate:"dive,keys,required,endkeys,required"`
}

// Brand is a compiled brand rule
type Brand struct {
	Name    string
	Service string
	Order   int // declaration index

	patterns []*regexp.Regexp
}

// Patterns returns the compiled patterns of the brand. The slice must not be modified.
func (b Brand) Patterns() []*regexp.Regexp {
	return b.patterns
}

// GenericService is a compiled generic service rule
type GenericService struct {
	Service string
	Order   int

	pattern *regexp.Regexp
}

// Pattern returns the compiled pattern of the rule
func (g GenericService) Pattern() *regexp.Regexp {
	return g.pattern
}

// Catalog is an immutable, validated rule catalog
type Catalog struct {
	brands        []Brand
	brandIndex    map[string]int
	generic       []GenericService
	priority      []string
	rank          map[string]int
	genericBrands map[string]string
}

// New validates the definition and compiles it into a Catalog.
// Every failure wraps domain.ErrInvalidCatalog.
func New(def Definition) (*Catalog, error) {
	validate := validator.New()
	if err := validate.Struct(def); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	c := &Catalog{
		brands:        make([]Brand, 0, len(def.Brands)),
		brandIndex:    make(map[string]int, len(def.Brands)),
		generic:       make([]GenericService, 0, len(def.GenericServices)),
		priority:      make([]string, 0, len(def.ServicePriority)),
		rank:          make(map[string]int, len(def.ServicePriority)),
		genericBrands: make(map[string]string, len(def.GenericBrands)),
	}

	for i, rule := range def.Brands {
		if _, dup := c.brandIndex[rule.Name]; dup {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateBrand, rule.Name)
		}
		if len(rule.Patterns) == 0 {
			return nil, fmt.Errorf("%w: %q", domain.ErrEmptyPatterns, rule.Name)
		}

		brand := Brand{
			Name:     rule.Name,
			Service:  rule.Service,
			Order:    i,
			patterns: make([]*regexp.Regexp, 0, len(rule.Patterns)),
		}
		for _, p := range rule.Patterns {
			re, err := compilePattern(p)
			if err != nil {
				return nil, fmt.Errorf("%w: brand %q pattern %q: %v", domain.ErrInvalidPattern, rule.Name, p, err)
			}
			brand.patterns = append(brand.patterns, re)
		}

		c.brandIndex[rule.Name] = len(c.brands)
		c.brands = append(c.brands, brand)
	}

	for i, rule := range def.GenericServices {
		re, err := compilePattern(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: generic pattern %q: %v", domain.ErrInvalidPattern, rule.Pattern, err)
		}
		c.generic = append(c.generic, GenericService{Service: rule.Service, Order: i, pattern: re})
	}

	for _, service := range def.ServicePriority {
		if _, dup := c.rank[service]; dup {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicatePriority, service)
		}
		c.rank[service] = len(c.priority)
		c.priority = append(c.priority, service)
	}

	services := make([]string, 0, len(def.GenericBrands))
	for service := range def.GenericBrands {
		services = append(services, service)
	}
	sort.Strings(services)
	for _, service := range services {
		brandName := def.GenericBrands[service]
		idx, ok := c.brandIndex[brandName]
		if !ok {
			return nil, fmt.Errorf("%w: %q (service %q)", domain.ErrUnknownGenericBrand, brandName, service)
		}
		if c.brands[idx].Service != service {
			return nil, fmt.Errorf("%w: %q belongs to %q, not %q",
				domain.ErrGenericBrandService, brandName, c.brands[idx].Service, service)
		}
		c.genericBrands[service] = brandName
	}

	return c, nil
}

// compilePattern anchors a pattern on word boundaries. Text is already
// uppercased; (?i) lets catalog authors write patterns in any case.
func compilePattern(p string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b(?:` + p + `)\b`)
}

// Brands returns the compiled brands in declaration order
func (c *Catalog) Brands() []Brand {
	out := make([]Brand, len(c.brands))
	copy(out, c.brands)
	return out
}

// GenericServices returns the compiled generic service rules in declaration order
func (c *Catalog) GenericServices() []GenericService {
	out := make([]GenericService, len(c.generic))
	copy(out, c.generic)
	return out
}

// ServiceOf returns the service a brand belongs to
func (c *Catalog) ServiceOf(brand string) (string, bool) {
	idx, ok := c.brandIndex[brand]
	if !ok {
		return "", false
	}
	return c.brands[idx].Service, true
}

// BrandOrder returns the declaration index of a brand
func (c *Catalog) BrandOrder(brand string) (int, bool) {
	idx, ok := c.brandIndex[brand]
	return idx, ok
}

// Rank returns the priority rank of a service (0 is highest)
func (c *Catalog) Rank(service string) (int, bool) {
	r, ok := c.rank[service]
	return r, ok
}

// ServicePriority returns the service priority order
func (c *Catalog) ServicePriority() []string {
	return append([]string{}, c.priority...)
}

// GenericBrand returns the fallback brand of a service, if any
func (c *Catalog) GenericBrand(service string) (string, bool) {
	b, ok := c.genericBrands[service]
	return b, ok
}

// BrandSummary is the public view of a brand rule
type BrandSummary struct {
	Name    string `json:"name"`
	Service string `json:"service"`
}

// Summary describes a catalog without its patterns
type Summary struct {
	Brands          []BrandSummary    `json:"brands"`
	ServicePriority []string          `json:"service_priority"`
	GenericBrands   map[string]string `json:"generic_brands"`
}

// Describe returns a summary of the catalog
func (c *Catalog) Describe() Summary {
	s := Summary{
		Brands:          make([]BrandSummary, 0, len(c.brands)),
		ServicePriority: c.ServicePriority(),
		GenericBrands:   make(map[string]string, len(c.genericBrands)),
	}
	for _, b := range c.brands {
		s.Brands = append(s.Brands, BrandSummary{Name: b.Name, Service: b.Service})
	}
	for k, v := range c.genericBrands {
		s.GenericBrands[k] = v
	}
	return s
}
