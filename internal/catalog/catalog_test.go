package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicprime/notelens/internal/domain"
)

func minimalDefinition() Definition {
	return Definition{
		Brands: []BrandRule{
			{Name: "BOTOX", Service: "Toxin", Patterns: []string{`BOTOX`}},
			{Name: "JUVEDERM", Service: "Filler", Patterns: []string{`JUVEDERM`, `VOLIFT`}},
		},
		GenericServices: []ServiceRule{
			{Pattern: `RELLENO`, Service: "Filler"},
		},
		ServicePriority: []string{"Toxin", "Filler"},
		GenericBrands:   map[string]string{"Filler": "JUVEDERM"},
	}
}

func TestDefaultCatalogCompiles(t *testing.T) {
	c := Default()

	brands := c.Brands()
	require.NotEmpty(t, brands)
	assert.Equal(t, "BOTOX", brands[0].Name)

	for i, b := range brands {
		assert.Equal(t, i, b.Order)
		assert.NotEmpty(t, b.Patterns(), "brand %s", b.Name)
	}

	assert.Equal(t, []string{
		ServiceToxin, ServiceHAFiller, ServiceBiostimulator, ServiceEnzymes,
		ServiceMesotherapy, ServiceConsultation, ServiceProductSale,
	}, c.ServicePriority())

	brand, ok := c.GenericBrand(ServiceHAFiller)
	require.True(t, ok)
	assert.Equal(t, "JUVEDERM", brand)

	_, ok = c.GenericBrand(ServiceToxin)
	assert.False(t, ok, "toxins have no generic brand")
}

func TestNew(t *testing.T) {
	t.Run("builds rank map from priority order", func(t *testing.T) {
		c, err := New(minimalDefinition())
		require.NoError(t, err)

		r, ok := c.Rank("Toxin")
		require.True(t, ok)
		assert.Equal(t, 0, r)

		r, ok = c.Rank("Filler")
		require.True(t, ok)
		assert.Equal(t, 1, r)

		_, ok = c.Rank("Unknown")
		assert.False(t, ok)
	})

	t.Run("maps brands to services", func(t *testing.T) {
		c, err := New(minimalDefinition())
		require.NoError(t, err)

		s, ok := c.ServiceOf("JUVEDERM")
		require.True(t, ok)
		assert.Equal(t, "Filler", s)

		order, ok := c.BrandOrder("JUVEDERM")
		require.True(t, ok)
		assert.Equal(t, 1, order)

		_, ok = c.ServiceOf("NOPE")
		assert.False(t, ok)
	})

	t.Run("compiled patterns match whole words case-insensitively", func(t *testing.T) {
		c, err := New(minimalDefinition())
		require.NoError(t, err)

		re := c.Brands()[0].Patterns()[0]
		assert.True(t, re.MatchString("BOTOX 50U"))
		assert.True(t, re.MatchString("botox"))
		assert.True(t, re.MatchString("BOTOX+JUVEDERM"))
		assert.False(t, re.MatchString("SUPERBOTOX"))
		assert.False(t, re.MatchString("BOTOXX"))
	})

	t.Run("returned slices do not alias the catalog", func(t *testing.T) {
		c, err := New(minimalDefinition())
		require.NoError(t, err)

		brands := c.Brands()
		brands[0].Name = "MUTATED"
		priority := c.ServicePriority()
		priority[0] = "MUTATED"

		assert.Equal(t, "BOTOX", c.Brands()[0].Name)
		assert.Equal(t, "Toxin", c.ServicePriority()[0])
	})

	testCases := []struct {
		name    string
		mutate  func(d *Definition)
		wantErr error
	}{
		{
			name:    "empty pattern list",
			mutate:  func(d *Definition) { d.Brands[0].Patterns = nil },
			wantErr: domain.ErrEmptyPatterns,
		},
		{
			name:    "duplicate service priority",
			mutate:  func(d *Definition) { d.ServicePriority = []string{"Toxin", "Filler", "Toxin"} },
			wantErr: domain.ErrDuplicatePriority,
		},
		{
			name:    "generic brand not declared",
			mutate:  func(d *Definition) { d.GenericBrands["Filler"] = "RESTYLANE" },
			wantErr: domain.ErrUnknownGenericBrand,
		},
		{
			name:    "generic brand of another service",
			mutate:  func(d *Definition) { d.GenericBrands["Filler"] = "BOTOX" },
			wantErr: domain.ErrGenericBrandService,
		},
		{
			name: "duplicate brand",
			mutate: func(d *Definition) {
				d.Brands = append(d.Brands, BrandRule{Name: "BOTOX", Service: "Toxin", Patterns: []string{`BTX`}})
			},
			wantErr: domain.ErrDuplicateBrand,
		},
		{
			name:    "pattern does not compile",
			mutate:  func(d *Definition) { d.Brands[1].Patterns = []string{`VOL(IFT`} },
			wantErr: domain.ErrInvalidPattern,
		},
		{
			name:    "generic pattern does not compile",
			mutate:  func(d *Definition) { d.GenericServices[0].Pattern = `[RELLENO` },
			wantErr: domain.ErrInvalidPattern,
		},
		{
			name:    "blank brand name",
			mutate:  func(d *Definition) { d.Brands[0].Name = "" },
			wantErr: domain.ErrInvalidCatalog,
		},
		{
			name:    "blank pattern",
			mutate:  func(d *Definition) { d.Brands[0].Patterns = []string{""} },
			wantErr: domain.ErrInvalidCatalog,
		},
	}

	for _, tc := range testCases {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			def := minimalDefinition()
			tc.mutate(&def)

			c, err := New(def)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
			assert.True(t, errors.Is(err, domain.ErrInvalidCatalog), "every catalog error wraps ErrInvalidCatalog")
		})
	}

	t.Run("services outside the priority list are accepted", func(t *testing.T) {
		def := minimalDefinition()
		def.Brands = append(def.Brands, BrandRule{Name: "TIZO", Service: "Product", Patterns: []string{`TIZO`}})

		_, err := New(def)
		assert.NoError(t, err)
	})
}

func TestDescribe(t *testing.T) {
	c, err := New(minimalDefinition())
	require.NoError(t, err)

	s := c.Describe()
	assert.Equal(t, []BrandSummary{
		{Name: "BOTOX", Service: "Toxin"},
		{Name: "JUVEDERM", Service: "Filler"},
	}, s.Brands)
	assert.Equal(t, []string{"Toxin", "Filler"}, s.ServicePriority)
	assert.Equal(t, map[string]string{"Filler": "JUVEDERM"}, s.GenericBrands)
}

const sampleYAML = `
brands:
  - name: BOTOX
    service: Toxin
    patterns: ['BOTOX']
  - name: RADIESSE
    service: Biostimulator
    patterns: ['RADIESSE?', 'RADIESE']
generic_services:
  - pattern: 'BIOESTIMULADOR'
    service: Biostimulator
service_priority: [Toxin, Biostimulator]
generic_brands:
  Biostimulator: RADIESSE
`

func TestParse(t *testing.T) {
	t.Run("decodes ordered brands", func(t *testing.T) {
		c, err := Parse([]byte(sampleYAML))
		require.NoError(t, err)

		brands := c.Brands()
		require.Len(t, brands, 2)
		assert.Equal(t, "BOTOX", brands[0].Name)
		assert.Equal(t, "RADIESSE", brands[1].Name)
		assert.Len(t, brands[1].Patterns(), 2)
		require.Len(t, c.GenericServices(), 1)
		assert.Equal(t, "Biostimulator", c.GenericServices()[0].Service)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("brands: [unterminated"))
		assert.Error(t, err)
	})

	t.Run("rejects invalid catalog", func(t *testing.T) {
		_, err := Parse([]byte("brands:\n  - name: X\n    service: Y\n    patterns: []\n"))
		assert.ErrorIs(t, err, domain.ErrEmptyPatterns)
	})
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns built-in catalog", func(t *testing.T) {
		c, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, len(DefaultDefinition().Brands), len(c.Brands()))
	})

	t.Run("loads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0644))

		c, err := Load(path)
		require.NoError(t, err)
		assert.Len(t, c.Brands(), 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/catalog.yaml")
		assert.Error(t, err)
	})

	t.Run("shipped example is valid", func(t *testing.T) {
		c, err := LoadFile(filepath.Join("..", "..", "config", "catalog.example.yaml"))
		require.NoError(t, err)

		brand, ok := c.GenericBrand(ServiceHAFiller)
		require.True(t, ok)
		assert.Equal(t, "JUVEDERM", brand)
		assert.Equal(t, DefaultDefinition().ServicePriority[:4], c.ServicePriority()[:4])
	})
}
