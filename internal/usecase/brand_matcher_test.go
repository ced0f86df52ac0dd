package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicprime/notelens/internal/catalog"
	"github.com/clinicprime/notelens/internal/domain"
)

func TestMatchBrands(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name string
		text string
		want []domain.BrandHit
	}{
		{name: "empty text", text: "", want: []domain.BrandHit{}},
		{name: "no brand", text: "CONTROL EN 15 DIAS", want: []domain.BrandHit{}},
		{name: "single brand", text: "BOTOX 50U", want: []domain.BrandHit{{Position: 0, Brand: "BOTOX"}}},
		{
			name: "combo keeps offset order",
			text: "BOTOX+JUVEDERM",
			want: []domain.BrandHit{{Position: 0, Brand: "BOTOX"}, {Position: 6, Brand: "JUVEDERM"}},
		},
		{
			name: "offset order beats catalog order",
			text: "RADIESSE Y BOTOX",
			want: []domain.BrandHit{{Position: 0, Brand: "RADIESSE"}, {Position: 11, Brand: "BOTOX"}},
		},
		{name: "typo variant", text: "RADIESE 1 JERINGA", want: []domain.BrandHit{{Position: 0, Brand: "RADIESSE"}}},
		{name: "alias folds to canonical brand", text: "VOLUMA 1 JER", want: []domain.BrandHit{{Position: 0, Brand: "JUVEDERM"}}},
		{name: "optional space in pattern", text: "ARTFILLER", want: []domain.BrandHit{{Position: 0, Brand: "ART FILLER"}}},
		{
			name: "repeated brand deduplicated at first offset",
			text: "BOTOX 20U FRENTE BOTOX 10U",
			want: []domain.BrandHit{{Position: 0, Brand: "BOTOX"}},
		},
		{
			name: "aliases of one brand deduplicated",
			text: "VOLUMA Y JUVEDERM",
			want: []domain.BrandHit{{Position: 0, Brand: "JUVEDERM"}},
		},
		{name: "no substring match", text: "BOTOXINA SVRX", want: []domain.BrandHit{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchBrands(tt.text, cat))
		})
	}
}

func TestMatchBrands_ExtendedBrandList(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		text string
		want string
	}{
		{text: "NEURONOX 50U", want: "NEURONOX"},
		{text: "BOTULAX 100U", want: "BOTULAX"},
		{text: "LETYBO 50U", want: "LETYBO"},
		{text: "LYFT 1 JER", want: "RESTYLANE"},
		{text: "SKINBOOSTER RESTYLAN", want: "RESTYLANE"},
		{text: "H ARMONYCA 2 JER", want: "HARMONYCA"},
		{text: "HA RMONYCA", want: "HARMONYCA"},
		{text: "HARMONICA", want: "HARMONYCA"},
		{text: "REVANESSE 1 JER", want: "REVANESSE"},
		{text: "VERSA LABIOS", want: "REVANESSE"},
		{text: "NEAUVIA", want: "NEAUVIA"},
		{text: "YVOIRE", want: "YVOIRE"},
		{text: "ALIAXIN", want: "ALIAXIN"},
		{text: "ALIXIN", want: "ALIAXIN"},
		{text: "PBSERUM 2 AMP", want: "PB SERUM"},
		{text: "ART FILLER", want: "ART FILLER"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, []domain.BrandHit{{Position: 0, Brand: tt.want}}, MatchBrands(tt.text, cat))
		})
	}
}

func TestMatchBrands_SameOffsetKeepsDeclarationOrder(t *testing.T) {
	cat, err := catalog.New(catalog.Definition{
		Brands: []catalog.BrandRule{
			{Name: "SECOND", Service: "S", Patterns: []string{`GEL\s?PLUS`}},
			{Name: "FIRST", Service: "S", Patterns: []string{`GEL`}},
		},
		ServicePriority: []string{"S"},
	})
	require.NoError(t, err)

	hits := MatchBrands("GEL PLUS", cat)
	assert.Equal(t, []domain.BrandHit{{Position: 0, Brand: "SECOND"}, {Position: 0, Brand: "FIRST"}}, hits)
}

func TestMatchBrands_Deterministic(t *testing.T) {
	cat := catalog.Default()
	text := Normalize("Xeomin 20u, Profhilo 1 jer + Radiesse 1 jer, tizo AM")

	first := MatchBrands(text, cat)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, MatchBrands(text, cat))
	}
	assert.Equal(t, []string{"XEOMIN", "PROFHILO", "RADIESSE", "TIZO"}, brandNames(first))
}

func brandNames(hits []domain.BrandHit) []string {
	names := make([]string, len(hits))
	for i, h := range hits {
		names[i] = h.Brand
	}
	return names
}
