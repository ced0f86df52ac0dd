package usecase

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/clinicprime/notelens/internal/domain"
)

// quantityRegex matches "number + optional space + unit keyword" in normalized text,
// e.g. "50U", "64 UND", "2 JERINGAS", "1.5 J", "3 VIALES", "2 CAJAS".
// Longer spellings come first so the alternation never stops on a prefix.
var quantityRegex = regexp.MustCompile(
	`\b(\d+(?:\.\d+)?) ?(UNIDADES|UNIDAD|UNID|UNDS?|UDS?|UI|U|` +
		`VIALES|VIAL|FRASCOS?|AMPOLLAS?|AMP|` +
		`JERINGAS?|JER|JRG|J|` +
		`CAJAS?|CJS?|CX)\b`)

// unitTags folds every unit spelling to its tag
var unitTags = map[string]domain.Unit{
	"UNIDADES": domain.UnitUnits, "UNIDAD": domain.UnitUnits, "UNID": domain.UnitUnits,
	"UND": domain.UnitUnits, "UNDS": domain.UnitUnits, "UD": domain.UnitUnits,
	"UDS": domain.UnitUnits, "UI": domain.UnitUnits, "U": domain.UnitUnits,

	"VIALES": domain.UnitVials, "VIAL": domain.UnitVials, "FRASCO": domain.UnitVials,
	"FRASCOS": domain.UnitVials, "AMPOLLA": domain.UnitVials, "AMPOLLAS": domain.UnitVials,
	"AMP": domain.UnitVials,

	"JERINGAS": domain.UnitSyringes, "JERINGA": domain.UnitSyringes, "JER": domain.UnitSyringes,
	"JRG": domain.UnitSyringes, "J": domain.UnitSyringes,

	"CAJAS": domain.UnitBoxes, "CAJA": domain.UnitBoxes, "CJ": domain.UnitBoxes,
	"CJS": domain.UnitBoxes, "CX": domain.UnitBoxes,
}

// ExtractQuantities returns every quantity+unit mention of normalized text in offset order
func ExtractQuantities(text string) []domain.QuantityHit {
	hits := []domain.QuantityHit{}
	if text == "" {
		return hits
	}

	for _, m := range quantityRegex.FindAllStringSubmatchIndex(text, -1) {
		// a match right after a kept '.' is the tail of a malformed number like 1.5.3
		if m[0] > 0 && text[m[0]-1] == '.' {
			continue
		}
		qty, err := decimal.NewFromString(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		unit, ok := unitTags[text[m[4]:m[5]]]
		if !ok {
			continue
		}
		hits = append(hits, domain.QuantityHit{Position: m[0], Quantity: qty, Unit: unit})
	}

	return hits
}
