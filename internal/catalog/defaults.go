package catalog

// Canonical service names of the clinic catalog
const (
	ServiceToxin         = "Toxina Botulinica"
	ServiceHAFiller      = "Relleno Acido Hialuronico"
	ServiceBiostimulator = "Bioestimulador de Colageno"
	ServiceEnzymes       = "Enzimas Recombinantes"
	ServiceMesotherapy   = "Mesoterapia Skinbooster"
	ServiceConsultation  = "Consulta Medica"
	ServiceProductSale   = "Venta de Producto Dermocosmetico"
)

// DefaultDefinition returns the clinic rule catalog.
// Patterns are matched as whole words against normalized (uppercase, accent-free) text.
func DefaultDefinition() Definition {
	return Definition{
		Brands: []BrandRule{
			// Neurotoxins
			{Name: "BOTOX", Service: ServiceToxin, Patterns: []string{`BOTOX`, `VISTABEL`}},
			{Name: "DYSPORT", Service: ServiceToxin, Patterns: []string{`DYSPORT`, `ABOBO(?:TULIN|TOX)A?`}},
			{Name: "XEOMIN", Service: ServiceToxin, Patterns: []string{`XEOMIN`, `INCOBO(?:TULIN|TOX)A?`}},
			{Name: "JEUVEAU", Service: ServiceToxin, Patterns: []string{`J[EI]UVEAU`, `PRABO(?:TULIN|TOX)A?`}},
			{Name: "NABOTA", Service: ServiceToxin, Patterns: []string{`NABOTA`}},
			{Name: "NEURONOX", Service: ServiceToxin, Patterns: []string{`NEURONOX`}},
			{Name: "BOTULAX", Service: ServiceToxin, Patterns: []string{`BOTULAX`}},
			{Name: "LETYBO", Service: ServiceToxin, Patterns: []string{`LETYBO`}},

			// Hyaluronic acid fillers
			{Name: "JUVEDERM", Service: ServiceHAFiller, Patterns: []string{
				`JUVEDERM`, `J[UV]EDERM`, `VOLUMA`, `VOLIFT`, `VOLBELLA`, `VOLITE`, `VOLUX`,
			}},
			{Name: "ART FILLER", Service: ServiceHAFiller, Patterns: []string{`ART\s?FILLER`, `FILORGA`}},
			{Name: "CROMA", Service: ServiceHAFiller, Patterns: []string{`CROMA`, `SAYPHA`, `PRINCESS`}},
			{Name: "RESTYLANE", Service: ServiceHAFiller, Patterns: []string{
				`RESTYLANE`, `LYFT`, `REFYNE`, `DEFYNE`, `KYSSE`, `SKINBOOSTERS?\s?RESTYLANE?`,
			}},
			{Name: "TEOSYAL", Service: ServiceHAFiller, Patterns: []string{`TEOSYAL`, `TEOXANE`, `RHA\s?[1-4]`}},
			{Name: "STYLAGE", Service: ServiceHAFiller, Patterns: []string{`STYLAGE`}},
			{Name: "BELOTERO", Service: ServiceHAFiller, Patterns: []string{`BELOTERO`}},
			{Name: "REVANESSE", Service: ServiceHAFiller, Patterns: []string{`REVANESSE`, `VERSA`}},
			{Name: "NEAUVIA", Service: ServiceHAFiller, Patterns: []string{`NEAUVIA`}},
			{Name: "YVOIRE", Service: ServiceHAFiller, Patterns: []string{`YVOIRE`}},
			{Name: "ALIAXIN", Service: ServiceHAFiller, Patterns: []string{`ALIA?XIN`}},

			// Collagen biostimulators
			{Name: "HARMONYCA", Service: ServiceBiostimulator, Patterns: []string{`HARMON[YI]CA`, `H\s?ARMONYCA`, `HA\s?RMONYCA`}},
			{Name: "RADIESSE", Service: ServiceBiostimulator, Patterns: []string{`RADIESSE?`, `RADIESE`, `RADESSE`}},
			{Name: "ELLANSE", Service: ServiceBiostimulator, Patterns: []string{`ELLAN[SC]E`}},
			{Name: "SCULPTRA", Service: ServiceBiostimulator, Patterns: []string{`SCULPTRA`, `PLLA`}},

			// Mesotherapy / skinboosters
			{Name: "NCTF", Service: ServiceMesotherapy, Patterns: []string{`NCTF`, `MESOESTETIC`}},
			{Name: "JALUPRO", Service: ServiceMesotherapy, Patterns: []string{`JALUPRO`}},
			{Name: "PROFHILO", Service: ServiceMesotherapy, Patterns: []string{`PROFHILO`}},
			{Name: "SUNEKOS", Service: ServiceMesotherapy, Patterns: []string{`SUNEKOS`}},

			// Enzymes
			{Name: "PB SERUM", Service: ServiceEnzymes, Patterns: []string{`PB\s?SERUM`}},

			// Dermocosmetic product sales
			{Name: "TIZO", Service: ServiceProductSale, Patterns: []string{
				`TIZO`, `TIZO\s?(?:2|3|AM|TINTED|STICK|LIPS)`, `TIZO\s?MOISTURIZ\w*`,
			}},
			{Name: "ISDIN", Service: ServiceProductSale, Patterns: []string{
				`ISDIN`, `AGE\s?REPAIR`, `FOTOPROTECTOR`, `OIL\s?CONTROL`, `COMPACT`, `HYALURONIC\s?CONCENTRATE`,
			}},
			{Name: "SVR", Service: ServiceProductSale, Patterns: []string{
				`SVR`, `SEBIACLEAR`, `VIT\s?C`, `SUN\s?SECURE`, `EXTREME`, `CONTORNO\s?DE?\s?OJOS?`, `JABON`, `SENSIFINE`,
			}},
			{Name: "HYDRAMAX", Service: ServiceProductSale, Patterns: []string{`HYDRAMAX`, `HIDRA\s?MAX`, `AMPOULE\s?HYDRA`}},
			{Name: "PHYTO", Service: ServiceProductSale, Patterns: []string{`PHYTO\s?SPOT`}},
			{Name: "SKINLAB", Service: ServiceProductSale, Patterns: []string{`SKINLAB`}},
			{Name: "EYE REFRESH", Service: ServiceProductSale, Patterns: []string{
				`EYE\s?REFRESH`, `CLEAN\s?EYE`, `EYE\s?C\s?PERFECTION`,
			}},
			{Name: "B3", Service: ServiceProductSale, Patterns: []string{`B3`, `SERUM\s?B3`}},
			{Name: "MICROPEEL", Service: ServiceProductSale, Patterns: []string{`MICROPEEL`, `MICRO\s?PEELING`}},
			{Name: "TML", Service: ServiceProductSale, Patterns: []string{`TML`}},
		},
		GenericServices: []ServiceRule{
			{Pattern: `(?:(?:A|AC|ACIDO)\s?)?HIALURONICO`, Service: ServiceHAFiller},
			{Pattern: `RELLENOS?`, Service: ServiceHAFiller},
			{Pattern: `BIOESTIMULADOR(?:ES)?`, Service: ServiceBiostimulator},
			{Pattern: `ENZIMAS?`, Service: ServiceEnzymes},
			{Pattern: `MESOTERAPIA`, Service: ServiceMesotherapy},
			{Pattern: `SKINBOOSTERS?`, Service: ServiceMesotherapy},
			{Pattern: `TOXINA`, Service: ServiceToxin},
			{Pattern: `CONSULTA`, Service: ServiceConsultation},
			{Pattern: `PRODUCTO`, Service: ServiceProductSale},
		},
		ServicePriority: []string{
			ServiceToxin,
			ServiceHAFiller,
			ServiceBiostimulator,
			ServiceEnzymes,
			ServiceMesotherapy,
			ServiceConsultation,
			ServiceProductSale,
		},
		// No toxin fallback: BOTOX is not the only toxin sold.
		// No product fallback: product sales always name their brand.
		GenericBrands: map[string]string{
			ServiceHAFiller:      "JUVEDERM",
			ServiceBiostimulator: "RADIESSE",
			ServiceMesotherapy:   "NCTF",
		},
	}
}

// Default compiles the clinic rule catalog
func Default() *Catalog {
	c, err := New(DefaultDefinition())
	if err != nil {
		panic("catalog: default definition is invalid: " + err.Error())
	}
	return c
}
