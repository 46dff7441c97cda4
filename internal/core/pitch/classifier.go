package pitch

// Family is the coarse three-way pitch taxonomy everything else keys on.
type Family string

const (
	FamilyFastball Family = "fastball"
	FamilyBreaking Family = "breaking"
	FamilyChange   Family = "change"
)

// Families lists the three families in canonical order. Iteration order
// matters for argmax tie-breaking, so never range over a map instead.
var Families = [3]Family{FamilyFastball, FamilyBreaking, FamilyChange}

// codeAliases folds ambiguous raw codes onto their canonical twin before
// the family lookup. A two-seamer is a sinker; a knuckle-curve is tracked
// like a sweeper in the feed we consume.
var codeAliases = map[string]string{
	"FT": "SI",
	"KC": "ST",
}

var familyByCode = map[string]Family{
	"FF": FamilyFastball,
	"FA": FamilyFastball,
	"SI": FamilyFastball,
	"FC": FamilyFastball,

	"SL": FamilyBreaking,
	"ST": FamilyBreaking,
	"CU": FamilyBreaking,
	"CS": FamilyBreaking,
	"SV": FamilyBreaking,
	"KN": FamilyBreaking,
	"SC": FamilyBreaking,

	"CH": FamilyChange,
	"FS": FamilyChange,
	"FO": FamilyChange,
	"EP": FamilyChange,
}

// Classify maps a raw pitch-type code to its family.
// Unknown codes (and the empty code) classify as fastball.
func Classify(code string) Family {
	if alias, ok := codeAliases[code]; ok {
		code = alias
	}
	if f, ok := familyByCode[code]; ok {
		return f
	}
	return FamilyFastball
}

// codeNames gives display labels for the concrete codes we expect to see.
var codeNames = map[string]string{
	"FF": "Four-Seam Fastball",
	"FA": "Fastball",
	"FT": "Two-Seam Fastball",
	"SI": "Sinker",
	"FC": "Cutter",
	"SL": "Slider",
	"ST": "Sweeper",
	"CU": "Curveball",
	"CS": "Slow Curve",
	"KC": "Knuckle Curve",
	"SV": "Slurve",
	"KN": "Knuckleball",
	"SC": "Screwball",
	"CH": "Changeup",
	"FS": "Splitter",
	"FO": "Forkball",
	"EP": "Eephus",
}

// CodeName returns the display label for a pitch code, or the code itself
// when unknown.
func CodeName(code string) string {
	if n, ok := codeNames[code]; ok {
		return n
	}
	return code
}
