package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyKnownCodes(t *testing.T) {
	cases := map[string]Family{
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
	for code, want := range cases {
		assert.Equal(t, want, Classify(code), "code %s", code)
	}
}

func TestClassifyAliases(t *testing.T) {
	// Two-seamer folds onto the sinker, knuckle-curve onto the sweeper.
	assert.Equal(t, FamilyFastball, Classify("FT"))
	assert.Equal(t, FamilyBreaking, Classify("KC"))
}

func TestClassifyUnknownDefaultsToFastball(t *testing.T) {
	assert.Equal(t, FamilyFastball, Classify(""))
	assert.Equal(t, FamilyFastball, Classify("XX"))
	assert.Equal(t, FamilyFastball, Classify("ff")) // lookup is case-sensitive
}

func TestClassifyDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, FamilyBreaking, Classify("SL"))
	}
}

func TestCodeName(t *testing.T) {
	assert.Equal(t, "Four-Seam Fastball", CodeName("FF"))
	assert.Equal(t, "Sweeper", CodeName("ST"))
	assert.Equal(t, "ZZ", CodeName("ZZ"))
}
