package recommend

import (
	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
	"github.com/TheFaucett/mlb-predictor/internal/core/predict"
	"github.com/TheFaucett/mlb-predictor/internal/core/profile"
)

// SpecificPitch refines a family-level share into a concrete pitch call.
type SpecificPitch struct {
	Code        string
	Label       string
	Probability float64
}

// Representative codes used when a pitcher has no subtype usage data.
var fallbackCode = map[pitch.Family]string{
	pitch.FamilyFastball: "FF",
	pitch.FamilyBreaking: "SL",
	pitch.FamilyChange:   "CH",
}

// Refine picks the pitcher's most-used concrete pitch within the chosen
// family. Reported probability is the family's share in the distribution
// times the subtype's usage share within the family (times 1.0 when no
// subtype data exists).
func Refine(d predict.Distribution, f pitch.Family, p *profile.PitcherProfile) SpecificPitch {
	familyShare := d.Share(f)

	if p != nil {
		if code, share, ok := p.TopSubtype(f); ok {
			return SpecificPitch{
				Code:        code,
				Label:       pitch.CodeName(code),
				Probability: familyShare * share,
			}
		}
	}

	code := fallbackCode[f]
	return SpecificPitch{
		Code:        code,
		Label:       pitch.CodeName(code),
		Probability: familyShare,
	}
}
