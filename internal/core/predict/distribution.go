package predict

import (
	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
)

// Distribution is a three-family share triple. It is passed and returned
// by value: every mixer stage takes a Distribution and produces a new one,
// never mutating shared state.
//
// Intermediate stages may hold non-normalized or slightly negative shares
// (additive deltas can undershoot); only exposed outputs are guaranteed
// non-negative and summing to 1.
type Distribution struct {
	Fastball float64 `json:"fastball"`
	Breaking float64 `json:"breaking"`
	Change   float64 `json:"change"`
}

// Share reads one family's share.
func (d Distribution) Share(f pitch.Family) float64 {
	switch f {
	case pitch.FamilyBreaking:
		return d.Breaking
	case pitch.FamilyChange:
		return d.Change
	default:
		return d.Fastball
	}
}

// Add returns a copy with delta added to one family.
func (d Distribution) Add(f pitch.Family, delta float64) Distribution {
	switch f {
	case pitch.FamilyBreaking:
		d.Breaking += delta
	case pitch.FamilyChange:
		d.Change += delta
	default:
		d.Fastball += delta
	}
	return d
}

// Scale returns a copy with one family multiplied by factor.
func (d Distribution) Scale(f pitch.Family, factor float64) Distribution {
	switch f {
	case pitch.FamilyBreaking:
		d.Breaking *= factor
	case pitch.FamilyChange:
		d.Change *= factor
	default:
		d.Fastball *= factor
	}
	return d
}

// Sum is the raw share total, negatives included.
func (d Distribution) Sum() float64 {
	return d.Fastball + d.Breaking + d.Change
}

// Normalize divides by the raw sum. An all-zero distribution divides by 1,
// leaving shares at zero rather than producing NaN.
func (d Distribution) Normalize() Distribution {
	sum := d.Sum()
	if sum == 0 {
		sum = 1
	}
	return Distribution{
		Fastball: d.Fastball / sum,
		Breaking: d.Breaking / sum,
		Change:   d.Change / sum,
	}
}

// FloorNormalize floors negative shares at zero, then normalizes. This is
// the final-output form: three non-negative entries summing to 1 (or all
// zero for the degenerate all-zero input).
func (d Distribution) FloorNormalize() Distribution {
	if d.Fastball < 0 {
		d.Fastball = 0
	}
	if d.Breaking < 0 {
		d.Breaking = 0
	}
	if d.Change < 0 {
		d.Change = 0
	}
	return d.Normalize()
}

// Best returns the argmax family. Ties resolve to the earlier family in
// canonical order.
func (d Distribution) Best() pitch.Family {
	best := pitch.Families[0]
	bestShare := d.Share(best)
	for _, f := range pitch.Families[1:] {
		if d.Share(f) > bestShare {
			best = f
			bestShare = d.Share(f)
		}
	}
	return best
}

// Uniform is the equal-ish thirds default used when no context could be
// assembled for a decision point.
func Uniform() Distribution {
	return Distribution{Fastball: 0.34, Breaking: 0.33, Change: 0.33}
}

// FromShares builds a Distribution from a family-share map, missing
// families reading as zero.
func FromShares(m map[pitch.Family]float64) Distribution {
	return Distribution{
		Fastball: m[pitch.FamilyFastball],
		Breaking: m[pitch.FamilyBreaking],
		Change:   m[pitch.FamilyChange],
	}
}
