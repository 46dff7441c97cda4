package predict

import (
	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
)

// Blend and tilt weights for the mixer stages.
const (
	// Stage 2: league seed vs pitcher arsenal baseline.
	arsenalBlendWeight = 0.5
	// Stage 4: any runner on base.
	runnersOnShift = 0.03
	// Stage 9: multiplicative vulnerability tilt.
	vulnTiltWeight = 0.35
	// Stage 11: working distribution vs in-game observed mix.
	gameMixWeight = 0.2
)

// Stage is one step of the prediction pipeline: a pure function from a
// working distribution (plus the decision context) to the next one.
type Stage func(Distribution, *Context) Distribution

// Mixer produces the "likely next pitch" family distribution by applying
// its stages in order. The only state a Mixer carries is the league table.
type Mixer struct {
	League LeagueTable
}

func NewMixer(league LeagueTable) *Mixer {
	if league == nil {
		league = DefaultLeagueTable()
	}
	return &Mixer{League: league}
}

// Stages returns the ordered pipeline. Negative shares introduced by the
// additive stages are only floored in the final stage; intermediate
// normalizations divide by the raw sum.
func (m *Mixer) Stages() []Stage {
	return []Stage{
		m.StageLeagueSeed,
		StageArsenalBlend,
		StageHandedness,
		StageRunnersOn,
		StageNormalize,
		StageSequencing,
		StageLocationSequencing,
		StageNormalize,
		StageVulnerabilityTilt,
		StageTunnelContinuation,
		StageGameMixBlend,
		StageFinalNormalize,
	}
}

// Predict runs the full pipeline. A nil context yields the uniform default,
// normalized; the pipeline itself never fails.
func (m *Mixer) Predict(ctx *Context) Distribution {
	if ctx == nil {
		return Uniform().FloorNormalize()
	}
	var d Distribution
	for _, stage := range m.Stages() {
		d = stage(d, ctx)
	}
	return d
}

// StageLeagueSeed replaces the working distribution with the league-average
// shares for the exact count.
func (m *Mixer) StageLeagueSeed(_ Distribution, ctx *Context) Distribution {
	return m.League.ForCount(ctx.Balls, ctx.Strikes)
}

// StageArsenalBlend blends 50/50 with the pitcher's season arsenal, when known.
func StageArsenalBlend(d Distribution, ctx *Context) Distribution {
	if ctx.Arsenal == nil {
		return d
	}
	a := FromShares(ctx.Arsenal)
	return Distribution{
		Fastball: (1-arsenalBlendWeight)*d.Fastball + arsenalBlendWeight*a.Fastball,
		Breaking: (1-arsenalBlendWeight)*d.Breaking + arsenalBlendWeight*a.Breaking,
		Change:   (1-arsenalBlendWeight)*d.Change + arsenalBlendWeight*a.Change,
	}
}

// StageHandedness applies fixed platoon deltas. Opposite-hand batters see
// more changeups; same-hand batters see more breaking balls. The two
// opposite-hand matchups are deliberately asymmetric.
func StageHandedness(d Distribution, ctx *Context) Distribution {
	switch {
	case ctx.SameHanded() && ctx.PitcherHand == "R":
		d.Breaking += 0.04
		d.Change -= 0.03
		d.Fastball -= 0.01
	case ctx.SameHanded():
		d.Breaking += 0.03
		d.Change -= 0.02
		d.Fastball -= 0.01
	case ctx.PitcherHand == "R": // righty vs lefty
		d.Change += 0.04
		d.Fastball -= 0.02
		d.Breaking -= 0.02
	default: // lefty vs righty
		d.Change += 0.05
		d.Fastball -= 0.03
		d.Breaking -= 0.02
	}
	return d
}

// StageRunnersOn shifts toward breaking stuff with any runner aboard.
func StageRunnersOn(d Distribution, ctx *Context) Distribution {
	if !ctx.AnyRunnerOn() {
		return d
	}
	d.Breaking += runnersOnShift
	d.Fastball -= runnersOnShift
	return d
}

// StageNormalize renormalizes the working distribution without flooring.
func StageNormalize(d Distribution, _ *Context) Distribution {
	return d.Normalize()
}

// StageVulnerabilityTilt multiplies each family by (1 + score·0.35) using
// the batter's vulnerability scores. The result stays non-normalized until
// the final stage.
func StageVulnerabilityTilt(d Distribution, ctx *Context) Distribution {
	if !ctx.HasVulnerability {
		return d
	}
	for _, f := range pitch.Families {
		if score, ok := ctx.Vulnerability[f]; ok {
			d = d.Scale(f, 1+score*vulnTiltWeight)
		}
	}
	return d
}

// StageTunnelContinuation nudges the families a tunneling pitcher tends to
// follow with, keyed on the prior pitch's family.
func StageTunnelContinuation(d Distribution, ctx *Context) Distribution {
	if ctx.Tunnel == nil || !ctx.HasLast {
		return d
	}
	switch ctx.LastFamily() {
	case pitch.FamilyFastball:
		d.Breaking += 0.04
		d.Change += 0.02
	case pitch.FamilyBreaking:
		d.Fastball += 0.03
	case pitch.FamilyChange:
		d.Breaking += 0.03
	}
	return d
}

// StageGameMixBlend blends 80/20 with the pitcher's observed in-game mix.
func StageGameMixBlend(d Distribution, ctx *Context) Distribution {
	if ctx.GameMix == nil {
		return d
	}
	mix := FromShares(ctx.GameMix)
	return Distribution{
		Fastball: (1-gameMixWeight)*d.Fastball + gameMixWeight*mix.Fastball,
		Breaking: (1-gameMixWeight)*d.Breaking + gameMixWeight*mix.Breaking,
		Change:   (1-gameMixWeight)*d.Change + gameMixWeight*mix.Change,
	}
}

// StageFinalNormalize floors negatives and normalizes for output.
func StageFinalNormalize(d Distribution, _ *Context) Distribution {
	return d.FloorNormalize()
}
