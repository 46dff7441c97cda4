package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
	"github.com/TheFaucett/mlb-predictor/internal/core/tunnel"
)

func baseCtx() *Context {
	return &Context{
		Balls: 0, Strikes: 0,
		PitcherHand: "R", BatterSide: "L",
	}
}

func TestPredictNilContext(t *testing.T) {
	m := NewMixer(nil)
	d := m.Predict(nil)
	assert.InDelta(t, 1.0, d.Sum(), 1e-9)
	assert.Equal(t, pitch.FamilyFastball, d.Best())
}

func TestPredictFirstPitchPluralityFastball(t *testing.T) {
	m := NewMixer(nil)
	d := m.Predict(baseCtx())
	assert.InDelta(t, 1.0, d.Sum(), 1e-6)
	assert.Equal(t, pitch.FamilyFastball, d.Best())
	assert.Greater(t, d.Fastball, 0.5)
}

func TestPredictAlwaysNormalizedNonNegative(t *testing.T) {
	m := NewMixer(nil)
	arsenal := map[pitch.Family]float64{
		pitch.FamilyFastball: 0.55, pitch.FamilyBreaking: 0.30, pitch.FamilyChange: 0.15,
	}

	// Sweep a grid of contexts: counts, hands, sequence states, extremes.
	for b := 0; b <= 3; b++ {
		for s := 0; s <= 2; s++ {
			for _, hand := range []string{"R", "L"} {
				for _, side := range []string{"R", "L"} {
					ctx := &Context{
						Balls: b, Strikes: s,
						PitcherHand: hand, BatterSide: side,
						RunnerOn2nd: b%2 == 0,
						Arsenal:     arsenal,
						HasLast:     true, LastCode: "FF", LastDesc: "Swinging Strike",
						LastZone: "high_middle",
						HasPrev:  true, PrevCode: "FF",
						Wildness:      0.5,
						VelocityTrend: -2.0,
						Tunnel:        &tunnel.Result{Label: "fastball→slider tunnel"},
						HasVulnerability: true,
						Vulnerability: map[pitch.Family]float64{
							pitch.FamilyBreaking: 0.9,
						},
						GameMix: map[pitch.Family]float64{
							pitch.FamilyFastball: 1.0,
						},
					}
					d := m.Predict(ctx)
					assert.InDelta(t, 1.0, d.Sum(), 1e-6, "count %d-%d %s vs %s", b, s, hand, side)
					assert.GreaterOrEqual(t, d.Fastball, 0.0)
					assert.GreaterOrEqual(t, d.Breaking, 0.0)
					assert.GreaterOrEqual(t, d.Change, 0.0)
				}
			}
		}
	}
}

func TestPredictDeterministic(t *testing.T) {
	m := NewMixer(nil)
	ctx := baseCtx()
	ctx.HasLast = true
	ctx.LastCode = "SL"
	ctx.LastDesc = "Called Strike"

	first := m.Predict(ctx)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.Predict(ctx))
	}
}

func TestStageArsenalBlend(t *testing.T) {
	ctx := baseCtx()
	d := Distribution{Fastball: 0.6, Breaking: 0.3, Change: 0.1}

	// No arsenal: pass-through.
	assert.Equal(t, d, StageArsenalBlend(d, ctx))

	ctx.Arsenal = map[pitch.Family]float64{
		pitch.FamilyFastball: 0.4, pitch.FamilyBreaking: 0.5, pitch.FamilyChange: 0.1,
	}
	out := StageArsenalBlend(d, ctx)
	assert.InDelta(t, 0.5, out.Fastball, 1e-12)
	assert.InDelta(t, 0.4, out.Breaking, 1e-12)
	assert.InDelta(t, 0.1, out.Change, 1e-12)
}

func TestStageHandednessPlatoon(t *testing.T) {
	d := Distribution{Fastball: 0.6, Breaking: 0.25, Change: 0.15}

	rr := StageHandedness(d, &Context{PitcherHand: "R", BatterSide: "R"})
	assert.InDelta(t, 0.29, rr.Breaking, 1e-12)

	ll := StageHandedness(d, &Context{PitcherHand: "L", BatterSide: "L"})
	assert.InDelta(t, 0.28, ll.Breaking, 1e-12)

	rl := StageHandedness(d, &Context{PitcherHand: "R", BatterSide: "L"})
	assert.InDelta(t, 0.19, rl.Change, 1e-12)

	lr := StageHandedness(d, &Context{PitcherHand: "L", BatterSide: "R"})
	assert.InDelta(t, 0.20, lr.Change, 1e-12)
}

func TestStageRunnersOn(t *testing.T) {
	d := Distribution{Fastball: 0.6, Breaking: 0.25, Change: 0.15}

	empty := StageRunnersOn(d, baseCtx())
	assert.Equal(t, d, empty)

	ctx := baseCtx()
	ctx.RunnerOn1st = true
	on := StageRunnersOn(d, ctx)
	assert.InDelta(t, 0.57, on.Fastball, 1e-12)
	assert.InDelta(t, 0.28, on.Breaking, 1e-12)
}

func TestStageVulnerabilityTilt(t *testing.T) {
	d := Distribution{Fastball: 0.5, Breaking: 0.3, Change: 0.2}

	ctx := baseCtx()
	same := StageVulnerabilityTilt(d, ctx)
	assert.Equal(t, d, same)

	ctx.HasVulnerability = true
	ctx.Vulnerability = map[pitch.Family]float64{pitch.FamilyBreaking: 0.8}
	out := StageVulnerabilityTilt(d, ctx)
	assert.InDelta(t, 0.3*(1+0.8*0.35), out.Breaking, 1e-12)
	assert.InDelta(t, 0.5, out.Fastball, 1e-12)
	// Tilt does not renormalize.
	assert.Greater(t, out.Sum(), 1.0)
}

func TestStageTunnelContinuation(t *testing.T) {
	d := Distribution{Fastball: 0.5, Breaking: 0.3, Change: 0.2}

	ctx := baseCtx()
	ctx.Tunnel = &tunnel.Result{}
	// Tunnel without a last pitch: pass-through.
	assert.Equal(t, d, StageTunnelContinuation(d, ctx))

	ctx.HasLast = true
	ctx.LastCode = "FF"
	out := StageTunnelContinuation(d, ctx)
	assert.InDelta(t, 0.34, out.Breaking, 1e-12)
	assert.InDelta(t, 0.22, out.Change, 1e-12)
}

func TestStageGameMixBlend(t *testing.T) {
	d := Distribution{Fastball: 0.5, Breaking: 0.3, Change: 0.2}

	ctx := baseCtx()
	assert.Equal(t, d, StageGameMixBlend(d, ctx))

	ctx.GameMix = map[pitch.Family]float64{
		pitch.FamilyFastball: 1.0,
	}
	out := StageGameMixBlend(d, ctx)
	assert.InDelta(t, 0.8*0.5+0.2*1.0, out.Fastball, 1e-12)
	assert.InDelta(t, 0.8*0.3, out.Breaking, 1e-12)
}

func TestStageOrder(t *testing.T) {
	m := NewMixer(nil)
	stages := m.Stages()
	require.Len(t, stages, 12)
}
