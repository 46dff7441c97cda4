package profile

import (
	"github.com/TheFaucett/mlb-predictor/internal/core/coords"
	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
)

const (
	// Rolling release-speed window length.
	veloWindow = 8
	// Minimum command observations before wildness is reported.
	wildnessMinPitches = 10
	// Minimum window samples before a velocity trend is reported.
	veloTrendMinSamples = 4

	// A located pitch this far beyond the zone bounds counts as a vertical miss.
	missMargin = 0.1
	// A located pitch this far off-center counts as a horizontal miss.
	missHorzEdge = 1.7
)

// PitcherProfile aggregates everything we track about one pitcher:
// the externally sourced arsenal baseline, the in-game usage mix, and
// rolling command/fatigue stats.
type PitcherProfile struct {
	// Season-level family shares, sum 1. Nil until SetArsenal.
	Arsenal map[pitch.Family]float64
	// Per-family subtype usage shares, each family summing to 1.
	Subtypes map[pitch.Family]map[string]float64

	// In-game observed family counts.
	gameCounts map[pitch.Family]int
	gameTotal  int

	// Command stats.
	missHigh  int
	missLow   int
	missArm   int
	missGlove int
	pitches   int

	// Most recent release speeds, capped at veloWindow.
	recentVelo []float64
}

func newPitcherProfile() *PitcherProfile {
	return &PitcherProfile{
		gameCounts: make(map[pitch.Family]int),
	}
}

// RecordUsage folds one observed pitch into the in-game mix.
func (p *PitcherProfile) RecordUsage(f pitch.Family) {
	p.gameCounts[f]++
	p.gameTotal++
}

// GameMix returns the normalized in-game family distribution, or false
// before any pitch has been observed.
func (p *PitcherProfile) GameMix() (map[pitch.Family]float64, bool) {
	if p.gameTotal == 0 {
		return nil, false
	}
	mix := make(map[pitch.Family]float64, len(pitch.Families))
	for _, f := range pitch.Families {
		mix[f] = float64(p.gameCounts[f]) / float64(p.gameTotal)
	}
	return mix, true
}

// RecordCommand folds one pitch's release speed and resolved location into
// the command stats. Either input may be absent.
func (p *PitcherProfile) RecordCommand(releaseSpeed *float64, rec *coords.Record) {
	p.pitches++

	if releaseSpeed != nil {
		p.recentVelo = append(p.recentVelo, *releaseSpeed)
		if len(p.recentVelo) > veloWindow {
			p.recentVelo = p.recentVelo[len(p.recentVelo)-veloWindow:]
		}
	}

	if rec == nil || !rec.HasLocation {
		return
	}
	switch {
	case rec.PZ > rec.SZTop+missMargin:
		p.missHigh++
	case rec.PZ < rec.SZBot-missMargin:
		p.missLow++
	}
	switch {
	case rec.PX > missHorzEdge:
		p.missArm++
	case rec.PX < -missHorzEdge:
		p.missGlove++
	}
}

// Wildness is total misses over total pitches, gated on ten pitches.
func (p *PitcherProfile) Wildness() float64 {
	if p.pitches < wildnessMinPitches {
		return 0
	}
	misses := p.missHigh + p.missLow + p.missArm + p.missGlove
	return float64(misses) / float64(p.pitches)
}

// VelocityTrend is the average of the two newest window samples minus the
// average of the two oldest. Negative means velocity is declining.
func (p *PitcherProfile) VelocityTrend() float64 {
	n := len(p.recentVelo)
	if n < veloTrendMinSamples {
		return 0
	}
	newest := (p.recentVelo[n-1] + p.recentVelo[n-2]) / 2
	oldest := (p.recentVelo[0] + p.recentVelo[1]) / 2
	return newest - oldest
}

// TopSubtype returns the highest-share concrete code within a family,
// or false when no subtype data exists for that family.
func (p *PitcherProfile) TopSubtype(f pitch.Family) (string, float64, bool) {
	shares := p.Subtypes[f]
	if len(shares) == 0 {
		return "", 0, false
	}
	var bestCode string
	var bestShare float64
	for code, share := range shares {
		if share > bestShare || (share == bestShare && (bestCode == "" || code < bestCode)) {
			bestCode, bestShare = code, share
		}
	}
	return bestCode, bestShare, true
}
