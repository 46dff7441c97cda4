package tunnel

import (
	"fmt"

	"github.com/TheFaucett/mlb-predictor/internal/core/coords"
	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
)

// Two consecutive pitches tunnel when their early flight is nearly
// indistinguishable but their late break diverges hard. Thresholds are
// strict inequalities; boundary values do not tunnel.
const (
	// Early-trajectory alignment: plate-crossing diffs must each stay
	// under this (feet).
	maxEarlyDX = 0.3
	maxEarlyDZ = 0.3
	// Late-flight divergence: summed break-component diffs must exceed
	// this (inches).
	minBreakDiff = 3.0
)

// Result describes a detected tunnel pair.
type Result struct {
	Label string

	// Early alignment diffs.
	DX float64
	DZ float64
	// Late break diffs and their sum.
	DHorzBreak float64
	DVertBreak float64
	BreakDiff  float64
}

// Detect compares the spatial readings of two consecutive pitches.
// Either record may be nil or movement-only; a missing component is
// treated as zero. Returns nil unless both pitches have some reading.
func Detect(prev, cur *coords.Record, prevCode, curCode string) *Result {
	if prev == nil || cur == nil {
		return nil
	}

	dx := abs(locComponent(prev, true) - locComponent(cur, true))
	dz := abs(locComponent(prev, false) - locComponent(cur, false))
	if !(dx < maxEarlyDX && dz < maxEarlyDZ) {
		return nil
	}

	dhb := abs(prev.HorzBreak - cur.HorzBreak)
	dvb := abs(prev.VertBreak - cur.VertBreak)
	sum := dhb + dvb
	if !(sum > minBreakDiff) {
		return nil
	}

	return &Result{
		Label:      label(prevCode, curCode),
		DX:         dx,
		DZ:         dz,
		DHorzBreak: dhb,
		DVertBreak: dvb,
		BreakDiff:  sum,
	}
}

// locComponent reads px or pz, treating movement-only records as zero.
func locComponent(r *coords.Record, horizontal bool) float64 {
	if !r.HasLocation {
		return 0
	}
	if horizontal {
		return r.PX
	}
	return r.PZ
}

// label names the tunnel by its family transition. Specific code pairs get
// the conventional scouting names; anything else falls back to a generic
// family transition label.
func label(prevCode, curCode string) string {
	pf := pitch.Classify(prevCode)
	cf := pitch.Classify(curCode)

	switch {
	case pf == pitch.FamilyFastball && cf == pitch.FamilyBreaking:
		return "fastball→slider tunnel"
	case pf == pitch.FamilyFastball && cf == pitch.FamilyChange:
		return "fastball→changeup tunnel"
	case pf == pitch.FamilyBreaking && cf == pitch.FamilyFastball:
		return "breaking→fastball tunnel"
	case pf == pitch.FamilyChange && cf == pitch.FamilyFastball:
		return "changeup→fastball tunnel"
	case pf == cf:
		return fmt.Sprintf("%s repeat tunnel", pf)
	default:
		return fmt.Sprintf("%s→%s tunnel", pf, cf)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
