package predict

import (
	"strings"

	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
)

// Sequencing thresholds.
const (
	// Wildness above this means the pitcher is fighting command and
	// simplifies to the fastball.
	wildnessThreshold = 0.3
	// A velocity trend below this (mph) reads as fatigue.
	veloDeclineThreshold = -1.0
)

// StageSequencing applies the count-leverage and pitch-to-pitch sequencing
// deltas. Each rule is an independent additive adjustment; several can fire
// on the same decision point and they accumulate.
func StageSequencing(d Distribution, ctx *Context) Distribution {
	// Count leverage.
	switch {
	case ctx.CountIs(0, 2) || ctx.CountIs(1, 2):
		d.Breaking += 0.12
		d.Change += 0.05
		d.Fastball -= 0.10
	case ctx.CountIs(2, 0) || ctx.CountIs(3, 1):
		d.Fastball += 0.10
		d.Breaking -= 0.06
		d.Change -= 0.04
	case ctx.CountIs(3, 2) && ctx.Arsenal != nil:
		// Full count: pitchers go to what they trust, weighted by usage.
		d.Fastball += ctx.Arsenal[pitch.FamilyFastball] * 0.10
		d.Breaking += ctx.Arsenal[pitch.FamilyBreaking] * 0.05
		d.Change += ctx.Arsenal[pitch.FamilyChange] * 0.05
	}

	if ctx.HasLast {
		// Family alternation off the previous pitch.
		switch ctx.LastFamily() {
		case pitch.FamilyFastball:
			d.Breaking += 0.06
			d.Change += 0.02
			d.Fastball -= 0.06
		case pitch.FamilyBreaking:
			d.Fastball += 0.04
			d.Change += 0.03
			d.Breaking -= 0.04
		case pitch.FamilyChange:
			d.Breaking += 0.04
			d.Fastball += 0.02
			d.Change -= 0.06
		}

		// Reaction to the previous pitch's result.
		switch {
		case pitch.IsWhiff(ctx.LastDesc):
			// Swing-and-miss: double up on what just worked.
			d = d.Add(ctx.LastFamily(), 0.10)
		case pitch.IsFoul(ctx.LastDesc):
			if ctx.LastFamily() == pitch.FamilyFastball {
				d.Breaking += 0.05
				d.Change += 0.03
			} else {
				d.Fastball += 0.07
			}
		case pitch.IsBall(ctx.LastDesc):
			d.Fastball += 0.06
			d.Breaking -= 0.03
			d.Change -= 0.03
		case pitch.IsCalledStrike(ctx.LastDesc):
			d.Breaking += 0.04
		}

		// Repeat-family notice over the last two pitches.
		if ctx.HasPrev && pitch.Classify(ctx.PrevCode) == ctx.LastFamily() {
			switch ctx.LastFamily() {
			case pitch.FamilyFastball:
				d.Breaking += 0.10
			case pitch.FamilyBreaking:
				d.Fastball += 0.08
			case pitch.FamilyChange:
				d.Breaking += 0.07
			}
		}

		// A freshly shown tunnel off a fastball invites the breaker.
		if ctx.Tunnel != nil && ctx.LastFamily() == pitch.FamilyFastball {
			d.Breaking += 0.05
			d.Change += 0.03
		}
	}

	// Command and fatigue.
	if ctx.Wildness > wildnessThreshold {
		d.Fastball += 0.08
		d.Breaking -= 0.05
		d.Change -= 0.03
	}
	if ctx.VelocityTrend < veloDeclineThreshold {
		d.Fastball -= 0.04
		d.Change += 0.03
		d.Breaking += 0.01
	}

	return d
}

// StageLocationSequencing applies deltas keyed on where the previous pitch
// crossed the plate. Classic setups: climb the ladder then break one off,
// bury the breaker glove-side then climb back up with the fastball.
func StageLocationSequencing(d Distribution, ctx *Context) Distribution {
	if !ctx.HasLast || ctx.LastZone == "" {
		return d
	}

	switch ctx.LastFamily() {
	case pitch.FamilyFastball:
		if strings.HasPrefix(ctx.LastZone, "high") {
			d.Breaking += 0.08
			d.Change += 0.04
			d.Fastball -= 0.08
		} else if ctx.LastZone == "middle_middle" {
			d.Breaking += 0.08
			d.Change += 0.04
			d.Fastball -= 0.10
		}
	case pitch.FamilyBreaking:
		if ctx.LastZone == "low_glove_side" {
			d.Fastball += 0.10
			d.Breaking -= 0.05
		}
	case pitch.FamilyChange:
		if ctx.LastZone == "low_arm_side" {
			d.Breaking += 0.08
			d.Fastball += 0.02
			d.Change -= 0.06
		}
	}

	return d
}
