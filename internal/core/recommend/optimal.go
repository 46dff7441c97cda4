package recommend

import (
	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
	"github.com/TheFaucett/mlb-predictor/internal/core/predict"
)

// Blend weights for the optimal-pitch score.
const (
	// Base share vs batter vulnerability.
	vulnBlendWeight = 0.6
	// Score vs zone-specific effectiveness.
	zoneBlendWeight = 0.5
)

// Recommendation is the "what should be thrown" answer: an independent
// distribution over families plus its argmax.
type Recommendation struct {
	Dist predict.Distribution
	Best pitch.Family
}

// Recommender scores each family on its own merits (arsenal quality,
// batter weakness, count leverage, zone history) rather than on what the
// pitcher is likely to do.
type Recommender struct {
	League predict.LeagueTable
}

func NewRecommender(league predict.LeagueTable) *Recommender {
	if league == nil {
		league = predict.DefaultLeagueTable()
	}
	return &Recommender{League: league}
}

// Recommend scores all three families against the context. Read-only over
// the context: calling it twice with the same snapshot returns identical
// results.
func (r *Recommender) Recommend(ctx *predict.Context) Recommendation {
	if ctx == nil {
		d := predict.Uniform().FloorNormalize()
		return Recommendation{Dist: d, Best: d.Best()}
	}

	league := r.League.ForCount(ctx.Balls, ctx.Strikes)

	var d predict.Distribution
	for _, f := range pitch.Families {
		score := league.Share(f)
		if ctx.Arsenal != nil {
			score = ctx.Arsenal[f]
		}

		if ctx.HasVulnerability {
			if vuln, ok := ctx.Vulnerability[f]; ok {
				score = (1-vulnBlendWeight)*score + vulnBlendWeight*vuln
			}
		}

		score *= countLeverage(ctx.Balls, ctx.Strikes, f)

		if zone, ok := ctx.ZoneScores[f]; ok {
			score = (1-zoneBlendWeight)*score + zoneBlendWeight*zone
		}

		d = d.Add(f, score)
	}

	d = d.FloorNormalize()
	return Recommendation{Dist: d, Best: d.Best()}
}

// countLeverage rewards putaway pitches when ahead and strike-throwers
// when behind.
func countLeverage(balls, strikes int, f pitch.Family) float64 {
	switch {
	case balls <= 1 && strikes >= 2: // ahead, putaway count
		switch f {
		case pitch.FamilyBreaking:
			return 1.25
		case pitch.FamilyChange:
			return 1.15
		default:
			return 0.8
		}
	case balls >= 2 && strikes <= 1: // behind, need a strike
		if f == pitch.FamilyFastball {
			return 1.2
		}
		return 0.9
	case balls == 3 && strikes == 2: // full count
		switch f {
		case pitch.FamilyFastball:
			return 1.05
		case pitch.FamilyBreaking:
			return 0.95
		default:
			return 1.0
		}
	default:
		return 1.0
	}
}
