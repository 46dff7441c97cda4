package profile

import (
	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
)

// Minimum observations of a family (or zone×family bucket) before a
// vulnerability score is reported.
const vulnerabilityMinSeen = 3

// Vulnerability score weights: whiffs dominate, then hit avoidance,
// then hard-contact avoidance.
const (
	vulnWhiffWeight   = 0.6
	vulnHitWeight     = 0.25
	vulnHardHitWeight = 0.15
)

// FamilyStats are the per-family (or per zone×family) counters behind the
// vulnerability scores.
type FamilyStats struct {
	Seen    int
	Swings  int
	Whiffs  int
	InPlay  int
	Hits    int
	HardHit int
}

// Score is the weighted vulnerability formula. Higher means the batter has
// performed worse against this bucket.
func (s *FamilyStats) Score() float64 {
	if s.Seen == 0 {
		return 0
	}
	whiffRate := float64(s.Whiffs) / float64(s.Seen)
	hitRate := float64(s.Hits) / float64(s.Seen)
	hardHitRate := float64(s.HardHit) / float64(s.Seen)
	return vulnWhiffWeight*whiffRate +
		vulnHitWeight*(1-hitRate) +
		vulnHardHitWeight*(1-hardHitRate)
}

// ZoneKey buckets batter performance by location and family.
type ZoneKey struct {
	Zone   string
	Family pitch.Family
}

// BatterProfile aggregates a batter's in-game tendencies: overall
// aggression plus performance split by family and by zone×family.
type BatterProfile struct {
	pitchesSeen int
	swings      int

	vsFamily map[pitch.Family]*FamilyStats
	vsZone   map[ZoneKey]*FamilyStats
}

func newBatterProfile() *BatterProfile {
	return &BatterProfile{
		vsFamily: make(map[pitch.Family]*FamilyStats),
		vsZone:   make(map[ZoneKey]*FamilyStats),
	}
}

// RecordPitch folds one pitch into the aggression counters.
func (b *BatterProfile) RecordPitch(wasSwing bool) {
	b.pitchesSeen++
	if wasSwing {
		b.swings++
	}
}

// Aggression is swings over pitches seen, or false before the first pitch.
func (b *BatterProfile) Aggression() (float64, bool) {
	if b.pitchesSeen == 0 {
		return 0, false
	}
	return float64(b.swings) / float64(b.pitchesSeen), true
}

// PitchOutcome carries the observation RecordVsFamily needs. Hits and
// hard-hit contact only resolve on the final pitch of an at-bat, so the
// terminal result and exit speed ride along with a validity flag.
type PitchOutcome struct {
	Description  string
	InPlay       bool
	FinalOfAtBat bool
	AtBatResult  string
	HitSpeed     *float64
}

// RecordVsFamily folds one pitch into the family bucket and, when the zone
// is known, the zone×family bucket.
func (b *BatterProfile) RecordVsFamily(f pitch.Family, out PitchOutcome, zone string) {
	buckets := []*FamilyStats{b.family(f)}
	if zone != "" {
		buckets = append(buckets, b.zone(zone, f))
	}

	swing := pitch.IsSwing(out.Description, out.InPlay)
	whiff := pitch.IsWhiff(out.Description)
	hit := out.FinalOfAtBat && pitch.IsHitResult(out.AtBatResult)
	hard := out.FinalOfAtBat && out.HitSpeed != nil && *out.HitSpeed >= pitch.HardHitSpeed

	for _, s := range buckets {
		s.Seen++
		if swing {
			s.Swings++
		}
		if whiff {
			s.Whiffs++
		}
		if out.InPlay {
			s.InPlay++
		}
		if hit {
			s.Hits++
		}
		if hard {
			s.HardHit++
		}
	}
}

// Vulnerability scores every family with at least three observations and
// names the single most vulnerable one. ok is false when no family
// qualifies.
func (b *BatterProfile) Vulnerability() (scores map[pitch.Family]float64, worst pitch.Family, ok bool) {
	scores = make(map[pitch.Family]float64)
	best := -1.0
	for _, f := range pitch.Families {
		s, present := b.vsFamily[f]
		if !present || s.Seen < vulnerabilityMinSeen {
			continue
		}
		sc := s.Score()
		scores[f] = sc
		if sc > best {
			best = sc
			worst = f
			ok = true
		}
	}
	return scores, worst, ok
}

// ZoneEffectiveness scores one zone×family bucket, gated on three
// observations in that bucket.
func (b *BatterProfile) ZoneEffectiveness(zone string, f pitch.Family) (float64, bool) {
	s, present := b.vsZone[ZoneKey{Zone: zone, Family: f}]
	if !present || s.Seen < vulnerabilityMinSeen {
		return 0, false
	}
	return s.Score(), true
}

func (b *BatterProfile) family(f pitch.Family) *FamilyStats {
	s, ok := b.vsFamily[f]
	if !ok {
		s = &FamilyStats{}
		b.vsFamily[f] = s
	}
	return s
}

func (b *BatterProfile) zone(zone string, f pitch.Family) *FamilyStats {
	k := ZoneKey{Zone: zone, Family: f}
	s, ok := b.vsZone[k]
	if !ok {
		s = &FamilyStats{}
		b.vsZone[k] = s
	}
	return s
}
