package profile

import (
	"github.com/TheFaucett/mlb-predictor/internal/core/coords"
	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
)

// Store owns all rolling player profiles for one game session. It is
// plain mutable state with no locking: the engine processes pitches
// strictly sequentially, and every update for pitch N happens only after
// pitch N's prediction has been computed.
type Store struct {
	pitchers map[int]*PitcherProfile
	batters  map[int]*BatterProfile
}

func NewStore() *Store {
	return &Store{
		pitchers: make(map[int]*PitcherProfile),
		batters:  make(map[int]*BatterProfile),
	}
}

// Reset drops every profile, used when a replay restarts from pitch zero.
// Arsenal baselines are external inputs and must be re-applied after a reset.
func (s *Store) Reset() {
	s.pitchers = make(map[int]*PitcherProfile)
	s.batters = make(map[int]*BatterProfile)
}

// SetArsenal installs a pitcher's externally sourced baseline mix and
// subtype shares.
func (s *Store) SetArsenal(pitcherID int, families map[pitch.Family]float64, subtypes map[pitch.Family]map[string]float64) {
	p := s.pitcher(pitcherID)
	p.Arsenal = families
	p.Subtypes = subtypes
}

// Pitcher returns the profile for a pitcher id, creating it on first use.
func (s *Store) Pitcher(pitcherID int) *PitcherProfile { return s.pitcher(pitcherID) }

// Batter returns the profile for a batter id, creating it on first use.
func (s *Store) Batter(batterID int) *BatterProfile { return s.batter(batterID) }

// UpdatePitcherUsage increments the in-game family counter for one pitch.
func (s *Store) UpdatePitcherUsage(pitcherID int, f pitch.Family) {
	s.pitcher(pitcherID).RecordUsage(f)
}

// PitcherGameMix returns the normalized in-game family distribution.
func (s *Store) PitcherGameMix(pitcherID int) (map[pitch.Family]float64, bool) {
	p, ok := s.pitchers[pitcherID]
	if !ok {
		return nil, false
	}
	return p.GameMix()
}

// UpdatePitcherCommand folds release speed and resolved location into the
// pitcher's command stats.
func (s *Store) UpdatePitcherCommand(pitcherID int, releaseSpeed *float64, rec *coords.Record) {
	s.pitcher(pitcherID).RecordCommand(releaseSpeed, rec)
}

// PitcherWildness returns miss rate, or 0 under ten observed pitches.
func (s *Store) PitcherWildness(pitcherID int) float64 {
	p, ok := s.pitchers[pitcherID]
	if !ok {
		return 0
	}
	return p.Wildness()
}

// PitcherVelocityTrend returns the recent-vs-oldest velocity delta, or 0
// under four window samples.
func (s *Store) PitcherVelocityTrend(pitcherID int) float64 {
	p, ok := s.pitchers[pitcherID]
	if !ok {
		return 0
	}
	return p.VelocityTrend()
}

// UpdateBatterAggression increments pitches seen and, on a swing, swings.
func (s *Store) UpdateBatterAggression(batterID int, wasSwing bool) {
	s.batter(batterID).RecordPitch(wasSwing)
}

// BatterAggression returns swings/pitches, or false before any pitch.
func (s *Store) BatterAggression(batterID int) (float64, bool) {
	b, ok := s.batters[batterID]
	if !ok {
		return 0, false
	}
	return b.Aggression()
}

// UpdateBatterVsFamily folds one pitch into the batter's family and
// zone×family buckets.
func (s *Store) UpdateBatterVsFamily(batterID int, f pitch.Family, out PitchOutcome, zone string) {
	s.batter(batterID).RecordVsFamily(f, out, zone)
}

// BatterVulnerability scores each family with enough observations and names
// the most vulnerable one.
func (s *Store) BatterVulnerability(batterID int) (map[pitch.Family]float64, pitch.Family, bool) {
	b, ok := s.batters[batterID]
	if !ok {
		return nil, "", false
	}
	return b.Vulnerability()
}

// ZoneEffectiveness scores one batter's zone×family bucket.
func (s *Store) ZoneEffectiveness(batterID int, zone string, f pitch.Family) (float64, bool) {
	b, ok := s.batters[batterID]
	if !ok {
		return 0, false
	}
	return b.ZoneEffectiveness(zone, f)
}

func (s *Store) pitcher(id int) *PitcherProfile {
	p, ok := s.pitchers[id]
	if !ok {
		p = newPitcherProfile()
		s.pitchers[id] = p
	}
	return p
}

func (s *Store) batter(id int) *BatterProfile {
	b, ok := s.batters[id]
	if !ok {
		b = newBatterProfile()
		s.batters[id] = b
	}
	return b
}
