package coords

import (
	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
	"github.com/TheFaucett/mlb-predictor/internal/telemetry"
)

// Tier records which resolution path produced a Record.
type Tier string

const (
	TierDirect   Tier = "direct"
	TierMovement Tier = "movement"
	TierCache    Tier = "cache"
	TierCrossRef Tier = "crossref"
)

// Key identifies one physical pitch within a game. The same pitch can be
// recorded under several play entries, so the key is (at-bat, pitch-number)
// rather than a position in the event list.
type Key struct {
	AtBat int
	Pitch int
}

// Record is the best-available spatial reading for a pitch.
// HasLocation means PX/PZ (and zone bounds) are real plate-crossing data.
// MovementOnly means only the break profile is populated.
type Record struct {
	PX    float64
	PZ    float64
	SZTop float64
	SZBot float64

	HorzBreak   float64
	VertBreak   float64
	BreakAngle  float64
	BreakLength float64

	HasLocation  bool
	MovementOnly bool
	Tier         Tier
}

// Zone returns the nine-way zone label for a located record, or "" when the
// record has no true location.
func (r *Record) Zone() string {
	if r == nil || !r.HasLocation {
		return ""
	}
	return pitch.ZoneLabel(pitch.Coordinates{PX: r.PX, PZ: r.PZ, SZTop: r.SZTop, SZBot: r.SZBot})
}

// Resolver finds location or movement data for pitches through a tiered
// lookup with a same-game cache. Resolution never fails hard: a pitch with
// no data anywhere in the game simply resolves to (nil, false), which
// callers must treat as a common case.
type Resolver struct {
	game  *pitch.Game
	cache map[Key]Record
}

func NewResolver(game *pitch.Game) *Resolver {
	return &Resolver{
		game:  game,
		cache: make(map[Key]Record),
	}
}

// SetGame swaps in a newer feed snapshot. The cache survives: keys are
// stable across snapshots of the same game.
func (r *Resolver) SetGame(game *pitch.Game) { r.game = game }

// Reset drops the cache, used when a replay restarts from pitch zero.
func (r *Resolver) Reset() { r.cache = make(map[Key]Record) }

// Resolve returns the best-available record for (at-bat index, pitch number).
//
// Tier order, first match wins:
//  1. direct: the event itself carries true coordinates
//  2. movement: the event carries a break profile but no location
//  3. cache: a previous resolution for the same key
//  4. cross-ref: any event in the game recording the same physical pitch
//  5. exhausted: (nil, false)
func (r *Resolver) Resolve(atBat, pitchNum int) (*Record, bool) {
	key := Key{AtBat: atBat, Pitch: pitchNum}

	if ev := r.findEvent(atBat, pitchNum); ev != nil {
		if rec, ok := r.fromEvent(ev, TierDirect); ok {
			r.cache[key] = rec
			return &rec, true
		}
	}

	if rec, ok := r.cache[key]; ok {
		telemetry.Metrics.CoordCacheHits.Inc()
		out := rec
		out.Tier = TierCache
		return &out, true
	}
	telemetry.Metrics.CoordCacheMisses.Inc()

	// The same physical pitch may be recorded under another play entry
	// (e.g. a stolen base logged as its own play mid at-bat).
	if rec, ok := r.crossReference(atBat, pitchNum); ok {
		telemetry.Metrics.CoordCrossRefHits.Inc()
		r.cache[key] = rec
		return &rec, true
	}

	return nil, false
}

// findEvent locates the pitch event at (atBat, pitchNum) in the canonical
// at-bat, or nil when out of range.
func (r *Resolver) findEvent(atBat, pitchNum int) *pitch.Event {
	if r.game == nil || atBat < 0 || atBat >= len(r.game.AtBats) {
		return nil
	}
	ab := &r.game.AtBats[atBat]
	for i := range ab.Events {
		ev := &ab.Events[i]
		if ev.IsPitch && ev.PitchNumber == pitchNum {
			return ev
		}
	}
	return nil
}

// fromEvent applies tiers 1–2 to a single event. directTier names the tier
// to stamp on a true-location result (TierDirect or TierCrossRef).
func (r *Resolver) fromEvent(ev *pitch.Event, directTier Tier) (Record, bool) {
	// Primary coordinates win over the legacy source when both exist.
	c := ev.Coords
	if c == nil {
		c = ev.LegacyCoords
	}
	if c != nil {
		top, bot := c.SZTop, c.SZBot
		if top <= bot {
			top, bot = pitch.DefaultZoneTop, pitch.DefaultZoneBot
		}
		rec := Record{
			PX:          c.PX,
			PZ:          c.PZ,
			SZTop:       top,
			SZBot:       bot,
			HasLocation: true,
			Tier:        directTier,
		}
		if ev.Move != nil {
			rec.HorzBreak = ev.Move.HorzBreak
			rec.VertBreak = ev.Move.VertBreak
			rec.BreakAngle = ev.Move.BreakAngle
			rec.BreakLength = ev.Move.BreakLength
		}
		return rec, true
	}

	if ev.Move != nil {
		tier := TierMovement
		if directTier == TierCrossRef {
			tier = TierCrossRef
		}
		return Record{
			HorzBreak:    ev.Move.HorzBreak,
			VertBreak:    ev.Move.VertBreak,
			BreakAngle:   ev.Move.BreakAngle,
			BreakLength:  ev.Move.BreakLength,
			MovementOnly: true,
			Tier:         tier,
		}, true
	}

	return Record{}, false
}

// crossReference scans every event in the game tagged with the same
// (at-bat index, pitch number), the same physical pitch recorded under a
// different play entry, and applies tiers 1 and 2 to each candidate.
func (r *Resolver) crossReference(atBat, pitchNum int) (Record, bool) {
	if r.game == nil {
		return Record{}, false
	}
	for i := range r.game.AtBats {
		ab := &r.game.AtBats[i]
		for j := range ab.Events {
			ev := &ab.Events[j]
			if !ev.IsPitch || ev.AtBatIndex != atBat || ev.PitchNumber != pitchNum {
				continue
			}
			if rec, ok := r.fromEvent(ev, TierCrossRef); ok {
				return rec, true
			}
		}
	}
	return Record{}, false
}
