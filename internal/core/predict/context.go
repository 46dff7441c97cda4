package predict

import (
	"github.com/TheFaucett/mlb-predictor/internal/core/coords"
	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
	"github.com/TheFaucett/mlb-predictor/internal/core/tunnel"
)

// Context is the immutable snapshot assembled at one decision point.
// Both the mixer and the recommender read from it; neither writes to it or
// to anything it references, so repeated calls with the same context are
// bit-identical.
type Context struct {
	Balls   int
	Strikes int
	Outs    int

	RunnerOn1st bool
	RunnerOn2nd bool
	RunnerOn3rd bool

	Inning int
	IsTop  bool

	PitcherID   int
	PitcherHand string // "R" or "L"
	BatterID    int
	BatterSide  string // "R" or "L"

	// Previous pitch, when one exists in the current sequence memory.
	HasLast  bool
	LastCode string
	LastDesc string
	LastZone string // "" when the previous pitch had no resolved location

	// Pitch before the previous one, for repeat-family notices.
	HasPrev  bool
	PrevCode string

	// Pitcher context snapshots. Nil maps mean "unknown".
	Arsenal       map[pitch.Family]float64
	GameMix       map[pitch.Family]float64
	Wildness      float64
	VelocityTrend float64

	// Batter context snapshots.
	HasVulnerability bool
	Vulnerability    map[pitch.Family]float64
	MostVulnerable   pitch.Family
	HasAggression    bool
	Aggression       float64

	// Resolved spatial data for the upcoming pitch, when available, and the
	// per-family zone effectiveness at its zone.
	Location    *coords.Record
	CurrentZone string
	ZoneScores  map[pitch.Family]float64

	// Tunnel detected between the two most recent observed pitches.
	Tunnel *tunnel.Result
}

// AnyRunnerOn reports whether a runner occupies any base.
func (c *Context) AnyRunnerOn() bool {
	return c.RunnerOn1st || c.RunnerOn2nd || c.RunnerOn3rd
}

// LastFamily classifies the previous pitch. Only meaningful when HasLast.
func (c *Context) LastFamily() pitch.Family {
	return pitch.Classify(c.LastCode)
}

// SameHanded reports a same-side pitcher/batter matchup.
func (c *Context) SameHanded() bool {
	return c.PitcherHand == c.BatterSide
}

// CountIs reports an exact ball-strike count.
func (c *Context) CountIs(balls, strikes int) bool {
	return c.Balls == balls && c.Strikes == strikes
}
