package events

// SpecificPitch is the concrete-pitch refinement attached to a distribution.
type SpecificPitch struct {
	Code        string  `json:"code"`
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// PitchDecisionEvent is published immediately after a pitch is processed.
// The prediction fields were computed before the pitch's outcome was folded
// into any profile; Actual* fields describe the pitch that was then thrown.
type PitchDecisionEvent struct {
	AtBatIndex  int  `json:"at_bat_index"`
	PitchNumber int  `json:"pitch_number"`
	Inning      int  `json:"inning"`
	IsTop       bool `json:"is_top"`

	Balls   int `json:"balls"`
	Strikes int `json:"strikes"`
	Outs    int `json:"outs"`

	PitcherID int    `json:"pitcher_id"`
	BatterID  int    `json:"batter_id"`
	Matchup   string `json:"matchup"` // "R vs L" etc.

	// Likely next pitch (what the pitcher will probably throw).
	LikelyFastball float64       `json:"likely_fastball"`
	LikelyBreaking float64       `json:"likely_breaking"`
	LikelyChange   float64       `json:"likely_change"`
	LikelyPitch    SpecificPitch `json:"likely_pitch"`

	// Optimal pitch (what the pitcher should throw).
	OptimalFastball float64       `json:"optimal_fastball"`
	OptimalBreaking float64       `json:"optimal_breaking"`
	OptimalChange   float64       `json:"optimal_change"`
	OptimalBest     string        `json:"optimal_best"`
	OptimalPitch    SpecificPitch `json:"optimal_pitch"`

	TunnelLabel string `json:"tunnel_label,omitempty"`

	// The pitch that was actually thrown.
	ActualCode   string `json:"actual_code"`
	ActualFamily string `json:"actual_family"`
	ActualDesc   string `json:"actual_desc"`
	ActualZone   string `json:"actual_zone,omitempty"`
}

// MatchupChangeEvent signals a new pitcher or batter entering.
type MatchupChangeEvent struct {
	PitcherID  int  `json:"pitcher_id"`
	BatterID   int  `json:"batter_id"`
	NewPitcher bool `json:"new_pitcher"`
}

// FeedStatusEvent signals feed connectivity transitions.
type FeedStatusEvent struct {
	Connected bool   `json:"connected"`
	Detail    string `json:"detail,omitempty"`
}

// GameFinishEvent is published once when the feed reports a final state.
type GameFinishEvent struct {
	HomeScore int `json:"home_score"`
	AwayScore int `json:"away_score"`
	Pitches   int `json:"pitches"`
}
