package pitch

// Coordinates is a resolved plate-crossing location in feet, catcher's view.
// PX is positive toward the pitcher's arm side, PZ is height above the plate.
type Coordinates struct {
	PX    float64
	PZ    float64
	SZTop float64
	SZBot float64
}

// Movement is the late-flight break profile of a pitch.
type Movement struct {
	HorzBreak   float64
	VertBreak   float64 // induced vertical break
	BreakAngle  float64
	BreakLength float64
}

// Event is a single raw feed entry inside an at-bat. Non-pitch entries
// (pickoffs, mound visits, substitutions) carry IsPitch=false and are
// skipped by the engine.
type Event struct {
	Code        string // raw pitch-type code, e.g. "FF", "SL"
	Description string // outcome description, e.g. "Swinging Strike"

	// Count at the time of the pitch.
	Balls   int
	Strikes int

	// Primary plate-crossing coordinates, nil when the feed omits them.
	Coords *Coordinates
	// Legacy pixel-space coordinates converted upstream; secondary source.
	LegacyCoords *Coordinates
	// Break profile, nil when unavailable.
	Move *Movement

	StartSpeed *float64

	AtBatIndex  int
	PitchNumber int

	IsPitch bool
	InPlay  bool

	// Exit velocity when the ball was put in play.
	HitSpeed *float64
}

// AtBat is an ordered sequence of events for one plate appearance.
type AtBat struct {
	Index int

	Events []Event

	PitcherID   int
	PitcherHand string // "R" or "L"
	BatterID    int
	BatterSide  string // "R" or "L"

	RunnerOn1st bool
	RunnerOn2nd bool
	RunnerOn3rd bool

	Inning int
	IsTop  bool

	// Terminal outcome category, e.g. "strikeout", "single", "double_play".
	// Empty while the at-bat is in progress.
	Result string
}

// AnyRunnerOn reports whether a runner occupies any base.
func (ab *AtBat) AnyRunnerOn() bool {
	return ab.RunnerOn1st || ab.RunnerOn2nd || ab.RunnerOn3rd
}

// Game is a full chronological feed snapshot for one game.
type Game struct {
	GamePK    int
	AtBats    []AtBat
	Final     bool
	HomeScore int
	AwayScore int
}

// hitResults are the terminal at-bat outcomes that count as base hits.
var hitResults = map[string]bool{
	"single":   true,
	"double":   true,
	"triple":   true,
	"home_run": true,
}

// IsHitResult reports whether a terminal outcome category is a base hit.
func IsHitResult(result string) bool { return hitResults[result] }

// OutsRecorded maps a terminal outcome category to the outs it produced.
func OutsRecorded(result string) int {
	switch result {
	case "strikeout", "field_out", "groundout", "flyout", "lineout", "popout",
		"force_out", "fielders_choice_out", "sac_fly", "sac_bunt", "caught_stealing":
		return 1
	case "double_play", "grounded_into_double_play", "strikeout_double_play",
		"sac_fly_double_play":
		return 2
	case "triple_play":
		return 3
	default:
		return 0
	}
}

// HardHitSpeed is the exit velocity threshold (mph) for a hard-hit ball.
const HardHitSpeed = 95.0
