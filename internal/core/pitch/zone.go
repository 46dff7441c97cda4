package pitch

import "fmt"

// Default strike-zone bounds (feet) used when the feed omits per-pitch values.
const (
	DefaultZoneTop = 3.5
	DefaultZoneBot = 1.5
)

// Horizontal band cut-offs: beyond ±0.5 ft of the plate center the pitch is
// off-middle toward the arm or glove side.
const zoneHorzEdge = 0.5

// ZoneLabel buckets a plate-crossing location into one of nine labels,
// "{vertical}_{horizontal}": high/middle/low crossed with
// arm_side/middle/glove_side. The vertical thirds are derived from the
// pitch's own zone bounds.
func ZoneLabel(c Coordinates) string {
	top := c.SZTop
	bot := c.SZBot
	if top <= bot {
		top, bot = DefaultZoneTop, DefaultZoneBot
	}
	height := top - bot

	var vert string
	switch {
	case c.PZ >= top-height/3:
		vert = "high"
	case c.PZ <= bot+height/3:
		vert = "low"
	default:
		vert = "middle"
	}

	var horz string
	switch {
	case c.PX > zoneHorzEdge:
		horz = "arm_side"
	case c.PX < -zoneHorzEdge:
		horz = "glove_side"
	default:
		horz = "middle"
	}

	return fmt.Sprintf("%s_%s", vert, horz)
}
