package pitch

import "strings"

// The feed describes outcomes with free-ish text ("Swinging Strike",
// "Foul Tip", "In play, out(s)", "Ball In Dirt"). These helpers centralize
// the substring conventions so profile updates and sequencing logic agree.

// IsSwing reports whether the batter offered at the pitch: the ball was put
// in play, or the description carries a swinging/foul/in-play signal.
func IsSwing(desc string, inPlay bool) bool {
	if inPlay {
		return true
	}
	d := strings.ToLower(desc)
	return strings.Contains(d, "swinging") ||
		strings.Contains(d, "foul") ||
		strings.Contains(d, "in play")
}

// IsWhiff reports a swing that touched nothing: a swinging description that
// is neither a foul nor an in-play result.
func IsWhiff(desc string) bool {
	d := strings.ToLower(desc)
	if !strings.Contains(d, "swinging") {
		return false
	}
	return !strings.Contains(d, "foul") && !strings.Contains(d, "in play")
}

// IsFoul reports a foul ball (including foul tips).
func IsFoul(desc string) bool {
	return strings.Contains(strings.ToLower(desc), "foul")
}

// IsBall reports a taken ball.
func IsBall(desc string) bool {
	d := strings.ToLower(desc)
	return strings.Contains(d, "ball") &&
		!strings.Contains(d, "in play") && !strings.Contains(d, "foul")
}

// IsCalledStrike reports a taken strike.
func IsCalledStrike(desc string) bool {
	return strings.Contains(strings.ToLower(desc), "called strike")
}
