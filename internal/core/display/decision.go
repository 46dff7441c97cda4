package display

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/TheFaucett/mlb-predictor/internal/events"
)

const (
	dividerHeavy = "========================================================================"
	dividerLight = "~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~"
)

// Observer prints each decision point to the terminal.
type Observer struct{}

func NewObserver(bus *events.Bus) *Observer {
	o := &Observer{}
	bus.Subscribe(events.EventPitchDecision, o.onDecision)
	bus.Subscribe(events.EventGameFinish, o.onFinish)
	return o
}

func (o *Observer) onDecision(evt events.Event) error {
	dec, ok := evt.Payload.(events.PitchDecisionEvent)
	if !ok {
		return nil
	}
	PrintDecision(dec)
	return nil
}

func (o *Observer) onFinish(evt events.Event) error {
	fin, ok := evt.Payload.(events.GameFinishEvent)
	if !ok {
		return nil
	}
	fmt.Fprintf(os.Stdout, "\n[FINAL]  %d-%d  (%d pitches)\n%s\n", fin.AwayScore, fin.HomeScore, fin.Pitches, dividerHeavy)
	return nil
}

// PrintDecision renders one decision point: both distributions, the refined
// calls, and where the pitch actually ended up.
func PrintDecision(dec events.PitchDecisionEvent) {
	ts := time.Now().Format("3:04:05.000 PM")

	half := "Bot"
	if dec.IsTop {
		half = "Top"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n[PITCH %s]  %s %d  |  count %d-%d  |  %d out  |  %s\n",
		ts, half, dec.Inning, dec.Balls, dec.Strikes, dec.Outs, dec.Matchup)
	fmt.Fprintf(&b, "%s\n", dividerLight)

	fmt.Fprintf(&b, "  %-10s %s\n", "Likely:", shareBar(dec.LikelyFastball, dec.LikelyBreaking, dec.LikelyChange))
	fmt.Fprintf(&b, "  %-10s %s (%s)  p=%.2f\n", "", dec.LikelyPitch.Label, dec.LikelyPitch.Code, dec.LikelyPitch.Probability)

	fmt.Fprintf(&b, "  %-10s %s\n", "Optimal:", shareBar(dec.OptimalFastball, dec.OptimalBreaking, dec.OptimalChange))
	fmt.Fprintf(&b, "  %-10s %s (%s)  p=%.2f  [best: %s]\n", "", dec.OptimalPitch.Label, dec.OptimalPitch.Code, dec.OptimalPitch.Probability, dec.OptimalBest)

	if dec.TunnelLabel != "" {
		fmt.Fprintf(&b, "  %-10s %s\n", "Tunnel:", dec.TunnelLabel)
	}

	fmt.Fprintf(&b, "  %-10s %s (%s)  %s\n", "Thrown:", dec.ActualCode, dec.ActualFamily, dec.ActualDesc)
	if dec.ActualZone != "" {
		fmt.Fprintf(&b, "%s", zoneGrid(dec.ActualZone))
	}

	fmt.Fprint(os.Stdout, b.String())
}

// shareBar formats a family distribution on one line.
func shareBar(fb, brk, ch float64) string {
	return fmt.Sprintf("FB %4.1f%%  |  BRK %4.1f%%  |  CH %4.1f%%", fb*100, brk*100, ch*100)
}

// zoneGrid draws a 3×3 strike-zone grid (catcher's view) with the pitch's
// zone marked. Arm side is drawn on the left for a right-handed pitcher's
// view convention.
func zoneGrid(zone string) string {
	rows := []string{"high", "middle", "low"}
	cols := []string{"arm_side", "middle", "glove_side"}

	var b strings.Builder
	b.WriteString("             arm  mid  glv\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "      %-6s", r)
		for _, c := range cols {
			if zone == r+"_"+c {
				b.WriteString("[ X ]")
			} else {
				b.WriteString("[   ]")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
