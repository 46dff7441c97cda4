package statsfeed

import (
	"fmt"
	"strings"

	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
)

// Legacy pixel-space coordinates are anchored at the old broadcast overlay
// origin and scaled at ~50 px/ft.
const (
	legacyOriginX = 125.42
	legacyOriginY = 198.27
	legacyScale   = 49.91
)

// ParseGame converts a raw feed body into the engine's game model.
func ParseGame(data []byte) (*pitch.Game, error) {
	fr, err := decodeFeed(data)
	if err != nil {
		return nil, fmt.Errorf("feed parse: %w", err)
	}
	return convertGame(fr), nil
}

func convertGame(fr *feedResponse) *pitch.Game {
	g := &pitch.Game{
		GamePK:    fr.GamePK,
		Final:     strings.EqualFold(fr.GameData.Status.AbstractGameState, "Final"),
		HomeScore: fr.LiveData.Linescore.Teams.Home.Runs,
		AwayScore: fr.LiveData.Linescore.Teams.Away.Runs,
	}

	for _, p := range fr.LiveData.Plays.AllPlays {
		ab := pitch.AtBat{
			Index:       p.About.AtBatIndex,
			Inning:      p.About.Inning,
			IsTop:       strings.EqualFold(p.About.HalfInning, "top"),
			PitcherID:   p.Matchup.Pitcher.ID,
			PitcherHand: p.Matchup.PitchHand.Code,
			BatterID:    p.Matchup.Batter.ID,
			BatterSide:  p.Matchup.BatSide.Code,
			RunnerOn1st: p.Matchup.PostOnFirst != nil,
			RunnerOn2nd: p.Matchup.PostOnSecond != nil,
			RunnerOn3rd: p.Matchup.PostOnThird != nil,
		}
		if p.About.IsComplete {
			ab.Result = p.Result.EventType
		}

		for _, pe := range p.PlayEvents {
			ab.Events = append(ab.Events, convertEvent(pe, p.About.AtBatIndex))
		}

		g.AtBats = append(g.AtBats, ab)
	}
	return g
}

func convertEvent(pe playEvent, atBatIndex int) pitch.Event {
	ev := pitch.Event{
		Code:        pe.Details.Type.Code,
		Description: pe.Details.Description,
		Balls:       pe.Count.Balls,
		Strikes:     pe.Count.Strikes,
		AtBatIndex:  atBatIndex,
		PitchNumber: pe.PitchNumber,
		IsPitch:     pe.IsPitch,
		InPlay:      pe.Details.IsInPlay,
	}

	if pd := pe.PitchData; pd != nil {
		ev.StartSpeed = pd.StartSpeed

		if pd.Coordinates.PX != nil && pd.Coordinates.PZ != nil {
			c := pitch.Coordinates{PX: *pd.Coordinates.PX, PZ: *pd.Coordinates.PZ}
			if pd.StrikeZoneTop != nil {
				c.SZTop = *pd.StrikeZoneTop
			}
			if pd.StrikeZoneBottom != nil {
				c.SZBot = *pd.StrikeZoneBottom
			}
			ev.Coords = &c
		}

		if pd.Coordinates.X != nil && pd.Coordinates.Y != nil {
			ev.LegacyCoords = &pitch.Coordinates{
				PX: (legacyOriginX - *pd.Coordinates.X) / legacyScale,
				PZ: (legacyOriginY - *pd.Coordinates.Y) / legacyScale,
			}
		}

		if b := pd.Breaks; b != nil {
			m := pitch.Movement{}
			if b.HorzBreak != nil {
				m.HorzBreak = *b.HorzBreak
			}
			if b.VertBreak != nil {
				m.VertBreak = *b.VertBreak
			}
			if b.BreakAngle != nil {
				m.BreakAngle = *b.BreakAngle
			}
			if b.BreakLength != nil {
				m.BreakLength = *b.BreakLength
			}
			if b.HorzBreak != nil || b.VertBreak != nil {
				ev.Move = &m
			}
		}
	}

	if pe.HitData != nil {
		ev.HitSpeed = pe.HitData.LaunchSpeed
	}

	return ev
}
