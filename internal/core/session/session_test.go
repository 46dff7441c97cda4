package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
	"github.com/TheFaucett/mlb-predictor/internal/events"
)

func pitchEvent(atBat, num int, code, desc string) pitch.Event {
	return pitch.Event{
		Code:        code,
		Description: desc,
		IsPitch:     true,
		AtBatIndex:  atBat,
		PitchNumber: num,
		Coords:      &pitch.Coordinates{PX: 0, PZ: 2.5, SZTop: 3.5, SZBot: 1.5},
	}
}

func simpleAtBat(idx, pitcher, batter int, result string, evs ...pitch.Event) pitch.AtBat {
	return pitch.AtBat{
		Index:       idx,
		Events:      evs,
		PitcherID:   pitcher,
		PitcherHand: "R",
		BatterID:    batter,
		BatterSide:  "L",
		Inning:      1,
		IsTop:       true,
		Result:      result,
	}
}

func TestStepProducesDecisionPerPitch(t *testing.T) {
	g := &pitch.Game{GamePK: 100, AtBats: []pitch.AtBat{
		simpleAtBat(0, 10, 20, "strikeout",
			pitchEvent(0, 1, "FF", "Called Strike"),
			pitchEvent(0, 2, "SL", "Swinging Strike"),
			pitchEvent(0, 3, "SL", "Swinging Strike"),
		),
	}}

	s := New(nil, nil, Arsenals{})
	s.SetGame(g)

	n := s.CatchUp()
	assert.Equal(t, 3, n)

	_, ok := s.Step()
	assert.False(t, ok)
}

func TestDecisionComputedBeforeUpdate(t *testing.T) {
	g := &pitch.Game{GamePK: 100, AtBats: []pitch.AtBat{
		simpleAtBat(0, 10, 20, "strikeout",
			pitchEvent(0, 1, "FF", "Called Strike"),
			pitchEvent(0, 2, "SL", "Swinging Strike"),
		),
	}}

	s := New(nil, nil, Arsenals{})
	s.SetGame(g)

	first, ok := s.Step()
	require.True(t, ok)
	// Nothing observed yet at the first decision point.
	assert.Nil(t, first.Context.GameMix)
	assert.False(t, first.Context.HasLast)

	second, ok := s.Step()
	require.True(t, ok)
	// The first pitch is now visible: one fastball in the mix, and the
	// sequence memory carries it.
	require.NotNil(t, second.Context.GameMix)
	assert.InDelta(t, 1.0, second.Context.GameMix[pitch.FamilyFastball], 1e-9)
	assert.True(t, second.Context.HasLast)
	assert.Equal(t, "FF", second.Context.LastCode)
	assert.Equal(t, "Called Strike", second.Context.LastDesc)
}

func TestNonPitchEventsSkipped(t *testing.T) {
	pickoff := pitch.Event{Description: "Pickoff Attempt 1B", AtBatIndex: 0}
	g := &pitch.Game{GamePK: 100, AtBats: []pitch.AtBat{
		simpleAtBat(0, 10, 20, "field_out",
			pickoff,
			pitchEvent(0, 1, "FF", "In play, out(s)"),
		),
	}}

	s := New(nil, nil, Arsenals{})
	s.SetGame(g)
	assert.Equal(t, 1, s.CatchUp())
}

func TestCursorWaitsMidAtBat(t *testing.T) {
	// Live snapshot ends inside an unfinished at-bat.
	g := &pitch.Game{GamePK: 100, AtBats: []pitch.AtBat{
		simpleAtBat(0, 10, 20, "", // no result yet
			pitchEvent(0, 1, "FF", "Ball"),
		),
	}}

	s := New(nil, nil, Arsenals{})
	s.SetGame(g)
	assert.Equal(t, 1, s.CatchUp())

	// Next snapshot completes the at-bat with one more pitch.
	g2 := &pitch.Game{GamePK: 100, AtBats: []pitch.AtBat{
		simpleAtBat(0, 10, 20, "single",
			pitchEvent(0, 1, "FF", "Ball"),
			pitchEvent(0, 2, "CH", "In play, run(s)"),
		),
	}}
	s.SetGame(g2)
	assert.Equal(t, 1, s.CatchUp())
}

func TestSequenceMemoryResetsOnNewPitcher(t *testing.T) {
	g := &pitch.Game{GamePK: 100, AtBats: []pitch.AtBat{
		simpleAtBat(0, 10, 20, "strikeout",
			pitchEvent(0, 1, "FF", "Called Strike"),
			pitchEvent(0, 2, "SL", "Swinging Strike"),
		),
		// Same pitcher, new batter: memory survives.
		simpleAtBat(1, 10, 21, "field_out",
			pitchEvent(1, 1, "FF", "In play, out(s)"),
		),
		// New pitcher: memory cleared.
		simpleAtBat(2, 11, 22, "field_out",
			pitchEvent(2, 1, "SI", "In play, out(s)"),
		),
	}}

	s := New(nil, nil, Arsenals{})
	s.SetGame(g)

	var decisions []*Decision
	for {
		d, ok := s.Step()
		if !ok {
			break
		}
		decisions = append(decisions, d)
	}
	require.Len(t, decisions, 4)

	// First pitch of the second at-bat still sees the strikeout pitch.
	assert.True(t, decisions[2].Context.HasLast)
	assert.Equal(t, "SL", decisions[2].Context.LastCode)

	// First pitch of the new pitcher sees a blank sequence.
	assert.False(t, decisions[3].Context.HasLast)
	assert.Nil(t, decisions[3].Context.Tunnel)
}

func TestOutsDerivation(t *testing.T) {
	g := &pitch.Game{GamePK: 100, AtBats: []pitch.AtBat{
		simpleAtBat(0, 10, 20, "strikeout", pitchEvent(0, 1, "FF", "Swinging Strike")),
		simpleAtBat(1, 10, 21, "grounded_into_double_play", pitchEvent(1, 1, "SI", "In play, out(s)")),
		simpleAtBat(2, 10, 22, "single", pitchEvent(2, 1, "FF", "In play, run(s)")),
	}}

	s := New(nil, nil, Arsenals{})
	s.SetGame(g)

	var outs []int
	for {
		d, ok := s.Step()
		if !ok {
			break
		}
		outs = append(outs, d.Context.Outs)
	}
	// 0 before the first at-bat, 1 after the strikeout, then capped at 2
	// even though the double play would make three.
	assert.Equal(t, []int{0, 1, 2}, outs)
}

func TestOutsResetAcrossHalfInning(t *testing.T) {
	top := simpleAtBat(0, 10, 20, "strikeout", pitchEvent(0, 1, "FF", "Swinging Strike"))
	bot := simpleAtBat(1, 30, 40, "field_out", pitchEvent(1, 1, "FF", "In play, out(s)"))
	bot.IsTop = false
	g := &pitch.Game{GamePK: 100, AtBats: []pitch.AtBat{top, bot}}

	s := New(nil, nil, Arsenals{})
	s.SetGame(g)

	d1, ok := s.Step()
	require.True(t, ok)
	assert.Equal(t, 0, d1.Context.Outs)

	d2, ok := s.Step()
	require.True(t, ok)
	assert.Equal(t, 0, d2.Context.Outs)
}

func TestSetGameResetsOnDifferentGame(t *testing.T) {
	g1 := &pitch.Game{GamePK: 100, AtBats: []pitch.AtBat{
		simpleAtBat(0, 10, 20, "strikeout", pitchEvent(0, 1, "FF", "Swinging Strike")),
	}}
	s := New(nil, nil, Arsenals{})
	s.SetGame(g1)
	require.Equal(t, 1, s.CatchUp())

	g2 := &pitch.Game{GamePK: 200, AtBats: []pitch.AtBat{
		simpleAtBat(0, 50, 60, "walk", pitchEvent(0, 1, "FF", "Ball")),
	}}
	s.SetGame(g2)

	d, ok := s.Step()
	require.True(t, ok)
	// Fresh profiles: the old game's pitcher data is gone.
	assert.Nil(t, d.Context.GameMix)
	assert.Equal(t, 50, d.Context.PitcherID)
}

func TestSetGameResetsOnReplayRestart(t *testing.T) {
	full := &pitch.Game{GamePK: 100, AtBats: []pitch.AtBat{
		simpleAtBat(0, 10, 20, "strikeout",
			pitchEvent(0, 1, "FF", "Called Strike"),
			pitchEvent(0, 2, "SL", "Swinging Strike"),
		),
	}}
	s := New(nil, nil, Arsenals{})
	s.SetGame(full)
	require.Equal(t, 2, s.CatchUp())

	// Restarted replay: same game, fewer pitches than already processed.
	restarted := &pitch.Game{GamePK: 100, AtBats: []pitch.AtBat{
		simpleAtBat(0, 10, 20, "",
			pitchEvent(0, 1, "FF", "Called Strike"),
		),
	}}
	s.SetGame(restarted)

	d, ok := s.Step()
	require.True(t, ok)
	assert.False(t, d.Context.HasLast)
	assert.Nil(t, d.Context.GameMix)
}

func TestArsenalInstalledLazily(t *testing.T) {
	arsenals := Arsenals{
		Families: map[int]map[pitch.Family]float64{
			10: {pitch.FamilyFastball: 0.5, pitch.FamilyBreaking: 0.4, pitch.FamilyChange: 0.1},
		},
		Subtypes: map[int]map[pitch.Family]map[string]float64{
			10: {pitch.FamilyBreaking: {"CU": 1.0}},
		},
	}
	g := &pitch.Game{GamePK: 100, AtBats: []pitch.AtBat{
		simpleAtBat(0, 10, 20, "strikeout", pitchEvent(0, 1, "FF", "Swinging Strike")),
	}}

	s := New(nil, nil, arsenals)
	s.SetGame(g)

	d, ok := s.Step()
	require.True(t, ok)
	require.NotNil(t, d.Context.Arsenal)
	assert.InDelta(t, 0.4, d.Context.Arsenal[pitch.FamilyBreaking], 1e-9)
}

func TestEventsPublished(t *testing.T) {
	bus := events.NewBus()

	var decisions []events.PitchDecisionEvent
	var matchups []events.MatchupChangeEvent
	finishes := 0

	bus.Subscribe(events.EventPitchDecision, func(evt events.Event) error {
		decisions = append(decisions, evt.Payload.(events.PitchDecisionEvent))
		return nil
	})
	bus.Subscribe(events.EventMatchupChange, func(evt events.Event) error {
		matchups = append(matchups, evt.Payload.(events.MatchupChangeEvent))
		return nil
	})
	bus.Subscribe(events.EventGameFinish, func(evt events.Event) error {
		finishes++
		return nil
	})

	g := &pitch.Game{GamePK: 100, Final: true, HomeScore: 3, AwayScore: 2, AtBats: []pitch.AtBat{
		simpleAtBat(0, 10, 20, "strikeout",
			pitchEvent(0, 1, "FF", "Called Strike"),
			pitchEvent(0, 2, "SL", "Swinging Strike"),
		),
		simpleAtBat(1, 11, 21, "field_out", pitchEvent(1, 1, "FF", "In play, out(s)")),
	}}

	s := New(bus, nil, Arsenals{})
	s.SetGame(g)
	s.CatchUp()

	require.Len(t, decisions, 3)
	assert.Equal(t, "R vs L", decisions[0].Matchup)
	assert.Equal(t, "FF", decisions[0].ActualCode)
	assert.Equal(t, "fastball", decisions[0].ActualFamily)
	assert.Equal(t, "middle_middle", decisions[0].ActualZone)
	assert.InDelta(t, 1.0,
		decisions[0].LikelyFastball+decisions[0].LikelyBreaking+decisions[0].LikelyChange, 1e-6)

	require.Len(t, matchups, 2)
	assert.True(t, matchups[0].NewPitcher)
	assert.True(t, matchups[1].NewPitcher)

	assert.Equal(t, 1, finishes)

	// Finish is not re-published on further polls.
	s.CatchUp()
	assert.Equal(t, 1, finishes)
}

func TestCountPitches(t *testing.T) {
	g := &pitch.Game{AtBats: []pitch.AtBat{
		simpleAtBat(0, 10, 20, "walk",
			pitchEvent(0, 1, "FF", "Ball"),
			pitch.Event{Description: "Mound Visit"},
			pitchEvent(0, 2, "FF", "Ball"),
		),
	}}
	assert.Equal(t, 2, countPitches(g))
}
