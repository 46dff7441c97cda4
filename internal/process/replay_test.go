package process

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
)

func replayGame() *pitch.Game {
	return &pitch.Game{
		GamePK:    42,
		Final:     true,
		HomeScore: 4,
		AwayScore: 1,
		AtBats: []pitch.AtBat{
			{
				Index: 0, PitcherID: 10, BatterID: 20, Inning: 1, IsTop: true,
				Result: "strikeout",
				Events: []pitch.Event{
					{IsPitch: true, AtBatIndex: 0, PitchNumber: 1, Code: "FF"},
					{IsPitch: true, AtBatIndex: 0, PitchNumber: 2, Code: "SL"},
				},
			},
			{
				Index: 1, PitcherID: 10, BatterID: 21, Inning: 1, IsTop: true,
				Result: "field_out",
				Events: []pitch.Event{
					{IsPitch: true, AtBatIndex: 1, PitchNumber: 1, Code: "CH"},
				},
			},
		},
	}
}

func countReplayPitches(g *pitch.Game) int {
	n := 0
	for i := range g.AtBats {
		for j := range g.AtBats[i].Events {
			if g.AtBats[i].Events[j].IsPitch {
				n++
			}
		}
	}
	return n
}

func TestReplaySourceRevealsOnePitchPerTick(t *testing.T) {
	src := NewReplaySource(replayGame(), time.Millisecond)
	ctx := context.Background()

	g1, err := src.Next(ctx)
	require.NoError(t, err)
	require.NotNil(t, g1)
	assert.Equal(t, 1, countReplayPitches(g1))
	// In-progress at-bat has no result in the truncated view.
	assert.Equal(t, "", g1.AtBats[0].Result)
	assert.False(t, g1.Final)

	g2, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, countReplayPitches(g2))
	// The at-bat's last pitch is out, so its result is visible.
	assert.Equal(t, "strikeout", g2.AtBats[0].Result)
	assert.Len(t, g2.AtBats, 1)

	g3, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, countReplayPitches(g3))
	assert.Equal(t, "field_out", g3.AtBats[1].Result)
	assert.False(t, g3.Final)

	// One more tick hands out the full final game.
	g4, err := src.Next(ctx)
	require.NoError(t, err)
	require.NotNil(t, g4)
	assert.True(t, g4.Final)
	assert.Equal(t, 4, g4.HomeScore)

	// Then the source is exhausted.
	g5, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Nil(t, g5)
}

func TestReplaySourceHonorsCancel(t *testing.T) {
	src := NewReplaySource(replayGame(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Next(ctx)
	assert.Error(t, err)
}

func TestTruncateKeepsNonPitchEvents(t *testing.T) {
	g := replayGame()
	g.AtBats[0].Events = []pitch.Event{
		{Description: "Mound Visit"},
		{IsPitch: true, AtBatIndex: 0, PitchNumber: 1, Code: "FF"},
		{IsPitch: true, AtBatIndex: 0, PitchNumber: 2, Code: "SL"},
	}

	out := truncateGame(g, 1)
	require.Len(t, out.AtBats, 1)
	assert.Len(t, out.AtBats[0].Events, 2) // mound visit + first pitch
}

func TestPollSourceFetchesImmediatelyFirst(t *testing.T) {
	calls := 0
	src := &PollSource{
		Fetch: func(context.Context) (*pitch.Game, error) {
			calls++
			return &pitch.Game{GamePK: 1}, nil
		},
		Interval: time.Hour,
	}

	start := time.Now()
	g, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, g.GamePK)
	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(start), time.Second)
}
