package process

import (
	"context"
	"time"

	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
)

// ReplaySource replays a completed game at a fixed cadence, revealing one
// additional pitch per tick. Each snapshot looks exactly like a live feed
// caught mid-game: the in-progress at-bat has no result yet and the game
// is not final until the last pitch is out.
type ReplaySource struct {
	game *pitch.Game
	tick time.Duration

	revealed int
	total    int
}

func NewReplaySource(game *pitch.Game, tick time.Duration) *ReplaySource {
	return &ReplaySource{
		game:  game,
		tick:  tick,
		total: totalPitches(game),
	}
}

// Next waits one tick and returns a snapshot with one more pitch revealed.
// After the final pitch it returns the full game once, then nil.
func (r *ReplaySource) Next(ctx context.Context) (*pitch.Game, error) {
	if r.revealed > r.total {
		return nil, nil
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(r.tick):
	}

	r.revealed++
	if r.revealed > r.total {
		return r.game, nil
	}
	return truncateGame(r.game, r.revealed), nil
}

// truncateGame copies g up to and including the nth pitch. The at-bat
// containing that pitch keeps only its events so far and loses its result;
// later at-bats are dropped entirely.
func truncateGame(g *pitch.Game, n int) *pitch.Game {
	out := &pitch.Game{GamePK: g.GamePK}

	seen := 0
	for i := range g.AtBats {
		src := &g.AtBats[i]

		ab := *src
		ab.Events = nil

		complete := true
		for _, ev := range src.Events {
			if ev.IsPitch {
				if seen == n {
					complete = false
					break
				}
				seen++
			}
			ab.Events = append(ab.Events, ev)
		}
		if !complete {
			ab.Result = ""
		}

		out.AtBats = append(out.AtBats, ab)
		if !complete || seen == n {
			break
		}
	}
	return out
}

func totalPitches(g *pitch.Game) int {
	if g == nil {
		return 0
	}
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
