// feedmock serves a canned game feed over HTTP to exercise the full live
// pipeline without a real upstream. It loads a saved feed JSON, then reveals
// one additional pitch per tick, so a pitchcast process polling it sees a
// game unfolding in real time.
//
// Usage:
//
//	go run cmd/feedmock/main.go [saved_feed.json]
//
// Point the live process at it with FEED_BASE_URL=http://localhost:8998.
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/TheFaucett/mlb-predictor/internal/adapters/outbound/statsfeed"
	"github.com/TheFaucett/mlb-predictor/internal/config"
	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
	"github.com/TheFaucett/mlb-predictor/internal/telemetry"
)

const listenAddr = ":8998"

func main() {
	cfg := config.Load()
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))

	path := "data/sample_game.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		telemetry.Errorf("feedmock: read %s: %v", path, err)
		os.Exit(1)
	}
	game, err := statsfeed.ParseGame(data)
	if err != nil {
		telemetry.Errorf("feedmock: parse %s: %v", path, err)
		os.Exit(1)
	}

	m := &mock{game: game, total: countPitches(game)}
	go m.advance(cfg.ReplayTick)

	http.HandleFunc("/game/", m.handleFeed)
	telemetry.Infof("feedmock: serving game %d (%d pitches) on %s, one pitch per %s",
		game.GamePK, m.total, listenAddr, cfg.ReplayTick)
	if err := http.ListenAndServe(listenAddr, nil); err != nil {
		telemetry.Errorf("feedmock: %v", err)
		os.Exit(1)
	}
}

type mock struct {
	game  *pitch.Game
	total int

	mu       sync.Mutex
	revealed int
}

// advance reveals one more pitch per tick until the whole game is out.
func (m *mock) advance(tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for range t.C {
		m.mu.Lock()
		if m.revealed >= m.total {
			m.mu.Unlock()
			return
		}
		m.revealed++
		m.mu.Unlock()
	}
}

func (m *mock) handleFeed(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	n := m.revealed
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(buildFeed(m.game, n, n >= m.total)); err != nil {
		telemetry.Warnf("feedmock: encode: %v", err)
	}
}

// Wire shapes for the served snapshot. Only the fields the engine reads.

type wireFeed struct {
	GamePK   int          `json:"gamePk"`
	GameData wireGameData `json:"gameData"`
	LiveData wireLiveData `json:"liveData"`
}

type wireGameData struct {
	Status struct {
		AbstractGameState string `json:"abstractGameState"`
	} `json:"status"`
}

type wireLiveData struct {
	Plays struct {
		AllPlays []wirePlay `json:"allPlays"`
	} `json:"plays"`
	Linescore struct {
		Teams struct {
			Home wireScore `json:"home"`
			Away wireScore `json:"away"`
		} `json:"teams"`
	} `json:"linescore"`
}

type wireScore struct {
	Runs int `json:"runs"`
}

type wirePlay struct {
	About struct {
		AtBatIndex int    `json:"atBatIndex"`
		Inning     int    `json:"inning"`
		HalfInning string `json:"halfInning"`
		IsComplete bool   `json:"isComplete"`
	} `json:"about"`
	Result struct {
		EventType string `json:"eventType,omitempty"`
	} `json:"result"`
	Matchup    wireMatchup `json:"matchup"`
	PlayEvents []wireEvent `json:"playEvents"`
}

type wireMatchup struct {
	Pitcher   wireID `json:"pitcher"`
	Batter    wireID `json:"batter"`
	PitchHand struct {
		Code string `json:"code"`
	} `json:"pitchHand"`
	BatSide struct {
		Code string `json:"code"`
	} `json:"batSide"`
	PostOnFirst  *wireID `json:"postOnFirst,omitempty"`
	PostOnSecond *wireID `json:"postOnSecond,omitempty"`
	PostOnThird  *wireID `json:"postOnThird,omitempty"`
}

type wireID struct {
	ID int `json:"id"`
}

type wireEvent struct {
	IsPitch bool `json:"isPitch"`
	Details struct {
		Type struct {
			Code string `json:"code,omitempty"`
		} `json:"type"`
		Description string `json:"description"`
		IsInPlay    bool   `json:"isInPlay"`
	} `json:"details"`
	Count struct {
		Balls   int `json:"balls"`
		Strikes int `json:"strikes"`
	} `json:"count"`
	PitchNumber int            `json:"pitchNumber,omitempty"`
	PitchData   *wirePitchData `json:"pitchData,omitempty"`
	HitData     *wireHitData   `json:"hitData,omitempty"`
}

type wirePitchData struct {
	StartSpeed  *float64 `json:"startSpeed,omitempty"`
	Coordinates struct {
		PX *float64 `json:"pX,omitempty"`
		PZ *float64 `json:"pZ,omitempty"`
	} `json:"coordinates"`
	Breaks           *wireBreaks `json:"breaks,omitempty"`
	StrikeZoneTop    *float64    `json:"strikeZoneTop,omitempty"`
	StrikeZoneBottom *float64    `json:"strikeZoneBottom,omitempty"`
}

type wireBreaks struct {
	HorzBreak   float64 `json:"breakHorizontal"`
	VertBreak   float64 `json:"breakVerticalInduced"`
	BreakAngle  float64 `json:"breakAngle"`
	BreakLength float64 `json:"breakLength"`
}

type wireHitData struct {
	LaunchSpeed *float64 `json:"launchSpeed,omitempty"`
}

// buildFeed renders the first n pitches of g back into feed JSON. The at-bat
// containing the nth pitch is served incomplete, like a live game mid at-bat.
func buildFeed(g *pitch.Game, n int, final bool) wireFeed {
	out := wireFeed{GamePK: g.GamePK}
	out.GameData.Status.AbstractGameState = "Live"
	if final {
		out.GameData.Status.AbstractGameState = "Final"
		out.LiveData.Linescore.Teams.Home.Runs = g.HomeScore
		out.LiveData.Linescore.Teams.Away.Runs = g.AwayScore
	}

	seen := 0
	for i := range g.AtBats {
		ab := &g.AtBats[i]
		wp := buildPlay(ab)

		complete := true
		for _, ev := range ab.Events {
			if ev.IsPitch {
				if seen == n {
					complete = false
					break
				}
				seen++
			}
			wp.PlayEvents = append(wp.PlayEvents, buildEvent(ev))
		}
		if complete {
			wp.About.IsComplete = true
			wp.Result.EventType = ab.Result
		}

		out.LiveData.Plays.AllPlays = append(out.LiveData.Plays.AllPlays, wp)
		if !complete || seen == n {
			break
		}
	}
	return out
}

func buildPlay(ab *pitch.AtBat) wirePlay {
	var wp wirePlay
	wp.About.AtBatIndex = ab.Index
	wp.About.Inning = ab.Inning
	wp.About.HalfInning = "bottom"
	if ab.IsTop {
		wp.About.HalfInning = "top"
	}
	wp.Matchup.Pitcher.ID = ab.PitcherID
	wp.Matchup.Batter.ID = ab.BatterID
	wp.Matchup.PitchHand.Code = ab.PitcherHand
	wp.Matchup.BatSide.Code = ab.BatterSide
	if ab.RunnerOn1st {
		wp.Matchup.PostOnFirst = &wireID{ID: 1}
	}
	if ab.RunnerOn2nd {
		wp.Matchup.PostOnSecond = &wireID{ID: 1}
	}
	if ab.RunnerOn3rd {
		wp.Matchup.PostOnThird = &wireID{ID: 1}
	}
	return wp
}

func buildEvent(ev pitch.Event) wireEvent {
	var we wireEvent
	we.IsPitch = ev.IsPitch
	we.Details.Type.Code = ev.Code
	we.Details.Description = ev.Description
	we.Details.IsInPlay = ev.InPlay
	we.Count.Balls = ev.Balls
	we.Count.Strikes = ev.Strikes
	we.PitchNumber = ev.PitchNumber

	if ev.Coords != nil || ev.Move != nil || ev.StartSpeed != nil {
		pd := &wirePitchData{StartSpeed: ev.StartSpeed}
		if c := ev.Coords; c != nil {
			px, pz, top, bot := c.PX, c.PZ, c.SZTop, c.SZBot
			pd.Coordinates.PX = &px
			pd.Coordinates.PZ = &pz
			pd.StrikeZoneTop = &top
			pd.StrikeZoneBottom = &bot
		}
		if m := ev.Move; m != nil {
			pd.Breaks = &wireBreaks{
				HorzBreak:   m.HorzBreak,
				VertBreak:   m.VertBreak,
				BreakAngle:  m.BreakAngle,
				BreakLength: m.BreakLength,
			}
		}
		we.PitchData = pd
	}
	if ev.HitSpeed != nil {
		we.HitData = &wireHitData{LaunchSpeed: ev.HitSpeed}
	}
	return we
}

func countPitches(g *pitch.Game) int {
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
