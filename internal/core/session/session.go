package session

import (
	"time"

	"github.com/TheFaucett/mlb-predictor/internal/core/coords"
	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
	"github.com/TheFaucett/mlb-predictor/internal/core/predict"
	"github.com/TheFaucett/mlb-predictor/internal/core/profile"
	"github.com/TheFaucett/mlb-predictor/internal/core/recommend"
	"github.com/TheFaucett/mlb-predictor/internal/core/tunnel"
	"github.com/TheFaucett/mlb-predictor/internal/events"
	"github.com/TheFaucett/mlb-predictor/internal/telemetry"
)

// How many observed pitches the sequence memory keeps. Two feed the
// sequencing rules; one more gives the tunnel detector its lookback.
const seqMemory = 3

// Decision is everything produced at one decision point, computed strictly
// before the observed pitch was folded into any profile.
type Decision struct {
	AtBatIndex  int
	PitchNumber int

	Context *predict.Context

	Likely      predict.Distribution
	LikelyPitch recommend.SpecificPitch

	Optimal      recommend.Recommendation
	OptimalPitch recommend.SpecificPitch

	// The pitch that was then actually thrown.
	ActualCode   string
	ActualFamily pitch.Family
	ActualDesc   string
	ActualZone   string
}

// seqPitch is one entry of the pitch-sequence memory.
type seqPitch struct {
	Code   string
	Desc   string
	Record *coords.Record
	Zone   string
}

// Arsenals bundles the two pre-parsed external baseline mappings the
// engine consumes: family shares and per-family subtype shares, by pitcher.
type Arsenals struct {
	Families map[int]map[pitch.Family]float64
	Subtypes map[int]map[pitch.Family]map[string]float64
}

// Session processes one game's pitches in strict chronological order,
// producing a Decision per pitch and only afterwards folding the observed
// pitch into the profile store. All state is owned by the session; there
// are no concurrent writers.
type Session struct {
	bus *events.Bus

	game     *pitch.Game
	store    *profile.Store
	resolver *coords.Resolver

	mixer       *predict.Mixer
	recommender *recommend.Recommender
	arsenals    Arsenals

	abIdx int
	evIdx int

	curPitcher int
	curBatter  int
	outs       int

	seq        []seqPitch
	lastTunnel *tunnel.Result

	pitches      int
	finishedSent bool
}

func New(bus *events.Bus, league predict.LeagueTable, arsenals Arsenals) *Session {
	return &Session{
		bus:         bus,
		store:       profile.NewStore(),
		resolver:    coords.NewResolver(nil),
		mixer:       predict.NewMixer(league),
		recommender: recommend.NewRecommender(league),
		arsenals:    arsenals,
	}
}

// Store exposes the profile store, mainly for tests and inspection tooling.
func (s *Session) Store() *profile.Store { return s.store }

// SetGame installs a feed snapshot. Live polling hands in progressively
// longer snapshots of the same game; the cursor keeps its place. A snapshot
// for a different game, or a replay restarted from pitch zero, resets all
// session state.
func (s *Session) SetGame(g *pitch.Game) {
	if s.game != nil && g != nil &&
		(g.GamePK != s.game.GamePK || countPitches(g) < s.pitches) {
		s.Reset()
	}
	s.game = g
	s.resolver.SetGame(g)
}

// Reset returns the session to the start-of-game state: empty profiles,
// empty coordinate cache, cleared sequence memory and cursor.
func (s *Session) Reset() {
	s.store.Reset()
	s.resolver.Reset()
	s.abIdx, s.evIdx = 0, 0
	s.curPitcher, s.curBatter = 0, 0
	s.outs = 0
	s.seq = nil
	s.lastTunnel = nil
	s.pitches = 0
	s.finishedSent = false
}

// CatchUp processes every pitch currently available in the snapshot.
// Returns the number of pitches processed.
func (s *Session) CatchUp() int {
	n := 0
	for {
		if _, ok := s.Step(); !ok {
			break
		}
		n++
	}
	return n
}

// Step processes the next unprocessed pitch: assemble the decision-point
// context, run both models, refine, publish, and only then update the
// profiles with the observed pitch. Returns false when no pitch is ready.
func (s *Session) Step() (*Decision, bool) {
	ev, ab, ok := s.nextPitch()
	if !ok {
		s.maybeFinish()
		return nil, false
	}

	start := time.Now()

	s.enterAtBat(ab)

	// Lazily install external arsenal baselines on first sight.
	if s.arsenals.Families != nil {
		p := s.store.Pitcher(ab.PitcherID)
		if p.Arsenal == nil {
			if fam, ok := s.arsenals.Families[ab.PitcherID]; ok {
				s.store.SetArsenal(ab.PitcherID, fam, s.arsenals.Subtypes[ab.PitcherID])
			}
		}
	}

	rec, _ := s.resolver.Resolve(ab.Index, ev.PitchNumber)
	ctx := s.buildContext(ev, ab, rec)

	likely := s.mixer.Predict(ctx)
	optimal := s.recommender.Recommend(ctx)

	pitcherProfile := s.store.Pitcher(ab.PitcherID)
	likelyPitch := recommend.Refine(likely, likely.Best(), pitcherProfile)
	optimalPitch := recommend.Refine(optimal.Dist, optimal.Best, pitcherProfile)

	dec := &Decision{
		AtBatIndex:   ab.Index,
		PitchNumber:  ev.PitchNumber,
		Context:      ctx,
		Likely:       likely,
		LikelyPitch:  likelyPitch,
		Optimal:      optimal,
		OptimalPitch: optimalPitch,
		ActualCode:   ev.Code,
		ActualFamily: pitch.Classify(ev.Code),
		ActualDesc:   ev.Description,
		ActualZone:   rec.Zone(),
	}

	// Outputs are locked in; now fold the observed pitch into the profiles.
	s.applyObserved(ev, ab, rec)

	s.evIdx++
	s.pitches++
	telemetry.Metrics.PitchesProcessed.Inc()
	telemetry.Metrics.DecisionLatency.Record(time.Since(start))

	s.publishDecision(dec, ab)
	s.maybeFinish()

	return dec, true
}

// nextPitch advances the cursor over non-pitch entries and completed
// at-bats to the next unprocessed pitch event. The at-bat boundary is only
// crossed once the at-bat has a terminal result, so a live snapshot that
// ends mid at-bat simply reports "not ready".
func (s *Session) nextPitch() (*pitch.Event, *pitch.AtBat, bool) {
	if s.game == nil {
		return nil, nil, false
	}
	for s.abIdx < len(s.game.AtBats) {
		ab := &s.game.AtBats[s.abIdx]

		for s.evIdx < len(ab.Events) {
			ev := &ab.Events[s.evIdx]
			if ev.IsPitch {
				return ev, ab, true
			}
			s.evIdx++
		}

		if ab.Result == "" {
			// At-bat still in progress; wait for more feed data.
			return nil, nil, false
		}
		s.abIdx++
		s.evIdx = 0
	}
	return nil, nil, false
}

// enterAtBat handles matchup transitions: outs bookkeeping per half-inning
// and the sequence-memory reset when a new pitcher enters.
func (s *Session) enterAtBat(ab *pitch.AtBat) {
	if ab.PitcherID == s.curPitcher && ab.BatterID == s.curBatter {
		return
	}

	newPitcher := ab.PitcherID != s.curPitcher
	if newPitcher && s.curPitcher != 0 {
		// Sequence memory belongs to the pitcher; profiles survive.
		s.seq = nil
		s.lastTunnel = nil
	}

	s.outs = s.outsBefore(ab)
	s.curPitcher = ab.PitcherID
	s.curBatter = ab.BatterID

	if s.bus != nil {
		s.bus.Publish(events.New(events.EventMatchupChange, s.game.GamePK, events.MatchupChangeEvent{
			PitcherID:  ab.PitcherID,
			BatterID:   ab.BatterID,
			NewPitcher: newPitcher,
		}))
	}
}

// outsBefore sums the outs recorded by earlier at-bats in the same
// half-inning.
func (s *Session) outsBefore(ab *pitch.AtBat) int {
	outs := 0
	for i := ab.Index - 1; i >= 0; i-- {
		prev := &s.game.AtBats[i]
		if prev.Inning != ab.Inning || prev.IsTop != ab.IsTop {
			break
		}
		outs += pitch.OutsRecorded(prev.Result)
	}
	if outs > 2 {
		outs = 2
	}
	return outs
}

// buildContext assembles the immutable decision-point snapshot. Any
// structural failure yields nil, which downstream models treat as "use
// uniform defaults".
func (s *Session) buildContext(ev *pitch.Event, ab *pitch.AtBat, rec *coords.Record) *predict.Context {
	if ev == nil || ab == nil {
		return nil
	}

	ctx := &predict.Context{
		Balls:       ev.Balls,
		Strikes:     ev.Strikes,
		Outs:        s.outs,
		RunnerOn1st: ab.RunnerOn1st,
		RunnerOn2nd: ab.RunnerOn2nd,
		RunnerOn3rd: ab.RunnerOn3rd,
		Inning:      ab.Inning,
		IsTop:       ab.IsTop,
		PitcherID:   ab.PitcherID,
		PitcherHand: ab.PitcherHand,
		BatterID:    ab.BatterID,
		BatterSide:  ab.BatterSide,
		Location:    rec,
		CurrentZone: rec.Zone(),
		Tunnel:      s.lastTunnel,
	}

	if n := len(s.seq); n > 0 {
		last := s.seq[n-1]
		ctx.HasLast = true
		ctx.LastCode = last.Code
		ctx.LastDesc = last.Desc
		ctx.LastZone = last.Zone
		if n > 1 {
			ctx.HasPrev = true
			ctx.PrevCode = s.seq[n-2].Code
		}
	}

	p := s.store.Pitcher(ab.PitcherID)
	ctx.Arsenal = p.Arsenal
	if mix, ok := s.store.PitcherGameMix(ab.PitcherID); ok {
		ctx.GameMix = mix
	}
	ctx.Wildness = s.store.PitcherWildness(ab.PitcherID)
	ctx.VelocityTrend = s.store.PitcherVelocityTrend(ab.PitcherID)

	if scores, worst, ok := s.store.BatterVulnerability(ab.BatterID); ok {
		ctx.HasVulnerability = true
		ctx.Vulnerability = scores
		ctx.MostVulnerable = worst
	}
	if agg, ok := s.store.BatterAggression(ab.BatterID); ok {
		ctx.HasAggression = true
		ctx.Aggression = agg
	}

	if ctx.CurrentZone != "" {
		scores := make(map[pitch.Family]float64)
		for _, f := range pitch.Families {
			if score, ok := s.store.ZoneEffectiveness(ab.BatterID, ctx.CurrentZone, f); ok {
				scores[f] = score
			}
		}
		if len(scores) > 0 {
			ctx.ZoneScores = scores
		}
	}

	return ctx
}

// applyObserved folds the just-thrown pitch into the profiles and refreshes
// the tunnel lookback and sequence memory.
func (s *Session) applyObserved(ev *pitch.Event, ab *pitch.AtBat, rec *coords.Record) {
	family := pitch.Classify(ev.Code)
	zone := rec.Zone()

	s.store.UpdatePitcherUsage(ab.PitcherID, family)
	s.store.UpdatePitcherCommand(ab.PitcherID, ev.StartSpeed, rec)
	s.store.UpdateBatterAggression(ab.BatterID, pitch.IsSwing(ev.Description, ev.InPlay))
	s.store.UpdateBatterVsFamily(ab.BatterID, family, profile.PitchOutcome{
		Description:  ev.Description,
		InPlay:       ev.InPlay,
		FinalOfAtBat: s.isFinalPitch(ev, ab),
		AtBatResult:  ab.Result,
		HitSpeed:     ev.HitSpeed,
	}, zone)

	if n := len(s.seq); n > 0 {
		s.lastTunnel = tunnel.Detect(s.seq[n-1].Record, rec, s.seq[n-1].Code, ev.Code)
		if s.lastTunnel != nil {
			telemetry.Metrics.TunnelsDetected.Inc()
		}
	} else {
		s.lastTunnel = nil
	}

	s.seq = append(s.seq, seqPitch{Code: ev.Code, Desc: ev.Description, Record: rec, Zone: zone})
	if len(s.seq) > seqMemory {
		s.seq = s.seq[len(s.seq)-seqMemory:]
	}
}

// isFinalPitch reports whether ev is the last pitch of a completed at-bat.
func (s *Session) isFinalPitch(ev *pitch.Event, ab *pitch.AtBat) bool {
	if ab.Result == "" {
		return false
	}
	for i := len(ab.Events) - 1; i >= 0; i-- {
		if ab.Events[i].IsPitch {
			return ab.Events[i].PitchNumber == ev.PitchNumber
		}
	}
	return false
}

func (s *Session) publishDecision(dec *Decision, ab *pitch.AtBat) {
	if s.bus == nil {
		return
	}

	payload := events.PitchDecisionEvent{
		AtBatIndex:  dec.AtBatIndex,
		PitchNumber: dec.PitchNumber,
		Inning:      ab.Inning,
		IsTop:       ab.IsTop,
		PitcherID:   ab.PitcherID,
		BatterID:    ab.BatterID,
		Matchup:     ab.PitcherHand + " vs " + ab.BatterSide,

		LikelyFastball: dec.Likely.Fastball,
		LikelyBreaking: dec.Likely.Breaking,
		LikelyChange:   dec.Likely.Change,
		LikelyPitch: events.SpecificPitch{
			Code:        dec.LikelyPitch.Code,
			Label:       dec.LikelyPitch.Label,
			Probability: dec.LikelyPitch.Probability,
		},

		OptimalFastball: dec.Optimal.Dist.Fastball,
		OptimalBreaking: dec.Optimal.Dist.Breaking,
		OptimalChange:   dec.Optimal.Dist.Change,
		OptimalBest:     string(dec.Optimal.Best),
		OptimalPitch: events.SpecificPitch{
			Code:        dec.OptimalPitch.Code,
			Label:       dec.OptimalPitch.Label,
			Probability: dec.OptimalPitch.Probability,
		},

		ActualCode:   dec.ActualCode,
		ActualFamily: string(dec.ActualFamily),
		ActualDesc:   dec.ActualDesc,
		ActualZone:   dec.ActualZone,
	}
	if dec.Context != nil {
		payload.Balls = dec.Context.Balls
		payload.Strikes = dec.Context.Strikes
		payload.Outs = dec.Context.Outs
		if dec.Context.Tunnel != nil {
			payload.TunnelLabel = dec.Context.Tunnel.Label
		}
	}

	s.bus.Publish(events.New(events.EventPitchDecision, s.game.GamePK, payload))
	telemetry.Metrics.DecisionsEmitted.Inc()
}

// maybeFinish publishes the game-finish event once the feed is final and
// every pitch has been consumed.
func (s *Session) maybeFinish() {
	if s.bus == nil || s.game == nil || !s.game.Final || s.finishedSent {
		return
	}
	if s.abIdx < len(s.game.AtBats) {
		return
	}
	s.finishedSent = true
	s.bus.Publish(events.New(events.EventGameFinish, s.game.GamePK, events.GameFinishEvent{
		HomeScore: s.game.HomeScore,
		AwayScore: s.game.AwayScore,
		Pitches:   s.pitches,
	}))
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
