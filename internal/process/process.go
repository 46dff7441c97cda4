package process

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	arsenalLoader "github.com/TheFaucett/mlb-predictor/internal/adapters/outbound/arsenal"
	"github.com/TheFaucett/mlb-predictor/internal/config"
	"github.com/TheFaucett/mlb-predictor/internal/core/display"
	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
	"github.com/TheFaucett/mlb-predictor/internal/core/predict"
	"github.com/TheFaucett/mlb-predictor/internal/core/session"
	"github.com/TheFaucett/mlb-predictor/internal/core/training"
	"github.com/TheFaucett/mlb-predictor/internal/events"
	"github.com/TheFaucett/mlb-predictor/internal/fanout"
	"github.com/TheFaucett/mlb-predictor/internal/telemetry"
)

// GameSource hands the process progressively longer feed snapshots.
// Live polling and historical replay both satisfy it.
type GameSource interface {
	// Next blocks until the next snapshot is due and returns it.
	// A nil game with nil error means the source is exhausted.
	Next(ctx context.Context) (*pitch.Game, error)
}

// EngineConfig captures the pieces that differ between the live and
// replay entry points.
type EngineConfig struct {
	Label string // "live" or "replay", used in logs

	// BuildSource returns the snapshot source for this process.
	BuildSource func(cfg *config.Config) (GameSource, error)
}

// Run boots a prediction process: config, telemetry, event bus, session,
// observers (display, decision store, fanout), then consumes snapshots
// from the source until exhaustion or a shutdown signal.
func Run(epc EngineConfig) {
	cfg := config.Load()
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))
	telemetry.Infof("Starting %s process (game_pk=%d)", epc.Label, cfg.GamePK)

	bus := events.NewBus()

	// ── Model inputs ───────────────────────────────────────────
	arsenals, _, err := arsenalLoader.Load(cfg.ArsenalPath)
	if err != nil {
		telemetry.Warnf("Arsenal baselines unavailable: %v", err)
	}

	league := predict.DefaultLeagueTable()
	if cfg.WeightsPath != "" {
		weights, err := config.LoadModelWeights(cfg.WeightsPath)
		if err != nil {
			telemetry.Errorf("Model weights: %v", err)
			os.Exit(1)
		}
		league = predict.LeagueTableFromWeights(weights)
		telemetry.Infof("Model weights loaded from %s", cfg.WeightsPath)
	}

	// ── Session ────────────────────────────────────────────────
	sess := session.New(bus, league, arsenals)

	// ── Observers ──────────────────────────────────────────────
	_ = display.NewObserver(bus)

	if cfg.DecisionDBPath != "" {
		store, err := training.Open(cfg.DecisionDBPath)
		if err != nil {
			telemetry.Errorf("Decision store: %v", err)
			os.Exit(1)
		}
		defer store.Close()
		_ = training.NewObserver(bus, store)
	}

	fanoutServer := fanout.NewServer(bus)
	go func() {
		if err := fanoutServer.ListenAndServe(cfg.FanoutPort); err != nil {
			telemetry.Warnf("Fanout server: %v", err)
		}
	}()

	// ── Snapshot source ────────────────────────────────────────
	source, err := epc.BuildSource(cfg)
	if err != nil {
		telemetry.Errorf("Snapshot source: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		telemetry.Infof("Shutting down %s...", epc.Label)
		cancel()
	}()

	runLoop(ctx, sess, source, bus)

	telemetry.Infof("%s shutdown complete  pitches=%d  decisions=%d  tunnels=%d  fetch_errors=%d",
		epc.Label,
		telemetry.Metrics.PitchesProcessed.Value(),
		telemetry.Metrics.DecisionsEmitted.Value(),
		telemetry.Metrics.TunnelsDetected.Value(),
		telemetry.Metrics.FeedFetchErrors.Value(),
	)
	telemetry.Infof("decision latency  mean=%s  p99=%s",
		telemetry.Metrics.DecisionLatency.Mean(),
		telemetry.Metrics.DecisionLatency.P99(),
	)
}

// runLoop pulls snapshots and drains every ready pitch from each.
func runLoop(ctx context.Context, sess *session.Session, source GameSource, bus *events.Bus) {
	for {
		game, err := source.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			telemetry.Warnf("Snapshot fetch: %v", err)
			bus.Publish(events.New(events.EventFeedStatus, 0, events.FeedStatusEvent{
				Connected: false,
				Detail:    err.Error(),
			}))
			continue
		}
		if game == nil {
			telemetry.Infof("Snapshot source exhausted")
			return
		}

		sess.SetGame(game)
		if n := sess.CatchUp(); n > 0 {
			telemetry.Debugf("Processed %d new pitches", n)
		}

		if game.Final {
			telemetry.Infof("Game %d is final", game.GamePK)
			return
		}
	}
}

// PollSource adapts the live feed client to the GameSource interface,
// waiting out the poll interval between fetches.
type PollSource struct {
	Fetch    func(ctx context.Context) (*pitch.Game, error)
	Interval time.Duration

	first bool
}

func (p *PollSource) Next(ctx context.Context) (*pitch.Game, error) {
	if p.first {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.Interval):
		}
	}
	p.first = true
	return p.Fetch(ctx)
}
