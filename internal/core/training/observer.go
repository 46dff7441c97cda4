package training

import (
	"time"

	"github.com/TheFaucett/mlb-predictor/internal/events"
	"github.com/TheFaucett/mlb-predictor/internal/telemetry"
)

// Observer writes one decision row per pitch-decision event.
type Observer struct {
	store *Store
}

func NewObserver(bus *events.Bus, store *Store) *Observer {
	o := &Observer{store: store}
	bus.Subscribe(events.EventPitchDecision, o.onDecision)
	return o
}

func (o *Observer) onDecision(evt events.Event) error {
	dec, ok := evt.Payload.(events.PitchDecisionEvent)
	if !ok || o.store == nil {
		return nil
	}

	row := DecisionRow{
		Ts:          time.Now(),
		GamePK:      evt.GamePK,
		AtBatIndex:  dec.AtBatIndex,
		PitchNumber: dec.PitchNumber,

		Balls:   dec.Balls,
		Strikes: dec.Strikes,
		Outs:    dec.Outs,

		PitcherID: dec.PitcherID,
		BatterID:  dec.BatterID,

		LikelyFastball: dec.LikelyFastball,
		LikelyBreaking: dec.LikelyBreaking,
		LikelyChange:   dec.LikelyChange,
		LikelyCode:     dec.LikelyPitch.Code,

		OptimalFastball: dec.OptimalFastball,
		OptimalBreaking: dec.OptimalBreaking,
		OptimalChange:   dec.OptimalChange,
		OptimalBest:     dec.OptimalBest,

		TunnelLabel: dec.TunnelLabel,

		ActualCode:   dec.ActualCode,
		ActualFamily: dec.ActualFamily,
		ActualZone:   dec.ActualZone,
	}

	if err := o.store.Insert(row); err != nil {
		telemetry.Metrics.DecisionRowErrors.Inc()
		telemetry.Warnf("decision store: insert failed: %v", err)
	}
	return nil
}
