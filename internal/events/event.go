package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is the envelope that flows through the event bus.
// Every domain event (pitch decision, pitch result, game finish) is wrapped in one.
type Event struct {
	ID        string
	Type      EventType
	GamePK    int
	Timestamp time.Time
	Payload   any
}

type EventType string

const (
	// Engine events, published once per decision point.
	EventPitchDecision EventType = "pitch_decision"
	// Published when the game feed reports the final out.
	EventGameFinish EventType = "game_finish"
	// Published when a new pitcher or batter enters.
	EventMatchupChange EventType = "matchup_change"
	// Feed connectivity transitions.
	EventFeedStatus EventType = "feed_status"
)

// New wraps a payload in an envelope with a fresh ID and timestamp.
func New(t EventType, gamePK int, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		GamePK:    gamePK,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}
