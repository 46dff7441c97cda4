package fanout

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/TheFaucett/mlb-predictor/internal/events"
)

// wireMessage is the envelope written to fanout clients.
type wireMessage struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	GamePK    int             `json:"game_pk"`
	Timestamp time.Time       `json:"ts"`
	Payload   json.RawMessage `json:"payload"`
}

// MarshalEvent serializes a bus event for the wire.
func MarshalEvent(evt events.Event) ([]byte, error) {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return nil, fmt.Errorf("fanout payload marshal: %w", err)
	}
	return json.Marshal(wireMessage{
		ID:        evt.ID,
		Type:      string(evt.Type),
		GamePK:    evt.GamePK,
		Timestamp: evt.Timestamp,
		Payload:   payload,
	})
}
