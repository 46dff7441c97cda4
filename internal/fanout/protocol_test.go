package fanout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheFaucett/mlb-predictor/internal/events"
)

func TestMarshalEvent(t *testing.T) {
	evt := events.New(events.EventPitchDecision, 716463, events.PitchDecisionEvent{
		AtBatIndex:     3,
		PitchNumber:    2,
		Balls:          1,
		Strikes:        1,
		LikelyFastball: 0.52,
		LikelyBreaking: 0.31,
		LikelyChange:   0.17,
		ActualCode:     "SL",
		ActualFamily:   "breaking",
	})

	data, err := MarshalEvent(evt)
	require.NoError(t, err)

	var wire struct {
		ID      string          `json:"id"`
		Type    string          `json:"type"`
		GamePK  int             `json:"game_pk"`
		Payload json.RawMessage `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, evt.ID, wire.ID)
	assert.Equal(t, "pitch_decision", wire.Type)
	assert.Equal(t, 716463, wire.GamePK)

	var dec events.PitchDecisionEvent
	require.NoError(t, json.Unmarshal(wire.Payload, &dec))
	assert.Equal(t, 3, dec.AtBatIndex)
	assert.InDelta(t, 0.52, dec.LikelyFastball, 1e-9)
	assert.Equal(t, "SL", dec.ActualCode)
	// Empty tunnel label is omitted from the wire form.
	assert.NotContains(t, string(wire.Payload), "tunnel_label")
}
