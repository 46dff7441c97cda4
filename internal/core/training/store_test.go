package training

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheFaucett/mlb-predictor/internal/events"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "decisions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAndReadBack(t *testing.T) {
	s := tempStore(t)

	row := DecisionRow{
		Ts:          time.Now(),
		GamePK:      716463,
		AtBatIndex:  4,
		PitchNumber: 2,
		Balls:       1,
		Strikes:     1,
		Outs:        2,
		PitcherID:   592789,
		BatterID:    665742,

		LikelyFastball: 0.5123456,
		LikelyBreaking: 0.3,
		LikelyChange:   0.1876544,
		LikelyCode:     "FF",

		OptimalFastball: 0.4,
		OptimalBreaking: 0.45,
		OptimalChange:   0.15,
		OptimalBest:     "breaking",

		TunnelLabel:  "fastball→slider tunnel",
		ActualCode:   "SL",
		ActualFamily: "breaking",
		ActualZone:   "low_glove_side",
	}
	require.NoError(t, s.Insert(row))

	var (
		gamePK int
		likely float64
		family string
		tunnel string
	)
	err := s.db.QueryRow(
		`SELECT game_pk, likely_fastball, actual_family, tunnel_label FROM pitch_decisions`,
	).Scan(&gamePK, &likely, &family, &tunnel)
	require.NoError(t, err)

	assert.Equal(t, 716463, gamePK)
	// Shares are rounded to three decimals at insert.
	assert.InDelta(t, 0.512, likely, 1e-9)
	assert.Equal(t, "breaking", family)
	assert.Equal(t, "fastball→slider tunnel", tunnel)
}

func TestInsertMany(t *testing.T) {
	s := tempStore(t)
	for i := 0; i < 250; i++ {
		require.NoError(t, s.Insert(DecisionRow{
			Ts: time.Now(), GamePK: 1, AtBatIndex: i / 5, PitchNumber: i%5 + 1,
			ActualFamily: "fastball",
		}))
	}

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM pitch_decisions`).Scan(&count))
	assert.Equal(t, 250, count)
}

func TestObserverWritesDecisionRows(t *testing.T) {
	s := tempStore(t)
	bus := events.NewBus()
	NewObserver(bus, s)

	bus.Publish(events.New(events.EventPitchDecision, 716463, events.PitchDecisionEvent{
		AtBatIndex:     0,
		PitchNumber:    1,
		Balls:          0,
		Strikes:        0,
		LikelyFastball: 0.6,
		ActualCode:     "FF",
		ActualFamily:   "fastball",
	}))

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM pitch_decisions`).Scan(&count))
	assert.Equal(t, 1, count)

	// Non-decision payloads are ignored.
	bus.Publish(events.New(events.EventPitchDecision, 716463, "garbage"))
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM pitch_decisions`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRound3(t *testing.T) {
	assert.InDelta(t, 0.512, round3(0.5123456), 1e-12)
	assert.InDelta(t, 0.513, round3(0.5128), 1e-12)
	assert.InDelta(t, 0.0, round3(0.0), 1e-12)
	assert.InDelta(t, 1.0, round3(0.9999), 1e-12)
}
