package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadModelWeightsEmptyPath(t *testing.T) {
	mw, err := LoadModelWeights("")
	require.NoError(t, err)
	assert.Nil(t, mw.LeagueByCount)
	assert.Nil(t, mw.DefaultShares)
}

func TestLoadModelWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	body := `
league_by_count:
  "0-0":
    fastball: 0.7
    breaking: 0.2
    change: 0.1
  "3-2":
    fastball: 0.6
    breaking: 0.3
    change: 0.1
default_shares:
  fastball: 0.5
  breaking: 0.3
  change: 0.2
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	mw, err := LoadModelWeights(path)
	require.NoError(t, err)
	require.Len(t, mw.LeagueByCount, 2)
	assert.InDelta(t, 0.7, mw.LeagueByCount["0-0"].Fastball, 1e-9)
	require.NotNil(t, mw.DefaultShares)
	assert.InDelta(t, 0.3, mw.DefaultShares.Breaking, 1e-9)
}

func TestLoadModelWeightsRejectsNegative(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	body := `
league_by_count:
  "0-0":
    fastball: -0.1
    breaking: 0.6
    change: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := LoadModelWeights(path)
	assert.Error(t, err)
}

func TestLoadModelWeightsMissingFile(t *testing.T) {
	_, err := LoadModelWeights("/nonexistent/weights.yaml")
	assert.Error(t, err)
}
