package arsenal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
)

func writeArsenal(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arsenals.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeArsenal(t, `{
		"pitchers": [
			{
				"id": 592789,
				"name": "José Berríos",
				"pitches": [
					{"code": "FF", "count": 300},
					{"code": "SI", "count": 100},
					{"code": "CU", "count": 400},
					{"code": "CH", "count": 200}
				]
			}
		]
	}`)

	ars, names, err := Load(path)
	require.NoError(t, err)

	fams := ars.Families[592789]
	require.NotNil(t, fams)
	assert.InDelta(t, 0.4, fams[pitch.FamilyFastball], 1e-9)
	assert.InDelta(t, 0.4, fams[pitch.FamilyBreaking], 1e-9)
	assert.InDelta(t, 0.2, fams[pitch.FamilyChange], 1e-9)

	subs := ars.Subtypes[592789]
	require.NotNil(t, subs)
	assert.InDelta(t, 0.75, subs[pitch.FamilyFastball]["FF"], 1e-9)
	assert.InDelta(t, 0.25, subs[pitch.FamilyFastball]["SI"], 1e-9)
	assert.InDelta(t, 1.0, subs[pitch.FamilyBreaking]["CU"], 1e-9)

	assert.Equal(t, 592789, names["jose berrios"])
}

func TestLoadSkipsEmptyAndZeroCount(t *testing.T) {
	path := writeArsenal(t, `{
		"pitchers": [
			{"id": 1, "name": "Nobody", "pitches": [{"code": "FF", "count": 0}]},
			{"id": 0, "name": "Anon", "pitches": [{"code": "FF", "count": 10}]},
			{"id": 2, "name": "Someone", "pitches": [{"code": "SL", "count": 50}]}
		]
	}`)

	ars, _, err := Load(path)
	require.NoError(t, err)
	assert.NotContains(t, ars.Families, 1)
	assert.NotContains(t, ars.Families, 0)
	assert.Contains(t, ars.Families, 2)
}

func TestLoadEmptyPath(t *testing.T) {
	ars, names, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, ars.Families)
	assert.Empty(t, names)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load("/nonexistent/arsenals.json")
	assert.Error(t, err)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "jose berrios", NormalizeName("José Berríos"))
	assert.Equal(t, "jose berrios", NormalizeName("  jose   BERRIOS "))
	assert.Equal(t, "eury perez", NormalizeName("Eury Pérez"))
}
