package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FamilyShares is a raw three-family share triple as it appears in the
// weights file. Shares are validated for non-negativity only; callers
// normalize.
type FamilyShares struct {
	Fastball float64 `yaml:"fastball"`
	Breaking float64 `yaml:"breaking"`
	Change   float64 `yaml:"change"`
}

// ModelWeights carries optional overrides for the prediction models.
// Missing counts fall back to the built-in league table.
type ModelWeights struct {
	LeagueByCount map[string]FamilyShares `yaml:"league_by_count"`
	DefaultShares *FamilyShares           `yaml:"default_shares"`
}

// LoadModelWeights reads a YAML weights file. An empty path returns zero
// overrides, which is the normal production setup.
func LoadModelWeights(path string) (ModelWeights, error) {
	if path == "" {
		return ModelWeights{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ModelWeights{}, fmt.Errorf("read model weights: %w", err)
	}

	var mw ModelWeights
	if err := yaml.Unmarshal(data, &mw); err != nil {
		return ModelWeights{}, fmt.Errorf("parse model weights: %w", err)
	}

	for count, fs := range mw.LeagueByCount {
		if fs.Fastball < 0 || fs.Breaking < 0 || fs.Change < 0 {
			return ModelWeights{}, fmt.Errorf("model weights: negative share for count %s", count)
		}
	}

	return mw, nil
}
