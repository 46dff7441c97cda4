package predict

import (
	"fmt"

	"github.com/TheFaucett/mlb-predictor/internal/config"
)

// LeagueTable maps an exact ball-strike count ("1-2") to league-average
// family shares. Counts outside the table fall back to defaultShares.
type LeagueTable map[string]Distribution

// defaultShares covers counts missing from the table (impossible counts in
// malformed feeds included).
var defaultShares = Distribution{Fastball: 0.60, Breaking: 0.25, Change: 0.15}

// DefaultLeagueTable holds hand-tuned league-average shares for the twelve
// legal counts. Pitchers live off the fastball early, lean breaking with
// two strikes, and come back to the fastball when behind.
func DefaultLeagueTable() LeagueTable {
	return LeagueTable{
		"0-0": {Fastball: 0.63, Breaking: 0.25, Change: 0.12},
		"0-1": {Fastball: 0.55, Breaking: 0.30, Change: 0.15},
		"0-2": {Fastball: 0.40, Breaking: 0.42, Change: 0.18},
		"1-0": {Fastball: 0.66, Breaking: 0.22, Change: 0.12},
		"1-1": {Fastball: 0.56, Breaking: 0.28, Change: 0.16},
		"1-2": {Fastball: 0.42, Breaking: 0.40, Change: 0.18},
		"2-0": {Fastball: 0.72, Breaking: 0.18, Change: 0.10},
		"2-1": {Fastball: 0.62, Breaking: 0.24, Change: 0.14},
		"2-2": {Fastball: 0.48, Breaking: 0.34, Change: 0.18},
		"3-0": {Fastball: 0.85, Breaking: 0.10, Change: 0.05},
		"3-1": {Fastball: 0.75, Breaking: 0.16, Change: 0.09},
		"3-2": {Fastball: 0.58, Breaking: 0.28, Change: 0.14},
	}
}

// LeagueTableFromWeights overlays optional YAML overrides onto the default
// table. Overridden counts are normalized; unknown counts are added as-is.
func LeagueTableFromWeights(mw config.ModelWeights) LeagueTable {
	table := DefaultLeagueTable()
	for count, fs := range mw.LeagueByCount {
		d := Distribution{Fastball: fs.Fastball, Breaking: fs.Breaking, Change: fs.Change}
		table[count] = d.Normalize()
	}
	if mw.DefaultShares != nil {
		d := Distribution{
			Fastball: mw.DefaultShares.Fastball,
			Breaking: mw.DefaultShares.Breaking,
			Change:   mw.DefaultShares.Change,
		}
		table[""] = d.Normalize()
	}
	return table
}

// ForCount returns the league shares for a count, falling back to the
// default shares (or a configured override stored under "").
func (t LeagueTable) ForCount(balls, strikes int) Distribution {
	if d, ok := t[CountKey(balls, strikes)]; ok {
		return d
	}
	if d, ok := t[""]; ok {
		return d
	}
	return defaultShares
}

// CountKey formats a ball-strike count the way the table keys it.
func CountKey(balls, strikes int) string {
	return fmt.Sprintf("%d-%d", balls, strikes)
}
