package arsenal

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
	"github.com/TheFaucett/mlb-predictor/internal/core/session"
	"github.com/TheFaucett/mlb-predictor/internal/telemetry"
)

// File schema: one entry per pitcher with raw per-pitch-type counts.
type arsenalFile struct {
	Pitchers []pitcherEntry `json:"pitchers"`
}

type pitcherEntry struct {
	ID      int          `json:"id"`
	Name    string       `json:"name"`
	Pitches []pitchUsage `json:"pitches"`
}

type pitchUsage struct {
	Code  string  `json:"code"`
	Count float64 `json:"count"`
}

// Load reads a pitcher arsenal file and converts the raw counts into the
// family and subtype share maps the engine consumes. An empty path yields
// empty arsenals, which the engine treats as "no baseline available".
func Load(path string) (session.Arsenals, map[string]int, error) {
	out := session.Arsenals{
		Families: make(map[int]map[pitch.Family]float64),
		Subtypes: make(map[int]map[pitch.Family]map[string]float64),
	}
	names := make(map[string]int)

	if path == "" {
		return out, names, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return out, names, fmt.Errorf("arsenal load: %w", err)
	}

	var file arsenalFile
	if err := json.Unmarshal(data, &file); err != nil {
		return out, names, fmt.Errorf("arsenal parse: %w", err)
	}

	for _, p := range file.Pitchers {
		if p.ID == 0 || len(p.Pitches) == 0 {
			continue
		}

		famTotals := make(map[pitch.Family]float64)
		subCounts := make(map[pitch.Family]map[string]float64)
		total := 0.0

		for _, u := range p.Pitches {
			if u.Count <= 0 || u.Code == "" {
				continue
			}
			f := pitch.Classify(u.Code)
			famTotals[f] += u.Count
			if subCounts[f] == nil {
				subCounts[f] = make(map[string]float64)
			}
			subCounts[f][strings.ToUpper(u.Code)] += u.Count
			total += u.Count
		}
		if total == 0 {
			continue
		}

		fams := make(map[pitch.Family]float64, len(famTotals))
		for f, n := range famTotals {
			fams[f] = n / total
		}
		subs := make(map[pitch.Family]map[string]float64, len(subCounts))
		for f, codes := range subCounts {
			shares := make(map[string]float64, len(codes))
			for code, n := range codes {
				shares[code] = n / famTotals[f]
			}
			subs[f] = shares
		}

		out.Families[p.ID] = fams
		out.Subtypes[p.ID] = subs
		if p.Name != "" {
			names[NormalizeName(p.Name)] = p.ID
		}
	}

	telemetry.Infof("arsenal: loaded baselines for %d pitchers from %s", len(out.Families), path)
	return out, names, nil
}

// NormalizeName folds a player name to a lookup key: diacritics stripped,
// lowercased, single-spaced. "José Berríos" and "jose berrios" collide.
func NormalizeName(name string) string {
	decomposed := norm.NFD.String(name)
	var b strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
