// backtest scores recorded decision points offline: top-1 accuracy and
// log-loss of the likely-pitch model, bucketed by count leverage, plus a
// family confusion summary.
//
// Usage:
//
//	go run cmd/backtest/main.go [decisions.db]
package main

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"os"

	_ "modernc.org/sqlite"
)

type row struct {
	balls   int
	strikes int

	likelyFastball float64
	likelyBreaking float64
	likelyChange   float64

	optimalBest  string
	actualFamily string
}

type bucketStats struct {
	n       int
	top1    int
	logLoss float64
}

// countBucket groups counts by who the count favors.
func countBucket(balls, strikes int) string {
	switch {
	case strikes >= 2 && balls <= 1:
		return "pitcher-ahead"
	case balls >= 2 && strikes <= 1:
		return "hitter-ahead"
	case balls == 3 && strikes == 2:
		return "full"
	default:
		return "even"
	}
}

var bucketOrder = []string{"even", "pitcher-ahead", "hitter-ahead", "full"}

func loadRows(path string) ([]row, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rs, err := db.Query(`SELECT balls, strikes,
		likely_fastball, likely_breaking, likely_change,
		optimal_best, actual_family
		FROM pitch_decisions
		WHERE actual_family != ''`)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var rows []row
	for rs.Next() {
		var r row
		if err := rs.Scan(&r.balls, &r.strikes,
			&r.likelyFastball, &r.likelyBreaking, &r.likelyChange,
			&r.optimalBest, &r.actualFamily); err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return rows, rs.Err()
}

func (r *row) predicted() string {
	switch {
	case r.likelyFastball >= r.likelyBreaking && r.likelyFastball >= r.likelyChange:
		return "fastball"
	case r.likelyBreaking >= r.likelyChange:
		return "breaking"
	default:
		return "change"
	}
}

func (r *row) actualShare() float64 {
	switch r.actualFamily {
	case "fastball":
		return r.likelyFastball
	case "breaking":
		return r.likelyBreaking
	default:
		return r.likelyChange
	}
}

func main() {
	dbPath := "data/decisions.db"
	if len(os.Args) > 1 {
		dbPath = os.Args[1]
	}

	rows, err := loadRows(dbPath)
	if err != nil {
		log.Fatalf("failed to load decision rows: %v", err)
	}
	if len(rows) == 0 {
		fmt.Println("No scored decision rows found.")
		return
	}
	fmt.Printf("Loaded %d decision rows from %s\n\n", len(rows), dbPath)

	buckets := make(map[string]*bucketStats)
	for _, b := range bucketOrder {
		buckets[b] = &bucketStats{}
	}

	baseline := make(map[string]int) // actual family frequencies
	confusion := make(map[string]map[string]int)
	optimalMatches := 0

	for i := range rows {
		r := &rows[i]
		pred := r.predicted()

		b := buckets[countBucket(r.balls, r.strikes)]
		b.n++
		if pred == r.actualFamily {
			b.top1++
		}

		p := r.actualShare()
		if p < 1e-9 {
			p = 1e-9
		}
		b.logLoss += -math.Log(p)

		baseline[r.actualFamily]++
		if confusion[pred] == nil {
			confusion[pred] = make(map[string]int)
		}
		confusion[pred][r.actualFamily]++
		if r.optimalBest == r.actualFamily {
			optimalMatches++
		}
	}

	var total, hits int
	var totalLL float64
	for _, b := range buckets {
		total += b.n
		hits += b.top1
		totalLL += b.logLoss
	}

	// Majority-class baseline for comparison.
	majority := 0
	for _, n := range baseline {
		if n > majority {
			majority = n
		}
	}

	fmt.Printf("=== Likely model ===\n")
	fmt.Printf("Top-1 accuracy:  %.1f%%  (majority baseline %.1f%%)\n",
		100*float64(hits)/float64(total), 100*float64(majority)/float64(total))
	fmt.Printf("Mean log-loss:   %.4f\n\n", totalLL/float64(total))

	fmt.Printf("  %-14s  %6s  %8s  %9s\n", "Count", "Rows", "Top-1", "Log-loss")
	fmt.Printf("  %-14s  %6s  %8s  %9s\n", "--------------", "------", "--------", "---------")
	for _, bk := range bucketOrder {
		b := buckets[bk]
		if b.n == 0 {
			fmt.Printf("  %-14s  %6d  %8s  %9s\n", bk, 0, "-", "-")
			continue
		}
		fmt.Printf("  %-14s  %6d  %7.1f%%  %9.4f\n",
			bk, b.n, 100*float64(b.top1)/float64(b.n), b.logLoss/float64(b.n))
	}

	fmt.Printf("\n=== Optimal model ===\n")
	fmt.Printf("Best-family thrown:  %.1f%%  (how often the pitcher threw what we'd call)\n\n",
		100*float64(optimalMatches)/float64(total))

	fmt.Printf("=== Confusion (predicted → actual) ===\n")
	fams := []string{"fastball", "breaking", "change"}
	fmt.Printf("  %-10s", "")
	for _, f := range fams {
		fmt.Printf("  %8s", f)
	}
	fmt.Println()
	for _, p := range fams {
		fmt.Printf("  %-10s", p)
		for _, a := range fams {
			fmt.Printf("  %8d", confusion[p][a])
		}
		fmt.Println()
	}
}
