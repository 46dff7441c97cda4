package training

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/TheFaucett/mlb-predictor/internal/telemetry"

	_ "modernc.org/sqlite"
)

const (
	// Store size cap; oldest rows are evicted past this.
	maxStoreBytes = 512 << 20
	// Fraction of rows dropped per eviction.
	evictPct = 0.10
	// Evictions between incremental vacuums.
	vacuumInterval = 5
)

// DecisionRow holds all insert-time fields for one decision point.
type DecisionRow struct {
	Ts          time.Time
	GamePK      int
	AtBatIndex  int
	PitchNumber int

	Balls   int
	Strikes int
	Outs    int

	PitcherID int
	BatterID  int

	LikelyFastball float64
	LikelyBreaking float64
	LikelyChange   float64
	LikelyCode     string

	OptimalFastball float64
	OptimalBreaking float64
	OptimalChange   float64
	OptimalBest     string

	TunnelLabel string

	ActualCode   string
	ActualFamily string
	ActualZone   string
}

// Store persists decision snapshots in a FIFO SQLite database so the
// backtest tool can score the models offline. Oldest 10% of rows are
// evicted when the size budget is exceeded.
type Store struct {
	db           *sql.DB
	mu           sync.Mutex
	cachedSize   int64
	rowCount     int64
	evictCounter int
}

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		`PRAGMA auto_vacuum = INCREMENTAL`,
		`CREATE TABLE IF NOT EXISTS pitch_decisions (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			ts               TEXT    NOT NULL,
			game_pk          INTEGER NOT NULL,
			at_bat_index     INTEGER NOT NULL,
			pitch_number     INTEGER NOT NULL,

			balls            INTEGER,
			strikes          INTEGER,
			outs             INTEGER,

			pitcher_id       INTEGER,
			batter_id        INTEGER,

			likely_fastball  REAL,
			likely_breaking  REAL,
			likely_change    REAL,
			likely_code      TEXT,

			optimal_fastball REAL,
			optimal_breaking REAL,
			optimal_change   REAL,
			optimal_best     TEXT,

			tunnel_label     TEXT,

			actual_code      TEXT,
			actual_family    TEXT,
			actual_zone      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pd_game ON pitch_decisions(game_pk)`,
		`CREATE INDEX IF NOT EXISTS idx_pd_ts ON pitch_decisions(ts)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init schema (%s): %w", stmt, err)
		}
	}

	var size int64
	row := db.QueryRow(`SELECT COALESCE(page_count * page_size, 0) FROM pragma_page_count(), pragma_page_size()`)
	if err := row.Scan(&size); err != nil {
		db.Close()
		return nil, fmt.Errorf("read db size: %w", err)
	}

	var count int64
	row = db.QueryRow(`SELECT COUNT(*) FROM pitch_decisions`)
	if err := row.Scan(&count); err != nil {
		db.Close()
		return nil, fmt.Errorf("read row count: %w", err)
	}

	telemetry.Plainf("decision store: opened %s  size=%s  rows=%d", path, humanize.Bytes(uint64(size)), count)

	return &Store{db: db, cachedSize: size, rowCount: count}, nil
}

func (s *Store) Insert(row DecisionRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO pitch_decisions (
			ts, game_pk, at_bat_index, pitch_number,
			balls, strikes, outs, pitcher_id, batter_id,
			likely_fastball, likely_breaking, likely_change, likely_code,
			optimal_fastball, optimal_breaking, optimal_change, optimal_best,
			tunnel_label, actual_code, actual_family, actual_zone
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		row.Ts.UTC().Format(time.RFC3339Nano),
		row.GamePK,
		row.AtBatIndex,
		row.PitchNumber,
		row.Balls,
		row.Strikes,
		row.Outs,
		row.PitcherID,
		row.BatterID,
		round3(row.LikelyFastball),
		round3(row.LikelyBreaking),
		round3(row.LikelyChange),
		row.LikelyCode,
		round3(row.OptimalFastball),
		round3(row.OptimalBreaking),
		round3(row.OptimalChange),
		row.OptimalBest,
		row.TunnelLabel,
		row.ActualCode,
		row.ActualFamily,
		row.ActualZone,
	)
	if err != nil {
		return fmt.Errorf("decision insert: %w", err)
	}

	s.rowCount++

	if s.rowCount%100 == 0 {
		s.refreshSize()
		if s.cachedSize > maxStoreBytes {
			s.evict()
		}
	}

	return nil
}

func (s *Store) refreshSize() {
	var size int64
	row := s.db.QueryRow(`SELECT COALESCE(page_count * page_size, 0) FROM pragma_page_count(), pragma_page_size()`)
	if err := row.Scan(&size); err == nil {
		s.cachedSize = size
	}
}

func (s *Store) evict() {
	toDelete := int64(float64(s.rowCount) * evictPct)
	if toDelete < 1 {
		toDelete = 1
	}

	res, err := s.db.Exec(
		`DELETE FROM pitch_decisions WHERE id IN (
			SELECT id FROM pitch_decisions ORDER BY id ASC LIMIT ?
		)`, toDelete,
	)
	if err != nil {
		telemetry.Warnf("decision store evict: %v", err)
		return
	}

	deleted, _ := res.RowsAffected()
	s.rowCount -= deleted
	s.evictCounter++

	telemetry.Infof("decision store: evicted %d rows (target %d)", deleted, toDelete)

	if s.evictCounter%vacuumInterval == 0 {
		s.db.Exec(`PRAGMA incremental_vacuum`)
	}

	s.refreshSize()
}

func round3(v float64) float64 {
	return float64(int64(v*1000+0.5)) / 1000
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
