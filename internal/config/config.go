package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Stats feed
	FeedBaseURL string
	GamePK      int

	// Live polling
	PollInterval time.Duration

	// Historical replay
	ReplayTick time.Duration

	// Arsenal reference file (season-level pitch usage per pitcher)
	ArsenalPath string

	// Model weights overrides (optional)
	WeightsPath string

	// Decision store
	DecisionDBPath string

	// Fanout
	FanoutPort int

	// Telemetry
	LogLevel string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		FeedBaseURL: envStr("FEED_BASE_URL", "https://statsapi.mlb.com/api/v1.1"),
		GamePK:      envInt("GAME_PK", 0),

		PollInterval: time.Duration(envInt("POLL_INTERVAL_SEC", 10)) * time.Second,
		ReplayTick:   time.Duration(envInt("REPLAY_TICK_MS", 1500)) * time.Millisecond,

		ArsenalPath:    envStr("ARSENAL_PATH", "data/arsenals.json"),
		WeightsPath:    envStr("MODEL_WEIGHTS_PATH", ""),
		DecisionDBPath: envStr("DECISION_DB_PATH", "data/decisions.db"),

		FanoutPort: envInt("FANOUT_PORT", 8787),

		LogLevel: envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
