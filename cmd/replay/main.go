// replay feeds a completed game through the engine at a fixed cadence,
// one pitch per tick, so model behavior can be watched end-to-end without
// waiting on a live game.
//
// The game comes from a saved feed JSON given as the first argument, or is
// fetched once from the configured feed when no argument is given.
//
// Usage:
//
//	go run cmd/replay/main.go [saved_feed.json]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/TheFaucett/mlb-predictor/internal/adapters/outbound/statsfeed"
	"github.com/TheFaucett/mlb-predictor/internal/config"
	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
	"github.com/TheFaucett/mlb-predictor/internal/process"
)

func main() {
	process.Run(process.EngineConfig{
		Label: "replay",
		BuildSource: func(cfg *config.Config) (process.GameSource, error) {
			game, err := loadGame(cfg)
			if err != nil {
				return nil, err
			}
			return process.NewReplaySource(game, cfg.ReplayTick), nil
		},
	})
}

func loadGame(cfg *config.Config) (*pitch.Game, error) {
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			return nil, fmt.Errorf("read saved feed: %w", err)
		}
		return statsfeed.ParseGame(data)
	}

	if cfg.GamePK == 0 {
		return nil, fmt.Errorf("GAME_PK or a saved feed file is required for replay")
	}
	client := statsfeed.NewClient(cfg.FeedBaseURL)
	return client.FetchGame(context.Background(), cfg.GamePK)
}
