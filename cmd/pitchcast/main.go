package main

import (
	"context"
	"fmt"

	"github.com/TheFaucett/mlb-predictor/internal/adapters/outbound/statsfeed"
	"github.com/TheFaucett/mlb-predictor/internal/config"
	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
	"github.com/TheFaucett/mlb-predictor/internal/process"
)

func main() {
	process.Run(process.EngineConfig{
		Label: "live",
		BuildSource: func(cfg *config.Config) (process.GameSource, error) {
			if cfg.GamePK == 0 {
				return nil, fmt.Errorf("GAME_PK is required for live mode")
			}
			client := statsfeed.NewClient(cfg.FeedBaseURL)
			return &process.PollSource{
				Fetch: func(ctx context.Context) (*pitch.Game, error) {
					return client.FetchGame(ctx, cfg.GamePK)
				},
				Interval: cfg.PollInterval,
			}, nil
		},
	})
}
