package statsfeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/TheFaucett/mlb-predictor/internal/core/pitch"
	"github.com/TheFaucett/mlb-predictor/internal/telemetry"
)

const requestTimeout = 15 * time.Second

// Client fetches and parses the live game feed. Requests are rate-limited
// and concurrent fetches for the same game collapse into one HTTP call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	sfGroup    singleflight.Group
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(2), 2),
	}
}

// FetchGame retrieves the current feed snapshot for gamePK and converts it
// into the engine's game model.
func (c *Client) FetchGame(ctx context.Context, gamePK int) (*pitch.Game, error) {
	key := fmt.Sprintf("game-%d", gamePK)
	v, err, _ := c.sfGroup.Do(key, func() (any, error) {
		return c.fetchGame(ctx, gamePK)
	})
	if err != nil {
		return nil, err
	}
	return v.(*pitch.Game), nil
}

func (c *Client) fetchGame(ctx context.Context, gamePK int) (*pitch.Game, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	url := fmt.Sprintf("%s/game/%d/feed/live", c.baseURL, gamePK)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		telemetry.Metrics.FeedFetchErrors.Inc()
		return nil, fmt.Errorf("feed fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		telemetry.Metrics.FeedFetchErrors.Inc()
		return nil, fmt.Errorf("feed fetch: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		telemetry.Metrics.FeedFetchErrors.Inc()
		return nil, fmt.Errorf("feed read: %w", err)
	}

	telemetry.Metrics.FeedFetches.Inc()
	telemetry.Metrics.FeedLatency.Record(time.Since(start))

	game, err := ParseGame(body)
	if err != nil {
		telemetry.Metrics.FeedParseErrors.Inc()
		return nil, err
	}

	telemetry.Debugf("statsfeed: game %d fetched (%d at-bats, %s)", gamePK, len(game.AtBats), time.Since(start))
	return game, nil
}
