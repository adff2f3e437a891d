// Package sleeper adapts Sleeper's free public NFL endpoints. Sleeper exposes no
// projections, so its weekly rankings are a placeholder ordering.
package sleeper

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/mww/fantasy_rankings/cache"
	"github.com/mww/fantasy_rankings/metrics"
	"github.com/mww/fantasy_rankings/model"
	"github.com/mww/fantasy_rankings/platforms"
	"github.com/sirupsen/logrus"
)

const (
	SleeperURL = "https://api.sleeper.app/v1"

	playersTTL  = 15 * time.Minute
	maxRankings = 25
)

type Options struct {
	BaseURL string
	Timeout time.Duration
}

type client struct {
	upstream *platforms.Upstream
	cache    *cache.Cache
	logger   logrus.FieldLogger
}

func New(opts Options, c *cache.Cache, m *metrics.Metrics, logger logrus.FieldLogger) (platforms.Provider, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = SleeperURL
	}

	logger = logger.WithField("provider", model.PlatformSleeper)
	return &client{
		upstream: platforms.NewUpstream(model.PlatformSleeper, base, logger,
			platforms.WithTimeout(opts.Timeout),
			platforms.WithMetrics(m)),
		cache:  c,
		logger: logger,
	}, nil
}

func (c *client) Name() string {
	return model.PlatformSleeper
}

func (c *client) Players(ctx context.Context, query string) ([]model.Player, error) {
	all, err := c.loadPlayers(ctx)
	if err != nil {
		return nil, err
	}

	matches := model.NameFilter(query)
	result := make([]model.Player, 0)
	for _, p := range all {
		if matches(p.Name) {
			result = append(result, p)
		}
	}
	return result, nil
}

// WeeklyRankings orders players at the position by team and then name. This is
// not a measure of skill, only a stable stand-in until real projections exist.
func (c *client) WeeklyRankings(ctx context.Context, position string, week int, _ ...platforms.RankingOption) ([]model.Ranking, error) {
	all, err := c.loadPlayers(ctx)
	if err != nil {
		return nil, err
	}

	pos := model.ParsePosition(position)
	players := make([]model.Player, 0)
	for _, p := range all {
		if pos.Matches(p.Position) {
			players = append(players, p)
		}
	}

	slices.SortFunc(players, func(a, b model.Player) int {
		if c := strings.Compare(a.Team, b.Team); c != 0 {
			return c
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	if len(players) > maxRankings {
		players = players[:maxRankings]
	}

	result := make([]model.Ranking, 0, len(players))
	for i, p := range players {
		result = append(result, model.Ranking{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Position:   pos.String(),
			Week:       week,
			Rank:       i + 1,
			Source:     model.PlatformSleeper,
		})
	}
	return result, nil
}

// loadPlayers returns the full player directory. The response is several
// megabytes so it is cached, keyed by base URL so environments don't collide.
func (c *client) loadPlayers(ctx context.Context) ([]model.Player, error) {
	key := cache.Key("sleeper.players", c.upstream.BaseURL())
	return cache.GetOrCompute(ctx, c.cache, key, playersTTL, func(ctx context.Context) ([]model.Player, error) {
		var parsed map[string]sleeperPlayer
		if err := c.upstream.GetJSON(ctx, &parsed, "/players/nfl"); err != nil {
			return nil, err
		}

		result := make([]model.Player, 0, len(parsed))
		for id, p := range parsed {
			result = append(result, p.toPlayer(id))
		}
		// Map iteration order is random, keep the directory stable.
		slices.SortFunc(result, func(a, b model.Player) int {
			return strings.Compare(a.ID, b.ID)
		})

		c.logger.Debugf("loaded %d players from sleeper", len(result))
		return result, nil
	})
}
