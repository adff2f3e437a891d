// Package sportsdata adapts the commercial SportsDataIO NFL API. Rankings are
// built from weekly stat projections scored with the configured scoring mode.
package sportsdata

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/mww/fantasy_rankings/cache"
	"github.com/mww/fantasy_rankings/metrics"
	"github.com/mww/fantasy_rankings/model"
	"github.com/mww/fantasy_rankings/platforms"
	"github.com/mww/fantasy_rankings/platforms/sportsdata/internal"
	"github.com/sirupsen/logrus"
)

const (
	SportsDataURL = "https://api.sportsdata.io/v3/nfl"

	headerAPIKey = "Ocp-Apim-Subscription-Key"

	playersTTL     = 15 * time.Minute
	projectionsTTL = 5 * time.Minute
	timeframeTTL   = 5 * time.Minute

	maxRankings = 100
	rateBurst   = 5
)

type Options struct {
	BaseURL    string
	APIKey     string
	SeasonType model.SeasonType
	// Used only when neither timeframe endpoint gives an answer.
	SeasonOverride int
	WeekOverride   int
	Timeout        time.Duration
	// Requests per second, zero disables rate limiting.
	RateLimit float64
}

type Client struct {
	upstream *platforms.Upstream
	cache    *cache.Cache
	logger   logrus.FieldLogger

	segment        model.SeasonType
	seasonOverride int
	weekOverride   int
}

// New returns a SportsDataIO client. The API key is required.
func New(opts Options, c *cache.Cache, m *metrics.Metrics, logger logrus.FieldLogger) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, &platforms.ConfigError{Provider: model.PlatformSportsDataIO, Setting: "SPORTSDATAIO_API_KEY"}
	}

	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = SportsDataURL
	}
	segment := opts.SeasonType
	if segment == "" {
		segment = model.SEASON_REG
	}

	logger = logger.WithField("provider", model.PlatformSportsDataIO)
	return &Client{
		upstream: platforms.NewUpstream(model.PlatformSportsDataIO, base, logger,
			platforms.WithHeader(headerAPIKey, opts.APIKey),
			platforms.WithTimeout(opts.Timeout),
			platforms.WithRateLimit(opts.RateLimit, rateBurst),
			platforms.WithMetrics(m)),
		cache:          c,
		logger:         logger,
		segment:        segment,
		seasonOverride: opts.SeasonOverride,
		weekOverride:   opts.WeekOverride,
	}, nil
}

func (c *Client) Name() string {
	return model.PlatformSportsDataIO
}

func (c *Client) Players(ctx context.Context, query string) ([]model.Player, error) {
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

func (c *Client) loadPlayers(ctx context.Context) ([]model.Player, error) {
	key := cache.Key("sportsdata.players", c.upstream.BaseURL())
	return cache.GetOrCompute(ctx, c.cache, key, playersTTL, func(ctx context.Context) ([]model.Player, error) {
		var parsed []internal.Player
		if err := c.upstream.GetJSON(ctx, &parsed, "/scores/json/Players"); err != nil {
			return nil, err
		}

		result := make([]model.Player, 0, len(parsed))
		for _, p := range parsed {
			result = append(result, toPlayer(p))
		}

		c.logger.Debugf("loaded %d players from sportsdataio", len(result))
		return result, nil
	})
}

func toPlayer(p internal.Player) model.Player {
	return model.Player{
		ID:       playerID(p.PlayerID),
		Name:     model.FullName(p.FirstName, p.LastName),
		Team:     p.Team,
		Position: p.Position,
	}
}

func playerID(id int) string {
	if id == 0 {
		return model.UnknownPlayerID
	}
	return strconv.Itoa(id)
}
