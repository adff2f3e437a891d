package controller

import (
	"context"
	"sync"

	"github.com/itbasis/go-clock"
	"github.com/mww/fantasy_rankings/metrics"
	"github.com/mww/fantasy_rankings/model"
	"github.com/mww/fantasy_rankings/platforms"
	"github.com/sirupsen/logrus"
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	// Providers returns the names of the configured providers, in order.
	Providers() []string
	// SearchPlayers returns players from every provider whose name contains query.
	// When two providers know the same player id the earlier provider wins.
	SearchPlayers(ctx context.Context, query string) ([]model.Player, error)
	// WeeklyRankings returns every provider's rankings for the position and week,
	// merged and ordered by rank. Ranks are not recomputed, so each rank can
	// appear once per provider.
	WeeklyRankings(ctx context.Context, position string, week int, opts ...platforms.RankingOption) ([]model.Ranking, error)

	// WarmCaches loads the player directory and the configured rankings so that
	// the next request is served from cache.
	WarmCaches(ctx context.Context) error
	RunPeriodicRefresh(schedule string, shutdown chan bool, wg *sync.WaitGroup)
}

// Warm configures which rankings are refreshed in the background.
type Warm struct {
	Positions []string
	Week      int
}

type controller struct {
	clock     clock.Clock
	providers []platforms.Provider
	warm      Warm
	metrics   *metrics.Metrics
	logger    logrus.FieldLogger
}

func New(clock clock.Clock, providers []platforms.Provider, warm Warm, m *metrics.Metrics, logger logrus.FieldLogger) (C, error) {
	c := &controller{
		clock:     clock,
		providers: providers,
		warm:      warm,
		metrics:   m,
		logger:    logger.WithField("component", "controller"),
	}
	return c, nil
}

func (c *controller) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}
