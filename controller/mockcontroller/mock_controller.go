package mockcontroller

import (
	"context"
	"sync"

	"github.com/mww/fantasy_rankings/model"
	"github.com/mww/fantasy_rankings/platforms"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) Providers() []string {
	args := c.Called()

	var res []string
	if args.Get(0) != nil {
		res = args.Get(0).([]string)
	}

	return res
}

func (c *C) SearchPlayers(ctx context.Context, query string) ([]model.Player, error) {
	args := c.Called(ctx, query)

	var res []model.Player
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Player)
	}

	return res, args.Error(1)
}

func (c *C) WeeklyRankings(ctx context.Context, position string, week int, opts ...platforms.RankingOption) ([]model.Ranking, error) {
	args := c.Called(ctx, position, week, platforms.ApplyOptions(platforms.RankingOptions{}, opts...))

	var res []model.Ranking
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Ranking)
	}

	return res, args.Error(1)
}

func (c *C) WarmCaches(ctx context.Context) error {
	args := c.Called(ctx)
	return args.Error(0)
}

func (c *C) RunPeriodicRefresh(schedule string, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(schedule, shutdown, wg)
}
