package mockplatform

import (
	"context"

	"github.com/mww/fantasy_rankings/model"
	"github.com/mww/fantasy_rankings/platforms"
	"github.com/stretchr/testify/mock"
)

type Provider struct {
	mock.Mock
}

func (p *Provider) Name() string {
	args := p.Called()
	return args.String(0)
}

func (p *Provider) Players(ctx context.Context, query string) ([]model.Player, error) {
	args := p.Called(ctx, query)

	var res []model.Player
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Player)
	}

	return res, args.Error(1)
}

func (p *Provider) WeeklyRankings(ctx context.Context, position string, week int, opts ...platforms.RankingOption) ([]model.Ranking, error) {
	args := p.Called(ctx, position, week, platforms.ApplyOptions(platforms.RankingOptions{}, opts...))

	var res []model.Ranking
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Ranking)
	}

	return res, args.Error(1)
}
