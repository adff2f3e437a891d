package controller

import (
	"context"
	"fmt"
	"slices"

	"github.com/mww/fantasy_rankings/model"
	"github.com/mww/fantasy_rankings/platforms"
	"golang.org/x/sync/errgroup"
)

func (c *controller) WeeklyRankings(ctx context.Context, position string, week int, opts ...platforms.RankingOption) ([]model.Ranking, error) {
	results := make([][]model.Ranking, len(c.providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range c.providers {
		i, p := i, p
		g.Go(func() error {
			rankings, err := p.WeeklyRankings(gctx, position, week, opts...)
			if err != nil {
				return fmt.Errorf("error loading %s rankings from %s: %w", position, p.Name(), err)
			}
			results[i] = rankings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]model.Ranking, 0)
	for _, rankings := range results {
		merged = append(merged, rankings...)
	}
	slices.SortStableFunc(merged, func(a, b model.Ranking) int {
		switch {
		case a.Less(&b):
			return -1
		case b.Less(&a):
			return 1
		default:
			return 0
		}
	})
	return merged, nil
}
