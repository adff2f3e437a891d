package controller

import (
	"context"
	"fmt"

	"github.com/mww/fantasy_rankings/model"
	"golang.org/x/sync/errgroup"
)

func (c *controller) SearchPlayers(ctx context.Context, query string) ([]model.Player, error) {
	results := make([][]model.Player, len(c.providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range c.providers {
		i, p := i, p
		g.Go(func() error {
			players, err := p.Players(gctx, query)
			if err != nil {
				return fmt.Errorf("error loading players from %s: %w", p.Name(), err)
			}
			results[i] = players
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	merged := make([]model.Player, 0)
	for _, players := range results {
		for _, p := range players {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			merged = append(merged, p)
		}
	}
	return merged, nil
}
