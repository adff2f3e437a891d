package sportsdata

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/mww/fantasy_rankings/cache"
	"github.com/mww/fantasy_rankings/model"
	"github.com/mww/fantasy_rankings/platforms"
	"github.com/mww/fantasy_rankings/platforms/sportsdata/internal"
	"github.com/mww/fantasy_rankings/scoring"
)

type scoredRow struct {
	row    internal.ProjectionRow
	points float64
}

// WeeklyRankings ranks players at position by projected fantasy points. With
// an explicit season the requested week is used as is. Otherwise the current
// timeframe is resolved and its week replaces the requested one.
func (c *Client) WeeklyRankings(ctx context.Context, position string, week int, opts ...platforms.RankingOption) ([]model.Ranking, error) {
	o := platforms.ApplyOptions(platforms.RankingOptions{Scoring: model.SCORING_PPR}, opts...)

	var tf model.Timeframe
	if o.Season != "" {
		tf = model.Timeframe{Season: model.NormalizeSeason(o.Season, c.segment), Week: week}
	} else {
		var err error
		if tf, err = c.ResolveTimeframe(ctx); err != nil {
			return nil, err
		}
	}

	rows, err := c.weeklyProjections(ctx, tf.Season, tf.Week)
	if err != nil {
		return nil, err
	}

	return rankProjections(rows, model.ParsePosition(position), o.Scoring, tf.Week), nil
}

func rankProjections(rows []internal.ProjectionRow, pos model.Position, mode model.ScoringMode, week int) []model.Ranking {
	scored := make([]scoredRow, 0)
	for _, r := range rows {
		if !pos.Matches(r.Position) {
			continue
		}
		scored = append(scored, scoredRow{row: r, points: scoring.FantasyPoints(stats(r), mode)})
	}

	slices.SortStableFunc(scored, func(a, b scoredRow) int {
		if c := cmp.Compare(b.points, a.points); c != 0 {
			return c
		}
		if c := cmp.Compare(a.row.Name, b.row.Name); c != 0 {
			return c
		}
		return cmp.Compare(rowID(a.row), rowID(b.row))
	})

	if len(scored) > maxRankings {
		scored = scored[:maxRankings]
	}

	result := make([]model.Ranking, 0, len(scored))
	for i, s := range scored {
		result = append(result, model.Ranking{
			PlayerID:   rowID(s.row),
			PlayerName: model.FirstNonEmpty(s.row.Name),
			Position:   pos.String(),
			Week:       week,
			Rank:       i + 1,
			Source:     model.PlatformSportsDataIO,
		})
	}
	return result
}

func (c *Client) weeklyProjections(ctx context.Context, season string, week int) ([]internal.ProjectionRow, error) {
	key := cache.Key("sportsdata.projections", c.upstream.BaseURL(), season, week)
	return cache.GetOrCompute(ctx, c.cache, key, projectionsTTL, func(ctx context.Context) ([]internal.ProjectionRow, error) {
		var rows []internal.ProjectionRow
		path := fmt.Sprintf("/projections/json/PlayerGameProjectionStatsByWeek/%s/%d", season, week)
		if err := c.upstream.GetJSON(ctx, &rows, path); err != nil {
			return nil, err
		}
		c.logger.Debugf("loaded %d projections for %s week %d", len(rows), season, week)
		return rows, nil
	})
}

func stats(r internal.ProjectionRow) scoring.Stats {
	return scoring.Stats{
		PassingYards:         r.PassingYards,
		PassingTouchdowns:    r.PassingTouchdowns,
		PassingInterceptions: r.PassingInterceptions,
		RushingYards:         r.RushingYards,
		RushingTouchdowns:    r.RushingTouchdowns,
		Receptions:           r.Receptions,
		ReceivingYards:       r.ReceivingYards,
		ReceivingTouchdowns:  r.ReceivingTouchdowns,
		FumblesLost:          r.FumblesLost,
	}
}

func rowID(r internal.ProjectionRow) string {
	if r.PlayerID == nil || *r.PlayerID == 0 {
		return model.UnknownPlayerID
	}
	return strconv.Itoa(*r.PlayerID)
}
